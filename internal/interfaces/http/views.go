package http

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/domain/access"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

//go:embed templates
var templatesFS embed.FS

// NewViews motor de plantillas HTML embebidas con las funciones de formato de la tienda.
func NewViews(tr *i18n.Translator, plan phone.Plan) *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err) // el directorio está embebido en el binario
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]any{
		"t":     tr.T,
		"money": tr.Money,
		"phone": plan.Format,
		"local": plan.Local,
		"date": func(ts entity.Timestamp) string {
			if ts.IsZero() {
				return "-"
			}
			return ts.Format("2006-01-02 15:04")
		},
		"can": func(u *entity.User, cap string) bool {
			return u != nil && access.Can(u.Role, access.Capability(cap))
		},
		"inc":   func(i int) int { return i + 1 },
		"itoa":  strconv.Itoa,
		"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
	})
	return engine
}
