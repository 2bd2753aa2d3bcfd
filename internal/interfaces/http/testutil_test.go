package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookshop-pos/internal/application/auth"
	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/application/usecase"
	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bookshop-pos/internal/interfaces/http"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCookieName      = "bookshop_session"
	refusedDeleteReason = "Cannot delete customer: it is referenced by existing bills"
)

var (
	testCustomer = entity.Customer{ID: 7, FirstName: "Nimal", LastName: "Perera", Address: "Colombo 03", PhoneNumber: "+94712345678"}
	testPen      = entity.Item{ID: 1, Name: "Pen", Stock: 100, Price: decimal.RequireFromString("10.00")}
)

// fakeBackend imita la API REST del backend con el sobre {success, message, data}.
type fakeBackend struct {
	mu         sync.Mutex
	calls      map[string]int
	orders     []billing.Order
	bills      map[int]entity.Bill
	nextBillID int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}, bills: map[int]entity.Bill{}, nextBillID: 42}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) receivedOrders() []billing.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]billing.Order(nil), f.orders...)
}

func ok(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	track := func(key string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.calls[key]++
			f.mu.Unlock()
			h(w, r)
		}
	}
	const base = "/back_end/api/v1"

	mux.HandleFunc("POST "+base+"/auth/login", track("login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		var u entity.User
		switch {
		case in.Username == "admin" && in.Password == "secret":
			u = entity.User{ID: 1, FirstName: "Ada", LastName: "Admin", UserName: "admin", Role: entity.RoleAdmin}
		case in.Username == "cashier" && in.Password == "secret":
			u = entity.User{ID: 2, FirstName: "Kamal", LastName: "Silva", UserName: "cashier", Role: entity.RoleUser}
		default:
			fail(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "be-" + u.UserName, Path: "/"})
		ok(w, u)
	}))
	mux.HandleFunc("POST "+base+"/auth/logout", track("logout", func(w http.ResponseWriter, r *http.Request) {
		ok(w, nil)
	}))
	mux.HandleFunc("GET "+base+"/customers", track("customers.list", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []entity.Customer{testCustomer})
	}))
	mux.HandleFunc("DELETE "+base+"/customers/{id}", track("customers.delete", func(w http.ResponseWriter, r *http.Request) {
		// success=false con 200, como responde el backend a una baja referenciada
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": refusedDeleteReason, "errorCode": "409"})
	}))
	mux.HandleFunc("GET "+base+"/items", track("items.list", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []entity.Item{testPen})
	}))
	mux.HandleFunc("GET "+base+"/users", track("users.list", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []entity.User{{ID: 1, FirstName: "Ada", LastName: "Admin", UserName: "admin", Role: entity.RoleAdmin}})
	}))
	mux.HandleFunc("POST "+base+"/bills", track("bills.create", func(w http.ResponseWriter, r *http.Request) {
		var order billing.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			fail(w, http.StatusBadRequest, "bad request")
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.orders = append(f.orders, order)
		bill := entity.Bill{ID: f.nextBillID, Date: entity.Timestamp{Time: time.Now().UTC()}, Customer: &testCustomer, Total: decimal.Zero}
		for _, it := range order.Items {
			sub := testPen.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			bill.BillItems = append(bill.BillItems, entity.BillLine{
				ItemID: it.ItemID, ItemName: testPen.Name, UnitPrice: testPen.Price, Quantity: it.Quantity, SubTotal: sub,
			})
			bill.Total = bill.Total.Add(sub)
		}
		f.bills[bill.ID] = bill
		f.nextBillID++
		ok(w, bill)
	}))
	mux.HandleFunc("GET "+base+"/bills/{id}", track("bills.get", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		if b, found := f.bills[id]; found {
			ok(w, b)
			return
		}
		fail(w, http.StatusNotFound, "Bill not found")
	}))
	mux.HandleFunc("GET "+base+"/bills", track("bills.list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		list := make([]entity.Bill, 0, len(f.bills))
		for _, b := range f.bills {
			list = append(list, b)
		}
		ok(w, list)
	}))
	return mux
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa contra el backend falso, con sesiones en memoria.
func buildTestApp(t *testing.T, fb *fakeBackend, limiter *apphttp.LoginLimiter) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	client := backend.NewClient(srv.URL+"/back_end/api/v1", 2*time.Second, backend.WithLogger(log))
	plan := phone.SriLanka
	tr := i18n.New("en", "Rs.")

	billUC := appbilling.NewBillUseCase(backend.NewBillClient(client), backend.NewCustomerClient(client), backend.NewItemClient(client), plan)
	renderer := apphttp.NewRenderer(tr, "Pahana Edu", log)
	app := apphttp.NewApp(apphttp.AppConfig{
		Name:     "bookshop-pos-test",
		Views:    apphttp.NewViews(tr, plan),
		Renderer: renderer,
		Sessions: apphttp.NewSessionStore(apphttp.SessionConfig{CookieName: testCookieName}, log),
		Log:      log,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(backend.NewAuthClient(client)),
		CustomerUC: usecase.NewCustomerUseCase(backend.NewCustomerClient(client), plan),
		ItemUC:     usecase.NewItemUseCase(backend.NewItemClient(client)),
		UserUC:     usecase.NewUserUseCase(backend.NewUserClient(client)),
		BillUC:     billUC,
		ReceiptUC:  appbilling.NewReceiptUseCase(billUC, pdf.NewReceiptGenerator("Pahana Edu", tr.Money, plan.Format)),
		Renderer:   renderer,
		Limiter:    limiter,
		Log:        log,
	})
	return app
}

// browser conserva la cookie de sesión entre peticiones, como un navegador.
type browser struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app}
}

// do lanza la petición; form != nil se envía como x-www-form-urlencoded.
func (b *browser) do(method, path string, form url.Values, asJSON bool) *http.Response {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	}
	if asJSON {
		req.Header.Set("Accept", fiber.MIMEApplicationJSON)
	}
	if b.cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: b.cookie})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name != testCookieName {
			continue
		}
		if ck.Value == "" || ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			b.cookie = ""
		} else {
			b.cookie = ck.Value
		}
	}
	return resp
}

func (b *browser) login(username string) {
	b.t.Helper()
	resp := b.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {"secret"}}, false)
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/home", resp.Header.Get("Location"))
	require.NotEmpty(b.t, b.cookie, "el login debe dejar cookie de sesión")
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// page respuesta JSON de una vista con Data decodificado en T.
type page[T any] struct {
	Title string       `json:"title"`
	User  *entity.User `json:"user"`
	Error string       `json:"error"`
	Data  T            `json:"data"`
}

func decodePage[T any](t *testing.T, resp *http.Response) page[T] {
	t.Helper()
	var p page[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

// formOf arma un formulario a partir de pares clave, valor.
func formOf(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}
