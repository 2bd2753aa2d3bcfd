package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionWithUser arma una app cuya ruta /seed escribe userJSON directo en el store, sin pasar
// por el login, y devuelve la cookie resultante.
func sessionWithUser(t *testing.T, userJSON string) (*fiber.App, *http.Cookie) {
	t.Helper()
	store := NewSessionStore(SessionConfig{CookieName: "bookshop_session"}, zerolog.Nop())
	app := fiber.New()
	app.Get("/seed", func(c *fiber.Ctx) error {
		raw, err := store.store.Get(c)
		if err != nil {
			return err
		}
		raw.Set(sessionUserKey, userJSON)
		return raw.Save()
	})
	app.Use(store.Middleware())
	app.Get(PathHome, RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("home")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/seed", nil), -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "bookshop_session" && ck.Value != "" {
			return app, ck
		}
	}
	t.Fatal("la ruta /seed no devolvió cookie de sesión")
	return nil, nil
}

func getHome(t *testing.T, app *fiber.App, ck *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, PathHome, nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSession_RolDesconocidoNoAutentica(t *testing.T) {
	app, ck := sessionWithUser(t, `{"id":9,"userName":"ghost","role":"ROOT"}`)

	resp := getHome(t, app, ck)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, PathLogin, resp.Header.Get("Location"))

	resp = getHome(t, app, ck)
	assert.Equal(t, PathLogin, resp.Header.Get("Location"), "el usuario descartado no vuelve a cargarse")
}

func TestSession_UsuarioIlegibleNoAutentica(t *testing.T) {
	app, ck := sessionWithUser(t, `{"id":`)

	resp := getHome(t, app, ck)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, PathLogin, resp.Header.Get("Location"))
}

func TestSession_RolValidoAutentica(t *testing.T) {
	app, ck := sessionWithUser(t, `{"id":2,"userName":"cashier","role":"USER"}`)

	resp := getHome(t, app, ck)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
