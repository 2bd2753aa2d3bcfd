package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

var _ repository.AuthGateway = (*AuthClient)(nil)

// AuthClient adaptador de /auth.
type AuthClient struct {
	c *Client
}

// NewAuthClient construye el adaptador.
func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /auth/login. Devuelve el usuario y las cookies de sesión del backend
// como valor de cabecera Cookie ("JSESSIONID=...").
func (r *AuthClient) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	var out entity.User
	header, err := r.c.do(ctx, call{
		resource: "auth", op: "login", method: http.MethodPost, path: "/auth/login",
		in:  loginRequest{Username: username, Password: password},
		out: &out,
	})
	if err != nil {
		return nil, "", err
	}
	if !out.Role.Valid() {
		role, perr := entity.ParseRole(string(out.Role))
		if perr != nil {
			return nil, "", fmt.Errorf("backend auth login: %w", perr)
		}
		out.Role = role
	}
	out.Password = ""
	return &out, cookieHeader(header), nil
}

// Logout POST /auth/logout con la sesión del contexto.
func (r *AuthClient) Logout(ctx context.Context) error {
	_, err := r.c.do(ctx, call{resource: "auth", op: "logout", method: http.MethodPost, path: "/auth/logout"})
	return err
}

// cookieHeader convierte los Set-Cookie de la respuesta en un valor de cabecera Cookie.
func cookieHeader(h http.Header) string {
	if h == nil {
		return ""
	}
	resp := http.Response{Header: h}
	parts := make([]string, 0, len(h.Values("Set-Cookie")))
	for _, ck := range resp.Cookies() {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}
