package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/application/auth"
	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

const tplLogin = "login"

// AuthHandler login y logout del punto de venta.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	r   *Renderer
	log zerolog.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, r *Renderer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, r: r, log: log}
}

// LoginPage GET /login. Con sesión activa redirige a /home.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if SessionFrom(c).User() != nil {
		return c.Redirect(PathHome, fiber.StatusFound)
	}
	return h.r.Render(c, fiber.StatusOK, tplLogin, Page{Title: "Login", Data: dto.LoginForm{}})
}

// Login POST /login
// @Summary Iniciar sesión
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json,html
// @Param body body dto.LoginForm true "credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} http.Page
// @Failure 422 {object} http.Page
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return h.r.Fail(c, domain.NewValidationError(domain.MsgCredentialsRequired), tplLogin, Page{Title: "Login", Data: in})
	}
	user, cookie, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		page := Page{Title: "Login", Data: dto.LoginForm{Username: in.Username}}
		var ae *backend.APIError
		if errors.As(err, &ae) && errors.Is(err, domain.ErrUnauthorized) {
			page.Error = ae.UserMessage()
			return h.r.Render(c, fiber.StatusUnauthorized, tplLogin, page)
		}
		return h.r.Fail(c, err, tplLogin, page)
	}

	SessionFrom(c).SetUser(user, cookie)
	h.log.Info().Str("user", user.UserName).Str("role", user.Role.String()).Msg("login")

	if wantsJSON(c) {
		return c.JSON(dto.LoginResponse{User: *user})
	}
	return c.Redirect(PathHome, fiber.StatusSeeOther)
}

// TooManyAttempts respuesta del rate limit de login.
func (h *AuthHandler) TooManyAttempts(c *fiber.Ctx, retryAfter time.Duration) error {
	page := Page{Title: "Login", Data: dto.LoginForm{}, Error: h.r.Translator().T(domain.MsgTooManyAttempts)}
	return h.r.Render(c, fiber.StatusTooManyRequests, tplLogin, page)
}

// Logout POST /logout. La sesión local se cierra aunque el backend falle.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	if sess.User() != nil {
		ctx := backend.WithSession(c.UserContext(), sess.BackendCookie())
		if err := h.uc.Logout(ctx); err != nil {
			h.log.Warn().Err(err).Msg("logout en backend")
		}
	}
	sess.Clear()
	msg := h.r.Translator().T(i18n.MsgLoggedOut)
	if wantsJSON(c) {
		return c.JSON(dto.MessageResponse{Message: msg})
	}
	sess.Flash("success", msg)
	return c.Redirect(PathLogin, fiber.StatusSeeOther)
}
