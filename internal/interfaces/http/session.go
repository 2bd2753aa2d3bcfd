package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// Claves dentro de la sesión. Los valores se guardan como JSON en texto.
const (
	sessionUserKey    = "user"
	sessionBackendKey = "backend_cookie"
	sessionDraftKey   = "bill_draft"
	sessionFlashKey   = "flash"

	localSession = "pos_session"
)

// Flash aviso de una sola lectura que sobrevive a una redirección.
type Flash struct {
	Kind string `json:"kind"` // success | error
	Text string `json:"text"`
}

// SessionConfig opciones de la cookie de sesión del navegador.
type SessionConfig struct {
	Storage    fiber.Storage // nil = memoria
	CookieName string
	Expiration time.Duration
	Secure     bool
}

// SessionStore abre la sesión de cada petición y la guarda al final.
type SessionStore struct {
	store *session.Store
	log   zerolog.Logger
}

// NewSessionStore construye el store. La cookie es de sesión (sin Expires): se pierde al
// cerrar el navegador.
func NewSessionStore(cfg SessionConfig, log zerolog.Logger) *SessionStore {
	if cfg.CookieName == "" {
		cfg.CookieName = "bookshop_session"
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = 8 * time.Hour
	}
	return &SessionStore{
		store: session.New(session.Config{
			Storage:           cfg.Storage,
			Expiration:        cfg.Expiration,
			KeyLookup:         "cookie:" + cfg.CookieName,
			CookieHTTPOnly:    true,
			CookieSecure:      cfg.Secure,
			CookieSameSite:    "Lax",
			CookieSessionOnly: true,
			KeyGenerator:      uuid.NewString,
		}),
		log: log,
	}
}

// Session estado tipado de la sesión del navegador. Se decodifica una vez al inicio de la
// petición y se escribe al final solo si cambió.
type Session struct {
	raw           *session.Session
	user          *entity.User
	backendCookie string
	draft         *billing.Composer
	flash         *Flash

	dirty      bool
	regenerate bool
	destroyed  bool
}

// Middleware carga la sesión en c.Locals y la persiste después del handler.
func (s *SessionStore) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := s.store.Get(c)
		if err != nil {
			return fmt.Errorf("sesión: abrir: %w", err)
		}
		sess := s.decode(raw)
		c.Locals(localSession, sess)

		err = c.Next()
		if cerr := sess.commit(); cerr != nil {
			s.log.Error().Err(cerr).Msg("sesión: guardar")
			if err == nil {
				err = cerr
			}
		}
		return err
	}
}

func (s *SessionStore) decode(raw *session.Session) *Session {
	sess := &Session{raw: raw}
	if v, ok := raw.Get(sessionUserKey).(string); ok && v != "" {
		var u entity.User
		if err := json.Unmarshal([]byte(v), &u); err == nil && u.Role.Valid() {
			sess.user = &u
		} else {
			// Sesión ilegible o rol desconocido: se trata como no autenticada.
			s.log.Warn().Str("session_id", raw.ID()).Msg("sesión: usuario inválido descartado")
			sess.Clear()
			return sess
		}
	}
	if v, ok := raw.Get(sessionBackendKey).(string); ok {
		sess.backendCookie = v
	}
	if v, ok := raw.Get(sessionDraftKey).(string); ok && v != "" {
		var d billing.Composer
		if err := json.Unmarshal([]byte(v), &d); err == nil {
			sess.draft = &d
		}
	}
	if v, ok := raw.Get(sessionFlashKey).(string); ok && v != "" {
		var f Flash
		if err := json.Unmarshal([]byte(v), &f); err == nil {
			sess.flash = &f
		}
	}
	return sess
}

// SessionFrom sesión de la petición (cargada por SessionStore.Middleware).
func SessionFrom(c *fiber.Ctx) *Session {
	s, _ := c.Locals(localSession).(*Session)
	return s
}

// User usuario autenticado o nil.
func (s *Session) User() *entity.User {
	if s == nil {
		return nil
	}
	return s.user
}

// BackendCookie cookie de sesión del backend para reenviar en cada llamada.
func (s *Session) BackendCookie() string {
	if s == nil {
		return ""
	}
	return s.backendCookie
}

// SetUser inicia sesión: nuevo id de sesión, usuario sin contraseña y cookie del backend.
// El borrador de una sesión anterior se descarta.
func (s *Session) SetUser(u *entity.User, backendCookie string) {
	cp := *u
	cp.Password = ""
	s.user = &cp
	s.backendCookie = backendCookie
	s.draft = nil
	s.regenerate = true
	s.destroyed = false
	s.dirty = true
}

// Clear cierra la sesión y borra todo su contenido.
func (s *Session) Clear() {
	s.user = nil
	s.backendCookie = ""
	s.draft = nil
	s.flash = nil
	s.destroyed = true
	s.dirty = true
}

// Draft borrador de factura; nunca nil.
func (s *Session) Draft() *billing.Composer {
	if s.draft == nil {
		s.draft = &billing.Composer{}
	}
	return s.draft
}

// SetDraft reemplaza el borrador (nil lo descarta).
func (s *Session) SetDraft(d *billing.Composer) {
	s.draft = d
	s.dirty = true
}

// Flash agrega un aviso para la próxima página.
func (s *Session) Flash(kind, text string) {
	s.flash = &Flash{Kind: kind, Text: text}
	s.dirty = true
}

// PopFlash devuelve y consume el aviso pendiente.
func (s *Session) PopFlash() *Flash {
	if s == nil || s.flash == nil {
		return nil
	}
	f := s.flash
	s.flash = nil
	s.dirty = true
	return f
}

func (s *Session) commit() error {
	if !s.dirty {
		return nil
	}
	if s.destroyed {
		if err := s.raw.Destroy(); err != nil {
			return err
		}
		if s.flash == nil && s.user == nil {
			return nil
		}
		// Logout con aviso: la sesión destruida se reemplaza por una nueva solo con el flash.
		s.regenerate = true
	}
	if s.regenerate {
		if err := s.raw.Regenerate(); err != nil {
			return err
		}
	}
	setJSON(s.raw, sessionUserKey, s.user)
	if s.backendCookie != "" {
		s.raw.Set(sessionBackendKey, s.backendCookie)
	} else {
		s.raw.Delete(sessionBackendKey)
	}
	setJSON(s.raw, sessionDraftKey, s.draft)
	setJSON(s.raw, sessionFlashKey, s.flash)
	return s.raw.Save()
}

func setJSON[T any](raw *session.Session, key string, v *T) {
	if v == nil {
		raw.Delete(key)
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		raw.Delete(key)
		return
	}
	raw.Set(key, string(b))
}
