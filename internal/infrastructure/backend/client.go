// Package backend implementa los puertos de repository contra la API REST de la librería.
// Cada respuesta trae el sobre {success, data, message, errorCode}; los llamadores ramifican
// por success y no por el status HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/domain"
)

const (
	// RequestIDHeader se propaga al backend para correlacionar logs.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

// Client cliente HTTP compartido por los adaptadores de recursos.
// Usa net/http de la librería estándar; la sesión del backend viaja en el contexto.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
	log        zerolog.Logger
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes personalizados).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics registra contadores e histogramas por recurso y operación.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger asigna el logger; por defecto no se registra nada.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient construye el cliente. baseURL es la raíz de la API, ej. http://localhost:8080/back_end/api/v1.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Contexto: sesión del backend y request id ────────────────────────────────

type sessionKey struct{}
type requestIDKey struct{}

// WithSession adjunta la cookie de sesión del backend ("JSESSIONID=...") al contexto.
func WithSession(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, sessionKey{}, cookie)
}

// SessionFrom devuelve la cookie de sesión del contexto ("" si no hay).
func SessionFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}

// WithRequestID adjunta el id de la petición entrante.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey{}).(string)
	return s
}

// ── Errores ──────────────────────────────────────────────────────────────────

// APIError fallo de negocio informado por el backend (success=false o status >= 400).
// Message se muestra tal cual al usuario.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	return fmt.Sprintf("backend: %s (status %d)", msg, e.Status)
}

// Is mapea los status HTTP a los errores de dominio.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage texto para mostrar: message, si no errorCode.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// ── Protocolo ────────────────────────────────────────────────────────────────

type envelope struct {
	Success   *bool           `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

// call describe una petición a un recurso.
type call struct {
	resource string
	op       string
	method   string
	path     string
	in       any
	out      any
}

// do ejecuta la llamada y decodifica el sobre. Devuelve las cabeceras de respuesta
// (login necesita Set-Cookie).
func (c *Client) do(ctx context.Context, k call) (http.Header, error) {
	start := time.Now()
	header, err := c.roundTrip(ctx, k)
	elapsed := time.Since(start)
	c.metrics.observe(k.resource, k.op, err, elapsed)

	var ev *zerolog.Event
	if err != nil {
		ev = c.log.Warn().Err(err)
	} else {
		ev = c.log.Debug()
	}
	ev.Str("resource", k.resource).
		Str("op", k.op).
		Str("request_id", requestIDFrom(ctx)).
		Dur("duration", elapsed).
		Msg("llamada al backend")
	return header, err
}

func (c *Client) roundTrip(ctx context.Context, k call) (http.Header, error) {
	var body io.Reader
	if k.in != nil {
		raw, err := json.Marshal(k.in)
		if err != nil {
			return nil, fmt.Errorf("backend %s %s: serializar request: %w", k.resource, k.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, k.method, c.baseURL+k.path, body)
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: crear request: %w", k.resource, k.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := SessionFrom(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: %w: %w", k.resource, k.op, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: leer respuesta: %w: %w", k.resource, k.op, domain.ErrUnavailable, err)
	}

	if err := decode(resp.StatusCode, raw, k.out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return resp.Header, err
		}
		return resp.Header, fmt.Errorf("backend %s %s: %w: %w", k.resource, k.op, domain.ErrUnavailable, err)
	}
	return resp.Header, nil
}

// decode interpreta el cuerpo. Casos:
//   - sobre con success=false → APIError con message/errorCode.
//   - status >= 400 → APIError con el mensaje del cuerpo (JSON de error o texto plano).
//   - sobre con success=true → data se decodifica en out.
//   - JSON sin sobre en 2xx → se decodifica completo en out.
func decode(status int, raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	var env envelope
	isEnvelope := len(raw) > 0 && raw[0] == '{' && json.Unmarshal(raw, &env) == nil

	if status >= http.StatusBadRequest {
		apiErr := &APIError{Status: status}
		switch {
		case isEnvelope:
			apiErr.Message, apiErr.Code = env.Message, env.ErrorCode
		case len(raw) > 0:
			apiErr.Message = strings.Trim(string(raw), `"`)
		}
		if apiErr.Message == "" && apiErr.Code == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	if isEnvelope && env.Success != nil {
		if !*env.Success {
			return &APIError{Status: status, Code: env.ErrorCode, Message: env.Message}
		}
		if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("deserializar data: %w", err)
		}
		return nil
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("deserializar respuesta: %w", err)
	}
	return nil
}
