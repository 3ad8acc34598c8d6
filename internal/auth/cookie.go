package auth

import (
	"net/http"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/google/uuid"
)

const (
	// CookieName is versioned so a future payload change can coexist with
	// cookies minted by older deployments.
	CookieName = "manito_session_v1"

	cookieMaxAge = 30 * 24 * time.Hour
)

// CookieWriter issues and clears the session cookie. Production toggles the
// Secure attribute; everything else is fixed.
type CookieWriter struct {
	Secret     string
	Production bool
}

// NewPayload builds a session snapshot for a usuario with a fresh opaque
// token and the issuance timestamp.
func NewPayload(u *models.Usuario) *SessionPayload {
	return &SessionPayload{
		Token: uuid.NewString(),
		User: SessionUser{
			ID:       u.ID,
			Email:    u.Email,
			Nombre:   u.Nombre,
			Apellido: u.Apellido,
			Rol:      u.Rol,
			Estado:   string(u.Estado),
		},
		IssuedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Attach signs the payload and sets it as the session cookie.
func (w *CookieWriter) Attach(rw http.ResponseWriter, payload *SessionPayload) error {
	value, err := EncodeSession(payload, w.Secret)
	if err != nil {
		return err
	}
	http.SetCookie(rw, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   w.Production,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session cookie from a request. A missing cookie and a
// cookie that fails verification are the same thing: no session.
func (w *CookieWriter) Read(r *http.Request) *SessionPayload {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	payload, ok := DecodeSession(c.Value, w.Secret)
	if !ok {
		return nil
	}
	return payload
}

// Clear overwrites the cookie with an empty value and an immediate expiry.
func (w *CookieWriter) Clear(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   w.Production,
		SameSite: http.SameSiteLaxMode,
	})
}
