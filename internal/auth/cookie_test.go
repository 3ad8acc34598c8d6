package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DapP256/trabajo-final-uai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieWriter_AttachAndRead(t *testing.T) {
	w := &CookieWriter{Secret: testSecret}

	nombre := "Ana"
	usuario := &models.Usuario{
		Email:  "ana@test.com",
		Nombre: &nombre,
		Rol:    models.UserRoleEmpresa,
		Estado: models.UserStatusActivo,
	}
	usuario.ID = "user-1"

	payload := NewPayload(usuario)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "user-1", payload.User.ID)

	rec := httptest.NewRecorder()
	require.NoError(t, w.Attach(rec, payload))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure, "secure is off outside production")
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((30 * 24 * 3600)), c.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	decoded := w.Read(req)
	require.NotNil(t, decoded)
	assert.Equal(t, payload.User, decoded.User)
	assert.Equal(t, payload.Token, decoded.Token)
}

func TestCookieWriter_SecureInProduction(t *testing.T) {
	w := &CookieWriter{Secret: testSecret, Production: true}

	usuario := &models.Usuario{Email: "a@b.c", Rol: models.UserRoleTrabajador, Estado: models.UserStatusActivo}
	usuario.ID = "user-2"

	rec := httptest.NewRecorder()
	require.NoError(t, w.Attach(rec, NewPayload(usuario)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestCookieWriter_ReadMissingOrInvalid(t *testing.T) {
	w := &CookieWriter{Secret: testSecret}

	// No cookie at all.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, w.Read(req))

	// Garbage value.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-session"})
	assert.Nil(t, w.Read(req))

	// Valid token signed with a different secret.
	other := &CookieWriter{Secret: "other-secret"}
	usuario := &models.Usuario{Email: "a@b.c", Rol: models.UserRoleTrabajador, Estado: models.UserStatusActivo}
	usuario.ID = "user-3"
	rec := httptest.NewRecorder()
	require.NoError(t, other.Attach(rec, NewPayload(usuario)))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	assert.Nil(t, w.Read(req))
}

func TestCookieWriter_Clear(t *testing.T) {
	w := &CookieWriter{Secret: testSecret}

	rec := httptest.NewRecorder()
	w.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
