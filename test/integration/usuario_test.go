package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DapP256/trabajo-final-uai/internal/app"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUsuarios_RequiresAdminRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	trabCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)
	empresaCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Empresa", helpers.UniqueEmail("empresa"), "password123", models.UserRoleEmpresa)

	for name, cookie := range map[string]string{"trabajador": trabCookie, "empresa": empresaCookie} {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios", cookie, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, name)
		assert.Contains(t, bodyStr, "Acceso denegado")
	}

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminUsuarios_CRUD(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	adminCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Admin", helpers.UniqueEmail("admin"), "password123", models.UserRoleAdministrador)

	email := helpers.UniqueEmail("managed")
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios", adminCookie, map[string]interface{}{
		"email":    email,
		"password": "password123",
		"nombre":   "Gestionada",
		"rol":      "empresa",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "activo", created.Estado)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios/"+created.ID, adminCookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, email)

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/admin/usuarios/"+created.ID, adminCookie, map[string]interface{}{
		"estado": "suspendido",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "suspendido")

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios?rol=empresa&estado=suspendido", adminCookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, created.ID)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/admin/usuarios/"+created.ID, adminCookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios/"+created.ID, adminCookie, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminUsuarios_PasswordChangeRehashes(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	adminCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Admin", helpers.UniqueEmail("admin"), "password123", models.UserRoleAdministrador)
	email := helpers.UniqueEmail("target")
	_, target := helpers.CreateAndLoginUsuario(t, ts, "Target", email, "old-password1", models.UserRoleTrabajador)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/admin/usuarios/"+target.ID, adminCookie, map[string]interface{}{
		"password": "new-password1",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, "new-password1")

	helpers.LoginUsuario(t, ts, email, "new-password1")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "old-password1",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestPerfil_SelfService(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	email := helpers.UniqueEmail("perfil")
	cookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Ana", email, "password123", models.UserRoleTrabajador)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/perfil", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, email)

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/perfil", cookie, map[string]interface{}{
		"nombre": "Ana María",
		"ciudad": "Córdoba",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Ana María")
}

// The profile endpoint has no rol or estado fields; unknown fields are
// ignored, so a role escalation attempt silently does nothing.
func TestPerfil_CannotEscalateRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	cookie, u := helpers.CreateAndLoginUsuario(t, ts, "Ana", helpers.UniqueEmail("escalate"), "password123", models.UserRoleTrabajador)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/perfil", cookie, map[string]interface{}{
		"rol":    "administrador",
		"estado": "activo",
		"nombre": "Ana",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var fresh models.Usuario
	require.NoError(t, ts.DB.First(&fresh, "id = ?", u.ID).Error)
	assert.Equal(t, models.UserRoleTrabajador, fresh.Rol)
}

func TestSeedFirstAdmin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	cfg := *ts.Cfg
	cfg.FirstAdminEmail = helpers.UniqueEmail("seed-admin")
	cfg.FirstAdminPassword = "seed-password1"

	// Seeding twice creates exactly one admin.
	require.NoError(t, app.SeedFirstAdmin(ts.DB, &cfg))
	require.NoError(t, app.SeedFirstAdmin(ts.DB, &cfg))

	var count int64
	require.NoError(t, ts.DB.Model(&models.Usuario{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	cookie := helpers.LoginUsuario(t, ts, cfg.FirstAdminEmail, "seed-password1")
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/admin/usuarios", cookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "the seeded account is a working administrator")
}
