package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReclamo_CreateAndGet(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	cookie, u := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/reclamos", cookie, map[string]interface{}{
		"titulo_servicio": "Instalación eléctrica",
		"descripcion":     "Nunca se presentó",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var reclamo models.Reclamo
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &reclamo))
	assert.Equal(t, u.ID, reclamo.UsuarioID, "the reporter is always the session user")
	assert.Equal(t, "abierto", reclamo.Estado)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/reclamos/"+reclamo.ID, cookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestReclamo_ReporterCannotBeSpoofed(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	cookie, u := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)
	_, victim := helpers.CreateAndLoginUsuario(t, ts, "Víctima", helpers.UniqueEmail("victim"), "password123", models.UserRoleTrabajador)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/reclamos", cookie, map[string]interface{}{
		"usuario_id":      victim.ID,
		"titulo_servicio": "Intento de suplantación",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var reclamo models.Reclamo
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &reclamo))
	assert.Equal(t, u.ID, reclamo.UsuarioID, "usuario_id in the body is ignored for non-admins")
}

func TestReclamo_AccessScoping(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	reporterCookie, reporter := helpers.CreateAndLoginUsuario(t, ts, "Reporter", helpers.UniqueEmail("reporter"), "password123", models.UserRoleTrabajador)
	referencedCookie, referenced := helpers.CreateAndLoginUsuario(t, ts, "Referido", helpers.UniqueEmail("referenced"), "password123", models.UserRoleTrabajador)
	bystanderCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Ajeno", helpers.UniqueEmail("bystander"), "password123", models.UserRoleTrabajador)
	negocioCookie, negocio := helpers.CreateAndLoginUsuario(t, ts, "Negocio", helpers.UniqueEmail("negocio"), "password123", models.UserRoleEmpresa)

	reclamo := models.Reclamo{
		UsuarioID:      reporter.ID,
		TrabajadorID:   &referenced.ID,
		NegocioID:      &negocio.ID,
		TituloServicio: "Servicio disputado",
		Estado:         "abierto",
	}
	require.NoError(t, ts.DB.Create(&reclamo).Error)

	for name, cookie := range map[string]string{
		"reporter":   reporterCookie,
		"referenced": referencedCookie,
		"negocio":    negocioCookie,
	} {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/reclamos/"+reclamo.ID, cookie, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, name)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/reclamos/"+reclamo.ID, bystanderCookie, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Acceso denegado")

	// Listing hides it from the bystander too.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/reclamos", bystanderCookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, reclamo.ID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/reclamos", referencedCookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, reclamo.ID)
}

func TestReclamo_EstadoTransitions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	reporterCookie, reporter := helpers.CreateAndLoginUsuario(t, ts, "Reporter", helpers.UniqueEmail("reporter"), "password123", models.UserRoleTrabajador)
	negocioCookie, negocio := helpers.CreateAndLoginUsuario(t, ts, "Negocio", helpers.UniqueEmail("negocio"), "password123", models.UserRoleEmpresa)

	reclamo := models.Reclamo{
		UsuarioID:      reporter.ID,
		NegocioID:      &negocio.ID,
		TituloServicio: "Servicio disputado",
		Estado:         "abierto",
	}
	require.NoError(t, ts.DB.Create(&reclamo).Error)

	// The reporting trabajador can edit the description but not move the
	// estado.
	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/reclamos/"+reclamo.ID, reporterCookie, map[string]interface{}{
		"descripcion": "Detalles ampliados",
		"estado":      "resuelto",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Reclamo
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Equal(t, "abierto", updated.Estado, "estado is stripped for the reporter")
	require.NotNil(t, updated.Descripcion)
	assert.Equal(t, "Detalles ampliados", *updated.Descripcion)

	// The referenced negocio may resolve it.
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/reclamos/"+reclamo.ID, negocioCookie, map[string]interface{}{
		"estado": "resuelto",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Equal(t, "resuelto", updated.Estado)
}

func TestReclamo_DeleteByReporter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	cookie, u := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)
	reclamo := helpers.CreateTestReclamo(t, ts.DB, u.ID, "Para borrar")

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/reclamos/"+reclamo.ID, cookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/reclamos/"+reclamo.ID, cookie, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
