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

func TestPostulacion_CreateAndGet(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, empresa := helpers.CreateAndLoginUsuario(t, ts, "Empresa", helpers.UniqueEmail("empresa"), "password123", models.UserRoleEmpresa)
	trabCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	aviso := helpers.CreateTestAviso(t, ts.DB, empresa.ID, "Oferta abierta", models.AvisoEstadoPublicado)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/postulaciones", trabCookie, map[string]interface{}{
		"aviso_id": aviso.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var p models.Postulacion
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &p))
	assert.Equal(t, models.PostulacionEstadoPendiente, p.Estado)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/postulaciones/"+p.ID, trabCookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestPostulacion_CreateAgainstDraftForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, empresa := helpers.CreateAndLoginUsuario(t, ts, "Empresa", helpers.UniqueEmail("empresa"), "password123", models.UserRoleEmpresa)
	trabCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	borrador := helpers.CreateTestAviso(t, ts.DB, empresa.ID, "Todavía borrador", models.AvisoEstadoBorrador)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/postulaciones", trabCookie, map[string]interface{}{
		"aviso_id": borrador.ID,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestPostulacion_CreateUnknownAviso404(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	trabCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/postulaciones", trabCookie, map[string]interface{}{
		"aviso_id": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// The empresa reaches a postulacion only through the aviso it owns; a
// foreign empresa gets the same generic denial as any outsider.
func TestPostulacion_TransitiveOwnership(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	ownerCookie, owner := helpers.CreateAndLoginUsuario(t, ts, "Dueña", helpers.UniqueEmail("owner"), "password123", models.UserRoleEmpresa)
	otherCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Otra", helpers.UniqueEmail("other"), "password123", models.UserRoleEmpresa)
	_, trab := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	aviso := helpers.CreateTestAviso(t, ts.DB, owner.ID, "Oferta", models.AvisoEstadoPublicado)
	p := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, aviso.ID, models.PostulacionEstadoPendiente)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/postulaciones/"+p.ID, ownerCookie, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/postulaciones/"+p.ID, otherCookie, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Acceso denegado")

	// Estado change by the owning empresa.
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/postulaciones/"+p.ID, ownerCookie, map[string]interface{}{
		"estado": "aceptada",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Postulacion
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Equal(t, models.PostulacionEstadoAceptada, updated.Estado)
}

// Bulk selection updates only the rows the caller owns and reports exactly
// those; foreign ids are dropped without failing the batch.
func TestPostulacion_BulkSeleccionPartial(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	ownerCookie, owner := helpers.CreateAndLoginUsuario(t, ts, "Dueña", helpers.UniqueEmail("owner"), "password123", models.UserRoleEmpresa)
	_, other := helpers.CreateAndLoginUsuario(t, ts, "Otra", helpers.UniqueEmail("other"), "password123", models.UserRoleEmpresa)
	_, trab := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	own := helpers.CreateTestAviso(t, ts.DB, owner.ID, "Propia", models.AvisoEstadoPublicado)
	foreign := helpers.CreateTestAviso(t, ts.DB, other.ID, "Ajena", models.AvisoEstadoPublicado)

	p1 := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, own.ID, models.PostulacionEstadoPendiente)
	p2 := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, own.ID, models.PostulacionEstadoPendiente)
	p3 := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, own.ID, models.PostulacionEstadoPendiente)
	f1 := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, foreign.ID, models.PostulacionEstadoPendiente)
	f2 := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, foreign.ID, models.PostulacionEstadoPendiente)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/postulaciones/seleccion", ownerCookie, map[string]interface{}{
		"ids":    []string{p1.ID, p2.ID, p3.ID, f1.ID, f2.ID},
		"estado": "rechazada",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated []models.Postulacion
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	require.Len(t, updated, 3, "only the authorized rows come back")
	for _, p := range updated {
		assert.Equal(t, models.PostulacionEstadoRechazada, p.Estado)
		assert.Equal(t, own.ID, p.AvisoID)
	}

	// Foreign rows stayed untouched.
	var fresh models.Postulacion
	require.NoError(t, ts.DB.First(&fresh, "id = ?", f1.ID).Error)
	assert.Equal(t, models.PostulacionEstadoPendiente, fresh.Estado)
}

func TestPostulacion_BulkSeleccionAllForeign403(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	intruderCookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Intrusa", helpers.UniqueEmail("intruder"), "password123", models.UserRoleEmpresa)
	_, owner := helpers.CreateAndLoginUsuario(t, ts, "Dueña", helpers.UniqueEmail("owner"), "password123", models.UserRoleEmpresa)
	_, trab := helpers.CreateAndLoginUsuario(t, ts, "Trab", helpers.UniqueEmail("trab"), "password123", models.UserRoleTrabajador)

	aviso := helpers.CreateTestAviso(t, ts.DB, owner.ID, "Ajena", models.AvisoEstadoPublicado)
	p := helpers.CreateTestPostulacion(t, ts.DB, trab.ID, aviso.ID, models.PostulacionEstadoPendiente)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/postulaciones/seleccion", intruderCookie, map[string]interface{}{
		"ids":    []string{p.ID},
		"estado": "aceptada",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Acceso denegado")

	var fresh models.Postulacion
	require.NoError(t, ts.DB.First(&fresh, "id = ?", p.ID).Error)
	assert.Equal(t, models.PostulacionEstadoPendiente, fresh.Estado)
}

func TestPostulacion_BulkSeleccionEmptyIDs400(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	cookie, _ := helpers.CreateAndLoginUsuario(t, ts, "Empresa", helpers.UniqueEmail("empresa"), "password123", models.UserRoleEmpresa)

	res, _ := ts.SendRequest(t, http.MethodPatch, "/api/postulaciones/seleccion", cookie, map[string]interface{}{
		"ids":    []string{},
		"estado": "aceptada",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPostulacion_ListScoping(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	empresaCookie, empresa := helpers.CreateAndLoginUsuario(t, ts, "Empresa", helpers.UniqueEmail("empresa"), "password123", models.UserRoleEmpresa)
	trabACookie, trabA := helpers.CreateAndLoginUsuario(t, ts, "Trab A", helpers.UniqueEmail("trabA"), "password123", models.UserRoleTrabajador)
	_, trabB := helpers.CreateAndLoginUsuario(t, ts, "Trab B", helpers.UniqueEmail("trabB"), "password123", models.UserRoleTrabajador)

	aviso := helpers.CreateTestAviso(t, ts.DB, empresa.ID, "Oferta", models.AvisoEstadoPublicado)
	pa := helpers.CreateTestPostulacion(t, ts.DB, trabA.ID, aviso.ID, models.PostulacionEstadoPendiente)
	pb := helpers.CreateTestPostulacion(t, ts.DB, trabB.ID, aviso.ID, models.PostulacionEstadoPendiente)

	// Each trabajador sees only their own rows, even when filtering by the
	// other's id.
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/postulaciones?trabajador_id="+trabB.ID, trabACookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, pb.ID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/postulaciones", trabACookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, pa.ID)
	assert.NotContains(t, bodyStr, pb.ID)

	// The empresa sees every application to its avisos.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/postulaciones", empresaCookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, pa.ID)
	assert.Contains(t, bodyStr, pb.ID)
}
