package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// CreateUsuario inserts a usuario, hashing the password unless the field
// already carries a bcrypt hash. Leaving a plain value in place lets tests
// exercise the legacy credential path.
func CreateUsuario(t *testing.T, db *gorm.DB, u *models.Usuario, hashPassword bool) {
	t.Helper()

	if hashPassword && !auth.IsBcryptHash(u.ContrasenaHash) {
		hash, err := auth.HashPassword(u.ContrasenaHash)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		u.ContrasenaHash = hash
	}

	if u.Estado == "" {
		u.Estado = models.UserStatusActivo
	}

	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create usuario %s: %v", u.Email, err)
	}
}

// LoginUsuario logs in through the API and returns the session cookie value.
func LoginUsuario(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	cookie := SessionCookie(res)
	assert.NotEmpty(t, cookie, "login response should set the session cookie")
	return cookie
}

// CreateAndLoginUsuario creates a usuario with a bcrypt hash and logs in.
func CreateAndLoginUsuario(t *testing.T, ts *TestServer, nombre, email, password string, rol models.UserRole) (string, *models.Usuario) {
	t.Helper()

	u := &models.Usuario{
		Email:          email,
		ContrasenaHash: password,
		Nombre:         &nombre,
		Rol:            rol,
		AceptoTerminos: true,
	}
	CreateUsuario(t, ts.DB, u, true)

	cookie := LoginUsuario(t, ts, email, password)
	return cookie, u
}

// UniqueEmail keeps parallel tests from colliding on the unique index.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

func CreateTestAviso(t *testing.T, db *gorm.DB, empresaID, titulo string, estado models.AvisoEstado) models.Aviso {
	t.Helper()

	aviso := models.Aviso{
		EmpresaID: empresaID,
		Titulo:    titulo,
		Estado:    estado,
	}
	if err := db.Create(&aviso).Error; err != nil {
		t.Fatalf("failed to create test aviso: %v", err)
	}
	return aviso
}

func CreateTestPostulacion(t *testing.T, db *gorm.DB, trabajadorID, avisoID, estado string) models.Postulacion {
	t.Helper()

	p := models.Postulacion{
		TrabajadorID: trabajadorID,
		AvisoID:      avisoID,
		Estado:       estado,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create test postulacion: %v", err)
	}
	return p
}

func CreateTestReclamo(t *testing.T, db *gorm.DB, usuarioID, titulo string) models.Reclamo {
	t.Helper()

	r := models.Reclamo{
		UsuarioID:      usuarioID,
		TituloServicio: titulo,
		Estado:         "abierto",
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("failed to create test reclamo: %v", err)
	}
	return r
}
