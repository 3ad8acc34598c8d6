package dto

import (
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"
)

// UsuarioResponse is the identity shape returned to clients; the credential
// hash never leaves the service layer.
type UsuarioResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Nombre    *string           `json:"nombre"`
	Apellido  *string           `json:"apellido"`
	Rol       models.UserRole   `json:"rol"`
	Estado    models.UserStatus `json:"estado"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewUsuarioResponse(u *models.Usuario) *UsuarioResponse {
	return &UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Apellido:  u.Apellido,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}

type AdminCreateUsuarioRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Nombre   string          `json:"nombre" validate:"required"`
	Apellido *string         `json:"apellido"`
	Rol      models.UserRole `json:"rol" validate:"required,oneof=trabajador empresa administrador"`
	Estado   *string         `json:"estado" validate:"omitempty,oneof=activo suspendido"`
}

type AdminUpdateUsuarioRequest struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=trabajador empresa administrador"`
	Estado   *string `json:"estado" validate:"omitempty,oneof=activo suspendido"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Telefono *string `json:"telefono"`
	Ciudad   *string `json:"ciudad"`
	CP       *string `json:"cp"`
}

// UpdatePerfilRequest is the self-service profile edit; role and status are
// deliberately absent.
type UpdatePerfilRequest struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Telefono *string `json:"telefono"`
	Ciudad   *string `json:"ciudad"`
	CP       *string `json:"cp"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type ListUsuariosRequest struct {
	Rol      string `form:"rol" validate:"omitempty,oneof=trabajador empresa administrador"`
	Estado   string `form:"estado" validate:"omitempty,oneof=activo suspendido"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
