package dto

import "github.com/DapP256/trabajo-final-uai/internal/models"

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=6"`
	Nombre         string          `json:"nombre" validate:"required"`
	Apellido       *string         `json:"apellido"`
	Rol            models.UserRole `json:"rol" validate:"omitempty,oneof=trabajador empresa"`
	AceptoTerminos bool            `json:"aceptoTerminos"`
	Telefono       *string         `json:"telefono"`
	Ciudad         *string         `json:"ciudad"`
	CP             *string         `json:"cp"`
}

type SessionInfo struct {
	Token    string `json:"token"`
	IssuedAt string `json:"issued_at"`
}

type AuthResponse struct {
	User    *UsuarioResponse `json:"user"`
	Session SessionInfo      `json:"session"`
}
