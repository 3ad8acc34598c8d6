package models

import "time"

// Usuario is the identity record for all three roles. Emails are stored
// case-folded; ContrasenaHash may still hold a legacy plain value for
// accounts imported before bcrypt was introduced (see internal/auth).
type Usuario struct {
	BaseModel
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	ContrasenaHash string     `gorm:"not null" json:"-"`
	Nombre         *string    `json:"nombre"`
	Apellido       *string    `json:"apellido"`
	Rol            UserRole   `gorm:"type:varchar(20);not null" json:"rol"`
	Estado         UserStatus `gorm:"type:varchar(20);default:'activo'" json:"estado"`
	AceptoTerminos bool       `gorm:"default:false" json:"acepto_terminos"`
	Telefono       *string    `json:"telefono"`
	Ciudad         *string    `json:"ciudad"`
	CP             *string    `gorm:"column:cp" json:"cp"`
	LastLoginAt    *time.Time `json:"last_login_at"`
}

func (Usuario) TableName() string { return "usuarios" }
