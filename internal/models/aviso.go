package models

// Aviso is a job posting owned by exactly one empresa user.
type Aviso struct {
	BaseModel
	EmpresaID      string      `gorm:"type:uuid;not null;index" json:"empresa_id"`
	Titulo         string      `gorm:"not null" json:"titulo"`
	Descripcion    *string     `json:"descripcion"`
	Ciudad         *string     `json:"ciudad"`
	CP             *string     `gorm:"column:cp" json:"cp"`
	Salario        *float64    `json:"salario"`
	TipoJornada    *string     `json:"tipo_jornada"`
	Requisitos     *string     `json:"requisitos"`
	FechaLimite    *string     `json:"fecha_limite"`
	Horario        *string     `json:"horario"`
	Distancia      *float64    `json:"distancia"`
	Telefono       *string     `json:"telefono"`
	CorreoContacto *string     `json:"correo_contacto"`
	Estado         AvisoEstado `gorm:"type:varchar(20);default:'borrador'" json:"estado"`
}

func (Aviso) TableName() string { return "avisos" }
