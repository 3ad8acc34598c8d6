package models

// Reclamo is a complaint filed by any authenticated user, optionally
// referencing a business, a worker and an aviso.
type Reclamo struct {
	BaseModel
	UsuarioID       string  `gorm:"type:uuid;not null;index" json:"usuario_id"`
	NegocioID       *string `gorm:"type:uuid;index" json:"negocio_id"`
	TrabajadorID    *string `gorm:"type:uuid;index" json:"trabajador_id"`
	AvisoID         *string `gorm:"type:uuid" json:"aviso_id"`
	TituloServicio  string  `gorm:"not null" json:"titulo_servicio"`
	CategoriaMotivo *string `json:"categoria_motivo"`
	Prioridad       *string `json:"prioridad"`
	Descripcion     *string `json:"descripcion"`
	Estado          string  `gorm:"type:varchar(30);default:'abierto'" json:"estado"`
}

func (Reclamo) TableName() string { return "reclamos" }
