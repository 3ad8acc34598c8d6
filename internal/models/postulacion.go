package models

// Postulacion links a trabajador to an aviso. The owning empresa is not a
// column here; it is resolved through the referenced aviso when a permission
// check needs it.
type Postulacion struct {
	BaseModel
	TrabajadorID string `gorm:"type:uuid;not null;index" json:"trabajador_id"`
	AvisoID      string `gorm:"type:uuid;not null;index" json:"aviso_id"`
	Estado       string `gorm:"type:varchar(30);default:'pendiente'" json:"estado"`

	Aviso *Aviso `gorm:"foreignKey:AvisoID" json:"aviso,omitempty"`
}

func (Postulacion) TableName() string { return "postulaciones" }

// PostulacionConEmpresa is a postulacion with the owning empresa resolved
// through its aviso, which is what the authorization policy evaluates.
type PostulacionConEmpresa struct {
	Postulacion
	EmpresaID string `json:"empresa_id"`
}
