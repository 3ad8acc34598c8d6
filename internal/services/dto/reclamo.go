package dto

type CreateReclamoRequest struct {
	// UsuarioID is honored only for administrators filing on someone's
	// behalf; everyone else reports as themselves.
	UsuarioID       *string `json:"usuario_id"`
	TituloServicio  string  `json:"titulo_servicio" validate:"required"`
	CategoriaMotivo *string `json:"categoria_motivo"`
	Prioridad       *string `json:"prioridad"`
	Descripcion     *string `json:"descripcion"`
	Estado          *string `json:"estado"`
	NegocioID       *string `json:"negocio_id"`
	TrabajadorID    *string `json:"trabajador_id"`
	AvisoID         *string `json:"aviso_id"`
}

// UpdateReclamoRequest: estado transitions are stripped unless the caller is
// a business or an administrator.
type UpdateReclamoRequest struct {
	TituloServicio  *string `json:"titulo_servicio"`
	CategoriaMotivo *string `json:"categoria_motivo"`
	Prioridad       *string `json:"prioridad"`
	Descripcion     *string `json:"descripcion"`
	Estado          *string `json:"estado"`
	NegocioID       *string `json:"negocio_id"`
	TrabajadorID    *string `json:"trabajador_id"`
	AvisoID         *string `json:"aviso_id"`
}

type ListReclamosRequest struct {
	UsuarioID string `form:"usuario_id"`
	Estado    string `form:"estado"`
}
