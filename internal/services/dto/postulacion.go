package dto

type CreatePostulacionRequest struct {
	// TrabajadorID is honored only for administrators applying on a worker's
	// behalf; trabajador sessions always apply as themselves.
	TrabajadorID *string `json:"trabajador_id"`
	AvisoID      string  `json:"aviso_id" validate:"required"`
}

type UpdatePostulacionRequest struct {
	Estado *string `json:"estado"`
}

// BulkUpdatePostulacionesRequest updates the estado of several postulaciones
// at once. Ids the actor is not authorized to touch are dropped, not failed.
type BulkUpdatePostulacionesRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Estado string   `json:"estado" validate:"required"`
}

type ListPostulacionesRequest struct {
	AvisoID      string `form:"aviso_id"`
	TrabajadorID string `form:"trabajador_id"`
	Estado       string `form:"estado"`
}
