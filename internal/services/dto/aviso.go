package dto

type CreateAvisoRequest struct {
	// EmpresaID is honored only when an administrator creates the aviso on a
	// business's behalf; for an empresa session it is always the session id.
	EmpresaID      *string  `json:"empresa_id"`
	Titulo         string   `json:"titulo" validate:"required"`
	Descripcion    *string  `json:"descripcion"`
	Ciudad         *string  `json:"ciudad"`
	CP             *string  `json:"cp"`
	Salario        *float64 `json:"salario"`
	TipoJornada    *string  `json:"tipo_jornada"`
	Requisitos     *string  `json:"requisitos"`
	FechaLimite    *string  `json:"fecha_limite"`
	Horario        *string  `json:"horario"`
	Distancia      *float64 `json:"distancia"`
	Telefono       *string  `json:"telefono"`
	CorreoContacto *string  `json:"correo_contacto"`
	Estado         *string  `json:"estado" validate:"omitempty,oneof=borrador publicado"`
}

// UpdateAvisoRequest uses pointers so only the fields present in the request
// body are written. Estado is stripped for non-admin callers in the service.
type UpdateAvisoRequest struct {
	Titulo         *string  `json:"titulo"`
	Descripcion    *string  `json:"descripcion"`
	Ciudad         *string  `json:"ciudad"`
	CP             *string  `json:"cp"`
	Salario        *float64 `json:"salario"`
	TipoJornada    *string  `json:"tipo_jornada"`
	Requisitos     *string  `json:"requisitos"`
	FechaLimite    *string  `json:"fecha_limite"`
	Horario        *string  `json:"horario"`
	Distancia      *float64 `json:"distancia"`
	Telefono       *string  `json:"telefono"`
	CorreoContacto *string  `json:"correo_contacto"`
	Estado         *string  `json:"estado" validate:"omitempty,oneof=borrador publicado"`
}

type PublicarAvisoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=borrador publicado"`
}

type ListAvisosRequest struct {
	EmpresaID string `form:"empresa_id"`
	Estado    string `form:"estado" validate:"omitempty,oneof=borrador publicado"`
}
