package models

type UserRole string
type UserStatus string
type AvisoEstado string

const (
	UserRoleTrabajador    UserRole = "trabajador"
	UserRoleEmpresa       UserRole = "empresa"
	UserRoleAdministrador UserRole = "administrador"

	UserStatusActivo     UserStatus = "activo"
	UserStatusSuspendido UserStatus = "suspendido"

	AvisoEstadoBorrador  AvisoEstado = "borrador"
	AvisoEstadoPublicado AvisoEstado = "publicado"

	// Postulacion estados are free-form strings in the data model; these are
	// the values the dashboards use.
	PostulacionEstadoPendiente = "pendiente"
	PostulacionEstadoAceptada  = "aceptada"
	PostulacionEstadoRechazada = "rechazada"
)
