package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService        AuthService
	UsuarioService     UsuarioService
	AvisoService       AvisoService
	PostulacionService PostulacionService
	ReclamoService     ReclamoService
}
