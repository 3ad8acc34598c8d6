package auth

import "github.com/DapP256/trabajo-final-uai/internal/models"

// Role predicates. A nil session fails every check; there is no anonymous
// grant anywhere in the policy.

func IsAdmin(s *SessionPayload) bool {
	return s != nil && s.User.Rol == models.UserRoleAdministrador
}

func IsEmpresa(s *SessionPayload) bool {
	return s != nil && s.User.Rol == models.UserRoleEmpresa
}

func IsTrabajador(s *SessionPayload) bool {
	return s != nil && s.User.Rol == models.UserRoleTrabajador
}

// AssertRole returns the session when its role is one of roles. Admins pass
// every role gate.
func AssertRole(s *SessionPayload, roles ...models.UserRole) bool {
	if s == nil {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	for _, r := range roles {
		if s.User.Rol == r {
			return true
		}
	}
	return false
}

// CanViewAviso: admins see everything, an empresa sees its own avisos in any
// state, a trabajador sees only published ones.
func CanViewAviso(s *SessionPayload, aviso *models.Aviso) bool {
	if s == nil || aviso == nil {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	if IsEmpresa(s) {
		return aviso.EmpresaID == s.User.ID
	}
	if IsTrabajador(s) {
		return aviso.Estado == models.AvisoEstadoPublicado
	}
	return false
}

// CanManageAviso governs update and delete. Only the owning empresa or an
// admin. Mutating the estado field through the general update path is
// restricted further in the service layer to admins.
func CanManageAviso(s *SessionPayload, aviso *models.Aviso) bool {
	if s == nil || aviso == nil {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	if IsEmpresa(s) {
		return aviso.EmpresaID == s.User.ID
	}
	return false
}

// CanAccessReclamo: the reporter always, the referenced trabajador, the
// referenced negocio, and admins.
func CanAccessReclamo(s *SessionPayload, reclamo *models.Reclamo) bool {
	if s == nil || reclamo == nil {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	if IsTrabajador(s) {
		return reclamo.UsuarioID == s.User.ID ||
			(reclamo.TrabajadorID != nil && *reclamo.TrabajadorID == s.User.ID)
	}
	if IsEmpresa(s) {
		return (reclamo.NegocioID != nil && *reclamo.NegocioID == s.User.ID) ||
			reclamo.UsuarioID == s.User.ID
	}
	return false
}

// CanAccessPostulacion evaluates ownership against the empresa id resolved
// through the referenced aviso; the postulacion row itself never carries it.
func CanAccessPostulacion(s *SessionPayload, p *models.PostulacionConEmpresa) bool {
	if s == nil || p == nil {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	if IsTrabajador(s) {
		return p.TrabajadorID == s.User.ID
	}
	if IsEmpresa(s) {
		return p.EmpresaID == s.User.ID
	}
	return false
}
