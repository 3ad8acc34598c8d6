package services

import (
	"strings"

	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"gorm.io/gorm"
)

type UsuarioService interface {
	AdminCreate(db *gorm.DB, req *dto.AdminCreateUsuarioRequest) (*dto.UsuarioResponse, error)
	AdminUpdate(db *gorm.DB, id string, req *dto.AdminUpdateUsuarioRequest) (*dto.UsuarioResponse, error)
	AdminDelete(db *gorm.DB, id string) error
	GetByID(db *gorm.DB, id string) (*dto.UsuarioResponse, error)
	List(db *gorm.DB, req *dto.ListUsuariosRequest) ([]dto.UsuarioResponse, int64, error)
	UpdatePerfil(db *gorm.DB, session *auth.SessionPayload, req *dto.UpdatePerfilRequest) (*dto.UsuarioResponse, error)
}

type UsuarioServiceImpl struct {
	usuarioRepo repositories.UsuarioRepository
}

func NewUsuarioService(usuarioRepo repositories.UsuarioRepository) UsuarioService {
	return &UsuarioServiceImpl{usuarioRepo: usuarioRepo}
}

// AdminCreate provisions an account with any role, including administrador;
// the public register endpoint never does that.
func (s *UsuarioServiceImpl) AdminCreate(db *gorm.DB, req *dto.AdminCreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	estado := models.UserStatusActivo
	if req.Estado != nil && *req.Estado != "" {
		estado = models.UserStatus(*req.Estado)
	}

	nombre := strings.TrimSpace(req.Nombre)
	usuario := &models.Usuario{
		Email:          NormalizeEmail(req.Email),
		ContrasenaHash: hash,
		Nombre:         &nombre,
		Apellido:       req.Apellido,
		Rol:            req.Rol,
		Estado:         estado,
		AceptoTerminos: true,
	}

	if err := s.usuarioRepo.Create(db, usuario); err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StoreError(err, "Error creando usuario")
	}
	return dto.NewUsuarioResponse(usuario), nil
}

func (s *UsuarioServiceImpl) AdminUpdate(db *gorm.DB, id string, req *dto.AdminUpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	fields := map[string]interface{}{}
	if req.Nombre != nil {
		fields["nombre"] = *req.Nombre
	}
	if req.Apellido != nil {
		fields["apellido"] = *req.Apellido
	}
	if req.Rol != nil {
		fields["rol"] = *req.Rol
	}
	if req.Estado != nil {
		fields["estado"] = *req.Estado
	}
	if req.Telefono != nil {
		fields["telefono"] = *req.Telefono
	}
	if req.Ciudad != nil {
		fields["ciudad"] = *req.Ciudad
	}
	if req.CP != nil {
		fields["cp"] = *req.CP
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["contrasena_hash"] = hash
	}

	usuario, err := s.applyUpdate(db, id, fields)
	if err != nil {
		return nil, err
	}
	return dto.NewUsuarioResponse(usuario), nil
}

func (s *UsuarioServiceImpl) AdminDelete(db *gorm.DB, id string) error {
	if err := s.usuarioRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
			return apperrors.ErrNotFound(err, "Usuario no encontrado")
		}
		return apperrors.StoreError(err, "Error eliminando usuario")
	}
	return nil
}

func (s *UsuarioServiceImpl) GetByID(db *gorm.DB, id string) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, apperrors.ErrNotFound(err, "Usuario no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo usuario")
	}
	return dto.NewUsuarioResponse(usuario), nil
}

func (s *UsuarioServiceImpl) List(db *gorm.DB, req *dto.ListUsuariosRequest) ([]dto.UsuarioResponse, int64, error) {
	criteria := repositories.UsuarioFilter{
		Rol:      models.UserRole(req.Rol),
		Estado:   models.UserStatus(req.Estado),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	usuarios, total, err := s.usuarioRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, 0, apperrors.StoreError(err, "Error listando usuarios")
	}

	result := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		result = append(result, *dto.NewUsuarioResponse(&usuarios[i]))
	}
	return result, total, nil
}

// UpdatePerfil is the self-service edit; it can never touch rol or estado.
func (s *UsuarioServiceImpl) UpdatePerfil(db *gorm.DB, session *auth.SessionPayload, req *dto.UpdatePerfilRequest) (*dto.UsuarioResponse, error) {
	fields := map[string]interface{}{}
	if req.Nombre != nil {
		fields["nombre"] = *req.Nombre
	}
	if req.Apellido != nil {
		fields["apellido"] = *req.Apellido
	}
	if req.Telefono != nil {
		fields["telefono"] = *req.Telefono
	}
	if req.Ciudad != nil {
		fields["ciudad"] = *req.Ciudad
	}
	if req.CP != nil {
		fields["cp"] = *req.CP
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["contrasena_hash"] = hash
	}

	usuario, err := s.applyUpdate(db, session.User.ID, fields)
	if err != nil {
		return nil, err
	}
	return dto.NewUsuarioResponse(usuario), nil
}

func (s *UsuarioServiceImpl) applyUpdate(db *gorm.DB, id string, fields map[string]interface{}) (*models.Usuario, error) {
	if len(fields) == 0 {
		usuario, err := s.usuarioRepo.FindByID(db, id)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
				return nil, apperrors.ErrNotFound(err, "Usuario no encontrado")
			}
			return nil, apperrors.StoreError(err, "Error obteniendo usuario")
		}
		return usuario, nil
	}

	usuario, err := s.usuarioRepo.Update(db, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, apperrors.ErrNotFound(err, "Usuario no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error actualizando usuario")
	}
	return usuario, nil
}
