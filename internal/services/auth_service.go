package services

import (
	"strings"

	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/logger"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UsuarioResponse, *auth.SessionPayload, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.UsuarioResponse, *auth.SessionPayload, error)
	Me(db *gorm.DB, session *auth.SessionPayload) (*dto.UsuarioResponse, error)
}

type AuthServiceImpl struct {
	usuarioRepo repositories.UsuarioRepository

	// pool is the base connection handle, used for writes detached from the
	// request. The per-request db can be a transaction that is already
	// committed by the time a background goroutine runs.
	pool *gorm.DB
}

func NewAuthService(usuarioRepo repositories.UsuarioRepository, pool *gorm.DB) AuthService {
	return &AuthServiceImpl{usuarioRepo: usuarioRepo, pool: pool}
}

// Register creates a usuario and mints a session payload so the handler can
// set the cookie in the same response. Public registration never creates an
// administrator.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UsuarioResponse, *auth.SessionPayload, error) {
	email := NormalizeEmail(req.Email)

	rol := req.Rol
	if rol == "" {
		rol = models.UserRoleTrabajador
	}
	if rol != models.UserRoleTrabajador && rol != models.UserRoleEmpresa {
		return nil, nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	nombre := strings.TrimSpace(req.Nombre)
	usuario := &models.Usuario{
		Email:          email,
		ContrasenaHash: hash,
		Nombre:         &nombre,
		Apellido:       req.Apellido,
		Rol:            rol,
		Estado:         models.UserStatusActivo,
		AceptoTerminos: req.AceptoTerminos,
		Telefono:       req.Telefono,
		Ciudad:         req.Ciudad,
		CP:             req.CP,
	}

	if err := s.usuarioRepo.Create(db, usuario); err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioAlreadyExists) {
			return nil, nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, nil, apperrors.StoreError(err, "Error creando usuario")
	}

	return dto.NewUsuarioResponse(usuario), auth.NewPayload(usuario), nil
}

// Login verifies credentials and mints a session payload. Every failure maps
// to the same generic error so the endpoint cannot be used to enumerate
// accounts.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.UsuarioResponse, *auth.SessionPayload, error) {
	email := NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	usuario, err := s.usuarioRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, apperrors.StoreError(err, "Error buscando usuario")
	}

	ok, needsRehash := auth.VerifyPassword(password, usuario.ContrasenaHash)
	if !ok {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if needsRehash {
		s.upgradeLegacyHash(usuario.ID, password)
	}

	if err := s.usuarioRepo.TouchLastLogin(db, usuario.ID); err != nil {
		logger.Warn("failed to touch last_login_at", "usuario_id", usuario.ID, "error", err.Error())
	}

	return dto.NewUsuarioResponse(usuario), auth.NewPayload(usuario), nil
}

// Me re-fetches the live usuario row. The session snapshot is the fallback
// when the row has since been deleted, matching the original behavior.
func (s *AuthServiceImpl) Me(db *gorm.DB, session *auth.SessionPayload) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(db, session.User.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUsuarioNotFound) {
			return &dto.UsuarioResponse{
				ID:       session.User.ID,
				Email:    session.User.Email,
				Nombre:   session.User.Nombre,
				Apellido: session.User.Apellido,
				Rol:      session.User.Rol,
				Estado:   models.UserStatus(session.User.Estado),
			}, nil
		}
		return nil, apperrors.StoreError(err, "Error obteniendo usuario")
	}
	return dto.NewUsuarioResponse(usuario), nil
}

// upgradeLegacyHash replaces a matched legacy credential with a bcrypt hash.
// It runs off the request path against the base pool handle and a
// persistence failure only logs: the login that triggered it has already
// succeeded.
func (s *AuthServiceImpl) upgradeLegacyHash(usuarioID, password string) {
	go func() {
		hash, err := auth.HashPassword(password)
		if err != nil {
			logger.Warn("legacy hash upgrade failed", "usuario_id", usuarioID, "error", err.Error())
			return
		}
		if err := s.usuarioRepo.UpdateContrasenaHash(s.pool, usuarioID, hash); err != nil {
			logger.Warn("legacy hash upgrade not persisted", "usuario_id", usuarioID, "error", err.Error())
			return
		}
		logger.Info("legacy credential upgraded to bcrypt", "usuario_id", usuarioID)
	}()
}

// NormalizeEmail applies the case-folding and trimming used everywhere an
// email is compared or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
