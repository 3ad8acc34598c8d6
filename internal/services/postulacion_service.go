package services

import (
	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/services/dto"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"

	"gorm.io/gorm"
)

type PostulacionService interface {
	Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreatePostulacionRequest) (*models.Postulacion, error)
	GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Postulacion, error)
	UpdateEstado(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdatePostulacionRequest) (*models.Postulacion, error)
	UpdateEstadoBulk(db *gorm.DB, session *auth.SessionPayload, req *dto.BulkUpdatePostulacionesRequest) ([]models.Postulacion, error)
	Delete(db *gorm.DB, session *auth.SessionPayload, id string) error
	List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListPostulacionesRequest) ([]models.Postulacion, error)
}

type PostulacionServiceImpl struct {
	postulacionRepo repositories.PostulacionRepository
	avisoRepo       repositories.AvisoRepository
}

func NewPostulacionService(postulacionRepo repositories.PostulacionRepository, avisoRepo repositories.AvisoRepository) PostulacionService {
	return &PostulacionServiceImpl{
		postulacionRepo: postulacionRepo,
		avisoRepo:       avisoRepo,
	}
}

// Create registers an application against an aviso. Trabajadores apply as
// themselves to published avisos; an admin may apply on a worker's behalf
// and is not limited by the aviso's estado.
func (s *PostulacionServiceImpl) Create(db *gorm.DB, session *auth.SessionPayload, req *dto.CreatePostulacionRequest) (*models.Postulacion, error) {
	aviso, err := s.avisoRepo.FindByID(db, req.AvisoID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAvisoNotFound) {
			return nil, apperrors.ErrNotFound(err, "Aviso no encontrado")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo aviso")
	}

	trabajadorID := session.User.ID
	if auth.IsAdmin(session) && req.TrabajadorID != nil && *req.TrabajadorID != "" {
		trabajadorID = *req.TrabajadorID
	}

	if !auth.IsAdmin(session) && aviso.Estado != models.AvisoEstadoPublicado {
		return nil, apperrors.ErrAccesoDenegado
	}

	postulacion := &models.Postulacion{
		TrabajadorID: trabajadorID,
		AvisoID:      aviso.ID,
		Estado:       models.PostulacionEstadoPendiente,
	}
	if err := s.postulacionRepo.Create(db, postulacion); err != nil {
		return nil, apperrors.StoreError(err, "Error creando postulación")
	}
	return postulacion, nil
}

func (s *PostulacionServiceImpl) GetByID(db *gorm.DB, session *auth.SessionPayload, id string) (*models.Postulacion, error) {
	row, err := s.findConEmpresa(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessPostulacion(session, row) {
		return nil, apperrors.ErrAccesoDenegado
	}
	return &row.Postulacion, nil
}

func (s *PostulacionServiceImpl) UpdateEstado(db *gorm.DB, session *auth.SessionPayload, id string, req *dto.UpdatePostulacionRequest) (*models.Postulacion, error) {
	row, err := s.findConEmpresa(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessPostulacion(session, row) {
		return nil, apperrors.ErrAccesoDenegado
	}

	if req.Estado == nil || *req.Estado == "" {
		return &row.Postulacion, nil
	}

	updated, err := s.postulacionRepo.UpdateEstado(db, id, *req.Estado)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostulacionNotFound) {
			return nil, apperrors.ErrNotFound(err, "Postulación no encontrada")
		}
		return nil, apperrors.StoreError(err, "Error actualizando postulación")
	}
	return updated, nil
}

// UpdateEstadoBulk moves several postulaciones to the same estado in one
// call. Candidates the actor may not touch are dropped rather than failing
// the batch; the call is rejected only when nothing at all is authorized.
// The response carries exactly the rows that were written.
func (s *PostulacionServiceImpl) UpdateEstadoBulk(db *gorm.DB, session *auth.SessionPayload, req *dto.BulkUpdatePostulacionesRequest) ([]models.Postulacion, error) {
	rows, err := s.postulacionRepo.FindManyConEmpresa(db, req.IDs)
	if err != nil {
		return nil, apperrors.StoreError(err, "Error obteniendo postulaciones")
	}

	authorized := make([]string, 0, len(rows))
	for i := range rows {
		if auth.CanAccessPostulacion(session, &rows[i]) {
			authorized = append(authorized, rows[i].ID)
		}
	}
	if len(authorized) == 0 {
		return nil, apperrors.ErrAccesoDenegado
	}

	updated, err := s.postulacionRepo.UpdateEstadoBulk(db, authorized, req.Estado)
	if err != nil {
		return nil, apperrors.StoreError(err, "Error actualizando postulaciones")
	}
	return updated, nil
}

func (s *PostulacionServiceImpl) Delete(db *gorm.DB, session *auth.SessionPayload, id string) error {
	row, err := s.findConEmpresa(db, id)
	if err != nil {
		return err
	}
	if !auth.CanAccessPostulacion(session, row) {
		return apperrors.ErrAccesoDenegado
	}
	if err := s.postulacionRepo.Delete(db, id); err != nil {
		return apperrors.StoreError(err, "Error eliminando postulación")
	}
	return nil
}

// List scopes the query by role: a trabajador sees only their own rows, an
// empresa only rows against its avisos, an admin whatever the filter says.
func (s *PostulacionServiceImpl) List(db *gorm.DB, session *auth.SessionPayload, req *dto.ListPostulacionesRequest) ([]models.Postulacion, error) {
	criteria := repositories.PostulacionFilter{
		AvisoID:      req.AvisoID,
		TrabajadorID: req.TrabajadorID,
		Estado:       req.Estado,
	}

	switch {
	case auth.IsAdmin(session):
		// unscoped
	case auth.IsTrabajador(session):
		criteria.TrabajadorID = session.User.ID
	case auth.IsEmpresa(session):
		criteria.EmpresaID = session.User.ID
	default:
		return nil, apperrors.ErrAccesoDenegado
	}

	postulaciones, err := s.postulacionRepo.List(db, criteria)
	if err != nil {
		return nil, apperrors.StoreError(err, "Error listando postulaciones")
	}
	return postulaciones, nil
}

func (s *PostulacionServiceImpl) findConEmpresa(db *gorm.DB, id string) (*models.PostulacionConEmpresa, error) {
	row, err := s.postulacionRepo.FindByIDConEmpresa(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostulacionNotFound) {
			return nil, apperrors.ErrNotFound(err, "Postulación no encontrada")
		}
		return nil, apperrors.StoreError(err, "Error obteniendo postulación")
	}
	return row, nil
}
