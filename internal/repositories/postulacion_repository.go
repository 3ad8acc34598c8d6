package repositories

import (
	"errors"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"

	"gorm.io/gorm"
)

var ErrPostulacionNotFound = errors.New("postulacion not found")

type PostulacionFilter struct {
	AvisoID      string
	TrabajadorID string
	Estado       string
	// EmpresaID scopes through the referenced aviso's owner.
	EmpresaID string
}

type PostulacionRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Postulacion, error)
	// FindByIDConEmpresa resolves the owning empresa through the referenced
	// aviso; authorization is evaluated against the joined row.
	FindByIDConEmpresa(db *gorm.DB, id string) (*models.PostulacionConEmpresa, error)
	FindManyConEmpresa(db *gorm.DB, ids []string) ([]models.PostulacionConEmpresa, error)
	Create(db *gorm.DB, p *models.Postulacion) error
	UpdateEstado(db *gorm.DB, id, estado string) (*models.Postulacion, error)
	UpdateEstadoBulk(db *gorm.DB, ids []string, estado string) ([]models.Postulacion, error)
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, criteria PostulacionFilter) ([]models.Postulacion, error)
}

type PostulacionRepositoryImpl struct{}

func NewPostulacionRepository() PostulacionRepository {
	return &PostulacionRepositoryImpl{}
}

func (r *PostulacionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Postulacion, error) {
	var p models.Postulacion
	err := db.First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostulacionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostulacionRepositoryImpl) FindByIDConEmpresa(db *gorm.DB, id string) (*models.PostulacionConEmpresa, error) {
	var row models.PostulacionConEmpresa
	err := db.Table("postulaciones").
		Select("postulaciones.*, avisos.empresa_id AS empresa_id").
		Joins("JOIN avisos ON avisos.id = postulaciones.aviso_id").
		Where("postulaciones.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostulacionNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PostulacionRepositoryImpl) FindManyConEmpresa(db *gorm.DB, ids []string) ([]models.PostulacionConEmpresa, error) {
	var rows []models.PostulacionConEmpresa
	err := db.Table("postulaciones").
		Select("postulaciones.*, avisos.empresa_id AS empresa_id").
		Joins("JOIN avisos ON avisos.id = postulaciones.aviso_id").
		Where("postulaciones.id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *PostulacionRepositoryImpl) Create(db *gorm.DB, p *models.Postulacion) error {
	return db.Create(p).Error
}

func (r *PostulacionRepositoryImpl) UpdateEstado(db *gorm.DB, id, estado string) (*models.Postulacion, error) {
	result := db.Model(&models.Postulacion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":     estado,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostulacionNotFound
	}
	return r.FindByID(db, id)
}

func (r *PostulacionRepositoryImpl) UpdateEstadoBulk(db *gorm.DB, ids []string, estado string) ([]models.Postulacion, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	err := db.Model(&models.Postulacion{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"estado":     estado,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}

	var updated []models.Postulacion
	err = db.Where("id IN ?", ids).Order("created_at DESC").Find(&updated).Error
	return updated, err
}

func (r *PostulacionRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Postulacion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostulacionNotFound
	}
	return nil
}

func (r *PostulacionRepositoryImpl) List(db *gorm.DB, criteria PostulacionFilter) ([]models.Postulacion, error) {
	var postulaciones []models.Postulacion
	query := db.Model(&models.Postulacion{})

	if criteria.AvisoID != "" {
		query = query.Where("postulaciones.aviso_id = ?", criteria.AvisoID)
	}
	if criteria.TrabajadorID != "" {
		query = query.Where("postulaciones.trabajador_id = ?", criteria.TrabajadorID)
	}
	if criteria.Estado != "" {
		query = query.Where("postulaciones.estado = ?", criteria.Estado)
	}
	if criteria.EmpresaID != "" {
		query = query.
			Joins("JOIN avisos ON avisos.id = postulaciones.aviso_id").
			Where("avisos.empresa_id = ?", criteria.EmpresaID)
	}

	err := query.Order("postulaciones.created_at DESC").Find(&postulaciones).Error
	return postulaciones, err
}
