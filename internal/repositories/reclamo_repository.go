package repositories

import (
	"errors"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"

	"gorm.io/gorm"
)

var ErrReclamoNotFound = errors.New("reclamo not found")

type ReclamoFilter struct {
	UsuarioID string
	Estado    string
	// ViewerID scopes the listing to rows the viewer participates in, as
	// reporter, referenced worker or referenced business. Empty means no
	// scoping (admin).
	ViewerID string
}

type ReclamoRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Reclamo, error)
	Create(db *gorm.DB, reclamo *models.Reclamo) error
	Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Reclamo, error)
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, criteria ReclamoFilter) ([]models.Reclamo, error)
}

type ReclamoRepositoryImpl struct{}

func NewReclamoRepository() ReclamoRepository {
	return &ReclamoRepositoryImpl{}
}

func (r *ReclamoRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Reclamo, error) {
	var reclamo models.Reclamo
	err := db.First(&reclamo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReclamoNotFound
		}
		return nil, err
	}
	return &reclamo, nil
}

func (r *ReclamoRepositoryImpl) Create(db *gorm.DB, reclamo *models.Reclamo) error {
	return db.Create(reclamo).Error
}

func (r *ReclamoRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Reclamo, error) {
	fields["updated_at"] = time.Now()

	result := db.Model(&models.Reclamo{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReclamoNotFound
	}
	return r.FindByID(db, id)
}

func (r *ReclamoRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Reclamo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReclamoNotFound
	}
	return nil
}

func (r *ReclamoRepositoryImpl) List(db *gorm.DB, criteria ReclamoFilter) ([]models.Reclamo, error) {
	var reclamos []models.Reclamo
	query := db.Model(&models.Reclamo{})

	if criteria.UsuarioID != "" {
		query = query.Where("usuario_id = ?", criteria.UsuarioID)
	}
	if criteria.Estado != "" {
		query = query.Where("estado = ?", criteria.Estado)
	}
	if criteria.ViewerID != "" {
		query = query.Where(
			"usuario_id = ? OR trabajador_id = ? OR negocio_id = ?",
			criteria.ViewerID, criteria.ViewerID, criteria.ViewerID,
		)
	}

	err := query.Order("created_at DESC").Find(&reclamos).Error
	return reclamos, err
}
