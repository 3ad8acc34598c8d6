package repositories

import (
	"errors"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"

	"gorm.io/gorm"
)

var ErrAvisoNotFound = errors.New("aviso not found")

type AvisoFilter struct {
	EmpresaID string
	Estado    models.AvisoEstado
}

type AvisoRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Aviso, error)
	Create(db *gorm.DB, aviso *models.Aviso) error
	Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Aviso, error)
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, criteria AvisoFilter) ([]models.Aviso, error)
}

type AvisoRepositoryImpl struct{}

func NewAvisoRepository() AvisoRepository {
	return &AvisoRepositoryImpl{}
}

func (r *AvisoRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Aviso, error) {
	var aviso models.Aviso
	err := db.First(&aviso, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvisoNotFound
		}
		return nil, err
	}
	return &aviso, nil
}

func (r *AvisoRepositoryImpl) Create(db *gorm.DB, aviso *models.Aviso) error {
	return db.Create(aviso).Error
}

func (r *AvisoRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Aviso, error) {
	fields["updated_at"] = time.Now()

	result := db.Model(&models.Aviso{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAvisoNotFound
	}
	return r.FindByID(db, id)
}

func (r *AvisoRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Aviso{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAvisoNotFound
	}
	return nil
}

func (r *AvisoRepositoryImpl) List(db *gorm.DB, criteria AvisoFilter) ([]models.Aviso, error) {
	var avisos []models.Aviso
	query := db.Model(&models.Aviso{})

	if criteria.EmpresaID != "" {
		query = query.Where("empresa_id = ?", criteria.EmpresaID)
	}
	if criteria.Estado != "" {
		query = query.Where("estado = ?", criteria.Estado)
	}

	err := query.Order("created_at DESC").Find(&avisos).Error
	return avisos, err
}
