package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/DapP256/trabajo-final-uai/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUsuarioNotFound      = errors.New("usuario not found")
	ErrUsuarioAlreadyExists = errors.New("usuario already exists")
)

type UsuarioFilter struct {
	Rol      models.UserRole
	Estado   models.UserStatus
	Search   string
	Page     int
	PageSize int
}

type UsuarioRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Usuario, error)
	FindByEmail(db *gorm.DB, email string) (*models.Usuario, error)
	Create(db *gorm.DB, u *models.Usuario) error
	Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Usuario, error)
	UpdateContrasenaHash(db *gorm.DB, id, hash string) error
	TouchLastLogin(db *gorm.DB, id string) error
	Delete(db *gorm.DB, id string) error
	FindWithFilter(db *gorm.DB, criteria UsuarioFilter) ([]models.Usuario, int64, error)
}

type UsuarioRepositoryImpl struct{}

func NewUsuarioRepository() UsuarioRepository {
	return &UsuarioRepositoryImpl{}
}

func (r *UsuarioRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Usuario, error) {
	var u models.Usuario
	err := db.First(&u, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Usuario, error) {
	var u models.Usuario
	err := db.First(&u, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepositoryImpl) Create(db *gorm.DB, u *models.Usuario) error {
	var existing models.Usuario
	if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		return ErrUsuarioAlreadyExists
	}
	if err := db.Create(u).Error; err != nil {
		// A concurrent Create can slip past the pre-check; the loser hits
		// the unique index on email and must surface the same error.
		if isDuplicateKeyError(err) {
			return ErrUsuarioAlreadyExists
		}
		return err
	}
	return nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func (r *UsuarioRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) (*models.Usuario, error) {
	fields["updated_at"] = time.Now()

	result := db.Model(&models.Usuario{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUsuarioNotFound
	}
	return r.FindByID(db, id)
}

func (r *UsuarioRepositoryImpl) UpdateContrasenaHash(db *gorm.DB, id, hash string) error {
	result := db.Model(&models.Usuario{}).Where("id = ?", id).Update("contrasena_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}

func (r *UsuarioRepositoryImpl) TouchLastLogin(db *gorm.DB, id string) error {
	return db.Model(&models.Usuario{}).Where("id = ?", id).Update("last_login_at", time.Now()).Error
}

func (r *UsuarioRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Usuario{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}

func (r *UsuarioRepositoryImpl) FindWithFilter(db *gorm.DB, criteria UsuarioFilter) ([]models.Usuario, int64, error) {
	var usuarios []models.Usuario
	query := db.Model(&models.Usuario{})

	if criteria.Rol != "" {
		query = query.Where("rol = ?", criteria.Rol)
	}
	if criteria.Estado != "" {
		query = query.Where("estado = ?", criteria.Estado)
	}
	if criteria.Search != "" {
		query = query.Where("email LIKE ?", "%"+criteria.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// No page size means no pagination.
	limit := criteria.PageSize
	if limit <= 0 {
		limit = -1
	}
	offset := 0
	if criteria.Page > 1 && criteria.PageSize > 0 {
		offset = (criteria.Page - 1) * criteria.PageSize
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&usuarios).Error
	return usuarios, total, err
}
