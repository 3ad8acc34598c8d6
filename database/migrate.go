package database

import (
	"github.com/DapP256/trabajo-final-uai/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date for every model. The test
// helpers run it against sqlite, production runs it against postgres at
// startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Aviso{},
		&models.Postulacion{},
		&models.Reclamo{},
	)
}
