package app

import (
	"errors"
	"fmt"

	"github.com/DapP256/trabajo-final-uai/database"
	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/config"
	"github.com/DapP256/trabajo-final-uai/internal/handlers"
	"github.com/DapP256/trabajo-final-uai/internal/logger"
	"github.com/DapP256/trabajo-final-uai/internal/middleware"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/internal/repositories"
	"github.com/DapP256/trabajo-final-uai/internal/routes"
	"github.com/DapP256/trabajo-final-uai/internal/services"
	"github.com/DapP256/trabajo-final-uai/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("configuration error: %v", err))
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := SeedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and middleware into a
// gin engine. Tests call it directly against a sqlite database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	cookies := &auth.CookieWriter{
		Secret:     cfg.Session.Secret,
		Production: cfg.IsProduction(),
	}

	serviceContainer := initializeServices(gormDB)
	appHandlers := initializeHandlers(serviceContainer, cookies)

	ginRouter := initializeGinRouter(gormDB, cookies, cfg.Server.CORSOrigins)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(gormDB *gorm.DB) *services.ServiceContainer {
	usuarioRepo := repositories.NewUsuarioRepository()
	avisoRepo := repositories.NewAvisoRepository()
	postulacionRepo := repositories.NewPostulacionRepository()
	reclamoRepo := repositories.NewReclamoRepository()

	return &services.ServiceContainer{
		AuthService:        services.NewAuthService(usuarioRepo, gormDB),
		UsuarioService:     services.NewUsuarioService(usuarioRepo),
		AvisoService:       services.NewAvisoService(avisoRepo),
		PostulacionService: services.NewPostulacionService(postulacionRepo, avisoRepo),
		ReclamoService:     services.NewReclamoService(reclamoRepo),
	}
}

func initializeHandlers(container *services.ServiceContainer, cookies *auth.CookieWriter) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService, cookies),
		UsuarioHandler:     handlers.NewUsuarioHandler(baseHandler, container.UsuarioService),
		AvisoHandler:       handlers.NewAvisoHandler(baseHandler, container.AvisoService),
		PostulacionHandler: handlers.NewPostulacionHandler(baseHandler, container.PostulacionService),
		ReclamoHandler:     handlers.NewReclamoHandler(baseHandler, container.ReclamoService),
	}
}

func initializeGinRouter(db *gorm.DB, cookies *auth.CookieWriter, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(corsOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(cookies))
	return router
}

// SeedFirstAdmin creates the bootstrap administrator account when the
// configured email does not exist yet. Without the config values it is a
// no-op; a broken database fails startup.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var admin models.Usuario
	result := tx.Where("email = ?", services.NormalizeEmail(adminEmail)).First(&admin)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	nombre := "Administrador"
	admin = models.Usuario{
		Email:          services.NormalizeEmail(adminEmail),
		ContrasenaHash: hash,
		Nombre:         &nombre,
		Rol:            models.UserRoleAdministrador,
		Estado:         models.UserStatusActivo,
		AceptoTerminos: true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit admin seed: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
