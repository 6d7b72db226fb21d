package database

import (
	"log"

	"github.com/jobsoutcuba/backend/internal/config"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which repositories map to Conflict.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Provincia{},
		&models.Municipio{},
		&models.Usuario{},
		&models.ConfiguracionUsuario{},
		&models.Trabajo{},
		&models.TrabajoContacto{},
		&models.Publicacion{},
		&models.Guardado{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
