package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/utils"
	"gorm.io/gorm"
)

// CreateUsuario inserts a user with a hashed password and returns it.
func CreateUsuario(t *testing.T, db *gorm.DB, username string, rol models.Rol) *models.Usuario {
	hash, err := utils.HashPassword("Secreto123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	email := fmt.Sprintf("%s@example.com", username)
	usuario := &models.Usuario{
		Nombre:       "Test",
		Apellidos:    "Usuario",
		Username:     username,
		Email:        &email,
		PasswordHash: hash,
		Rol:          rol,
	}
	if err := db.Create(usuario).Error; err != nil {
		t.Fatalf("Failed to create test usuario: %v", err)
	}
	return usuario
}

// CreateTrabajo inserts a job owned by autorID in the given estado.
func CreateTrabajo(t *testing.T, db *gorm.DB, autorID uuid.UUID, estado models.Estado) *models.Trabajo {
	trabajo := &models.Trabajo{
		AutorID:     autorID,
		Titulo:      "Cocinero para restaurante",
		Descripcion: "Se necesita cocinero con experiencia",
		Jornada:     models.JornadaTiempoCompleto,
		Modo:        models.ModoPresencial,
		Estado:      estado,
	}
	if err := db.Create(trabajo).Error; err != nil {
		t.Fatalf("Failed to create test trabajo: %v", err)
	}
	return trabajo
}

// AddContacto attaches a contact row to a job.
func AddContacto(t *testing.T, db *gorm.DB, trabajoID uuid.UUID, tipo models.TipoContacto, valor string) *models.TrabajoContacto {
	contacto := &models.TrabajoContacto{
		TrabajoID: trabajoID,
		Tipo:      tipo,
		Valor:     valor,
	}
	if err := db.Create(contacto).Error; err != nil {
		t.Fatalf("Failed to create test contacto: %v", err)
	}
	return contacto
}

// CreatePublicacion inserts a posting for the job.
func CreatePublicacion(t *testing.T, db *gorm.DB, trabajoID, autorID uuid.UUID, estado models.Estado) *models.Publicacion {
	publicacion := &models.Publicacion{
		TrabajoID:   trabajoID,
		AutorID:     autorID,
		Estado:      estado,
		PublicadoEn: time.Now(),
	}
	if err := db.Create(publicacion).Error; err != nil {
		t.Fatalf("Failed to create test publicacion: %v", err)
	}
	return publicacion
}

// CreateConfiguracion inserts a notification config row.
func CreateConfiguracion(t *testing.T, db *gorm.DB, usuarioID uuid.UUID, notif bool, chatID string) *models.ConfiguracionUsuario {
	config := &models.ConfiguracionUsuario{
		UsuarioID:     usuarioID,
		TelegramNotif: notif,
	}
	if chatID != "" {
		config.TelegramChatID = &chatID
	}
	if err := db.Create(config).Error; err != nil {
		t.Fatalf("Failed to create test configuracion: %v", err)
	}
	return config
}

// CreateProvincia inserts a province with one municipio and returns both.
func CreateProvincia(t *testing.T, db *gorm.DB, nombre, municipio string) (*models.Provincia, *models.Municipio) {
	provincia := &models.Provincia{Nombre: nombre}
	if err := db.Create(provincia).Error; err != nil {
		t.Fatalf("Failed to create test provincia: %v", err)
	}
	m := &models.Municipio{ProvinciaID: provincia.ID, Nombre: municipio}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to create test municipio: %v", err)
	}
	return provincia, m
}
