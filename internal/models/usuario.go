package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rol string

const (
	RolAdmin      Rol = "admin"
	RolTrabajador Rol = "trabajador"
)

type Usuario struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre       string         `gorm:"type:text;not null" json:"nombre"`
	Apellidos    string         `gorm:"type:text" json:"apellidos,omitempty"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        *string        `gorm:"type:varchar(100);uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Rol          Rol            `gorm:"type:varchar(20);not null;default:'trabajador'" json:"rol"`
	TelefonoE164 string         `gorm:"type:varchar(20)" json:"telefono_e164,omitempty"`
	MunicipioID  *uuid.UUID     `gorm:"type:uuid" json:"municipio_id,omitempty"`
	AvatarURL    string         `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Municipio     *Municipio            `gorm:"foreignKey:MunicipioID" json:"municipio,omitempty"`
	Configuracion *ConfiguracionUsuario `gorm:"foreignKey:UsuarioID" json:"configuracion,omitempty"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// BeforeCreate assigns the ID application-side so the same model runs on
// postgres and the sqlite test database.
func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *Usuario) IsAdmin() bool {
	return u.Rol == RolAdmin
}
