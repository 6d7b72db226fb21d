package models

import (
	"time"

	"github.com/google/uuid"
)

// Guardado is a user's bookmark of a publicacion. The composite primary key
// enforces at most one bookmark per (usuario, publicacion) pair.
type Guardado struct {
	UsuarioID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"usuario_id"`
	PublicacionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"publicacion_id"`
	CreatedAt     time.Time `json:"created_at"`

	Publicacion *Publicacion `gorm:"foreignKey:PublicacionID" json:"publicacion,omitempty"`
}

func (Guardado) TableName() string {
	return "guardados"
}
