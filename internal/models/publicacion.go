package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publicacion is a publish event referencing a job. A job may accumulate many
// publicaciones over time (republication always creates a new row). Rows are
// never deleted: "delete" archives them.
type Publicacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TrabajoID   uuid.UUID `gorm:"type:uuid;not null;index" json:"trabajo_id"`
	AutorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"autor_id"`
	Estado      Estado    `gorm:"type:varchar(20);not null;default:'publicado';index" json:"estado"`
	PublicadoEn time.Time `json:"publicado_en"`
	ImagenURL   string    `gorm:"type:text" json:"imagen_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Trabajo *Trabajo `gorm:"foreignKey:TrabajoID" json:"trabajo,omitempty"`
	Autor   *Usuario `gorm:"foreignKey:AutorID" json:"autor,omitempty"`
}

func (Publicacion) TableName() string {
	return "publicaciones"
}

func (p *Publicacion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Estado == "" {
		p.Estado = EstadoPublicado
	}
	return nil
}
