package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Provincia struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre    string    `gorm:"type:text;uniqueIndex;not null" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`

	Municipios []Municipio `gorm:"foreignKey:ProvinciaID" json:"municipios,omitempty"`
}

func (Provincia) TableName() string {
	return "provincias"
}

func (p *Provincia) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Municipio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProvinciaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_municipio_provincia_nombre" json:"provincia_id"`
	Nombre      string    `gorm:"type:text;not null;uniqueIndex:idx_municipio_provincia_nombre" json:"nombre"`
	CreatedAt   time.Time `json:"created_at"`

	Provincia *Provincia `gorm:"foreignKey:ProvinciaID" json:"provincia,omitempty"`
}

func (Municipio) TableName() string {
	return "municipios"
}

func (m *Municipio) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
