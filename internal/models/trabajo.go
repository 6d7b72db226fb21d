package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Estado string

const (
	EstadoBorrador  Estado = "borrador"
	EstadoPublicado Estado = "publicado"
	EstadoArchivado Estado = "archivado"
)

type Jornada string

const (
	JornadaTiempoCompleto Jornada = "tiempo_completo"
	JornadaTiempoParcial  Jornada = "tiempo_parcial"
	JornadaPorTurnos      Jornada = "por_turnos"
)

type Modo string

const (
	ModoPresencial Modo = "presencial"
	ModoRemoto     Modo = "remoto"
	ModoHibrido    Modo = "hibrido"
)

type Trabajo struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AutorID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"autor_id"`
	Titulo         string         `gorm:"type:text;not null" json:"titulo"`
	Descripcion    string         `gorm:"type:text" json:"descripcion,omitempty"`
	ExperienciaMin *int           `json:"experiencia_min,omitempty"`
	SalarioMin     *int           `json:"salario_min,omitempty"`
	SalarioMax     *int           `json:"salario_max,omitempty"`
	Jornada        Jornada        `gorm:"type:varchar(20);not null;default:'tiempo_completo'" json:"jornada"`
	Modo           Modo           `gorm:"type:varchar(20);not null;default:'presencial'" json:"modo"`
	MunicipioID    *uuid.UUID     `gorm:"type:uuid" json:"municipio_id,omitempty"`
	Estado         Estado         `gorm:"type:varchar(20);not null;default:'borrador';index" json:"estado"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Autor     *Usuario          `gorm:"foreignKey:AutorID" json:"autor,omitempty"`
	Municipio *Municipio        `gorm:"foreignKey:MunicipioID" json:"municipio,omitempty"`
	Contactos []TrabajoContacto `gorm:"foreignKey:TrabajoID" json:"contactos,omitempty"`
}

func (Trabajo) TableName() string {
	return "trabajos"
}

func (t *Trabajo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Estado == "" {
		t.Estado = EstadoBorrador
	}
	return nil
}

// ValidEstado reports whether e is one of the three lifecycle states.
func ValidEstado(e Estado) bool {
	switch e {
	case EstadoBorrador, EstadoPublicado, EstadoArchivado:
		return true
	}
	return false
}

// ValidJornada reports whether j is a recognized working-hours scheme.
func ValidJornada(j Jornada) bool {
	switch j {
	case JornadaTiempoCompleto, JornadaTiempoParcial, JornadaPorTurnos:
		return true
	}
	return false
}

// ValidModo reports whether m is a recognized work arrangement.
func ValidModo(m Modo) bool {
	switch m {
	case ModoPresencial, ModoRemoto, ModoHibrido:
		return true
	}
	return false
}
