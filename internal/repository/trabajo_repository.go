package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

// TrabajoFilters collects every filter the listing endpoint accepts. The
// service layer decides visibility (Estado forced to publicado and
// IncludeDeleted false for non-admins) before the filters reach here.
type TrabajoFilters struct {
	Search         string
	Estado         models.Estado
	Jornada        models.Jornada
	Modo           models.Modo
	MunicipioID    *uuid.UUID
	ProvinciaID    *uuid.UUID
	ExperienciaMin *int // ceiling: jobs asking at most this many years
	AutorID        *uuid.UUID
	SortBy         string // "field:dir"
	IncludeDeleted bool
}

// sortColumns whitelists sortable fields so SortBy can never inject SQL.
var sortColumns = map[string]string{
	"created_at":      "trabajos.created_at",
	"titulo":          "trabajos.titulo",
	"experiencia_min": "trabajos.experiencia_min",
	"salario_min":     "trabajos.salario_min",
}

type TrabajoRepository struct {
	db *gorm.DB
}

func NewTrabajoRepository(db *gorm.DB) *TrabajoRepository {
	return &TrabajoRepository{db: db}
}

func (r *TrabajoRepository) Create(trabajo *models.Trabajo) error {
	return r.db.Create(trabajo).Error
}

func (r *TrabajoRepository) GetByID(id uuid.UUID, includeDeleted bool) (*models.Trabajo, error) {
	query := r.db
	if includeDeleted {
		query = query.Unscoped()
	}

	var trabajo models.Trabajo
	err := query.
		Preload("Autor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Municipio.Provincia").
		Preload("Contactos").
		Where("trabajos.id = ?", id).
		First(&trabajo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trabajo, nil
}

func (r *TrabajoRepository) List(filters TrabajoFilters, offset, limit int) ([]models.Trabajo, int64, error) {
	query := r.db.Model(&models.Trabajo{})
	if filters.IncludeDeleted {
		query = query.Unscoped()
	}

	if filters.Estado != "" {
		query = query.Where("trabajos.estado = ?", filters.Estado)
	}
	if filters.Jornada != "" {
		query = query.Where("trabajos.jornada = ?", filters.Jornada)
	}
	if filters.Modo != "" {
		query = query.Where("trabajos.modo = ?", filters.Modo)
	}
	if filters.MunicipioID != nil {
		query = query.Where("trabajos.municipio_id = ?", *filters.MunicipioID)
	}
	if filters.ProvinciaID != nil {
		query = query.
			Joins("LEFT JOIN municipios ON municipios.id = trabajos.municipio_id").
			Where("municipios.provincia_id = ?", *filters.ProvinciaID)
	}
	if filters.AutorID != nil {
		query = query.Where("trabajos.autor_id = ?", *filters.AutorID)
	}
	if filters.ExperienciaMin != nil {
		query = query.Where("trabajos.experiencia_min <= ?", *filters.ExperienciaMin)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(trabajos.titulo) LIKE ? OR LOWER(trabajos.descripcion) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filters.SortBy))

	var trabajos []models.Trabajo
	err := query.
		Preload("Autor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Municipio.Provincia").
		Preload("Contactos").
		Offset(offset).
		Limit(limit).
		Find(&trabajos).Error
	if err != nil {
		return nil, 0, err
	}
	return trabajos, total, nil
}

func orderClause(sortBy string) string {
	column := "trabajos.created_at"
	direction := "DESC"
	if sortBy != "" {
		field, dir, found := strings.Cut(sortBy, ":")
		if col, ok := sortColumns[field]; ok {
			column = col
		}
		if found && strings.EqualFold(dir, "asc") {
			direction = "ASC"
		}
	}
	return column + " " + direction
}

// Update applies the given column map; gorm skips the UPDATE when the map
// is empty.
func (r *TrabajoRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Trabajo{}).Where("id = ?", id).Updates(updates).Error
}

func (r *TrabajoRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&models.Trabajo{}, "id = ?", id).Error
}

func (r *TrabajoRepository) CountContactos(trabajoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TrabajoContacto{}).Where("trabajo_id = ?", trabajoID).Count(&count).Error
	return count, err
}

// AddContacto inserts the contact; the composite primary key surfaces
// duplicates as gorm.ErrDuplicatedKey.
func (r *TrabajoRepository) AddContacto(contacto *models.TrabajoContacto) error {
	return r.db.Create(contacto).Error
}

func (r *TrabajoRepository) AddContactos(contactos []models.TrabajoContacto) error {
	if len(contactos) == 0 {
		return nil
	}
	return r.db.Create(&contactos).Error
}

// DeleteContacto removes the exact (tipo, valor) pair. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *TrabajoRepository) DeleteContacto(trabajoID uuid.UUID, tipo models.TipoContacto, valor string) error {
	result := r.db.
		Where("trabajo_id = ? AND tipo = ? AND valor = ?", trabajoID, tipo, valor).
		Delete(&models.TrabajoContacto{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EstadoCount is one row of a grouped count.
type EstadoCount struct {
	Valor string `json:"valor"`
	Total int64  `json:"total"`
}

func (r *TrabajoRepository) CountGroupedBy(column string) ([]EstadoCount, error) {
	// column comes from a fixed caller-side set, never from user input
	var rows []EstadoCount
	err := r.db.Model(&models.Trabajo{}).
		Select(column + " AS valor, COUNT(id) AS total").
		Group(column).
		Find(&rows).Error
	return rows, err
}

func (r *TrabajoRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Trabajo{}).Count(&total).Error
	return total, err
}

// CountPublicadosSince counts published jobs created at or after the cutoff.
func (r *TrabajoRepository) CountPublicadosSince(cutoff time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.Trabajo{}).
		Where("estado = ? AND created_at >= ?", models.EstadoPublicado, cutoff).
		Count(&total).Error
	return total, err
}
