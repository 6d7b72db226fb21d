package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

// PublicacionFilters collects the public listing filters. Trabajo-level
// filters (modo, jornada, busqueda, location) apply to the referenced job.
type PublicacionFilters struct {
	Estado      models.Estado
	Modo        models.Modo
	Jornada     models.Jornada
	MunicipioID *uuid.UUID
	ProvinciaID *uuid.UUID
	Busqueda    string
	AutorID     *uuid.UUID
}

type PublicacionRepository struct {
	db *gorm.DB
}

func NewPublicacionRepository(db *gorm.DB) *PublicacionRepository {
	return &PublicacionRepository{db: db}
}

func (r *PublicacionRepository) Create(publicacion *models.Publicacion) error {
	return r.db.Create(publicacion).Error
}

func (r *PublicacionRepository) GetByID(id uuid.UUID) (*models.Publicacion, error) {
	var publicacion models.Publicacion
	err := r.db.
		Preload("Trabajo.Municipio.Provincia").
		Preload("Trabajo.Contactos").
		Preload("Autor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("publicaciones.id = ?", id).
		First(&publicacion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publicacion, nil
}

// GetByIDAndAutor returns the posting only when autorID owns it.
func (r *PublicacionRepository) GetByIDAndAutor(id, autorID uuid.UUID) (*models.Publicacion, error) {
	var publicacion models.Publicacion
	err := r.db.
		Where("id = ? AND autor_id = ?", id, autorID).
		First(&publicacion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publicacion, nil
}

// List returns one page plus the exact total, so callers can compute
// hasMore without the returned_count == limit heuristic.
func (r *PublicacionRepository) List(filters PublicacionFilters, offset, limit int) ([]models.Publicacion, int64, error) {
	// Count and find run on separate chains: Distinct would otherwise stick
	// to the shared statement and strip every column from the page query.
	var total int64
	if err := r.buildQuery(filters).Distinct("publicaciones.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var publicaciones []models.Publicacion
	err := r.buildQuery(filters).
		Preload("Trabajo.Municipio.Provincia").
		Preload("Trabajo.Contactos").
		Preload("Autor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("publicaciones.publicado_en DESC").
		Offset(offset).
		Limit(limit).
		Find(&publicaciones).Error
	if err != nil {
		return nil, 0, err
	}
	return publicaciones, total, nil
}

func (r *PublicacionRepository) buildQuery(filters PublicacionFilters) *gorm.DB {
	query := r.db.Model(&models.Publicacion{})

	if filters.Estado != "" {
		query = query.Where("publicaciones.estado = ?", filters.Estado)
	}
	if filters.AutorID != nil {
		query = query.Where("publicaciones.autor_id = ?", *filters.AutorID)
	}

	needsTrabajo := filters.Modo != "" || filters.Jornada != "" || filters.Busqueda != "" ||
		filters.MunicipioID != nil || filters.ProvinciaID != nil
	if needsTrabajo {
		query = query.Joins("JOIN trabajos ON trabajos.id = publicaciones.trabajo_id")
	}
	if filters.Modo != "" {
		query = query.Where("trabajos.modo = ?", filters.Modo)
	}
	if filters.Jornada != "" {
		query = query.Where("trabajos.jornada = ?", filters.Jornada)
	}
	if filters.MunicipioID != nil {
		query = query.Where("trabajos.municipio_id = ?", *filters.MunicipioID)
	}
	if filters.ProvinciaID != nil {
		query = query.
			Joins("LEFT JOIN municipios ON municipios.id = trabajos.municipio_id").
			Where("municipios.provincia_id = ?", *filters.ProvinciaID)
	}
	if filters.Busqueda != "" {
		pattern := "%" + strings.ToLower(filters.Busqueda) + "%"
		query = query.Where("LOWER(trabajos.titulo) LIKE ?", pattern)
	}

	return query
}

// Update applies the given column map and reloads the row.
func (r *PublicacionRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.Publicacion, error) {
	if len(updates) > 0 {
		err := r.db.Model(&models.Publicacion{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

type PublicacionStats struct {
	Total          int64 `json:"total"`
	Publicados     int64 `json:"publicados"`
	Borradores     int64 `json:"borradores"`
	Archivados     int64 `json:"archivados"`
	Ultimas24Horas int64 `json:"ultimas_24_horas"`
}

func (r *PublicacionRepository) Stats(autorID *uuid.UUID) (*PublicacionStats, error) {
	base := func() *gorm.DB {
		q := r.db.Model(&models.Publicacion{})
		if autorID != nil {
			q = q.Where("autor_id = ?", *autorID)
		}
		return q
	}

	stats := &PublicacionStats{}
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("estado = ?", models.EstadoPublicado).Count(&stats.Publicados).Error; err != nil {
		return nil, err
	}
	if err := base().Where("estado = ?", models.EstadoBorrador).Count(&stats.Borradores).Error; err != nil {
		return nil, err
	}
	if err := base().Where("estado = ?", models.EstadoArchivado).Count(&stats.Archivados).Error; err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-24 * time.Hour)
	if err := base().Where("created_at >= ?", cutoff).Count(&stats.Ultimas24Horas).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
