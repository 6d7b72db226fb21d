package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

type GuardadoRepository struct {
	db *gorm.DB
}

func NewGuardadoRepository(db *gorm.DB) *GuardadoRepository {
	return &GuardadoRepository{db: db}
}

// Create inserts the bookmark; the composite primary key makes a duplicate
// pair come back as gorm.ErrDuplicatedKey.
func (r *GuardadoRepository) Create(guardado *models.Guardado) error {
	return r.db.Create(guardado).Error
}

func (r *GuardadoRepository) GetByPair(usuarioID, publicacionID uuid.UUID) (*models.Guardado, error) {
	var guardado models.Guardado
	err := r.db.
		Where("usuario_id = ? AND publicacion_id = ?", usuarioID, publicacionID).
		First(&guardado).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guardado, nil
}

// ListByUsuario returns one page of bookmarks with the posting, its job and
// author joined in, plus the exact total for pagination.
func (r *GuardadoRepository) ListByUsuario(usuarioID uuid.UUID, offset, limit int) ([]models.Guardado, int64, error) {
	var total int64
	err := r.db.Model(&models.Guardado{}).
		Where("usuario_id = ?", usuarioID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var guardados []models.Guardado
	err = r.db.
		Preload("Publicacion.Trabajo.Municipio.Provincia").
		Preload("Publicacion.Autor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&guardados).Error
	if err != nil {
		return nil, 0, err
	}
	return guardados, total, nil
}

// Delete removes the bookmark. Returns gorm.ErrRecordNotFound when the pair
// did not exist.
func (r *GuardadoRepository) Delete(usuarioID, publicacionID uuid.UUID) error {
	result := r.db.
		Where("usuario_id = ? AND publicacion_id = ?", usuarioID, publicacionID).
		Delete(&models.Guardado{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuardadoRepository) CountByPublicacion(publicacionID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.Guardado{}).
		Where("publicacion_id = ?", publicacionID).
		Count(&total).Error
	return total, err
}
