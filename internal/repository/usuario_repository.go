package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) Create(usuario *models.Usuario) error {
	return r.db.Create(usuario).Error
}

func (r *UsuarioRepository) GetByID(id uuid.UUID) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.Where("id = ?", id).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// GetByIDWithProfile loads the user together with configuracion and location.
func (r *UsuarioRepository) GetByIDWithProfile(id uuid.UUID) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.
		Preload("Configuracion").
		Preload("Municipio.Provincia").
		Where("id = ?", id).
		First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// GetByUsername looks the username up case-insensitively.
func (r *UsuarioRepository) GetByUsername(username string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

func (r *UsuarioRepository) GetByEmail(email string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}

// List returns users page by page. Soft-deleted rows are included so admins
// can restore them.
func (r *UsuarioRepository) List(rol models.Rol, offset, limit int) ([]models.Usuario, int64, error) {
	query := r.db.Unscoped().Model(&models.Usuario{})
	if rol != "" {
		query = query.Where("rol = ?", rol)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var usuarios []models.Usuario
	err := query.
		Preload("Municipio.Provincia").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&usuarios).Error
	if err != nil {
		return nil, 0, err
	}
	return usuarios, total, nil
}

func (r *UsuarioRepository) Update(usuario *models.Usuario) error {
	return r.db.Save(usuario).Error
}

func (r *UsuarioRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&models.Usuario{}, "id = ?", id).Error
}

// Restore clears the soft-delete timestamp.
func (r *UsuarioRepository) Restore(id uuid.UUID) error {
	return r.db.Unscoped().
		Model(&models.Usuario{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// GetByIDUnscoped fetches the user even if soft-deleted.
func (r *UsuarioRepository) GetByIDUnscoped(id uuid.UUID) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.Unscoped().Where("id = ?", id).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usuario, nil
}
