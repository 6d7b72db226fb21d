package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

type UbicacionRepository struct {
	db *gorm.DB
}

func NewUbicacionRepository(db *gorm.DB) *UbicacionRepository {
	return &UbicacionRepository{db: db}
}

func (r *UbicacionRepository) ListProvincias() ([]models.Provincia, error) {
	var provincias []models.Provincia
	err := r.db.Order("nombre ASC").Find(&provincias).Error
	return provincias, err
}

func (r *UbicacionRepository) GetProvinciaByID(id uuid.UUID) (*models.Provincia, error) {
	var provincia models.Provincia
	err := r.db.
		Preload("Municipios", func(db *gorm.DB) *gorm.DB { return db.Order("nombre ASC") }).
		Where("id = ?", id).
		First(&provincia).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provincia, nil
}

func (r *UbicacionRepository) ListMunicipios(provinciaID *uuid.UUID) ([]models.Municipio, error) {
	query := r.db.Preload("Provincia").Order("nombre ASC")
	if provinciaID != nil {
		query = query.Where("provincia_id = ?", *provinciaID)
	}

	var municipios []models.Municipio
	err := query.Find(&municipios).Error
	return municipios, err
}

func (r *UbicacionRepository) GetMunicipioByID(id uuid.UUID) (*models.Municipio, error) {
	var municipio models.Municipio
	err := r.db.Preload("Provincia").Where("id = ?", id).First(&municipio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &municipio, nil
}
