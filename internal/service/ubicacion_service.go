package service

import (
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
)

// UbicacionService serves the read-only location catalog.
type UbicacionService struct {
	ubicacionRepo *repository.UbicacionRepository
}

func NewUbicacionService(ubicacionRepo *repository.UbicacionRepository) *UbicacionService {
	return &UbicacionService{ubicacionRepo: ubicacionRepo}
}

func (s *UbicacionService) ListProvincias() ([]models.Provincia, error) {
	return s.ubicacionRepo.ListProvincias()
}

func (s *UbicacionService) GetProvincia(id uuid.UUID) (*models.Provincia, error) {
	provincia, err := s.ubicacionRepo.GetProvinciaByID(id)
	if err != nil {
		return nil, err
	}
	if provincia == nil {
		return nil, apperror.NotFound("Provincia no encontrada")
	}
	return provincia, nil
}

func (s *UbicacionService) ListMunicipios(provinciaID *uuid.UUID) ([]models.Municipio, error) {
	return s.ubicacionRepo.ListMunicipios(provinciaID)
}
