package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/cache"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

const defaultPageSize = 50

// PublicacionService manages the publish/republish/bookmark workflow layered
// on top of an existing job.
type PublicacionService struct {
	publicacionRepo *repository.PublicacionRepository
	trabajoRepo     *repository.TrabajoRepository
	recentCache     *cache.PublicacionCache // nil disables caching
}

func NewPublicacionService(publicacionRepo *repository.PublicacionRepository, trabajoRepo *repository.TrabajoRepository, recentCache *cache.PublicacionCache) *PublicacionService {
	return &PublicacionService{
		publicacionRepo: publicacionRepo,
		trabajoRepo:     trabajoRepo,
		recentCache:     recentCache,
	}
}

// Crear publishes an existing job as a new posting. The job must exist and
// belong to the actor; otherwise NotFound, deliberately not distinguishing
// "absent" from "not yours".
func (s *PublicacionService) Crear(trabajoID uuid.UUID, estado models.Estado, imagenURL string, autorID uuid.UUID) (*models.Publicacion, error) {
	if err := s.checkTrabajoOwnership(trabajoID, autorID); err != nil {
		return nil, err
	}

	if estado == "" {
		estado = models.EstadoPublicado
	}
	if !models.ValidEstado(estado) {
		return nil, apperror.BadRequest("Estado no válido")
	}

	publicacion := &models.Publicacion{
		TrabajoID:   trabajoID,
		AutorID:     autorID,
		Estado:      estado,
		ImagenURL:   imagenURL,
		PublicadoEn: time.Now(),
	}
	if err := s.publicacionRepo.Create(publicacion); err != nil {
		logger.Log.Error("Failed to create publicacion",
			zap.String("trabajo_id", trabajoID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	s.invalidateCache()

	logger.Log.Info("Publicacion created",
		zap.String("publicacion_id", publicacion.ID.String()),
		zap.String("trabajo_id", trabajoID.String()),
	)

	return s.publicacionRepo.GetByID(publicacion.ID)
}

// PageResult is one page of postings. HasMore is exact, computed from the
// total count rather than the returned_count == limit heuristic.
type PageResult struct {
	Publicaciones []models.Publicacion `json:"publicaciones"`
	Total         int64                `json:"total"`
	Limit         int                  `json:"limit"`
	Offset        int                  `json:"offset"`
	HasMore       bool                 `json:"hasMore"`
}

// List is the public, unauthenticated listing. The unfiltered first page is
// served from the redis cache when warm.
func (s *PublicacionService) List(filters repository.PublicacionFilters, limit, offset int) (*PageResult, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	cacheable := s.recentCache != nil && filters == (repository.PublicacionFilters{}) &&
		limit == defaultPageSize && offset == 0
	if cacheable {
		if publicaciones, total, ok := s.recentCache.GetRecent(); ok {
			return pageOf(publicaciones, total, limit, offset), nil
		}
	}

	publicaciones, total, err := s.publicacionRepo.List(filters, offset, limit)
	if err != nil {
		logger.Log.Error("Failed to list publicaciones", zap.Error(err))
		return nil, err
	}

	if cacheable {
		s.recentCache.SetRecent(publicaciones, total)
	}

	return pageOf(publicaciones, total, limit, offset), nil
}

func pageOf(publicaciones []models.Publicacion, total int64, limit, offset int) *PageResult {
	return &PageResult{
		Publicaciones: publicaciones,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
		HasMore:       int64(offset+len(publicaciones)) < total,
	}
}

// GetByID fetches a posting by id. Estado does not gate visibility here:
// postings are shareable by link, so drafts and archived postings stay
// fetchable. Authenticated views are logged.
func (s *PublicacionService) GetByID(id uuid.UUID, viewerID *uuid.UUID) (*models.Publicacion, error) {
	publicacion, err := s.publicacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if publicacion == nil {
		return nil, apperror.NotFound("Publicación no encontrada")
	}

	if viewerID != nil {
		logger.Log.Info("Publicacion viewed",
			zap.String("publicacion_id", id.String()),
			zap.String("viewer_id", viewerID.String()),
		)
	}

	return publicacion, nil
}

// Actualizar mutates estado and/or imagen_url only. An empty diff returns the
// unchanged row rather than erroring.
func (s *PublicacionService) Actualizar(id uuid.UUID, estado *models.Estado, imagenURL *string, autorID uuid.UUID) (*models.Publicacion, error) {
	publicacion, err := s.publicacionRepo.GetByIDAndAutor(id, autorID)
	if err != nil {
		return nil, err
	}
	if publicacion == nil {
		return nil, apperror.NotFound("Publicación no encontrada o no autorizada")
	}

	updates := map[string]interface{}{}
	if estado != nil {
		if !models.ValidEstado(*estado) {
			return nil, apperror.BadRequest("Estado no válido")
		}
		updates["estado"] = *estado
	}
	if imagenURL != nil {
		updates["imagen_url"] = *imagenURL
	}

	updated, err := s.publicacionRepo.Update(id, updates)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		s.invalidateCache()
	}
	return updated, nil
}

// Eliminar archives the posting. The row is never removed.
func (s *PublicacionService) Eliminar(id, autorID uuid.UUID) error {
	publicacion, err := s.publicacionRepo.GetByIDAndAutor(id, autorID)
	if err != nil {
		return err
	}
	if publicacion == nil {
		return apperror.NotFound("Publicación no encontrada o no autorizada")
	}

	if _, err := s.publicacionRepo.Update(id, map[string]interface{}{"estado": models.EstadoArchivado}); err != nil {
		return err
	}
	s.invalidateCache()

	logger.Log.Info("Publicacion archived",
		zap.String("publicacion_id", id.String()),
	)
	return nil
}

// Republicar creates a brand-new posting for the job, always in publicado;
// this is intentionally distinct from Actualizar.
func (s *PublicacionService) Republicar(trabajoID, autorID uuid.UUID, imagenURL string) (*models.Publicacion, error) {
	if err := s.checkTrabajoOwnership(trabajoID, autorID); err != nil {
		return nil, err
	}

	publicacion := &models.Publicacion{
		TrabajoID:   trabajoID,
		AutorID:     autorID,
		Estado:      models.EstadoPublicado,
		ImagenURL:   imagenURL,
		PublicadoEn: time.Now(),
	}
	if err := s.publicacionRepo.Create(publicacion); err != nil {
		return nil, err
	}
	s.invalidateCache()

	logger.Log.Info("Trabajo republished",
		zap.String("trabajo_id", trabajoID.String()),
		zap.String("publicacion_id", publicacion.ID.String()),
	)

	return s.publicacionRepo.GetByID(publicacion.ID)
}

// ListMine returns the actor's own postings regardless of estado.
func (s *PublicacionService) ListMine(autorID uuid.UUID, filters repository.PublicacionFilters, limit, offset int) (*PageResult, error) {
	filters.AutorID = &autorID
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	publicaciones, total, err := s.publicacionRepo.List(filters, offset, limit)
	if err != nil {
		return nil, err
	}
	return pageOf(publicaciones, total, limit, offset), nil
}

// Estadisticas counts postings by estado plus the trailing-24h window,
// scoped to autorID when given.
func (s *PublicacionService) Estadisticas(autorID *uuid.UUID) (*repository.PublicacionStats, error) {
	return s.publicacionRepo.Stats(autorID)
}

// EsPropia reports whether autorID owns the posting.
func (s *PublicacionService) EsPropia(id, autorID uuid.UUID) (bool, error) {
	publicacion, err := s.publicacionRepo.GetByIDAndAutor(id, autorID)
	if err != nil {
		return false, err
	}
	return publicacion != nil, nil
}

func (s *PublicacionService) checkTrabajoOwnership(trabajoID, autorID uuid.UUID) error {
	trabajo, err := s.trabajoRepo.GetByID(trabajoID, false)
	if err != nil {
		return err
	}
	if trabajo == nil || trabajo.AutorID != autorID {
		return apperror.NotFound("Trabajo no encontrado o no autorizado")
	}
	return nil
}

func (s *PublicacionService) invalidateCache() {
	if s.recentCache != nil {
		s.recentCache.Invalidate()
	}
}
