package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GuardadoService manages bookmarks: at most one per (usuario, publicacion)
// pair, enforced by the composite primary key rather than a pre-check alone.
type GuardadoService struct {
	guardadoRepo    *repository.GuardadoRepository
	publicacionRepo *repository.PublicacionRepository
}

func NewGuardadoService(guardadoRepo *repository.GuardadoRepository, publicacionRepo *repository.PublicacionRepository) *GuardadoService {
	return &GuardadoService{
		guardadoRepo:    guardadoRepo,
		publicacionRepo: publicacionRepo,
	}
}

// Guardar bookmarks a posting. Duplicate pairs are a Conflict, not an upsert.
func (s *GuardadoService) Guardar(publicacionID, usuarioID uuid.UUID) (*models.Guardado, error) {
	publicacion, err := s.publicacionRepo.GetByID(publicacionID)
	if err != nil {
		return nil, err
	}
	if publicacion == nil {
		return nil, apperror.NotFound("Publicación no encontrada")
	}

	guardado := &models.Guardado{
		UsuarioID:     usuarioID,
		PublicacionID: publicacionID,
	}
	if err := s.guardadoRepo.Create(guardado); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Ya has guardado esta publicación")
		}
		return nil, err
	}

	logger.Log.Info("Publicacion bookmarked",
		zap.String("publicacion_id", publicacionID.String()),
		zap.String("usuario_id", usuarioID.String()),
	)

	return guardado, nil
}

// GuardadosPage is one page of bookmarks with exact pagination.
type GuardadosPage struct {
	Guardados []models.Guardado `json:"guardados"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	HasMore   bool              `json:"hasMore"`
}

func (s *GuardadoService) ListByUsuario(usuarioID uuid.UUID, limit, offset int) (*GuardadosPage, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	guardados, total, err := s.guardadoRepo.ListByUsuario(usuarioID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &GuardadosPage{
		Guardados: guardados,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		HasMore:   int64(offset+len(guardados)) < total,
	}, nil
}

func (s *GuardadoService) Eliminar(publicacionID, usuarioID uuid.UUID) error {
	err := s.guardadoRepo.Delete(usuarioID, publicacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Guardado no encontrado")
		}
		return err
	}

	logger.Log.Info("Bookmark removed",
		zap.String("publicacion_id", publicacionID.String()),
		zap.String("usuario_id", usuarioID.String()),
	)
	return nil
}

// EstadoGuardado is the answer to "is this posting bookmarked?".
type EstadoGuardado struct {
	EstaGuardada  bool       `json:"estaGuardada"`
	FechaGuardado *time.Time `json:"fechaGuardado,omitempty"`
}

func (s *GuardadoService) EstaGuardada(publicacionID, usuarioID uuid.UUID) (*EstadoGuardado, error) {
	guardado, err := s.guardadoRepo.GetByPair(usuarioID, publicacionID)
	if err != nil {
		return nil, err
	}
	if guardado == nil {
		return &EstadoGuardado{EstaGuardada: false}, nil
	}
	return &EstadoGuardado{EstaGuardada: true, FechaGuardado: &guardado.CreatedAt}, nil
}

func (s *GuardadoService) CountByPublicacion(publicacionID uuid.UUID) (int64, error) {
	return s.guardadoRepo.CountByPublicacion(publicacionID)
}
