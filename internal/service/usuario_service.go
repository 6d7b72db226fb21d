package service

import (
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

// UsuarioService covers the admin-side user management: listing (including
// soft-deleted users), soft-delete and restore.
type UsuarioService struct {
	usuarioRepo *repository.UsuarioRepository
}

func NewUsuarioService(usuarioRepo *repository.UsuarioRepository) *UsuarioService {
	return &UsuarioService{usuarioRepo: usuarioRepo}
}

type UsuariosPage struct {
	Usuarios []models.Usuario `json:"usuarios"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func (s *UsuarioService) List(actor *Actor, rol models.Rol, page, limit int) (*UsuariosPage, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("Solo administradores pueden listar usuarios")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	usuarios, total, err := s.usuarioRepo.List(rol, (page-1)*limit, limit)
	if err != nil {
		logger.Log.Error("Failed to list usuarios", zap.Error(err))
		return nil, err
	}

	return &UsuariosPage{
		Usuarios: usuarios,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *UsuarioService) Delete(id uuid.UUID, actor *Actor) error {
	if !actor.IsAdmin() && actor.ID != id {
		return apperror.Forbidden("No tienes permiso para eliminar este usuario")
	}

	usuario, err := s.usuarioRepo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return apperror.NotFound("Usuario no encontrado")
	}

	if err := s.usuarioRepo.SoftDelete(id); err != nil {
		return err
	}

	logger.Log.Info("Usuario soft-deleted",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

// Restore clears a user's soft-delete timestamp. Admin only.
func (s *UsuarioService) Restore(id uuid.UUID, actor *Actor) (*models.Usuario, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("Solo administradores pueden restaurar usuarios")
	}

	usuario, err := s.usuarioRepo.GetByIDUnscoped(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, apperror.NotFound("Usuario no encontrado")
	}

	if err := s.usuarioRepo.Restore(id); err != nil {
		return nil, err
	}

	logger.Log.Info("Usuario restored",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	return s.usuarioRepo.GetByID(id)
}
