package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	phoneRegex        = regexp.MustCompile(`^\+\d{7,15}$`)
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// TrabajoService owns the job lifecycle: who may read or mutate a job, the
// borrador -> publicado -> archivado transitions, and the contact invariant
// that gates publication.
type TrabajoService struct {
	trabajoRepo *repository.TrabajoRepository
	usuarioRepo *repository.UsuarioRepository
}

func NewTrabajoService(trabajoRepo *repository.TrabajoRepository, usuarioRepo *repository.UsuarioRepository) *TrabajoService {
	return &TrabajoService{
		trabajoRepo: trabajoRepo,
		usuarioRepo: usuarioRepo,
	}
}

// ListResult is one page of jobs with the pagination echo.
type ListResult struct {
	Trabajos []models.Trabajo           `json:"trabajos"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	Limit    int                        `json:"limit"`
	Pages    int64                      `json:"pages"`
	Filters  repository.TrabajoFilters  `json:"-"`
}

// List applies the visibility rule before the filters reach the repository:
// anyone who is not admin only ever sees published, non-deleted jobs,
// whatever estado they asked for.
func (s *TrabajoService) List(filters repository.TrabajoFilters, page, limit int, actor *Actor) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	if !actor.IsAdmin() {
		filters.Estado = models.EstadoPublicado
		filters.IncludeDeleted = false
	} else {
		filters.IncludeDeleted = true
	}

	offset := (page - 1) * limit
	trabajos, total, err := s.trabajoRepo.List(filters, offset, limit)
	if err != nil {
		logger.Log.Error("Failed to list trabajos", zap.Error(err))
		return nil, err
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &ListResult{
		Trabajos: trabajos,
		Total:    total,
		Page:     page,
		Limit:    limit,
		Pages:    pages,
		Filters:  filters,
	}, nil
}

// GetByID returns the job, or Forbidden when it is not published and the
// actor is neither its author nor admin.
func (s *TrabajoService) GetByID(id uuid.UUID, actor *Actor) (*models.Trabajo, error) {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if trabajo == nil {
		return nil, apperror.NotFound("Trabajo no encontrado")
	}

	if trabajo.Estado != models.EstadoPublicado && !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return nil, apperror.Forbidden("No tienes permiso para ver este trabajo")
	}

	return trabajo, nil
}

// Create registers the job in borrador (or the caller-specified estado) and
// bulk-inserts the provided contacts.
func (s *TrabajoService) Create(trabajo *models.Trabajo, autorID uuid.UUID, contactos []models.TrabajoContacto) (*models.Trabajo, error) {
	autor, err := s.usuarioRepo.GetByID(autorID)
	if err != nil {
		return nil, err
	}
	if autor == nil {
		return nil, apperror.NotFound("Usuario no encontrado")
	}

	if err := validateTrabajo(trabajo); err != nil {
		return nil, err
	}

	trabajo.AutorID = autorID
	if trabajo.Estado == "" {
		trabajo.Estado = models.EstadoBorrador
	}

	if err := s.trabajoRepo.Create(trabajo); err != nil {
		logger.Log.Error("Failed to create trabajo",
			zap.String("autor_id", autorID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	for i := range contactos {
		contactos[i].TrabajoID = trabajo.ID
		if err := validateContacto(&contactos[i]); err != nil {
			return nil, err
		}
	}
	if err := s.trabajoRepo.AddContactos(contactos); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Contactos duplicados en la solicitud")
		}
		return nil, err
	}

	logger.Log.Info("Trabajo created",
		zap.String("trabajo_id", trabajo.ID.String()),
		zap.String("autor_id", autorID.String()),
		zap.String("estado", string(trabajo.Estado)),
	)

	actor := &Actor{ID: autorID, Rol: autor.Rol}
	return s.GetByID(trabajo.ID, actor)
}

// Update mutates the job. Setting estado to publicado from a non-published
// state re-checks the contact invariant.
func (s *TrabajoService) Update(id uuid.UUID, updates map[string]interface{}, actor *Actor) (*models.Trabajo, error) {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if trabajo == nil {
		return nil, apperror.NotFound("Trabajo no encontrado")
	}
	if !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return nil, apperror.Forbidden("No tienes permiso para modificar este trabajo")
	}

	if jornada, ok := updates["jornada"]; ok {
		if !models.ValidJornada(models.Jornada(toString(jornada))) {
			return nil, apperror.BadRequest("Jornada no válida")
		}
	}
	if modo, ok := updates["modo"]; ok {
		if !models.ValidModo(models.Modo(toString(modo))) {
			return nil, apperror.BadRequest("Modo no válido")
		}
	}

	if estado, ok := updates["estado"]; ok {
		nuevo := models.Estado(toString(estado))
		if !models.ValidEstado(nuevo) {
			return nil, apperror.BadRequest("Estado no válido")
		}
		if nuevo == models.EstadoPublicado && trabajo.Estado != models.EstadoPublicado {
			if err := s.checkContactos(id); err != nil {
				return nil, err
			}
		}
	}

	if err := s.trabajoRepo.Update(id, updates); err != nil {
		return nil, err
	}

	logger.Log.Info("Trabajo updated",
		zap.String("trabajo_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	return s.GetByID(id, actor)
}

// Delete soft-deletes the job; admins can restore it later.
func (s *TrabajoService) Delete(id uuid.UUID, actor *Actor) error {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return err
	}
	if trabajo == nil {
		return apperror.NotFound("Trabajo no encontrado")
	}
	if !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return apperror.Forbidden("No tienes permiso para eliminar este trabajo")
	}

	if err := s.trabajoRepo.SoftDelete(id); err != nil {
		return err
	}

	logger.Log.Info("Trabajo soft-deleted",
		zap.String("trabajo_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

// Publicar transitions the job to publicado. Fails with BadRequest when the
// job has no contacts; republishing from archivado is allowed under the same
// precondition.
func (s *TrabajoService) Publicar(id uuid.UUID, actor *Actor) (*models.Trabajo, error) {
	return s.transition(id, models.EstadoPublicado, actor, true)
}

// Archivar transitions the job to archivado.
func (s *TrabajoService) Archivar(id uuid.UUID, actor *Actor) (*models.Trabajo, error) {
	return s.transition(id, models.EstadoArchivado, actor, false)
}

func (s *TrabajoService) transition(id uuid.UUID, estado models.Estado, actor *Actor, checkContactos bool) (*models.Trabajo, error) {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if trabajo == nil {
		return nil, apperror.NotFound("Trabajo no encontrado")
	}
	if !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return nil, apperror.Forbidden("No tienes permiso para modificar este trabajo")
	}

	if checkContactos {
		if err := s.checkContactos(id); err != nil {
			return nil, err
		}
	}

	if err := s.trabajoRepo.Update(id, map[string]interface{}{"estado": estado}); err != nil {
		return nil, err
	}

	logger.Log.Info("Trabajo state transition",
		zap.String("trabajo_id", id.String()),
		zap.String("estado", string(estado)),
		zap.String("actor_id", actor.ID.String()),
	)

	return s.GetByID(id, actor)
}

func (s *TrabajoService) checkContactos(id uuid.UUID) error {
	count, err := s.trabajoRepo.CountContactos(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.BadRequest("No se puede publicar un trabajo sin contactos")
	}
	return nil
}

// AgregarContacto validates the tipo and value format, then inserts; the
// schema-level uniqueness of (trabajo, tipo, valor) is the source of truth
// for duplicates.
func (s *TrabajoService) AgregarContacto(id uuid.UUID, contacto *models.TrabajoContacto, actor *Actor) (*models.TrabajoContacto, error) {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if trabajo == nil {
		return nil, apperror.NotFound("Trabajo no encontrado")
	}
	if !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return nil, apperror.Forbidden("No tienes permiso para agregar contactos a este trabajo")
	}

	contacto.TrabajoID = id
	if err := validateContacto(contacto); err != nil {
		return nil, err
	}

	if err := s.trabajoRepo.AddContacto(contacto); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Este contacto ya existe para este trabajo")
		}
		return nil, err
	}

	logger.Log.Info("Contacto added",
		zap.String("trabajo_id", id.String()),
		zap.String("tipo", string(contacto.Tipo)),
	)

	return contacto, nil
}

func (s *TrabajoService) EliminarContacto(id uuid.UUID, tipo models.TipoContacto, valor string, actor *Actor) error {
	trabajo, err := s.trabajoRepo.GetByID(id, actor.IsAdmin())
	if err != nil {
		return err
	}
	if trabajo == nil {
		return apperror.NotFound("Trabajo no encontrado")
	}
	if !isOwnerOrAdmin(actor, trabajo.AutorID) {
		return apperror.Forbidden("No tienes permiso para eliminar contactos de este trabajo")
	}

	if err := s.trabajoRepo.DeleteContacto(id, tipo, valor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Contacto no encontrado")
		}
		return err
	}
	return nil
}

// Estadisticas aggregates job counts for admins: per estado/jornada/modo plus
// jobs published since the start of the current calendar month.
type Estadisticas struct {
	Total           int64                    `json:"total"`
	PorEstado       []repository.EstadoCount `json:"por_estado"`
	PorJornada      []repository.EstadoCount `json:"por_jornada"`
	PorModo         []repository.EstadoCount `json:"por_modo"`
	TrabajosEsteMes int64                    `json:"trabajos_este_mes"`
	FechaConsulta   time.Time                `json:"fecha_consulta"`
}

func (s *TrabajoService) Estadisticas(actor *Actor) (*Estadisticas, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("Solo administradores pueden ver estadísticas")
	}

	stats := &Estadisticas{FechaConsulta: time.Now()}

	var err error
	if stats.Total, err = s.trabajoRepo.Count(); err != nil {
		return nil, err
	}
	if stats.PorEstado, err = s.trabajoRepo.CountGroupedBy("estado"); err != nil {
		return nil, err
	}
	if stats.PorJornada, err = s.trabajoRepo.CountGroupedBy("jornada"); err != nil {
		return nil, err
	}
	if stats.PorModo, err = s.trabajoRepo.CountGroupedBy("modo"); err != nil {
		return nil, err
	}

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.TrabajosEsteMes, err = s.trabajoRepo.CountPublicadosSince(inicioMes); err != nil {
		return nil, err
	}

	return stats, nil
}

func validateTrabajo(trabajo *models.Trabajo) error {
	var problems []string
	if strings.TrimSpace(trabajo.Titulo) == "" {
		problems = append(problems, "el título es obligatorio")
	}
	if trabajo.Estado != "" && !models.ValidEstado(trabajo.Estado) {
		problems = append(problems, "estado no válido")
	}
	if trabajo.Jornada != "" && !models.ValidJornada(trabajo.Jornada) {
		problems = append(problems, "jornada no válida")
	}
	if trabajo.Modo != "" && !models.ValidModo(trabajo.Modo) {
		problems = append(problems, "modo no válido")
	}
	if trabajo.ExperienciaMin != nil && *trabajo.ExperienciaMin < 0 {
		problems = append(problems, "la experiencia mínima no puede ser negativa")
	}
	if trabajo.SalarioMin != nil && trabajo.SalarioMax != nil && *trabajo.SalarioMax < *trabajo.SalarioMin {
		problems = append(problems, "el salario máximo no puede ser menor que el mínimo")
	}
	if len(problems) > 0 {
		return apperror.Validation(strings.Join(problems, ", "))
	}
	return nil
}

func validateContacto(contacto *models.TrabajoContacto) error {
	if !models.ValidTipoContacto(contacto.Tipo) {
		tipos := make([]string, len(models.TiposContacto))
		for i, t := range models.TiposContacto {
			tipos[i] = string(t)
		}
		return apperror.BadRequest("Tipo de contacto no válido. Tipos permitidos: " + strings.Join(tipos, ", "))
	}

	switch contacto.Tipo {
	case models.ContactoTelefono, models.ContactoWhatsapp:
		if !phoneRegex.MatchString(contacto.Valor) {
			return apperror.BadRequest("El teléfono debe estar en formato E.164 (ej: +5355512345)")
		}
	case models.ContactoEmail:
		if !contactEmailRegex.MatchString(contacto.Valor) {
			return apperror.BadRequest("Debe ser un email válido")
		}
	}
	return nil
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case models.Estado:
		return string(s)
	}
	return ""
}
