package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

type TrabajoHandler struct {
	trabajoService *service.TrabajoService
}

func NewTrabajoHandler(trabajoService *service.TrabajoService) *TrabajoHandler {
	return &TrabajoHandler{
		trabajoService: trabajoService,
	}
}

type ContactoRequest struct {
	Tipo  string `json:"tipo" binding:"required"`
	Valor string `json:"valor" binding:"required"`
}

type CreateTrabajoRequest struct {
	Titulo         string            `json:"titulo" binding:"required"`
	Descripcion    string            `json:"descripcion"`
	ExperienciaMin *int              `json:"experiencia_min"`
	SalarioMin     *int              `json:"salario_min"`
	SalarioMax     *int              `json:"salario_max"`
	Jornada        string            `json:"jornada"`
	Modo           string            `json:"modo"`
	MunicipioID    *uuid.UUID        `json:"municipio_id"`
	Estado         string            `json:"estado"`
	Contactos      []ContactoRequest `json:"contactos"`
}

type UpdateTrabajoRequest struct {
	Titulo         *string    `json:"titulo"`
	Descripcion    *string    `json:"descripcion"`
	ExperienciaMin *int       `json:"experiencia_min"`
	SalarioMin     *int       `json:"salario_min"`
	SalarioMax     *int       `json:"salario_max"`
	Jornada        *string    `json:"jornada"`
	Modo           *string    `json:"modo"`
	MunicipioID    *uuid.UUID `json:"municipio_id"`
	Estado         *string    `json:"estado"`
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Identificador inválido")
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

// parseTrabajoFilters reads the common listing filters off the query string.
func parseTrabajoFilters(c *gin.Context) repository.TrabajoFilters {
	filters := repository.TrabajoFilters{
		Search:  c.Query("busqueda"),
		Estado:  models.Estado(c.Query("estado")),
		Jornada: models.Jornada(c.Query("jornada")),
		Modo:    models.Modo(c.Query("modo")),
		SortBy:  c.Query("orden"),
	}
	if raw := c.Query("municipio_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filters.MunicipioID = &id
		}
	}
	if raw := c.Query("provincia_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filters.ProvinciaID = &id
		}
	}
	if raw := c.Query("experiencia_min"); raw != "" {
		if years, err := strconv.Atoi(raw); err == nil {
			filters.ExperienciaMin = &years
		}
	}
	return filters
}

func (h *TrabajoHandler) List(c *gin.Context) {
	filters := parseTrabajoFilters(c)
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)

	result, err := h.trabajoService.List(filters, page, limit, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

// ListByUsuario lists one author's jobs; visibility rules still apply, so
// anonymous callers only see that author's published jobs.
func (h *TrabajoHandler) ListByUsuario(c *gin.Context) {
	autorID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	filters := parseTrabajoFilters(c)
	filters.AutorID = &autorID
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)

	result, err := h.trabajoService.List(filters, page, limit, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

func (h *TrabajoHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	trabajo, err := h.trabajoService.GetByID(id, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", trabajo)
}

func (h *TrabajoHandler) Create(c *gin.Context) {
	var req CreateTrabajoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	actor := middleware.GetActor(c)

	trabajo := &models.Trabajo{
		Titulo:         req.Titulo,
		Descripcion:    req.Descripcion,
		ExperienciaMin: req.ExperienciaMin,
		SalarioMin:     req.SalarioMin,
		SalarioMax:     req.SalarioMax,
		Jornada:        models.Jornada(req.Jornada),
		Modo:           models.Modo(req.Modo),
		MunicipioID:    req.MunicipioID,
		Estado:         models.Estado(req.Estado),
	}

	contactos := make([]models.TrabajoContacto, 0, len(req.Contactos))
	for _, contacto := range req.Contactos {
		contactos = append(contactos, models.TrabajoContacto{
			Tipo:  models.TipoContacto(contacto.Tipo),
			Valor: contacto.Valor,
		})
	}

	created, err := h.trabajoService.Create(trabajo, actor.ID, contactos)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Log.Info("Trabajo created via API",
		zap.String("trabajo_id", created.ID.String()),
		zap.String("autor_id", actor.ID.String()),
	)
	respond(c, http.StatusCreated, "Trabajo creado exitosamente", created)
}

func (h *TrabajoHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTrabajoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	updates := map[string]interface{}{}
	if req.Titulo != nil {
		updates["titulo"] = *req.Titulo
	}
	if req.Descripcion != nil {
		updates["descripcion"] = *req.Descripcion
	}
	if req.ExperienciaMin != nil {
		updates["experiencia_min"] = *req.ExperienciaMin
	}
	if req.SalarioMin != nil {
		updates["salario_min"] = *req.SalarioMin
	}
	if req.SalarioMax != nil {
		updates["salario_max"] = *req.SalarioMax
	}
	if req.Jornada != nil {
		updates["jornada"] = *req.Jornada
	}
	if req.Modo != nil {
		updates["modo"] = *req.Modo
	}
	if req.MunicipioID != nil {
		updates["municipio_id"] = *req.MunicipioID
	}
	if req.Estado != nil {
		updates["estado"] = *req.Estado
	}

	trabajo, err := h.trabajoService.Update(id, updates, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Trabajo actualizado exitosamente", trabajo)
}

func (h *TrabajoHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.trabajoService.Delete(id, middleware.GetActor(c)); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Trabajo eliminado exitosamente", nil)
}

func (h *TrabajoHandler) Publicar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	trabajo, err := h.trabajoService.Publicar(id, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Trabajo publicado exitosamente", trabajo)
}

func (h *TrabajoHandler) Archivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	trabajo, err := h.trabajoService.Archivar(id, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Trabajo archivado exitosamente", trabajo)
}

func (h *TrabajoHandler) AgregarContacto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ContactoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Tipo y valor del contacto son requeridos")
		return
	}

	contacto := &models.TrabajoContacto{
		Tipo:  models.TipoContacto(req.Tipo),
		Valor: req.Valor,
	}

	created, err := h.trabajoService.AgregarContacto(id, contacto, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Contacto agregado exitosamente", created)
}

func (h *TrabajoHandler) EliminarContacto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ContactoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Tipo y valor del contacto son requeridos")
		return
	}

	err := h.trabajoService.EliminarContacto(id, models.TipoContacto(req.Tipo), req.Valor, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Contacto eliminado exitosamente", nil)
}

func (h *TrabajoHandler) Estadisticas(c *gin.Context) {
	stats, err := h.trabajoService.Estadisticas(middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", stats)
}
