package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
)

type PublicacionHandler struct {
	publicacionService *service.PublicacionService
}

func NewPublicacionHandler(publicacionService *service.PublicacionService) *PublicacionHandler {
	return &PublicacionHandler{
		publicacionService: publicacionService,
	}
}

type CrearPublicacionRequest struct {
	TrabajoID uuid.UUID `json:"trabajo_id" binding:"required"`
	Estado    string    `json:"estado"`
	ImagenURL string    `json:"imagen_url"`
}

type ActualizarPublicacionRequest struct {
	Estado    *string `json:"estado"`
	ImagenURL *string `json:"imagen_url"`
}

type RepublicarRequest struct {
	TrabajoID uuid.UUID `json:"trabajo_id" binding:"required"`
	ImagenURL string    `json:"imagen_url"`
}

func parsePublicacionFilters(c *gin.Context) repository.PublicacionFilters {
	filters := repository.PublicacionFilters{
		Estado:   models.Estado(c.Query("estado")),
		Modo:     models.Modo(c.Query("modo")),
		Jornada:  models.Jornada(c.Query("jornada")),
		Busqueda: c.Query("busqueda"),
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
	return filters
}

func (h *PublicacionHandler) List(c *gin.Context) {
	filters := parsePublicacionFilters(c)
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	result, err := h.publicacionService.List(filters, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

func (h *PublicacionHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var viewerID *uuid.UUID
	if actor := middleware.GetActor(c); actor != nil {
		viewerID = &actor.ID
	}

	publicacion, err := h.publicacionService.GetByID(id, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", publicacion)
}

func (h *PublicacionHandler) Crear(c *gin.Context) {
	var req CrearPublicacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "trabajo_id es requerido")
		return
	}

	actor := middleware.GetActor(c)
	publicacion, err := h.publicacionService.Crear(req.TrabajoID, models.Estado(req.Estado), req.ImagenURL, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Publicación creada exitosamente", publicacion)
}

func (h *PublicacionHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ActualizarPublicacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Cuerpo de la solicitud inválido")
		return
	}

	var estado *models.Estado
	if req.Estado != nil {
		value := models.Estado(*req.Estado)
		estado = &value
	}

	actor := middleware.GetActor(c)
	publicacion, err := h.publicacionService.Actualizar(id, estado, req.ImagenURL, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Publicación actualizada exitosamente", publicacion)
}

func (h *PublicacionHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	if err := h.publicacionService.Eliminar(id, actor.ID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Publicación archivada exitosamente", nil)
}

func (h *PublicacionHandler) Republicar(c *gin.Context) {
	var req RepublicarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "trabajo_id es requerido")
		return
	}

	actor := middleware.GetActor(c)
	publicacion, err := h.publicacionService.Republicar(req.TrabajoID, actor.ID, req.ImagenURL)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Publicación republicada exitosamente", publicacion)
}

func (h *PublicacionHandler) ListMine(c *gin.Context) {
	filters := parsePublicacionFilters(c)
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	actor := middleware.GetActor(c)
	result, err := h.publicacionService.ListMine(actor.ID, filters, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

// Estadisticas returns posting counts. Admins see global numbers; everyone
// else sees only their own.
func (h *PublicacionHandler) Estadisticas(c *gin.Context) {
	actor := middleware.GetActor(c)

	var autorID *uuid.UUID
	if !actor.IsAdmin() {
		autorID = &actor.ID
	}

	stats, err := h.publicacionService.Estadisticas(autorID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", stats)
}
