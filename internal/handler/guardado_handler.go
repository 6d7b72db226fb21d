package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/service"
)

type GuardadoHandler struct {
	guardadoService *service.GuardadoService
}

func NewGuardadoHandler(guardadoService *service.GuardadoService) *GuardadoHandler {
	return &GuardadoHandler{
		guardadoService: guardadoService,
	}
}

type GuardarRequest struct {
	PublicacionID uuid.UUID `json:"publicacion_id" binding:"required"`
}

func (h *GuardadoHandler) Guardar(c *gin.Context) {
	var req GuardarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "publicacion_id es requerido")
		return
	}

	actor := middleware.GetActor(c)
	guardado, err := h.guardadoService.Guardar(req.PublicacionID, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Publicación guardada exitosamente", guardado)
}

func (h *GuardadoHandler) List(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	actor := middleware.GetActor(c)
	result, err := h.guardadoService.ListByUsuario(actor.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

// Eliminar removes the caller's bookmark; :id is the publicacion id.
func (h *GuardadoHandler) Eliminar(c *gin.Context) {
	publicacionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	if err := h.guardadoService.Eliminar(publicacionID, actor.ID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Guardado eliminado exitosamente", nil)
}

func (h *GuardadoHandler) Verificar(c *gin.Context) {
	publicacionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	estado, err := h.guardadoService.EstaGuardada(publicacionID, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", estado)
}
