package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/service"
)

type UbicacionHandler struct {
	ubicacionService *service.UbicacionService
}

func NewUbicacionHandler(ubicacionService *service.UbicacionService) *UbicacionHandler {
	return &UbicacionHandler{
		ubicacionService: ubicacionService,
	}
}

func (h *UbicacionHandler) ListProvincias(c *gin.Context) {
	provincias, err := h.ubicacionService.ListProvincias()
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", provincias)
}

func (h *UbicacionHandler) GetProvincia(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	provincia, err := h.ubicacionService.GetProvincia(id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", provincia)
}

func (h *UbicacionHandler) ListMunicipios(c *gin.Context) {
	var provinciaID *uuid.UUID
	if raw := c.Query("provincia_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "provincia_id inválido")
			return
		}
		provinciaID = &id
	}

	municipios, err := h.ubicacionService.ListMunicipios(provinciaID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", municipios)
}
