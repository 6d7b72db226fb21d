package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/journal"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

type AdminHandler struct {
	notificationService *service.NotificationService
	usuarioService      *service.UsuarioService
	jrnl                *journal.Journal
}

func NewAdminHandler(notificationService *service.NotificationService, usuarioService *service.UsuarioService, jrnl *journal.Journal) *AdminHandler {
	return &AdminHandler{
		notificationService: notificationService,
		usuarioService:      usuarioService,
		jrnl:                jrnl,
	}
}

type BroadcastRequest struct {
	Message  string   `json:"message" binding:"required"`
	Audience string   `json:"audience"`
	Channels []string `json:"channels"`
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "message es requerido")
		return
	}
	if req.Audience == "" {
		req.Audience = service.AudienceTodos
	}

	actor := middleware.GetActor(c)
	logger.Log.Info("Broadcast requested",
		zap.String("admin", actor.Username),
		zap.String("audience", req.Audience),
		zap.Strings("channels", req.Channels),
	)

	result, err := h.notificationService.Broadcast(req.Message, req.Audience, req.Channels, actor.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Difusión completada", result)
}

func (h *AdminHandler) ListUsuarios(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)
	rol := models.Rol(c.Query("rol"))

	result, err := h.usuarioService.List(middleware.GetActor(c), rol, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}

func (h *AdminHandler) DeleteUsuario(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.usuarioService.Delete(id, middleware.GetActor(c)); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Usuario eliminado exitosamente", nil)
}

func (h *AdminHandler) RestoreUsuario(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	usuario, err := h.usuarioService.Restore(id, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Usuario restaurado exitosamente", usuario)
}

// Logs returns the broadcast audit journal, newest first.
func (h *AdminHandler) Logs(c *gin.Context) {
	entries, err := h.jrnl.ReadAll()
	if err != nil {
		respondError(c, err)
		return
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	limit := parseIntQuery(c, "limit", 100)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	respond(c, http.StatusOK, "", gin.H{
		"logs":  entries,
		"total": len(entries),
	})
}
