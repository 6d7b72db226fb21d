package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/service"
)

type TelegramHandler struct {
	telegramService *service.TelegramService
}

func NewTelegramHandler(telegramService *service.TelegramService) *TelegramHandler {
	return &TelegramHandler{
		telegramService: telegramService,
	}
}

type TelegramSettingsRequest struct {
	TelegramNotif *bool `json:"telegram_notif" binding:"required"`
}

// Activate issues a verification code the user then sends to the bot chat.
func (h *TelegramHandler) Activate(c *gin.Context) {
	actor := middleware.GetActor(c)

	info, err := h.telegramService.Activate(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Código de verificación generado", info)
}

func (h *TelegramHandler) Deactivate(c *gin.Context) {
	actor := middleware.GetActor(c)

	if err := h.telegramService.Deactivate(actor.ID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Notificaciones de Telegram desactivadas", nil)
}

func (h *TelegramHandler) Status(c *gin.Context) {
	actor := middleware.GetActor(c)

	status, err := h.telegramService.Status(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", status)
}

func (h *TelegramHandler) SendTest(c *gin.Context) {
	actor := middleware.GetActor(c)

	if err := h.telegramService.SendTest(actor.ID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Notificación de prueba enviada", nil)
}

func (h *TelegramHandler) UpdateSettings(c *gin.Context) {
	var req TelegramSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TelegramNotif == nil {
		respondBadRequest(c, "telegram_notif es requerido")
		return
	}

	actor := middleware.GetActor(c)
	config, err := h.telegramService.UpdateSettings(actor.ID, *req.TelegramNotif)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Configuración actualizada", config)
}
