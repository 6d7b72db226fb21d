package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/telegram"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

// BotInfo describes the messaging bot to web clients.
type BotInfo interface {
	IsActive() bool
	Username() string
	Link() string
}

// TelegramService bridges web-authenticated users to the bot: it issues
// verification codes and manages the per-user notification settings. Code
// redemption itself happens inside the bot conversation, not over HTTP.
type TelegramService struct {
	registry    *telegram.CodeRegistry
	configRepo  *repository.ConfiguracionRepository
	usuarioRepo *repository.UsuarioRepository
	bot         BotInfo
	sender      Sender
	codeTTL     time.Duration
}

func NewTelegramService(registry *telegram.CodeRegistry, configRepo *repository.ConfiguracionRepository, usuarioRepo *repository.UsuarioRepository, bot BotInfo, sender Sender, codeTTL time.Duration) *TelegramService {
	return &TelegramService{
		registry:    registry,
		configRepo:  configRepo,
		usuarioRepo: usuarioRepo,
		bot:         bot,
		sender:      sender,
		codeTTL:     codeTTL,
	}
}

// ActivationInfo is what the web client needs to finish linking.
type ActivationInfo struct {
	Code         string `json:"code"`
	BotUsername  string `json:"botUsername"`
	BotLink      string `json:"botLink"`
	Instructions string `json:"instructions"`
	ExpiresIn    string `json:"expiresIn"`
}

// Activate issues a fresh verification code. Codes already live for this user
// stay redeemable; issuing again is never an error.
func (s *TelegramService) Activate(userID uuid.UUID) (*ActivationInfo, error) {
	if !s.bot.IsActive() {
		return nil, apperror.Unavailable("Servicio de notificaciones no disponible")
	}

	code := s.registry.Issue(userID)

	logger.Log.Info("Telegram verification code generated",
		zap.String("user_id", userID.String()),
	)

	return &ActivationInfo{
		Code:         code,
		BotUsername:  s.bot.Username(),
		BotLink:      s.bot.Link(),
		Instructions: "Envía este código al bot de Telegram",
		ExpiresIn:    fmt.Sprintf("%d minutos", int(s.codeTTL.Minutes())),
	}, nil
}

// Deactivate turns notifications off and forgets the chat id. Idempotent:
// it succeeds even when no configuracion exists yet.
func (s *TelegramService) Deactivate(userID uuid.UUID) error {
	config, err := s.configRepo.GetByUsuarioID(userID)
	if err != nil {
		return err
	}
	if config == nil {
		return nil
	}

	config.TelegramNotif = false
	config.TelegramChatID = nil
	if err := s.configRepo.Save(config); err != nil {
		return err
	}

	logger.Log.Info("Telegram notifications deactivated",
		zap.String("user_id", userID.String()),
	)
	return nil
}

// StatusInfo is the current linking state plus bot metadata.
type StatusInfo struct {
	TelegramNotif  bool    `json:"telegram_notif"`
	TelegramChatID *string `json:"telegram_chat_id,omitempty"`
	BotActive      bool    `json:"botActive"`
	BotUsername    string  `json:"botUsername"`
	BotLink        string  `json:"botLink"`
}

func (s *TelegramService) Status(userID uuid.UUID) (*StatusInfo, error) {
	config, err := s.configRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	return &StatusInfo{
		TelegramNotif:  config.TelegramNotif,
		TelegramChatID: config.TelegramChatID,
		BotActive:      s.bot.IsActive(),
		BotUsername:    s.bot.Username(),
		BotLink:        s.bot.Link(),
	}, nil
}

// SendTest delivers a test notification to the user's linked chat.
func (s *TelegramService) SendTest(userID uuid.UUID) error {
	config, err := s.configRepo.GetByUsuarioID(userID)
	if err != nil {
		return err
	}
	if config == nil || !config.TelegramNotif || config.TelegramChatID == nil {
		return apperror.BadRequest("No tienes notificaciones activas")
	}

	usuario, err := s.usuarioRepo.GetByID(userID)
	if err != nil {
		return err
	}
	nombre := "usuario"
	if usuario != nil {
		nombre = usuario.Nombre
	}

	now := time.Now()
	text := fmt.Sprintf(
		"<b>PRUEBA DE NOTIFICACIÓN</b>\n\nHola <b>%s</b>,\n\nLas notificaciones de Telegram están funcionando correctamente.\n\nFecha: %s\nHora: %s\n\n<i>Jobs Out Cuba</i>",
		nombre,
		now.Format("02/01/2006"),
		now.Format("15:04:05"),
	)

	if !s.sender.SendMessage(*config.TelegramChatID, text) {
		return apperror.Internal("No se pudo enviar la notificación")
	}
	return nil
}

// UpdateSettings toggles telegram_notif from the web. The chat id is left
// alone: only Deactivate or a bot-side block clears it.
func (s *TelegramService) UpdateSettings(userID uuid.UUID, telegramNotif bool) (*models.ConfiguracionUsuario, error) {
	config, err := s.configRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	config.TelegramNotif = telegramNotif
	if err := s.configRepo.Save(config); err != nil {
		return nil, err
	}

	return config, nil
}
