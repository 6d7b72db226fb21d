package telegram

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// Bot wraps the Telegram Bot API: it answers the linking conversation
// (/start, /status, /unsubscribe, bare 6-digit codes) over long polling and
// exposes SendMessage for outbound notifications.
type Bot struct {
	api      *tgbotapi.BotAPI
	registry *CodeRegistry
	configs  *repository.ConfiguracionRepository
	usuarios *repository.UsuarioRepository
	username string
}

// NewBot connects to the Bot API. token may be empty, in which case the
// returned bot is inactive: commands never run and sends always fail.
func NewBot(token, username string, registry *CodeRegistry, configs *repository.ConfiguracionRepository, usuarios *repository.UsuarioRepository) (*Bot, error) {
	b := &Bot{
		registry: registry,
		configs:  configs,
		usuarios: usuarios,
		username: username,
	}

	if token == "" {
		logger.Log.Warn("TELEGRAM_BOT_TOKEN not set, Telegram notifications disabled")
		return b, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.api = api
	if b.username == "" {
		b.username = api.Self.UserName
	}

	return b, nil
}

// IsActive reports whether the bot is connected to the Bot API.
func (b *Bot) IsActive() bool {
	return b.api != nil
}

func (b *Bot) Username() string {
	return b.username
}

// Link returns the t.me deep link for the bot, or "" when unknown.
func (b *Bot) Link() string {
	if b.username == "" {
		return ""
	}
	return "https://t.me/" + b.username
}

// Start begins long polling in its own goroutine. No-op for an inactive bot.
func (b *Bot) Start() {
	if !b.IsActive() {
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	go func() {
		for update := range updates {
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}()

	logger.Log.Info("Telegram bot polling started", zap.String("username", b.username))
}

// Stop ends the polling loop.
func (b *Bot) Stop() {
	if b.IsActive() {
		b.api.StopReceivingUpdates()
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)

	switch {
	case msg.IsCommand():
		switch msg.Command() {
		case "start":
			b.handleStart(msg, chatID)
		case "help":
			b.reply(msg.Chat.ID, "AYUDA\n\n/start - Iniciar bot\n/status - Ver estado\n/unsubscribe - Cancelar suscripción")
		case "status":
			b.handleStatus(chatID, msg.Chat.ID)
		case "unsubscribe":
			b.handleUnsubscribe(chatID, msg.Chat.ID)
		}
	case codePattern.MatchString(msg.Text):
		b.handleCode(msg.Text, chatID, msg.Chat.ID)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message, chatID string) {
	config, err := b.configs.GetByChatID(chatID)
	if err != nil {
		logger.Log.Error("Failed to look up chat config", zap.Error(err))
		return
	}
	if config != nil && config.TelegramNotif {
		b.reply(msg.Chat.ID, "Ya tienes las notificaciones activadas.\n\nUsa /status para ver tu estado.")
		return
	}

	name := "Usuario"
	if msg.From != nil && msg.From.UserName != "" {
		name = msg.From.UserName
	}
	b.reply(msg.Chat.ID,
		fmt.Sprintf("Hola %s\n\nPara activar las notificaciones:\n1. Ve a tu perfil en la web\n2. Activa Telegram\n3. Copia el código de 6 dígitos\n4. Envíamelo aquí", name))
}

func (b *Bot) handleStatus(chatID string, replyTo int64) {
	config, err := b.configs.GetByChatID(chatID)
	if err != nil {
		logger.Log.Error("Failed to look up chat config", zap.Error(err))
		return
	}
	if config == nil || !config.TelegramNotif {
		b.reply(replyTo, "No tienes las notificaciones activadas.\n\nActívalas desde la web.")
		return
	}

	usuario, err := b.usuarios.GetByID(config.UsuarioID)
	if err != nil || usuario == nil {
		b.reply(replyTo, "Usuario no encontrado.")
		return
	}

	b.reply(replyTo, fmt.Sprintf("NOTIFICACIONES ACTIVAS\n\n%s\nChat ID: %s", usuario.Nombre, chatID))
}

func (b *Bot) handleUnsubscribe(chatID string, replyTo int64) {
	config, err := b.configs.GetByChatID(chatID)
	if err != nil {
		logger.Log.Error("Failed to look up chat config", zap.Error(err))
		return
	}
	if config == nil {
		b.reply(replyTo, "No estás suscrito.")
		return
	}

	config.TelegramNotif = false
	config.TelegramChatID = nil
	if err := b.configs.Save(config); err != nil {
		logger.Log.Error("Failed to unsubscribe chat", zap.Error(err))
		return
	}

	b.reply(replyTo, "Notificaciones desactivadas correctamente.")
}

// handleCode redeems a 6-digit verification code: on success the user's
// configuracion is upserted with telegram_notif=true and this chat id.
// Failure is reported back through the conversation, never over HTTP.
func (b *Bot) handleCode(code, chatID string, replyTo int64) {
	userID, ok := b.registry.Redeem(code)
	if !ok {
		b.reply(replyTo, "Código inválido o expirado.")
		return
	}

	usuario, err := b.usuarios.GetByID(userID)
	if err != nil || usuario == nil {
		b.reply(replyTo, "Usuario no encontrado.")
		return
	}

	config, err := b.configs.GetOrCreate(userID)
	if err != nil {
		logger.Log.Error("Failed to upsert configuracion",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}
	config.TelegramNotif = true
	config.TelegramChatID = &chatID
	if err := b.configs.Save(config); err != nil {
		logger.Log.Error("Failed to save configuracion", zap.Error(err))
		return
	}

	logger.Log.Info("Telegram chat linked",
		zap.String("user_id", userID.String()),
	)

	b.reply(replyTo, fmt.Sprintf("Suscripción completada.\n\nHola %s, recibirás notificaciones automáticamente.", usuario.Nombre))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Log.Warn("Failed to send Telegram reply",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// SendMessage delivers one notification to a chat. On an irrecoverable
// "blocked the bot" failure the recipient's configuracion is disabled so
// future broadcasts skip them.
func (b *Bot) SendMessage(chatID, text string) bool {
	if !b.IsActive() {
		return false
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		logger.Log.Warn("Invalid Telegram chat id", zap.String("chat_id", chatID))
		return false
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(msg); err != nil {
		logger.Log.Warn("Failed to send Telegram message",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)

		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.Code == 403 {
			if dbErr := b.configs.DisableByChatID(chatID); dbErr != nil {
				logger.Log.Error("Failed to disable blocked recipient",
					zap.String("chat_id", chatID),
					zap.Error(dbErr),
				)
			} else {
				logger.Log.Info("Disabled notifications for blocked chat",
					zap.String("chat_id", chatID),
				)
			}
		}
		return false
	}

	return true
}
