package service

import (
	"sync"
	"time"

	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/internal/journal"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	AudienceTodos       = "todos"
	AudienceNotificados = "notificados"
)

// Sender is the outbound messaging primitive the dispatcher fans out over.
// Implementations report per-recipient success; side effects on irrecoverable
// failures (disabling a blocked recipient) live behind this interface.
type Sender interface {
	SendMessage(chatID, text string) bool
}

// ChannelResult is the per-channel delivery summary.
type ChannelResult struct {
	Attempted int              `json:"attempted"`
	Sent      int              `json:"sent"`
	Failed    int              `json:"failed"`
	Errors    []RecipientError `json:"errors"`
}

type RecipientError struct {
	ChatID string `json:"chatId"`
	Error  string `json:"error"`
}

// BroadcastResult maps channel name to its delivery summary.
type BroadcastResult map[string]*ChannelResult

// NotificationService fans one message out to every recipient matching the
// audience filter: fixed-size concurrent batches with an inter-batch delay,
// one recipient's failure never aborting the rest.
type NotificationService struct {
	configRepo *repository.ConfiguracionRepository
	sender     Sender
	jrnl       *journal.Journal // nil disables the audit trail

	batchSize  int
	batchDelay time.Duration
}

func NewNotificationService(configRepo *repository.ConfiguracionRepository, sender Sender, jrnl *journal.Journal, batchSize int, batchDelay time.Duration) *NotificationService {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &NotificationService{
		configRepo: configRepo,
		sender:     sender,
		jrnl:       jrnl,
		batchSize:  batchSize,
		batchDelay: batchDelay,
	}
}

// Broadcast delivers message to the audience over the given channels.
// channels defaults to ["telegram"]; unsupported channels are accepted but
// produce zero attempts.
func (s *NotificationService) Broadcast(message, audience string, channels []string, triggeredBy string) (BroadcastResult, error) {
	if message == "" {
		return nil, apperror.BadRequest("El mensaje es obligatorio")
	}
	if audience == "" {
		audience = AudienceNotificados
	}
	if audience != AudienceTodos && audience != AudienceNotificados {
		return nil, apperror.BadRequest("Audiencia no válida: debe ser 'todos' o 'notificados'")
	}
	if len(channels) == 0 {
		channels = []string{"telegram"}
	}

	result := BroadcastResult{
		"telegram": {Errors: []RecipientError{}},
		"email":    {Errors: []RecipientError{}},
		"whatsapp": {Errors: []RecipientError{}},
	}

	for _, channel := range channels {
		if channel != "telegram" {
			// email/whatsapp are stubbed: accepted, zero attempts
			continue
		}
		if err := s.sendTelegram(message, audience, result["telegram"]); err != nil {
			return nil, err
		}
	}

	s.record(message, audience, channels, triggeredBy, result["telegram"])

	return result, nil
}

func (s *NotificationService) sendTelegram(message, audience string, res *ChannelResult) error {
	chatIDs, err := s.configRepo.ListChatIDs(audience == AudienceNotificados)
	if err != nil {
		logger.Log.Error("Failed to load broadcast recipients", zap.Error(err))
		return err
	}
	res.Attempted = len(chatIDs)

	logger.Log.Info("Broadcast starting",
		zap.String("audience", audience),
		zap.Int("recipients", len(chatIDs)),
		zap.Int("batch_size", s.batchSize),
	)

	type outcome struct {
		chatID string
		ok     bool
	}

	for start := 0; start < len(chatIDs); start += s.batchSize {
		end := min(start+s.batchSize, len(chatIDs))
		batch := chatIDs[start:end]

		outcomes := make([]outcome, len(batch))
		var wg sync.WaitGroup
		for i, chatID := range batch {
			wg.Add(1)
			go func(i int, chatID string) {
				defer wg.Done()
				outcomes[i] = outcome{chatID: chatID, ok: s.sender.SendMessage(chatID, message)}
			}(i, chatID)
		}
		wg.Wait()

		for _, o := range outcomes {
			if o.ok {
				res.Sent++
			} else {
				res.Failed++
				res.Errors = append(res.Errors, RecipientError{ChatID: o.chatID, Error: "send failed"})
			}
		}

		// throttle between batches
		if end < len(chatIDs) {
			time.Sleep(s.batchDelay)
		}
	}

	logger.Log.Info("Broadcast finished",
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)

	return nil
}

func (s *NotificationService) record(message, audience string, channels []string, triggeredBy string, tg *ChannelResult) {
	if s.jrnl == nil {
		return
	}
	err := s.jrnl.Append(journal.Entry{
		Timestamp:   time.Now(),
		TriggeredBy: triggeredBy,
		Audience:    audience,
		Channels:    channels,
		Attempted:   tg.Attempted,
		Sent:        tg.Sent,
		Failed:      tg.Failed,
		Message:     message,
	})
	if err != nil {
		logger.Log.Error("Failed to journal broadcast", zap.Error(err))
	}
}
