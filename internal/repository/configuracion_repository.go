package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/gorm"
)

type ConfiguracionRepository struct {
	db *gorm.DB
}

func NewConfiguracionRepository(db *gorm.DB) *ConfiguracionRepository {
	return &ConfiguracionRepository{db: db}
}

func (r *ConfiguracionRepository) GetByUsuarioID(usuarioID uuid.UUID) (*models.ConfiguracionUsuario, error) {
	var config models.ConfiguracionUsuario
	err := r.db.Where("usuario_id = ?", usuarioID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *ConfiguracionRepository) GetByChatID(chatID string) (*models.ConfiguracionUsuario, error) {
	var config models.ConfiguracionUsuario
	err := r.db.Where("telegram_chat_id = ?", chatID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// GetOrCreate lazily creates the row with telegram_notif=false.
func (r *ConfiguracionRepository) GetOrCreate(usuarioID uuid.UUID) (*models.ConfiguracionUsuario, error) {
	config, err := r.GetByUsuarioID(usuarioID)
	if err != nil {
		return nil, err
	}
	if config != nil {
		return config, nil
	}

	config = &models.ConfiguracionUsuario{UsuarioID: usuarioID, TelegramNotif: false}
	if err := r.db.Create(config).Error; err != nil {
		return nil, err
	}
	return config, nil
}

func (r *ConfiguracionRepository) Save(config *models.ConfiguracionUsuario) error {
	return r.db.Save(config).Error
}

// ListChatIDs returns the telegram chat ids for a broadcast audience.
// requireOptIn=true additionally filters on telegram_notif.
func (r *ConfiguracionRepository) ListChatIDs(requireOptIn bool) ([]string, error) {
	query := r.db.Model(&models.ConfiguracionUsuario{}).
		Where("telegram_chat_id IS NOT NULL")
	if requireOptIn {
		query = query.Where("telegram_notif = ?", true)
	}

	var chatIDs []string
	if err := query.Pluck("telegram_chat_id", &chatIDs).Error; err != nil {
		return nil, err
	}
	return chatIDs, nil
}

// DisableByChatID turns notifications off and clears the chat id, used when
// the remote side reports the recipient blocked the bot.
func (r *ConfiguracionRepository) DisableByChatID(chatID string) error {
	return r.db.Model(&models.ConfiguracionUsuario{}).
		Where("telegram_chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"telegram_notif":   false,
			"telegram_chat_id": nil,
		}).Error
}
