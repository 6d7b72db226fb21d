package models

import (
	"time"

	"github.com/google/uuid"
)

// ConfiguracionUsuario holds per-user notification settings, 1:1 with Usuario.
// Created lazily with telegram_notif=false on the first notification-related
// action.
type ConfiguracionUsuario struct {
	UsuarioID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"usuario_id"`
	TelegramNotif  bool      `gorm:"not null;default:false" json:"telegram_notif"`
	TelegramChatID *string   `gorm:"type:varchar(32);index" json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ConfiguracionUsuario) TableName() string {
	return "configuraciones_usuario"
}
