package models

import (
	"time"

	"github.com/google/uuid"
)

type TipoContacto string

const (
	ContactoTelefono TipoContacto = "telefono"
	ContactoWhatsapp TipoContacto = "whatsapp"
	ContactoEmail    TipoContacto = "email"
	ContactoSitioWeb TipoContacto = "sitio_web"
)

// TiposContacto lists the accepted contact kinds, in the order they are
// reported back to the client on a bad request.
var TiposContacto = []TipoContacto{ContactoTelefono, ContactoWhatsapp, ContactoEmail, ContactoSitioWeb}

// TrabajoContacto is a contact method attached to a job. The composite primary
// key makes the (trabajo, tipo, valor) triple unique at the schema level.
type TrabajoContacto struct {
	TrabajoID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"trabajo_id"`
	Tipo      TipoContacto `gorm:"type:varchar(20);primaryKey" json:"tipo"`
	Valor     string       `gorm:"type:text;primaryKey" json:"valor"`
	CreatedAt time.Time    `json:"created_at"`
}

func (TrabajoContacto) TableName() string {
	return "trabajo_contactos"
}

func ValidTipoContacto(t TipoContacto) bool {
	for _, tipo := range TiposContacto {
		if t == tipo {
			return true
		}
	}
	return false
}
