package service

import (
	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
)

// Actor is the authenticated identity acting on a request, built from JWT
// claims by the HTTP layer. A nil *Actor means anonymous.
type Actor struct {
	ID       uuid.UUID
	Username string
	Rol      models.Rol
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Rol == models.RolAdmin
}

// isOwnerOrAdmin is the single authorization predicate every mutating job and
// posting operation evaluates before touching state.
func isOwnerOrAdmin(actor *Actor, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin()
}
