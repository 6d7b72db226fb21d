package telegram

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// A timer that fires while its code is redeemed and the same digits are
// re-issued must not delete the fresh entry.
func TestLateTimerKeepsReissuedCode(t *testing.T) {
	registry := NewCodeRegistry(time.Hour)
	defer registry.Stop()

	primero := uuid.New()
	code := registry.Issue(primero)

	registry.mu.Lock()
	staleGen := registry.codes[code].gen
	registry.mu.Unlock()

	redeemed, ok := registry.Redeem(code)
	assert.True(t, ok)
	assert.Equal(t, primero, redeemed)

	// Re-issue the identical digits to another user, as Issue would after
	// the slot freed up.
	segundo := uuid.New()
	registry.mu.Lock()
	registry.lastGen++
	registry.codes[code] = codeEntry{userID: segundo, issuedAt: time.Now(), gen: registry.lastGen}
	registry.mu.Unlock()

	// The stale timer fires late
	registry.expire(code, staleGen)

	got, ok := registry.Redeem(code)
	assert.True(t, ok)
	assert.Equal(t, segundo, got)
}

func TestExpireRemovesMatchingGeneration(t *testing.T) {
	registry := NewCodeRegistry(time.Hour)
	defer registry.Stop()

	code := registry.Issue(uuid.New())

	registry.mu.Lock()
	gen := registry.codes[code].gen
	registry.mu.Unlock()

	registry.expire(code, gen)

	_, ok := registry.Redeem(code)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Live())
}
