package telegram

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

// CodeRegistry maps short-lived 6-digit verification codes to user ids. Codes
// are single-use and expire after the configured TTL; each entry self-removes
// through its own one-shot timer. The map is process-local: a restart drops
// every pending code.
//
// Issuing a second code for a user before the first expires leaves both live.
type CodeRegistry struct {
	mu      sync.Mutex
	codes   map[string]codeEntry
	timers  map[string]*time.Timer
	ttl     time.Duration
	lastGen uint64
}

type codeEntry struct {
	userID   uuid.UUID
	issuedAt time.Time
	gen      uint64
}

// NewCodeRegistry creates a registry with the given expiry window.
func NewCodeRegistry(ttl time.Duration) *CodeRegistry {
	return &CodeRegistry{
		codes:  make(map[string]codeEntry),
		timers: make(map[string]*time.Timer),
		ttl:    ttl,
	}
}

// Issue generates a 6-digit code for userID, unique among the currently-live
// codes, and schedules its expiry.
func (r *CodeRegistry) Issue(userID uuid.UUID) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code string
	for {
		code = fmt.Sprintf("%06d", 100000+rand.IntN(900000))
		if _, taken := r.codes[code]; !taken {
			break
		}
	}

	r.lastGen++
	gen := r.lastGen
	r.codes[code] = codeEntry{userID: userID, issuedAt: time.Now(), gen: gen}
	r.timers[code] = time.AfterFunc(r.ttl, func() {
		r.expire(code, gen)
	})

	logger.Log.Debug("Verification code issued",
		zap.String("user_id", userID.String()),
		zap.Duration("ttl", r.ttl),
	)

	return code
}

// Redeem looks the code up and removes it atomically. The second return is
// false for unknown or expired codes.
func (r *CodeRegistry) Redeem(code string) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.codes[code]
	if !ok {
		return uuid.Nil, false
	}

	delete(r.codes, code)
	if timer, ok := r.timers[code]; ok {
		timer.Stop()
		delete(r.timers, code)
	}

	logger.Log.Info("Verification code redeemed",
		zap.String("user_id", entry.userID.String()),
	)

	return entry.userID, true
}

// Live returns the number of currently-live codes.
func (r *CodeRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.codes)
}

// Stop cancels every pending expiry timer and drops all live codes.
func (r *CodeRegistry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, timer := range r.timers {
		timer.Stop()
		delete(r.timers, code)
	}
	r.codes = make(map[string]codeEntry)
}

// expire removes the code only when it still belongs to the issuance that
// armed the timer. A fired timer can lose the lock race against Redeem plus a
// re-Issue of the same digits; the generation check keeps it from deleting
// the fresh entry.
func (r *CodeRegistry) expire(code string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.codes[code]
	if !ok || entry.gen != gen {
		return
	}
	delete(r.codes, code)
	delete(r.timers, code)

	logger.Log.Debug("Verification code expired")
}
