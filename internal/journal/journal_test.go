package journal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobsoutcuba/backend/internal/journal"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	m.Run()
}

func newJournal(t *testing.T) (*journal.Journal, string) {
	path := filepath.Join(t.TempDir(), "broadcast.journal")
	j, err := journal.New(path)
	assert.NoError(t, err)
	return j, path
}

func entry(triggeredBy string, sent int) journal.Entry {
	return journal.Entry{
		Timestamp:   time.Now(),
		TriggeredBy: triggeredBy,
		Audience:    "todos",
		Channels:    []string{"telegram"},
		Attempted:   sent,
		Sent:        sent,
		Message:     "Oferta nueva disponible",
	}
}

func TestAppendAndReadAll(t *testing.T) {
	j, _ := newJournal(t)
	defer j.Close()

	assert.NoError(t, j.Append(entry("admin", 3)))
	assert.NoError(t, j.Append(entry("root", 5)))

	entries, err := j.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "admin", entries[0].TriggeredBy)
	assert.Equal(t, "root", entries[1].TriggeredBy)
	assert.Equal(t, 5, entries[1].Sent)
}

func TestReadAllSurvivesReopen(t *testing.T) {
	j, path := newJournal(t)
	assert.NoError(t, j.Append(entry("admin", 1)))
	assert.NoError(t, j.Close())

	reopened, err := journal.New(path)
	assert.NoError(t, err)
	defer reopened.Close()

	assert.NoError(t, reopened.Append(entry("admin", 2)))

	entries, err := reopened.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReadAllSkipsCorruptLines(t *testing.T) {
	j, path := newJournal(t)
	defer j.Close()

	assert.NoError(t, j.Append(entry("admin", 1)))

	// Simulate a torn write between two valid entries
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	assert.NoError(t, err)
	_, err = f.WriteString("{\"triggered_by\": \"trunc\n")
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	assert.NoError(t, j.Append(entry("root", 2)))

	entries, err := j.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "admin", entries[0].TriggeredBy)
	assert.Equal(t, "root", entries[1].TriggeredBy)
}

func TestEmptyJournal(t *testing.T) {
	j, _ := newJournal(t)
	defer j.Close()

	entries, err := j.ReadAll()
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
