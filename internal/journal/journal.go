package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

// Entry is one broadcast outcome, recorded after the dispatcher finishes.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	TriggeredBy string    `json:"triggered_by"`
	Audience    string    `json:"audience"`
	Channels    []string  `json:"channels"`
	Attempted   int       `json:"attempted"`
	Sent        int       `json:"sent"`
	Failed      int       `json:"failed"`
	Message     string    `json:"message"`
}

// Journal is an append-only JSON-lines audit file of broadcast deliveries.
// Writes are fsynced so the audit trail survives a crash.
type Journal struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

func New(filePath string) (*Journal, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Journal{
		filePath: filePath,
		file:     file,
	}, nil
}

// Append writes one entry and syncs it to disk.
func (j *Journal) Append(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Error("Journal: failed to marshal entry", zap.Error(err))
		return err
	}

	if _, err := j.file.WriteString(string(data) + "\n"); err != nil {
		logger.Log.Error("Journal: failed to write entry", zap.Error(err))
		return err
	}

	if err := j.file.Sync(); err != nil {
		logger.Log.Error("Journal: failed to sync", zap.Error(err))
		return err
	}

	return nil
}

// ReadAll returns every recorded entry, oldest first. Corrupt lines are
// skipped rather than failing the whole read.
func (j *Journal) ReadAll() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			logger.Log.Warn("Journal: skipping corrupt entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
