package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/acal-sync/internal/config"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
)

const lastRunFile = "last_run.json"

// RunRecord describes one finished sync.
type RunRecord struct {
	StartedAt time.Time       `json:"started_at"`
	Mode      string          `json:"mode"`
	Today     string          `json:"today"`
	DryRun    bool            `json:"dry_run"`
	Stats     reconcile.Stats `json:"stats"`
	Scraped   int             `json:"scraped"`
	UIDs      []string        `json:"uids"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// Storage handles persistence of run history
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating dataDir if needed.
func New(dataDir string) (*Storage, error) {
	dataDir = config.ExpandHome(dataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the directory holding the run files.
func (s *Storage) Dir() string {
	return s.dataDir
}

func (s *Storage) lastRunPath() string {
	return filepath.Join(s.dataDir, lastRunFile)
}

// LoadRun returns the previous run, or nil if there has been none.
func (s *Storage) LoadRun() (*RunRecord, error) {
	data, err := os.ReadFile(s.lastRunPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last run: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing last run: %w", err)
	}
	if rec.UIDs == nil {
		rec.UIDs = []string{}
	}
	return &rec, nil
}

// SaveRun replaces the stored run.
func (s *Storage) SaveRun(rec *RunRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding last run: %w", err)
	}

	tmp := s.lastRunPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}
	if err := os.Rename(tmp, s.lastRunPath()); err != nil {
		return fmt.Errorf("replacing last run: %w", err)
	}

	return nil
}
