package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/ponto/internal/db"
	"github.com/javiermolinar/ponto/internal/punch"
)

func openRepo(dbPath string) (punch.Repository, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
