package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSystemStorage writes the site below a root directory
type FileSystemStorage struct {
	rootDir string

	mu    sync.Mutex
	stats Stats
}

// NewFileSystemStorage creates a new filesystem storage
func NewFileSystemStorage(rootDir string) (*FileSystemStorage, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}
	return &FileSystemStorage{rootDir: rootDir}, nil
}

// WriteFile writes data to name below the root, creating parent directories
func (s *FileSystemStorage) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}

	target := filepath.Join(s.rootDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", clean, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", clean, err)
	}

	s.mu.Lock()
	s.stats.add(len(data))
	s.mu.Unlock()
	return nil
}

func (s *FileSystemStorage) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *FileSystemStorage) Location() string {
	return s.rootDir
}
