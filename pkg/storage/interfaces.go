package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Layout of a generated site, relative to the output root
const (
	PartialsDir  = "partials"
	SetupFile    = "js/docs-setup.json"
	ScenarioFile = "ptore2e/scenarios.spec.js"
	IndexFile    = "index.html"
)

// Backend types
const (
	TypeFilesystem = "filesystem"
	TypeS3         = "s3"
	TypeMemory     = "memory"
)

var (
	ErrInvalidPath = errors.New("invalid output path")
	ErrUnknownType = errors.New("unknown storage type")
)

// Writer receives the files of a generated site. Names are slash separated
// and relative to the output root.
type Writer interface {
	WriteFile(ctx context.Context, name string, data []byte) error

	// Stats reports what has been written so far
	Stats() Stats

	// Location describes where files end up, for logging
	Location() string
}

// Stats counts written files
type Stats struct {
	Files int
	Bytes int64
}

func (s *Stats) add(n int) {
	s.Files++
	s.Bytes += int64(n)
}

// Config for the output backend
type Config struct {
	Type string `yaml:"type"` // "filesystem", "s3", "memory"

	// Filesystem config
	FilesystemRoot string `yaml:"-"`

	// S3 config
	S3Endpoint     string `yaml:"endpoint"`
	S3Region       string `yaml:"region"`
	S3Bucket       string `yaml:"bucket"`
	S3Prefix       string `yaml:"prefix"`
	S3AccessKey    string `yaml:"accessKey"`
	S3SecretKey    string `yaml:"secretKey"`
	S3UsePathStyle bool   `yaml:"usePathStyle"`
	S3CreateBucket bool   `yaml:"createBucket"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:     TypeFilesystem,
		S3Region: "us-east-1",
	}
}

// Validate checks that the selected backend has what it needs
func (c Config) Validate() error {
	switch c.Type {
	case TypeFilesystem:
		if c.FilesystemRoot == "" {
			return fmt.Errorf("filesystem storage requires a root directory")
		}
	case TypeS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 storage requires a bucket")
		}
		if c.S3Region == "" {
			return fmt.Errorf("s3 storage requires a region")
		}
	case TypeMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	return nil
}

// New opens the backend selected by cfg.Type
func New(ctx context.Context, cfg Config) (Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case TypeS3:
		return NewS3Storage(ctx, cfg)
	case TypeMemory:
		return NewMemoryStorage(), nil
	default:
		return NewFileSystemStorage(cfg.FilesystemRoot)
	}
}

// PagePath is the partial a rendered page is written to
func PagePath(section, id string) string {
	return path.Join(PartialsDir, section, id+".html")
}

// WritePage writes the rendered HTML of one page
func WritePage(ctx context.Context, w Writer, section, id, html string) error {
	return w.WriteFile(ctx, PagePath(section, id), []byte(html))
}

// WriteJSON marshals v and writes it to name
func WriteJSON(ctx context.Context, w Writer, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return w.WriteFile(ctx, name, data)
}

// cleanName normalizes a relative output name and rejects names that would
// leave the output root
func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return clean, nil
}
