package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/uidocs/pkg/observability"
	"github.com/platinummonkey/uidocs/pkg/storage"
)

// configNames are looked up, in order, by LoadConfigFromDir
var configNames = []string{"uidocs.yaml", "uidocs.yml", ".uidocs.yaml", ".uidocs.yml"}

// Config holds the settings of one generator run
type Config struct {
	// Title of the generated documentation site
	Title string `yaml:"title"`

	// SourceDir is the directory section patterns are resolved against
	SourceDir string `yaml:"sourceDir"`

	// OutputDir receives the generated site when publishing to the filesystem
	OutputDir string `yaml:"outputDir"`

	// Storage selects where the site is written
	Storage storage.Config `yaml:"storage"`

	// Link and markup settings
	HTML5Mode           bool   `yaml:"html5Mode"`
	LinkPrefix          string `yaml:"linkPrefix"`
	HighlightCodeFences bool   `yaml:"highlightCodeFences"`
	NotesPrefix         string `yaml:"notesPrefix"`

	// EditLink and SourceLink are URL templates with {file}, {line} and
	// {codeline} placeholders
	EditLink   string `yaml:"editLink"`
	SourceLink string `yaml:"sourceLink"`

	// Data files
	ErrorFile       string `yaml:"errorFile"`
	IgnoreWordsFile string `yaml:"ignoreWordsFile"`

	// ScenarioURLPrefix is where the end-to-end scenarios navigate to
	ScenarioURLPrefix string `yaml:"scenarioURLPrefix"`

	// SourceCacheSize bounds the number of included files kept in memory
	SourceCacheSize int `yaml:"sourceCacheSize"`

	// MetricsFile receives the run metrics; empty disables them
	MetricsFile string `yaml:"metricsFile"`

	Log LogConfig `yaml:"log"`

	Sections []Section `yaml:"sections"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Section is one documentation area and the files it is read from
type Section struct {
	Name  string   `yaml:"name"`
	Title string   `yaml:"title"`
	API   bool     `yaml:"api"`
	Paths []string `yaml:"paths"`
}

// DefaultConfig returns the default configuration. It has no sections.
func DefaultConfig() *Config {
	return &Config{
		Title:             "API Documentation",
		SourceDir:         ".",
		OutputDir:         "docs",
		LinkPrefix:        "#!",
		NotesPrefix:       "/notes/",
		ScenarioURLPrefix: "http://localhost:9000/docs/#!/",
		SourceCacheSize:   256,
		Storage:           storage.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: observability.FormatText,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies UIDOCS_*
// environment overrides. A .env file next to the configuration file is
// loaded first; variables already set in the environment win over it.
// An empty path starts from DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir searches for a config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	return nil, fmt.Errorf("no config file found in %s (looked for %s)", dir, strings.Join(configNames, ", "))
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides settings from environment variables
func (c *Config) applyEnv() {
	c.Title = getEnv("UIDOCS_TITLE", c.Title)
	c.SourceDir = getEnv("UIDOCS_SOURCE_DIR", c.SourceDir)
	c.OutputDir = getEnv("UIDOCS_OUTPUT_DIR", c.OutputDir)

	c.HTML5Mode = getEnvBool("UIDOCS_HTML5_MODE", c.HTML5Mode)
	c.LinkPrefix = getEnv("UIDOCS_LINK_PREFIX", c.LinkPrefix)
	c.HighlightCodeFences = getEnvBool("UIDOCS_HIGHLIGHT_CODE_FENCES", c.HighlightCodeFences)
	c.NotesPrefix = getEnv("UIDOCS_NOTES_PREFIX", c.NotesPrefix)

	c.EditLink = getEnv("UIDOCS_EDIT_LINK", c.EditLink)
	c.SourceLink = getEnv("UIDOCS_SOURCE_LINK", c.SourceLink)

	c.ErrorFile = getEnv("UIDOCS_ERROR_FILE", c.ErrorFile)
	c.IgnoreWordsFile = getEnv("UIDOCS_IGNORE_WORDS_FILE", c.IgnoreWordsFile)
	c.ScenarioURLPrefix = getEnv("UIDOCS_SCENARIO_URL_PREFIX", c.ScenarioURLPrefix)
	c.SourceCacheSize = getEnvInt("UIDOCS_SOURCE_CACHE_SIZE", c.SourceCacheSize)
	c.MetricsFile = getEnv("UIDOCS_METRICS_FILE", c.MetricsFile)

	c.Storage.Type = getEnv("UIDOCS_STORAGE_TYPE", c.Storage.Type)
	c.Storage.S3Endpoint = getEnv("UIDOCS_S3_ENDPOINT", c.Storage.S3Endpoint)
	c.Storage.S3Region = getEnv("UIDOCS_S3_REGION", c.Storage.S3Region)
	c.Storage.S3Bucket = getEnv("UIDOCS_S3_BUCKET", c.Storage.S3Bucket)
	c.Storage.S3Prefix = getEnv("UIDOCS_S3_PREFIX", c.Storage.S3Prefix)
	c.Storage.S3AccessKey = getEnv("UIDOCS_S3_ACCESS_KEY", c.Storage.S3AccessKey)
	c.Storage.S3SecretKey = getEnv("UIDOCS_S3_SECRET_KEY", c.Storage.S3SecretKey)
	c.Storage.S3UsePathStyle = getEnvBool("UIDOCS_S3_USE_PATH_STYLE", c.Storage.S3UsePathStyle)

	c.Log.Level = getEnv("UIDOCS_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("UIDOCS_LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.Type == storage.TypeFilesystem && c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := c.StorageConfig().Validate(); err != nil {
		return fmt.Errorf("invalid storage: %w", err)
	}
	if !c.HTML5Mode && c.LinkPrefix == "" {
		return fmt.Errorf("link prefix is required when html5 mode is off")
	}
	if c.SourceCacheSize < 0 {
		return fmt.Errorf("source cache size must not be negative: %d", c.SourceCacheSize)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case observability.FormatText, observability.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Log.Format)
	}

	if len(c.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.Name == "" {
			return fmt.Errorf("section %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate section: %s", s.Name)
		}
		seen[s.Name] = true
		if len(s.Paths) == 0 {
			return fmt.Errorf("section %s has no paths", s.Name)
		}
	}

	return nil
}

// LogLevel returns the configured log level
func (c *Config) LogLevel() observability.LogLevel {
	return observability.ParseLogLevel(c.Log.Level)
}

// StorageConfig returns the storage settings with the filesystem root taken
// from OutputDir
func (c *Config) StorageConfig() storage.Config {
	sc := c.Storage
	sc.FilesystemRoot = c.OutputDir
	return sc
}

// APISections returns the names of the sections marked as API reference
func (c *Config) APISections() map[string]bool {
	apis := make(map[string]bool)
	for _, s := range c.Sections {
		if s.API {
			apis[s.Name] = true
		}
	}
	return apis
}

// EditLinkFunc returns a builder for "improve this doc" links, or nil when no
// template is configured
func (c *Config) EditLinkFunc() func(file string, line, codeline int) string {
	return linkFunc(c.EditLink)
}

// SourceLinkFunc returns a builder for "view source" links, or nil when no
// template is configured
func (c *Config) SourceLinkFunc() func(file string, line, codeline int) string {
	return linkFunc(c.SourceLink)
}

func linkFunc(template string) func(file string, line, codeline int) string {
	if template == "" {
		return nil
	}
	return func(file string, line, codeline int) string {
		return strings.NewReplacer(
			"{file}", filepath.ToSlash(file),
			"{line}", strconv.Itoa(line),
			"{codeline}", strconv.Itoa(codeline),
		).Replace(template)
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
