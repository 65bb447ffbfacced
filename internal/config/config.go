package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"biblioteca/internal/pipeline"
)

// CategoryAll is the filter value meaning "every category"; no source may use it.
const CategoryAll = "all"

var DefaultExtensions = []string{"csv", "tsv", "txt", "xlsx", "xlsm", "html", "htm"}

// Source is one configured catalog file. Base is a file base name relative to
// the data dir, an absolute path without extension, or an http(s) URL
// without extension.
type Source struct {
	Category   string   `yaml:"category"`
	Label      string   `yaml:"label"`
	Base       string   `yaml:"base"`
	Extensions []string `yaml:"extensions,omitempty"`
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

type Config struct {
	DataDir     string
	SourcesFile string
	Sources     []Source

	SourceTimeoutMs  int
	MaxParallel      int
	DelimiterSample  int
	HeaderScanRows   int
	HeaderStrategies string

	HTTPRateLimitRPS int
	HTTPRetries      int
	HTTPTimeoutMs    int

	ReloadIntervalSec int

	HTTPAddr        string
	HTTPCORSOrigins []string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:     getEnv("CATALOG_DATA_DIR", filepath.Join(cwd, "data")),
		SourcesFile: getEnv("CATALOG_SOURCES_FILE", ""),

		SourceTimeoutMs:  getEnvInt("CATALOG_SOURCE_TIMEOUT_MS", 15000),
		MaxParallel:      getEnvInt("CATALOG_MAX_PARALLEL", 4),
		DelimiterSample:  getEnvInt("CATALOG_DELIMITER_SAMPLE", 4096),
		HeaderScanRows:   getEnvInt("CATALOG_HEADER_SCAN_ROWS", 8),
		HeaderStrategies: getEnv("CATALOG_HEADER_STRATEGIES", "content,positional"),

		HTTPRateLimitRPS: getEnvInt("CATALOG_HTTP_RATE_LIMIT_RPS", 5),
		HTTPRetries:      getEnvInt("CATALOG_HTTP_RETRIES", 3),
		HTTPTimeoutMs:    getEnvInt("CATALOG_HTTP_TIMEOUT_MS", 10000),

		ReloadIntervalSec: getEnvInt("CATALOG_RELOAD_INTERVAL_SEC", 0),

		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		HTTPCORSOrigins: getEnvList("HTTP_CORS_ORIGINS", []string{"*"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if _, err := pipeline.ParseHeaderStrategies(cfg.HeaderStrategies); err != nil {
		return Config{}, fmt.Errorf("CATALOG_HEADER_STRATEGIES: %w", err)
	}

	cfg.Sources = DefaultSources()
	if cfg.SourcesFile != "" {
		sources, err := LoadSources(cfg.SourcesFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Sources = sources
	}

	if err := ValidateSources(cfg.Sources); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultSources are the two faculty catalogs of the library.
func DefaultSources() []Source {
	return []Source{
		{Category: "salud", Label: "Ciencias de la Salud", Base: "salud"},
		{Category: "tecnologias", Label: "Nuevas Tecnologías Interactivas", Base: "tecnologias"},
	}
}

// LoadSources reads a YAML sources file.
func LoadSources(path string) ([]Source, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var file sourcesFile
	if err := yaml.Unmarshal(blob, &file); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	return file.Sources, nil
}

func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("no catalog sources configured")
	}
	seen := map[string]struct{}{}
	for i, s := range sources {
		category := strings.TrimSpace(s.Category)
		if category == "" {
			return fmt.Errorf("source %d: missing category", i+1)
		}
		if strings.EqualFold(category, CategoryAll) {
			return fmt.Errorf("source %d: category %q is reserved", i+1, CategoryAll)
		}
		if strings.TrimSpace(s.Base) == "" {
			return fmt.Errorf("source %s: missing base", category)
		}
		if _, dup := seen[category]; dup {
			return fmt.Errorf("duplicate source category: %s", category)
		}
		seen[category] = struct{}{}
	}
	return nil
}

// SourceExtensions returns the extension preference list of s.
func (s Source) SourceExtensions() []string {
	if len(s.Extensions) == 0 {
		return DefaultExtensions
	}
	out := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

func (s Source) DisplayLabel() string {
	if strings.TrimSpace(s.Label) != "" {
		return s.Label
	}
	return s.Category
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
