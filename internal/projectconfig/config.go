// Package projectconfig provides the ProjectConfig struct and loader for
// .pricing.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file searched for by Load.
const FileName = ".pricing.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultServerPort = 3000
	DefaultRateLimit  = 20.0
	DefaultRateBurst  = 40

	DefaultOutputFormat = "table"

	DefaultRecommendationLimit = 3
)

// CatalogConfig selects the model catalog.
type CatalogConfig struct {
	// Path of a catalog YAML document. Empty means the embedded catalog.
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	// RateLimit is the sustained API request rate per second.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	RateBurst int     `yaml:"rate_burst,omitempty"`
	NoBrowser *bool   `yaml:"no_browser,omitempty"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Color  *bool  `yaml:"color,omitempty"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	Limit int `yaml:"limit,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .pricing.yaml.
type ProjectConfig struct {
	Catalog   CatalogConfig   `yaml:"catalog,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Recommend RecommendConfig `yaml:"recommend,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Port:           DefaultServerPort,
			AllowedOrigins: []string{"*"},
			RateLimit:      DefaultRateLimit,
			RateBurst:      DefaultRateBurst,
			NoBrowser:      boolPtr(false),
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  boolPtr(true),
		},
		Recommend: RecommendConfig{
			Limit: DefaultRecommendationLimit,
		},
	}
}

// Load finds .pricing.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// A relative catalog path is resolved against the config file's directory.
func Load(startDir string) (*ProjectConfig, error) {
	path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(path)
}

// LoadFile loads an explicit configuration file over the defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if p := fileCfg.Catalog.Path; p != "" && !filepath.IsAbs(p) {
		fileCfg.Catalog.Path = filepath.Join(filepath.Dir(path), p)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .pricing.yaml (max 10 levels)
// and returns its path. Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Catalog.Path != "" {
		dst.Catalog.Path = src.Catalog.Path
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
	if src.Server.RateLimit != 0 {
		dst.Server.RateLimit = src.Server.RateLimit
	}
	if src.Server.RateBurst != 0 {
		dst.Server.RateBurst = src.Server.RateBurst
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}

	// Output
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Color != nil {
		dst.Output.Color = src.Output.Color
	}

	if src.Recommend.Limit != 0 {
		dst.Recommend.Limit = src.Recommend.Limit
	}
}

func boolPtr(b bool) *bool {
	return &b
}
