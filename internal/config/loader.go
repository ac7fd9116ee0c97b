package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr                  string            `json:"addr" yaml:"addr" toml:"addr"`
	MaxConcurrentRequests int               `json:"max_concurrent_requests" yaml:"max_concurrent_requests" toml:"max_concurrent_requests"`
	MaxUploadBytes        int64             `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
	UploadTempDir         string            `json:"upload_temp_dir" yaml:"upload_temp_dir" toml:"upload_temp_dir"`
	ModelsDir             string            `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DefaultLanguage       string            `json:"default_language" yaml:"default_language" toml:"default_language"`
	Languages             map[string]string `json:"languages" yaml:"languages" toml:"languages"`
	FFmpegBin             string            `json:"ffmpeg_bin" yaml:"ffmpeg_bin" toml:"ffmpeg_bin"`
	RecognizerBin         string            `json:"recognizer_bin" yaml:"recognizer_bin" toml:"recognizer_bin"`
	OutputFormats         []string          `json:"output_formats" yaml:"output_formats" toml:"output_formats"`
	StageTimeoutSeconds   int               `json:"stage_timeout_seconds" yaml:"stage_timeout_seconds" toml:"stage_timeout_seconds"`
	LogLevel              string            `json:"log_level" yaml:"log_level" toml:"log_level"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	CORSAllowedMethods []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods"`
	CORSAllowedHeaders []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
