package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"rec2txt/internal/app/errors"
)

// Settings is the optional YAML configuration shared by all subcommands.
// Every field has a usable zero value or default, so a missing file is fine.
type Settings struct {
	RecordingsDir string              `yaml:"recordings_dir"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	History       HistoryConfig       `yaml:"history"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Log           LogConfig           `yaml:"log"`
}

// TranscriptionConfig configures the remote speech-to-text client.
type TranscriptionConfig struct {
	Model    string `yaml:"model" validate:"required"`
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
	Language string `yaml:"language" validate:"omitempty,min=2,max=8"`
}

// HistoryConfig enables the transcription history database when Driver is set.
type HistoryConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=sqlite3 postgres"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// Enabled reports whether jobs should be recorded.
func (h HistoryConfig) Enabled() bool {
	return h.Driver != ""
}

// MetricsConfig points at a node-exporter textfile; empty disables metrics output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Development bool `yaml:"development"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		RecordingsDir: DefaultRecordingsDir(),
		Transcription: TranscriptionConfig{
			Model: "whisper-1",
		},
	}
}

// GetDefaultConfigPath returns the first existing default config file,
// or "" when there is none.
func GetDefaultConfigPath() string {
	candidates := []string{"rec2txt.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".rec2txt", "config.yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadSettings reads path over the defaults. An empty path means defaults only.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "failed to parse config file %s: %v", path, err)
	}

	settings.RecordingsDir = expandHome(settings.RecordingsDir)
	settings.Metrics.Textfile = expandHome(settings.Metrics.Textfile)
	if settings.History.Driver == "sqlite3" {
		settings.History.DSN = expandHome(settings.History.DSN)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct tags and reports every failing field on one line.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Namespace())
		field = strings.TrimPrefix(field, "settings.")

		switch fieldError.Tag() {
		case "required", "required_with":
			problems = append(problems, field+" is required")
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s]", field, fieldError.Param()))
		case "url":
			problems = append(problems, field+" must be a valid URL")
		case "min":
			problems = append(problems, field+" is too short")
		case "max":
			problems = append(problems, field+" is too long")
		default:
			problems = append(problems, field+" is invalid")
		}
	}

	return errors.Wrap(errors.ErrInvalidConfig, strings.Join(problems, "; "))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
