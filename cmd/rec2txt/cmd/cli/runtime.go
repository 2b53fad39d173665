// Package cli carries the settings and logger built by the root command to
// the subcommands through the command context.
package cli

import (
	"context"

	"go.uber.org/zap"
	"rec2txt/internal/app/logging"
	"rec2txt/internal/config"
)

// Runtime is shared by every subcommand of one invocation.
type Runtime struct {
	Settings   *config.Settings
	Logger     *zap.Logger
	ConfigPath string
}

type runtimeKey struct{}

// NewRuntime loads settings from configFile (or the default locations) and
// builds the logger. verbose forces debug output.
func NewRuntime(configFile string, verbose bool) (*Runtime, error) {
	path := configFile
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(verbose || settings.Log.Development)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("loaded config", zap.String("path", path))
	}

	return &Runtime{Settings: settings, Logger: logger, ConfigPath: path}, nil
}

func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// FromContext returns the Runtime stored by WithRuntime, or defaults with a
// no-op logger when there is none.
func FromContext(ctx context.Context) *Runtime {
	if ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
			return rt
		}
	}
	return &Runtime{Settings: config.DefaultSettings(), Logger: zap.NewNop()}
}
