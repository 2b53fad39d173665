package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"rec2txt/internal/app/api"
	"rec2txt/internal/app/api/openai"
	"rec2txt/internal/app/api/openai/whisper"
	"rec2txt/internal/app/audio"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/metrics"
	"rec2txt/internal/app/repository"
	"rec2txt/internal/app/repository/pg"
	"rec2txt/internal/app/repository/sqlite"
	"rec2txt/internal/config"
)

const schemaTimeout = 10 * time.Second

// provideRemoteTranscriber with openai's remote service conversion; apiKey comes from OPENAI_API_KEY
func provideRemoteTranscriber(settings *config.Settings, apiKey string) api.Transcriber {
	client := openai.NewClient(apiKey, settings.Transcription.BaseURL)
	return whisper.NewRemoteTranscriber(client, settings.Transcription.Model)
}

func provideTranscoder(logger *zap.Logger) audio.Transcoder {
	return audio.NewFFmpeg(logger)
}

func provideMetrics(settings *config.Settings) *metrics.Metrics {
	return metrics.NewMetrics(settings.Metrics.Textfile)
}

// provideTranscriptionDAO opens the configured history store, or returns nil
// when history is disabled.
func provideTranscriptionDAO(settings *config.Settings, logger *zap.Logger) (repository.TranscriptionDAO, error) {
	var (
		store *repository.CommonDB
		err   error
	)

	switch settings.History.Driver {
	case "":
		return nil, nil
	case repository.DriverSQLite:
		store, err = sqlite.NewTranscriptionDB(settings.History.DSN)
	case repository.DriverPostgres:
		store, err = pg.NewTranscriptionDB(settings.History.DSN)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown history driver %q", settings.History.Driver)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	logger.Debug("transcription history enabled", zap.String("driver", settings.History.Driver))
	return store, nil
}
