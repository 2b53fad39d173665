//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"rec2txt/internal/app/converter"
	"rec2txt/internal/app/repository"
	"rec2txt/internal/config"
)

func InitializeConverter(settings *config.Settings, apiKey string, logger *zap.Logger) (*converter.Converter, error) {
	wire.Build(
		converter.NewConverter,
		provideRemoteTranscriber,
		provideTranscoder,
		provideTranscriptionDAO,
		provideMetrics,
	)
	return &converter.Converter{}, nil
}

func InitializeTranscriptionDAO(settings *config.Settings, logger *zap.Logger) (repository.TranscriptionDAO, error) {
	wire.Build(provideTranscriptionDAO)
	return nil, nil
}
