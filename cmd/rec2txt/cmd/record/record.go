package record

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/internal/app/audio"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/model"
	"rec2txt/internal/app/recorder"
	"rec2txt/internal/app/util/files"
	"rec2txt/internal/app/utils"
)

type options struct {
	outputDir string
	source    string
	minutes   int
	// limitSet is true when --duration was given explicitly.
	limitSet bool
}

// Cmd represents the record command
var Cmd = NewCmd()

// NewCmd builds the record command.
func NewCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record system audio or a microphone to a WAV file",
		Long: `Record system audio (the default sink's monitor) or any other PipeWire source
to <output-dir>/recording_<YYYYMMDD_HHMMSS>.wav using pw-record.

- Without --source the available sources are listed and one is chosen interactively
- Recording stops on Ctrl+C or after --duration minutes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.limitSet = cmd.Flags().Changed("duration")
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "output directory (default is <project root>/Recordings or recordings_dir)")
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "audio source (default: interactive selection, system output first)")
	cmd.Flags().IntVarP(&opts.minutes, "duration", "t", 0, "stop automatically after this many minutes")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	rt := cli.FromContext(ctx)
	logger := rt.Logger

	logger.Info("App started")

	if opts.limitSet && opts.minutes <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "--duration must be a positive number of minutes")
	}
	limit := time.Duration(opts.minutes) * time.Minute

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = rt.Settings.RecordingsDir
	}
	if err := files.CheckAndCreateDirectory(outputDir); err != nil {
		return err
	}
	logger.Info("Output directory: " + outputDir)

	rec := recorder.NewRecorder(logger)
	if err := rec.CheckAvailable(); err != nil {
		return err
	}

	source := opts.source
	if source == "" {
		var err error
		source, limit, err = chooseInteractively(ctx, cmd, logger, opts.limitSet, limit)
		if errors.Is(err, errors.ErrSelectionAborted) {
			logger.Info("Aborted")
			return nil
		}
		if err != nil {
			return err
		}
	}
	logger.Info("Audio source: " + source)

	session := model.NewRecordingSession(outputDir, source, limit, time.Now())
	logger.Info("Starting recording: " + filepath.Base(session.OutputPath))
	if limit > 0 {
		logger.Info("Time limit: " + utils.FormatDuration(limit))
	}
	logger.Info("Press Ctrl+C to stop recording...")

	result, err := rec.Record(ctx, session)
	if err != nil {
		return err
	}

	separator := strings.Repeat("=", 50)
	logger.Info(separator)
	logger.Info("Recording finished")
	logger.Info("Duration: " + utils.FormatDuration(result.Duration))
	if result.Created {
		logger.Info("Saved: " + result.Path)
		logger.Info("File size: " + utils.FormatSize(result.Size))
	} else {
		logger.Warn("File was not created")
	}
	logger.Info(separator)

	logger.Info("App finished")
	return nil
}

// chooseInteractively lists the sources, asks for one and, unless --duration was
// given, for an optional time limit.
func chooseInteractively(ctx context.Context, cmd *cobra.Command, logger *zap.Logger, limitSet bool, limit time.Duration) (string, time.Duration, error) {
	sources := audio.NewSourceLister(logger).ListSources(ctx)
	if len(sources) == 0 {
		return "", 0, errors.ErrNoAudioSources
	}

	prompter := recorder.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	defer prompter.Close()
	source, err := prompter.SelectSource(ctx, sources)
	if err != nil {
		return "", 0, err
	}

	if !limitSet {
		limit, err = prompter.AskLimit(ctx)
		if err != nil {
			return "", 0, err
		}
	}
	return source, limit, nil
}
