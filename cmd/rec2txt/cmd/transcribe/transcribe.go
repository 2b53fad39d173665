package transcribe

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/internal/app"
	"rec2txt/internal/app/converter"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/config"
)

type options struct {
	language string
	dir      string
	all      bool
	progress bool
}

// Cmd represents the transcribe command
var Cmd = NewCmd()

// NewCmd builds the transcribe command.
func NewCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "transcribe [file]",
		Short: "Transcribe audio files with the OpenAI Whisper API",
		Long: `Transcribe audio files with the OpenAI Whisper API and save the text as
<name>.txt next to the audio file.

- Without a file the newest audio file in --dir is transcribed
- --all transcribes every .wav in --dir that has no .txt yet, oldest first
- Files of 25 MB or more are converted to 64 kbit/s MP3 with ffmpeg first
- Requires OPENAI_API_KEY (environment or .env)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "language hint, e.g. 'de' or 'en' (default: auto-detect)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory searched for recordings (default is <project root>/Recordings or recordings_dir)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "transcribe all untranscribed .wav files in --dir")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "force the batch progress bar even when stderr is not a terminal")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	ctx := cmd.Context()
	rt := cli.FromContext(ctx)
	logger := rt.Logger

	logger.Info("App started")

	apiKey, err := config.RequireOpenAIKey()
	if err != nil {
		return err
	}

	if opts.all && len(args) > 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "--all does not take a file argument")
	}

	language := opts.language
	if language == "" {
		language = rt.Settings.Transcription.Language
	}
	dir := opts.dir
	if dir == "" {
		dir = rt.Settings.RecordingsDir
	}

	conv, err := app.InitializeConverter(rt.Settings, apiKey, logger)
	if err != nil {
		return err
	}
	defer conv.Close()
	defer func() {
		if err := conv.FlushMetrics(); err != nil {
			logger.Warn("Failed to write metrics", zap.Error(err))
		}
	}()

	if opts.all {
		conv.SetProgress(converter.NewProgressManager(converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(opts.progress),
			Writer:  cmd.ErrOrStderr(),
		}))
		if _, err := conv.TranscribeBatch(ctx, dir, language); err != nil {
			return err
		}
		logger.Info("App finished")
		return nil
	}

	var text string
	if len(args) == 1 {
		path, absErr := filepath.Abs(args[0])
		if absErr != nil {
			return errors.Wrap(errors.ErrFileNotFound, args[0])
		}
		text, err = conv.TranscribeFile(ctx, path, language)
	} else {
		_, text, err = conv.TranscribeLatest(ctx, dir, language)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, text)

	logger.Info("App finished")
	return nil
}
