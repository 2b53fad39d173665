package export

import (
	"fmt"

	"github.com/spf13/cobra"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/internal/app"
	"rec2txt/internal/app/converter/export"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/model"
)

type options struct {
	dir            string
	outputFilePath string
	history        int
}

// Cmd represents the export command
var Cmd = NewCmd()

// NewCmd builds the export command.
func NewCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recordings and their transcripts to excel",
		Long: `Export recordings and their transcripts to excel

- One row per audio file in --dir, oldest first
- --history N adds a sheet with the N most recent jobs from the history database`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "recordings directory (default is <project root>/Recordings or recordings_dir)")
	cmd.Flags().StringVarP(&opts.outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	cmd.Flags().IntVar(&opts.history, "history", 0, "also export the N most recent history entries (requires history.driver)")

	cmd.MarkFlagRequired("outputFilePath")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	rt := cli.FromContext(ctx)

	dir := opts.dir
	if dir == "" {
		dir = rt.Settings.RecordingsDir
	}

	recordings, err := export.CollectRecordings(dir)
	if err != nil {
		return err
	}

	var history []model.Transcription
	if opts.history > 0 {
		if !rt.Settings.History.Enabled() {
			return errors.WithHint(
				errors.Wrap(errors.ErrInvalidConfig, "--history needs a history database"),
				"Set history.driver and history.dsn in the config file")
		}
		dao, err := app.InitializeTranscriptionDAO(rt.Settings, rt.Logger)
		if err != nil {
			return err
		}
		defer dao.Close()

		history, err = dao.GetRecent(ctx, opts.history)
		if err != nil {
			return err
		}
	}

	if err := export.ToExcel(recordings, history, opts.outputFilePath); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.outputFilePath, err)
	}

	rt.Logger.Info(fmt.Sprintf("export finished, exported file path: %v", opts.outputFilePath))
	return nil
}
