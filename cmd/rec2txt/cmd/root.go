package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"rec2txt/cmd/rec2txt/cmd/cli"
	"rec2txt/cmd/rec2txt/cmd/export"
	"rec2txt/cmd/rec2txt/cmd/record"
	"rec2txt/cmd/rec2txt/cmd/transcribe"
	"rec2txt/cmd/rec2txt/cmd/version"
	"rec2txt/internal/app/errors"
	"rec2txt/internal/app/logging"
)

var (
	Verbose    bool
	ConfigFile string

	// logger reports command errors; replaced once the runtime is built.
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rec2txt",
	Short: "Record system audio or microphone input and transcribe it to text",
	Long: `Record system audio or microphone input and transcribe it to text.
- record: capture a PipeWire source to Recordings/recording_<timestamp>.wav
- transcribe: send recordings to the OpenAI Whisper API and save <name>.txt next to them
- export: list recordings and transcripts in an Excel sheet`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rt, err := cli.NewRuntime(ConfigFile, Verbose)
		if err != nil {
			return err
		}
		logger = rt.Logger
		cmd.SetContext(cli.WithRuntime(cmd.Context(), rt))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError logs err and, on a second line, its hint.
func reportError(err error) {
	if logger == nil {
		logger = logging.MustNewLogger(Verbose)
	}
	logger.Error(err.Error())
	if hint := errors.Hint(err); hint != "" {
		logger.Error(hint)
	}
	_ = logger.Sync()
}

func init() {
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "config file (default is ./rec2txt.yaml or $HOME/.rec2txt/config.yaml)")
}
