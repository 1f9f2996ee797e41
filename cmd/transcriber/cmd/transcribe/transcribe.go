package transcribe

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"neon-transcriber/internal/app"
	"neon-transcriber/internal/app/converter"
	"neon-transcriber/internal/config"
	"neon-transcriber/internal/logging"
)

var (
	outDir   string
	parallel int
	progress bool
)

func init() {
	Cmd.Flags().StringVarP(&outDir, "out", "o", "", "write each transcription to DIR/<name>.txt")
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "number of files transcribed concurrently")
	Cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar even when stderr is not a terminal")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe FILE...",
	Short: "Transcribe local audio files with the configured provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.ResolvePath(cmd.Flag("config").Value.String()))
		if err != nil {
			return err
		}

		transcriber, err := app.InitializeTranscriber(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		logger := logging.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
		showProgress := converter.ShouldShowProgress(progress)
		if showProgress {
			// keep log lines from tearing through the bar
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		}

		c := converter.NewConverter(transcriber, converter.ProgressConfig{Enabled: showProgress, Writer: os.Stderr}, logger)
		results, err := c.ConvertFiles(cmd.Context(), args, outDir, parallel)
		if err != nil {
			return err
		}

		return report(cmd, results)
	},
}

func report(cmd *cobra.Command, results []converter.Result) error {
	out := cmd.OutOrStdout()
	var failed []error
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
			continue
		}
		if r.OutputPath != "" {
			fmt.Fprintf(out, "%s -> %s\n", r.Path, r.OutputPath)
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", r.Path)
		}
		fmt.Fprintln(out, r.Text)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(failed), len(results), errors.Join(failed...))
	}
	return nil
}
