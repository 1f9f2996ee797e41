package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"neon-transcriber/cmd/transcriber/cmd/serve"
	"neon-transcriber/cmd/transcriber/cmd/transcribe"
	"neon-transcriber/cmd/transcriber/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcriber",
	Short: "Upload audio and get back its transcription",
	Long: `Serves a small web page and a POST /api/transcribe endpoint that forward
uploaded audio to a speech-to-text provider (OpenAI Whisper or Gemini).

The same provider can be used from the command line with "transcribe".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is configs/config.yaml when present)")
}
