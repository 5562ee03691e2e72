package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/walexbarnes/accountabillabuddy/internal/ui"
)

const Version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "abb",
	Short:         "Accountabillabuddy — personal daily-habit tracker",
	Long:          "Accountabillabuddy logs per-day metrics (minutes, ratings, a mood score) into a local table and lets you revisit and edit any prior day.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLogCmd(),
		newSetCmd(),
		newShowCmd(),
		newRecentCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
