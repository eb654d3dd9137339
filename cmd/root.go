package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"recitesync/internal/config"
	"recitesync/internal/worker"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	timingsPath      string
	textPath         string
	translationsPath string
	dbPath           string
	surah            int
)

var rootCmd = &cobra.Command{
	Use:   "recitesync",
	Short: "Follow a Quran recitation word by word from its timing table",
	Long: `Recitesync answers "which word is being recited now" from a per-word timing
table, navigates between verses within a chosen range, simulates a listening
session with verse and section repetition, and exports captions.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&timingsPath, "timings", "t", "", "recitation timing JSON asset")
	rootCmd.PersistentFlags().StringVar(&textPath, "text", "", "verse text JSON asset (optional)")
	rootCmd.PersistentFlags().StringVar(&translationsPath, "translations", "", "word-by-word translation JSON asset (optional)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "read timings from this SQLite catalog instead of --timings")
	rootCmd.PersistentFlags().IntVar(&surah, "surah", defaults.Surah, "chapter to read from the catalog")
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func loadAssets(ctx context.Context) (*worker.Assets, error) {
	return worker.LoadAssets(ctx, worker.AssetPaths{
		Timings:      timingsPath,
		DB:           dbPath,
		Surah:        surah,
		Text:         textPath,
		Translations: translationsPath,
	})
}

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return v, nil
}

func parseVerse(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid verse number %q", s)
	}
	return v, nil
}
