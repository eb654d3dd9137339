package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"recitesync/internal/config"
	"recitesync/internal/fetch"
	"recitesync/internal/ffmpeg"

	"github.com/spf13/cobra"
)

var (
	fetchURL   string
	fetchOut   string
	maxRetries int
	rateLimit  int
	tolerance  float64
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the recitation audio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := fetchOut
		if dest == "" {
			dest = filepath.Base(fetchURL)
		}
		ctx, stop := signalContext()
		defer stop()

		progress := func(read, total int64) {
			pct := 0.0
			if total > 0 {
				pct = math.Min(float64(read)/float64(total)*100, 100)
			}
			slog.Debug("download progress", "percent", fmt.Sprintf("%.1f%%", pct))
		}
		n, err := fetch.Download(ctx, fetchURL, dest, fetch.Options{
			MaxRetries:      maxRetries,
			RateLimitPerMin: rateLimit,
			Progress:        progress,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", dest, n)
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe <audio-file>",
	Short: "Check that the timing table fits the audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ffmpeg.Available() {
			return fmt.Errorf("ffprobe not found on PATH")
		}
		ctx, stop := signalContext()
		defer stop()
		a, err := loadAssets(ctx)
		if err != nil {
			return err
		}

		info := ffmpeg.LogMediaInfo(ctx, args[0])
		if info == nil {
			return fmt.Errorf("cannot probe %s", args[0])
		}
		cov := ffmpeg.CheckCoverage(info, a.Index.Duration())
		fmt.Fprintf(cmd.OutOrStdout(), "audio %.3fs, table ends %.3fs, trailing audio %.3fs\n",
			cov.AudioDuration, cov.TableEnd, cov.Tail)
		if !cov.OK(tolerance) {
			return fmt.Errorf("timing table runs %.3fs past the end of %s", cov.Overrun, args[0])
		}
		return nil
	},
}

func init() {
	defaults := config.Default()
	fetchCmd.Flags().StringVar(&fetchURL, "url", defaults.AudioURL, "audio URL")
	fetchCmd.Flags().StringVarP(&fetchOut, "output", "o", "", "destination path (default: URL base name)")
	fetchCmd.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "max download attempts")
	fetchCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.RateLimitPerMin, "download attempts per minute")
	probeCmd.Flags().Float64Var(&tolerance, "tolerance", 0.5, "seconds the table may run past the audio")
	rootCmd.AddCommand(fetchCmd, probeCmd)
}
