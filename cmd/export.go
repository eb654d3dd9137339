package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"recitesync/internal/subtitle"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportMode   string
	exportStart  int
	exportEnd    int
	exportCPL    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the timing table as SRT captions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := subtitle.ParseMode(exportMode)
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()
		a, err := loadAssets(ctx)
		if err != nil {
			return err
		}

		srt := subtitle.Render(a.Index, a.Verses, subtitle.Options{
			Mode:       mode,
			StartVerse: exportStart,
			EndVerse:   exportEnd,
			MaxCPL:     exportCPL,
		})
		if srt == "" {
			return fmt.Errorf("no cues in verse range %d-%d", exportStart, exportEnd)
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), srt)
			return err
		}
		if err := os.WriteFile(exportOutput, []byte(srt), 0644); err != nil {
			return fmt.Errorf("write SRT file: %w", err)
		}
		slog.Info("SRT file saved", "path", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output SRT path (default: stdout)")
	exportCmd.Flags().StringVar(&exportMode, "mode", string(subtitle.PerVerse), "cue granularity: verse or word")
	exportCmd.Flags().IntVar(&exportStart, "start", 0, "first verse (0 for the first in the table)")
	exportCmd.Flags().IntVar(&exportEnd, "end", 0, "last verse (0 for the last in the table)")
	exportCmd.Flags().IntVar(&exportCPL, "cpl", 42, "characters per line before wrapping, 0 to disable")
	rootCmd.AddCommand(exportCmd)
}
