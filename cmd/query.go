package cmd

import (
	"fmt"
	"strings"

	"recitesync/internal/config"
	"recitesync/internal/mushaf"
	"recitesync/internal/timing"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <seconds>",
	Short: "Print the word being recited at a time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := parseSeconds(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()
		a, err := loadAssets(ctx)
		if err != nil {
			return err
		}

		loc, ok := a.Index.FindCurrentWord(sec)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: no word\n", sec)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: %s word %d (%s)\n",
			sec, config.VerseLabel(loc.Surah, loc.Ayah), loc.WordIndex, loc.Key())

		if len(a.Verses) > 0 {
			page := a.Page(loc.Ayah, loc.Ayah, false)
			if pos, ok := page.Locate(loc); ok {
				fmt.Fprintln(cmd.OutOrStdout(), page.Highlight(pos, loc))
			}
		}
		return nil
	},
}

var verseCmd = &cobra.Command{
	Use:   "verse <ayah>",
	Short: "Print a verse's start and end times",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ayah, err := parseVerse(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()
		a, err := loadAssets(ctx)
		if err != nil {
			return err
		}

		start, ok := a.Index.VerseStartTime(ayah)
		if !ok {
			return fmt.Errorf("verse %d not in timing table", ayah)
		}
		end, _ := a.Index.VerseEndTime(ayah)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %.3fs - %.3fs\n",
			config.VerseLabel(a.Index.Surah(), ayah), start, end)

		for _, v := range a.Verses {
			if v.Ayah == ayah {
				for _, s := range mushaf.SplitSegments(v, nil, false) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", joinWords(s))
				}
			}
		}
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next <seconds>",
	Short: "Print the start of the next verse after a time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTarget(cmd, args[0], (*timing.Index).FindNextVerse)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev <seconds>",
	Short: "Print where a skip-back from a time lands",
	Long: `Print where a skip-back lands: the start of the current verse when more
than 3 seconds of it have played, otherwise the start of the previous verse.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTarget(cmd, args[0], (*timing.Index).FindPreviousVerse)
	},
}

func printTarget(cmd *cobra.Command, arg string, find func(*timing.Index, float64) (float64, bool)) error {
	sec, err := parseSeconds(arg)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	a, err := loadAssets(ctx)
	if err != nil {
		return err
	}

	target, ok := find(a.Index, sec)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: no target\n", sec)
		return nil
	}
	label := ""
	if v, ok := a.Index.VerseAt(target); ok {
		label = " (" + config.VerseLabel(v.Surah, v.Ayah) + ")"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.3fs -> %.3fs%s\n", sec, target, label)
	return nil
}

func joinWords(s mushaf.Segment) string {
	words := make([]string, len(s.Words))
	for i, w := range s.Words {
		words[i] = w.Text
	}
	return strings.Join(words, " ")
}

func init() {
	rootCmd.AddCommand(locateCmd, verseCmd, nextCmd, prevCmd)
}
