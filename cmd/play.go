package cmd

import (
	"fmt"
	"time"

	"recitesync/internal/config"
	"recitesync/internal/timing"
	"recitesync/internal/worker"

	"github.com/spf13/cobra"
)

var (
	playStart       int
	playEnd         int
	speed           float64
	verseRepeat     int
	sectionRepeat   int
	showTranslation bool
	fast            bool
	scrollThrottle  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Simulate listening to a verse range with live word highlighting",
	Long: `Play the verse range against a simulated player clock, printing the word being
recited as it changes. Verse and section repeat counts of -1 repeat until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	defaults := config.Default()
	playCmd.Flags().IntVar(&playStart, "start", defaults.StartVerse, "first verse of the range")
	playCmd.Flags().IntVar(&playEnd, "end", defaults.EndVerse, "last verse of the range")
	playCmd.Flags().Float64Var(&speed, "speed", defaults.Speed, "playback rate (0.5-2.0)")
	playCmd.Flags().IntVar(&verseRepeat, "verse-repeat", defaults.VerseRepeat, "plays of each verse, -1 for endless")
	playCmd.Flags().IntVar(&sectionRepeat, "section-repeat", defaults.SectionRepeat, "plays of the range, -1 for endless")
	playCmd.Flags().BoolVar(&showTranslation, "show-translation", false, "interleave translation segments")
	playCmd.Flags().BoolVar(&fast, "fast", false, "run the clock faster than real time")
	playCmd.Flags().DurationVar(&scrollThrottle, "throttle", defaults.ScrollThrottle, "minimum interval between highlight updates")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playEnd < playStart {
		return fmt.Errorf("end verse %d is before start verse %d", playEnd, playStart)
	}
	ctx, stop := signalContext()
	defer stop()
	a, err := loadAssets(ctx)
	if err != nil {
		return err
	}

	defaults := config.Default()
	opts := worker.SimOptions{
		Index: a.Index,
		Settings: config.PlaybackSettings{
			StartVerse:    playStart,
			EndVerse:      playEnd,
			Speed:         speed,
			VerseRepeat:   verseRepeat,
			SectionRepeat: sectionRepeat,
		},
		Speeds:         defaults.Speeds,
		PollInterval:   defaults.PollInterval,
		ScrollThrottle: scrollThrottle,
		OnHighlight: func(loc timing.WordLocation, line string) {
			if line == "" {
				line = loc.Key()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", fmt.Sprintf("%d:%d", loc.Ayah, loc.WordIndex), line)
		},
	}
	if len(a.Verses) > 0 {
		opts.Page = a.Page(playStart, playEnd, showTranslation)
	}
	if fast {
		opts.Tick = time.Millisecond
		opts.ScrollThrottle = 0
	}

	res, err := worker.Simulate(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "finished at %.3fs after %d reports, %d actions\n",
		res.Final, res.Reports, len(res.Actions))
	return nil
}
