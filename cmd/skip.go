package cmd

import (
	"fmt"

	"recitesync/internal/config"
	"recitesync/internal/playback"
	"recitesync/internal/player"

	"github.com/spf13/cobra"
)

var (
	startVerse int
	endVerse   int
)

var skipCmd = &cobra.Command{
	Use:   "skip forward|back <seconds>",
	Short: "Show where a skip lands without leaving the verse range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkip,
}

func init() {
	defaults := config.Default()
	skipCmd.Flags().IntVar(&startVerse, "start", defaults.StartVerse, "first verse of the range")
	skipCmd.Flags().IntVar(&endVerse, "end", defaults.EndVerse, "last verse of the range")
	rootCmd.AddCommand(skipCmd)
}

func runSkip(cmd *cobra.Command, args []string) error {
	sec, err := parseSeconds(args[1])
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	a, err := loadAssets(ctx)
	if err != nil {
		return err
	}

	defaults := config.Default()
	settings := defaults.PlaybackSettings
	state := playback.NewState(settings)
	state.SetStartVerse(startVerse)
	if err := state.SetEndVerse(endVerse); err != nil {
		return err
	}
	state.Duration = a.Index.Duration()

	sim := player.NewSim(state.Duration)
	ctrl := playback.NewController(a.Index, sim, state, defaults.Speeds)
	if err := ctrl.Scrub(sec); err != nil {
		return err
	}

	var act playback.Action
	switch args[0] {
	case "forward", "f":
		act, err = ctrl.SkipForward()
	case "back", "b":
		act, err = ctrl.SkipBackward()
	default:
		return fmt.Errorf("unknown direction %q (want forward or back)", args[0])
	}
	if err != nil {
		return err
	}

	if act.Outcome == playback.NoOp {
		fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: stays (range %d-%d)\n", sec, state.StartVerse, state.EndVerse)
		return nil
	}
	label := ""
	if v, ok := a.Index.VerseAt(act.Target); ok {
		label = " " + config.VerseLabel(v.Surah, v.Ayah)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.3fs -> %.3fs%s [%s]\n", sec, act.Target, label, act.Outcome)
	return nil
}
