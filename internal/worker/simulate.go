package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"recitesync/internal/config"
	"recitesync/internal/mushaf"
	"recitesync/internal/playback"
	"recitesync/internal/player"
	"recitesync/internal/throttle"
	"recitesync/internal/timing"

	"golang.org/x/sync/errgroup"
)

// HighlightFunc receives the word being recited and, when a page is laid
// out, the rendered segment holding it. It may run on a timer goroutine.
type HighlightFunc func(loc timing.WordLocation, line string)

// SimOptions configures a simulated listening session.
type SimOptions struct {
	Index    *timing.Index
	Page     *mushaf.Page // optional
	Settings config.PlaybackSettings
	Speeds   config.SpeedRange

	// PollInterval is how much audio time passes per player report at
	// speed 1.0. Tick is the wall-clock time between reports; it defaults
	// to PollInterval and can be shortened to run faster than real time.
	PollInterval   time.Duration
	Tick           time.Duration
	ScrollThrottle time.Duration

	// Duration of the audio in seconds; defaults to the end of the table.
	Duration float64

	OnHighlight HighlightFunc
}

// SimResult summarizes a finished session.
type SimResult struct {
	Reports    int
	Actions    []playback.Action
	Highlights int
	Final      float64 // player position when the session ended
	Ended      bool    // the audio ran out before the section finished
}

// Simulate plays the configured section against a virtual-clock player
// until the section finishes, the audio ends or ctx is cancelled. One
// goroutine produces player report ticks; another advances the player,
// feeds the controller and throttles highlight output.
func Simulate(ctx context.Context, opts SimOptions) (*SimResult, error) {
	if opts.Index == nil || opts.Index.Len() == 0 {
		return nil, errors.New("simulate: empty timing table")
	}
	if opts.PollInterval <= 0 {
		return nil, fmt.Errorf("simulate: poll interval must be positive, got %v", opts.PollInterval)
	}
	if opts.Tick <= 0 {
		opts.Tick = opts.PollInterval
	}
	if opts.Duration <= 0 {
		opts.Duration = opts.Index.Duration()
	}

	sim := player.NewSim(opts.Duration)
	defer sim.Close()

	state := playback.NewState(opts.Settings)
	state.Duration = opts.Duration
	ctrl := playback.NewController(opts.Index, sim, state, opts.Speeds)

	if _, err := ctrl.SetSpeed(opts.Settings.Speed); err != nil {
		return nil, err
	}
	if err := ctrl.SeekToVerse(state.StartVerse); err != nil {
		return nil, err
	}
	slog.Info("session started",
		"start", config.VerseLabel(opts.Index.Surah(), state.StartVerse),
		"end", config.VerseLabel(opts.Index.Surah(), state.EndVerse),
		"speed", state.Speed)

	res := &SimResult{}
	var mu sync.Mutex
	hl := throttle.New(opts.ScrollThrottle, func(loc timing.WordLocation) {
		line := ""
		if opts.Page != nil {
			if pos, ok := opts.Page.Locate(loc); ok {
				line = opts.Page.Highlight(pos, loc)
			}
		}
		mu.Lock()
		res.Highlights++
		mu.Unlock()
		if opts.OnHighlight != nil {
			opts.OnHighlight(loc, line)
		}
	})
	defer hl.Stop()

	ticks := make(chan struct{})
	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(opts.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-done:
				return nil
			case <-ticker.C:
			}
			select {
			case ticks <- struct{}{}:
			case <-done:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var last string
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticks:
			}

			pos := sim.Advance(opts.PollInterval)
			u, err := ctrl.OnTimeUpdate(pos)
			if err != nil {
				return err
			}
			res.Reports++

			if u.Found && u.Word.Key() != last {
				last = u.Word.Key()
				hl.Submit(u.Word)
			}
			if u.Action.Outcome != playback.NoOp {
				slog.Debug("playback action", "action", u.Action.Outcome, "target", u.Action.Target)
				res.Actions = append(res.Actions, u.Action)
			}

			if !sim.Playing() {
				res.Ended = sim.Ended()
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	hl.Flush()

	res.Final = sim.Position()
	slog.Info("session finished", "reports", res.Reports, "actions", len(res.Actions), "ended", res.Ended)

	mu.Lock()
	out := *res
	mu.Unlock()
	return &out, nil
}
