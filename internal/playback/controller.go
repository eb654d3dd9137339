// Package playback applies section-repetition policy on top of the timing
// index: range-clamped skipping, looping a verse range, repeating verses,
// and forwarding the resulting seek/pause commands to the host player.
package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"recitesync/internal/config"
	"recitesync/internal/timing"
)

// ErrUnknownVerse is returned when a verse is not in the timing table.
var ErrUnknownVerse = errors.New("verse not in timing table")

// Player is the host audio player. All times are in seconds.
type Player interface {
	SeekTo(sec float64) error
	Play() error
	Pause() error
	SetPlaybackRate(rate float64) error
}

// Locator answers time and verse queries; *timing.Index satisfies it.
type Locator interface {
	FindCurrentWord(sec float64) (timing.WordLocation, bool)
	VerseAt(sec float64) (timing.VerseSegment, bool)
	VerseStartTime(ayah int) (float64, bool)
	FindNextVerse(sec float64) (float64, bool)
	FindPreviousVerse(sec float64) (float64, bool)
}

// Outcome describes what a controller call did to the player.
type Outcome int

const (
	NoOp     Outcome = iota
	Seeked           // moved to the computed target
	Clamped          // target fell outside the section; moved to its edge
	Replayed         // restarted the verse just finished
	Looped           // restarted the section and kept playing
	Stopped          // section finished; paused at its start
)

func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "no-op"
	case Seeked:
		return "seek"
	case Clamped:
		return "clamp"
	case Replayed:
		return "replay verse"
	case Looped:
		return "loop section"
	case Stopped:
		return "stop"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Action is the result of a navigation or time update.
type Action struct {
	Outcome Outcome
	Target  float64 // seconds; meaningful unless Outcome is NoOp
}

// Update is the result of feeding one player time report to the controller.
type Update struct {
	Word   timing.WordLocation
	Found  bool
	Action Action
}

// Controller drives a Player within the verse range held by a State.
type Controller struct {
	index  Locator
	player Player
	state  *State
	speeds config.SpeedRange
}

// NewController wires an index, a player and caller-owned state together.
func NewController(index Locator, player Player, state *State, speeds config.SpeedRange) *Controller {
	return &Controller{index: index, player: player, state: state, speeds: speeds}
}

// State returns the state the controller operates on.
func (c *Controller) State() *State { return c.state }

// SkipForward moves to the next verse without leaving the section. At or
// past the end verse it does nothing; a target beyond the end verse is
// clamped to the end verse's start.
func (c *Controller) SkipForward() (Action, error) {
	s := c.state
	now := s.CurrentTime

	if cur, ok := c.verseOf(now); ok && cur >= s.EndVerse {
		slog.Debug("skip forward refused at end verse", "verse", cur, "end", s.EndVerse)
		return Action{Outcome: NoOp}, nil
	}

	next, ok := c.index.FindNextVerse(now)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}
	if v, ok := c.verseOf(next); ok && v <= s.EndVerse {
		return c.navigate(next, Seeked)
	}

	edge, ok := c.index.VerseStartTime(s.EndVerse)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}
	return c.navigate(edge, Clamped)
}

// SkipBackward moves to the previous verse (or restarts the current one)
// without leaving the section. From before the start verse it jumps
// straight to the start verse.
func (c *Controller) SkipBackward() (Action, error) {
	s := c.state
	now := s.CurrentTime

	if cur, ok := c.verseOf(now); ok && cur < s.StartVerse {
		return c.seekVerse(s.StartVerse, Clamped)
	}

	prev, ok := c.index.FindPreviousVerse(now)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}
	if v, ok := c.verseOf(prev); ok && v >= s.StartVerse {
		return c.navigate(prev, Seeked)
	}
	return c.seekVerse(s.StartVerse, Clamped)
}

// OnTimeUpdate records a player time report and enforces the section:
// crossing into a new verse may replay the previous one, and passing the
// end verse loops or stops. A time with no audible word leaves the current
// highlight untouched.
func (c *Controller) OnTimeUpdate(sec float64) (Update, error) {
	s := c.state
	s.CurrentTime = sec

	loc, ok := c.index.FindCurrentWord(sec)
	if !ok {
		return Update{}, nil
	}
	s.Current = loc
	s.HasCurrent = true
	u := Update{Word: loc, Found: true}

	if !s.Playing {
		s.lastAyah = loc.Ayah
		return u, nil
	}

	if s.lastAyah != 0 && loc.Ayah > s.lastAyah && s.InRange(s.lastAyah) {
		s.versePlays++
		if repeatsLeft(s.VerseRepeat, s.versePlays) {
			act, err := c.replayVerse(s.lastAyah)
			u.Action = act
			return u, err
		}
		s.versePlays = 0
	}
	s.lastAyah = loc.Ayah

	if loc.Ayah > s.EndVerse {
		act, err := c.endSection()
		u.Action = act
		return u, err
	}
	return u, nil
}

// TogglePlay pauses a playing player or resumes a paused one.
func (c *Controller) TogglePlay() error {
	if c.state.Playing {
		if err := c.player.Pause(); err != nil {
			return fmt.Errorf("pause: %w", err)
		}
		c.state.Playing = false
		return nil
	}
	if err := c.player.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	c.state.Playing = true
	return nil
}

// SeekToVerse starts playback from the beginning of ayah.
func (c *Controller) SeekToVerse(ayah int) error {
	start, ok := c.index.VerseStartTime(ayah)
	if !ok {
		return fmt.Errorf("verse %d: %w", ayah, ErrUnknownVerse)
	}
	if _, err := c.navigate(start, Seeked); err != nil {
		return err
	}
	if err := c.player.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	c.state.Playing = true
	return nil
}

// Scrub moves to an arbitrary time, as when the listener drags the seek bar.
func (c *Controller) Scrub(sec float64) error {
	if sec < 0 {
		sec = 0
	}
	if c.state.Duration > 0 && sec > c.state.Duration {
		sec = c.state.Duration
	}
	_, err := c.navigate(sec, Seeked)
	return err
}

// SetSpeed snaps rate to the configured step, clamps it to the configured
// bounds, applies it to the player and returns the applied rate.
func (c *Controller) SetSpeed(rate float64) (float64, error) {
	r := c.speeds
	if r.Step > 0 {
		rate = r.Min + math.Round((rate-r.Min)/r.Step)*r.Step
	}
	rate = math.Max(r.Min, math.Min(r.Max, rate))
	rate = math.Round(rate*1000) / 1000

	if err := c.player.SetPlaybackRate(rate); err != nil {
		return c.state.Speed, fmt.Errorf("set playback rate %.2f: %w", rate, err)
	}
	c.state.Speed = rate
	return rate, nil
}

func (c *Controller) replayVerse(ayah int) (Action, error) {
	start, ok := c.index.VerseStartTime(ayah)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}
	slog.Debug("replaying verse", "verse", ayah, "play", c.state.versePlays+1)
	if err := c.seek(start); err != nil {
		return Action{Outcome: NoOp}, err
	}
	return Action{Outcome: Replayed, Target: start}, nil
}

func (c *Controller) endSection() (Action, error) {
	s := c.state
	start, ok := c.index.VerseStartTime(s.StartVerse)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}

	s.sectionPlays++
	if repeatsLeft(s.SectionRepeat, s.sectionPlays) {
		slog.Debug("looping section", "start", s.StartVerse, "end", s.EndVerse, "play", s.sectionPlays+1)
		if err := c.seek(start); err != nil {
			return Action{Outcome: NoOp}, err
		}
		s.lastAyah = 0
		return Action{Outcome: Looped, Target: start}, nil
	}

	slog.Debug("section finished", "start", s.StartVerse, "end", s.EndVerse)
	if err := c.player.Pause(); err != nil {
		return Action{Outcome: NoOp}, fmt.Errorf("pause: %w", err)
	}
	s.Playing = false
	if err := c.seek(start); err != nil {
		return Action{Outcome: NoOp}, err
	}
	s.resetRepeats()
	return Action{Outcome: Stopped, Target: start}, nil
}

// navigate is a listener-initiated seek; it restarts repeat counting.
func (c *Controller) navigate(target float64, o Outcome) (Action, error) {
	if err := c.seek(target); err != nil {
		return Action{Outcome: NoOp}, err
	}
	c.state.lastAyah = 0
	c.state.versePlays = 0
	return Action{Outcome: o, Target: target}, nil
}

func (c *Controller) seekVerse(ayah int, o Outcome) (Action, error) {
	start, ok := c.index.VerseStartTime(ayah)
	if !ok {
		return Action{Outcome: NoOp}, nil
	}
	return c.navigate(start, o)
}

func (c *Controller) seek(target float64) error {
	if err := c.player.SeekTo(target); err != nil {
		return fmt.Errorf("seek to %.3fs: %w", target, err)
	}
	c.state.CurrentTime = target
	return nil
}

// verseOf resolves the verse at sec, preferring the audible word and
// falling back to verse bounds for pauses between words.
func (c *Controller) verseOf(sec float64) (int, bool) {
	if loc, ok := c.index.FindCurrentWord(sec); ok {
		return loc.Ayah, true
	}
	if v, ok := c.index.VerseAt(sec); ok {
		return v.Ayah, true
	}
	return 0, false
}

func repeatsLeft(total, played int) bool {
	return total == config.Infinite || played < total
}
