package playback

import (
	"errors"
	"fmt"

	"recitesync/internal/config"
	"recitesync/internal/timing"
)

// ErrInvalidRange is returned when a verse range would end before it starts.
var ErrInvalidRange = errors.New("end verse before start verse")

// State is the caller-owned playback state shared by the controller and
// whatever renders it. It is not safe for concurrent use.
type State struct {
	StartVerse  int
	EndVerse    int
	Playing     bool
	CurrentTime float64 // seconds
	Duration    float64 // seconds
	Speed       float64

	// VerseRepeat and SectionRepeat count total plays; config.Infinite
	// loops until the listener intervenes.
	VerseRepeat   int
	SectionRepeat int

	// Current is the most recently recited word; valid when HasCurrent.
	Current    timing.WordLocation
	HasCurrent bool

	lastAyah     int
	versePlays   int
	sectionPlays int
}

// NewState returns a stopped State seeded from settings.
func NewState(s config.PlaybackSettings) *State {
	st := &State{
		StartVerse:    s.StartVerse,
		EndVerse:      s.EndVerse,
		Speed:         s.Speed,
		VerseRepeat:   s.VerseRepeat,
		SectionRepeat: s.SectionRepeat,
	}
	if st.EndVerse < st.StartVerse {
		st.EndVerse = st.StartVerse
	}
	return st
}

// SetStartVerse moves the start of the section, dragging the end along
// when the new start reaches it.
func (s *State) SetStartVerse(v int) {
	s.StartVerse = v
	if v >= s.EndVerse {
		s.EndVerse = v
	}
	s.resetRepeats()
}

// SetEndVerse moves the end of the section.
func (s *State) SetEndVerse(v int) error {
	if v < s.StartVerse {
		return fmt.Errorf("set end verse %d (start %d): %w", v, s.StartVerse, ErrInvalidRange)
	}
	s.EndVerse = v
	s.resetRepeats()
	return nil
}

// InRange reports whether ayah lies within the section.
func (s *State) InRange(ayah int) bool {
	return ayah >= s.StartVerse && ayah <= s.EndVerse
}

func (s *State) resetRepeats() {
	s.lastAyah = 0
	s.versePlays = 0
	s.sectionPlays = 0
}
