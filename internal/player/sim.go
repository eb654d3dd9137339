// Package player provides a virtual-clock audio player that stands in for a
// host media element when driving the playback controller from the CLI or
// from tests.
package player

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrClosed is returned by a player after Close.
var ErrClosed = errors.New("player closed")

// Sim is a simulated player. Its position only moves when Advance is
// called, by wall time multiplied by the playback rate.
type Sim struct {
	mu       sync.Mutex
	position float64
	duration float64
	rate     float64
	playing  bool
	ended    bool
	closed   bool
	seeks    int
}

// NewSim returns a paused player over duration seconds of audio. A zero
// duration means unbounded.
func NewSim(duration float64) *Sim {
	return &Sim{duration: duration, rate: 1}
}

func (s *Sim) SeekTo(sec float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if sec < 0 || (s.duration > 0 && sec > s.duration) {
		return fmt.Errorf("seek to %.3fs outside [0, %.3f]", sec, s.duration)
	}
	s.position = sec
	s.ended = false
	s.seeks++
	return nil
}

func (s *Sim) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.ended {
		s.position = 0
		s.ended = false
	}
	s.playing = true
	return nil
}

func (s *Sim) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.playing = false
	return nil
}

func (s *Sim) SetPlaybackRate(rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if rate <= 0 {
		return fmt.Errorf("invalid playback rate %v", rate)
	}
	s.rate = rate
	return nil
}

// Advance moves the clock by d of wall time and returns the new position.
// Reaching the end of the audio pauses the player.
func (s *Sim) Advance(d time.Duration) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing || s.closed {
		return s.position
	}
	s.position += d.Seconds() * s.rate
	if s.duration > 0 && s.position >= s.duration {
		s.position = s.duration
		s.playing = false
		s.ended = true
	}
	return s.position
}

// Position returns the current time in seconds.
func (s *Sim) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Playing reports whether the clock is running.
func (s *Sim) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Ended reports whether playback ran off the end of the audio.
func (s *Sim) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Seeks returns how many seeks have been applied.
func (s *Sim) Seeks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeks
}

// Close makes every later command fail.
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.playing = false
	return nil
}
