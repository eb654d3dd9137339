package config

import "time"

// Infinite is the repeat count meaning "loop until stopped".
const Infinite = -1

// PlaybackSettings holds the listener-adjustable playback parameters.
type PlaybackSettings struct {
	StartVerse    int
	EndVerse      int
	Speed         float64
	VerseRepeat   int
	SectionRepeat int
}

// SpeedRange bounds the playback-rate control.
type SpeedRange struct {
	Min  float64
	Max  float64
	Step float64
}

// Config holds the full application configuration.
type Config struct {
	PlaybackSettings

	Surah           int
	AudioURL        string
	Speeds          SpeedRange
	PollInterval    time.Duration
	ScrollThrottle  time.Duration
	MaxRetries      int
	RateLimitPerMin int
}

// Default returns a Config with the recitation player's built-in defaults.
func Default() *Config {
	return &Config{
		PlaybackSettings: PlaybackSettings{
			StartVerse:    7,
			EndVerse:      20,
			Speed:         1.0,
			VerseRepeat:   1,
			SectionRepeat: 1,
		},
		Surah:    73,
		AudioURL: "https://download.quranicaudio.com/qdc/abdurrahmaan_as_sudais/murattal/73.mp3",
		Speeds: SpeedRange{
			Min:  0.5,
			Max:  2.0,
			Step: 0.1,
		},
		PollInterval:    200 * time.Millisecond,
		ScrollThrottle:  150 * time.Millisecond,
		MaxRetries:      3,
		RateLimitPerMin: 30,
	}
}
