package timing

import (
	"fmt"
	"time"
)

// RestartThreshold is how far into a verse playback must be before
// FindPreviousVerse restarts the current verse instead of stepping back.
const RestartThreshold = 3000 * time.Millisecond

// WordSegment is the audible interval of one word, in milliseconds.
// Both ends are inclusive.
type WordSegment struct {
	WordIndex int
	StartTime int64
	EndTime   int64
}

// VerseSegment is one verse of the recitation with its word timings.
type VerseSegment struct {
	Surah         int
	Ayah          int
	TimestampFrom int64
	TimestampTo   int64
	Words         []WordSegment
}

func (v VerseSegment) contains(ms float64) bool {
	return ms >= float64(v.TimestampFrom) && ms <= float64(v.TimestampTo)
}

// WordLocation identifies exactly one word of the recitation.
type WordLocation struct {
	Surah     int
	Ayah      int
	WordIndex int
}

// Key returns the "surah-ayah-word" identifier used by the text layer.
func (l WordLocation) Key() string {
	return fmt.Sprintf("%d-%d-%d", l.Surah, l.Ayah, l.WordIndex)
}

// Diagnostic records a verse whose word table could not be decoded.
type Diagnostic struct {
	Surah int
	Ayah  int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %v", d.Surah, d.Ayah, d.Err)
}
