// Package timing maps recitation playback time to verse and word positions.
//
// An Index is built once from the timing asset and never modified, so any
// number of goroutines may query it without locking. Lookups take playback
// time in seconds and compare against millisecond bounds; every lookup is
// total and reports absence through its boolean result.
package timing

import (
	"sort"
)

// Index is an immutable verse/word timing table for one recitation.
type Index struct {
	verses []VerseSegment
	byAyah map[int]int // ayah -> position of its first verse
	diags  []Diagnostic
}

// New builds an Index from decoded verses. Verses are ordered by ayah and
// words by word index; the input slice is not retained.
func New(verses []VerseSegment) *Index {
	vs := make([]VerseSegment, len(verses))
	for i, v := range verses {
		words := make([]WordSegment, len(v.Words))
		copy(words, v.Words)
		sort.SliceStable(words, func(a, b int) bool {
			return words[a].WordIndex < words[b].WordIndex
		})
		v.Words = words
		vs[i] = v
	}
	sort.SliceStable(vs, func(a, b int) bool {
		return vs[a].Ayah < vs[b].Ayah
	})

	byAyah := make(map[int]int, len(vs))
	for i, v := range vs {
		if _, dup := byAyah[v.Ayah]; !dup {
			byAyah[v.Ayah] = i
		}
	}
	return &Index{verses: vs, byAyah: byAyah}
}

// Len returns the number of verses.
func (x *Index) Len() int { return len(x.verses) }

// Verses returns a copy of the verse table in ascending order.
func (x *Index) Verses() []VerseSegment {
	out := make([]VerseSegment, len(x.verses))
	copy(out, x.verses)
	return out
}

// Diagnostics lists the verses whose word tables failed to decode.
func (x *Index) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(x.diags))
	copy(out, x.diags)
	return out
}

// Surah returns the chapter of the first verse, or 0 for an empty index.
func (x *Index) Surah() int {
	if len(x.verses) == 0 {
		return 0
	}
	return x.verses[0].Surah
}

// Duration returns the end of the last verse in seconds.
func (x *Index) Duration() float64 {
	var end int64
	for _, v := range x.verses {
		if v.TimestampTo > end {
			end = v.TimestampTo
		}
	}
	return toSeconds(end)
}

// FindCurrentWord returns the word being recited at sec.
func (x *Index) FindCurrentWord(sec float64) (WordLocation, bool) {
	ms := sec * 1000
	i := x.verseContaining(ms)
	if i < 0 {
		return WordLocation{}, false
	}
	v := x.verses[i]
	for _, w := range v.Words {
		if ms >= float64(w.StartTime) && ms <= float64(w.EndTime) {
			return WordLocation{Surah: v.Surah, Ayah: v.Ayah, WordIndex: w.WordIndex}, true
		}
	}
	return WordLocation{}, false
}

// VerseAt returns the verse whose bounds contain sec, whether or not a word
// is audible at that instant.
func (x *Index) VerseAt(sec float64) (VerseSegment, bool) {
	i := x.verseContaining(sec * 1000)
	if i < 0 {
		return VerseSegment{}, false
	}
	return x.verses[i], true
}

// VerseStartTime returns the start of verse ayah in seconds.
func (x *Index) VerseStartTime(ayah int) (float64, bool) {
	i, ok := x.byAyah[ayah]
	if !ok {
		return 0, false
	}
	return toSeconds(x.verses[i].TimestampFrom), true
}

// VerseEndTime returns the end of verse ayah in seconds.
func (x *Index) VerseEndTime(ayah int) (float64, bool) {
	i, ok := x.byAyah[ayah]
	if !ok {
		return 0, false
	}
	return toSeconds(x.verses[i].TimestampTo), true
}

// FindNextVerse returns the start of the first verse beginning strictly
// after sec. It does not require sec to sit on a verse boundary.
func (x *Index) FindNextVerse(sec float64) (float64, bool) {
	ms := sec * 1000
	for _, v := range x.verses {
		if float64(v.TimestampFrom) > ms {
			return toSeconds(v.TimestampFrom), true
		}
	}
	return 0, false
}

// FindPreviousVerse returns where a "back" action at sec should land.
// More than RestartThreshold into a verse it restarts that verse; otherwise
// it steps to the previous verse. Outside every verse, or early in the
// first verse, there is nowhere to go.
func (x *Index) FindPreviousVerse(sec float64) (float64, bool) {
	ms := sec * 1000
	i := x.verseContaining(ms)
	if i < 0 {
		return 0, false
	}
	cur := x.verses[i]

	elapsed := ms - float64(cur.TimestampFrom)
	if elapsed > float64(RestartThreshold.Milliseconds()) {
		return toSeconds(cur.TimestampFrom), true
	}
	if i == 0 {
		return 0, false
	}
	return toSeconds(x.verses[i-1].TimestampFrom), true
}

// verseContaining scans in ascending order so a time shared by two
// adjacent verses resolves to the earlier one.
func (x *Index) verseContaining(ms float64) int {
	for i, v := range x.verses {
		if v.contains(ms) {
			return i
		}
	}
	return -1
}

func toSeconds(ms int64) float64 {
	return float64(ms) / 1000
}
