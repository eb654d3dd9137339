// Package mushaf lays out verse text for display alongside the recitation:
// grouping the word asset into verses, cutting verses into segments at
// semantic stop marks, and locating the segment that holds the recited word.
package mushaf

import (
	"fmt"
	"strings"

	"recitesync/internal/timing"
)

// semanticStops are the pause-marked word endings after which a verse is
// broken into a new display segment.
var semanticStops = []string{"اۚ", "هُۚ", "كَۚ", "رَۚ", "نِۚ"}

// hasSemanticStop reports whether a word carries a stop mark.
func hasSemanticStop(word string) bool {
	for _, stop := range semanticStops {
		if strings.Contains(word, stop) {
			return true
		}
	}
	return false
}

// GroupVerses collects words into verses in order of first appearance.
func GroupVerses(words []Word) []Verse {
	var verses []Verse
	pos := make(map[string]int)
	for _, w := range words {
		key := fmt.Sprintf("%d-%d", w.Surah, w.Ayah)
		i, ok := pos[key]
		if !ok {
			i = len(verses)
			pos[key] = i
			verses = append(verses, Verse{Surah: w.Surah, Ayah: w.Ayah})
		}
		verses[i].Words = append(verses[i].Words, w)
	}
	return verses
}

// FilterRange keeps verses with start <= ayah <= end.
func FilterRange(verses []Verse, start, end int) []Verse {
	var out []Verse
	for _, v := range verses {
		if v.Ayah >= start && v.Ayah <= end {
			out = append(out, v)
		}
	}
	return out
}

// SplitSegments cuts a verse after every word with a stop mark and at its
// last word. With translations, each text segment is followed by the
// translation words at the same positions.
func SplitSegments(v Verse, translations []TranslationWord, showTranslation bool) []Segment {
	var segments []Segment
	var current []SegmentWord

	for i, w := range v.Words {
		current = append(current, SegmentWord{Text: w.Text, WordIndex: i + 1})

		if !hasSemanticStop(w.Text) && i != len(v.Words)-1 {
			continue
		}

		segments = append(segments, Segment{
			Kind:  KindArabic,
			Surah: v.Surah,
			Ayah:  v.Ayah,
			Index: len(segments),
			Words: current,
		})

		if showTranslation {
			first, last := i+1-len(current), i+1
			segments = append(segments, Segment{
				Kind:  KindTranslation,
				Surah: v.Surah,
				Ayah:  v.Ayah,
				Index: len(segments),
				Words: translationSlice(translations, first, last),
			})
		}
		current = nil
	}
	return segments
}

// translationSlice returns translation words at positions [first, last),
// clipped to what exists.
func translationSlice(translations []TranslationWord, first, last int) []SegmentWord {
	if first > len(translations) {
		first = len(translations)
	}
	if last > len(translations) {
		last = len(translations)
	}
	out := make([]SegmentWord, 0, last-first)
	for _, tw := range translations[first:last] {
		out = append(out, SegmentWord{Text: tw.Text, WordIndex: int(tw.Word)})
	}
	return out
}

// SegmentIndex returns the position, within the verse's segments, of the
// text segment holding the 1-based word wordIndex.
func SegmentIndex(v Verse, wordIndex int, showTranslation bool) int {
	step := 1
	if showTranslation {
		step = 2
	}
	seg := 0
	for i, w := range v.Words {
		if i == wordIndex-1 {
			return seg
		}
		if hasSemanticStop(w.Text) || i == len(v.Words)-1 {
			seg += step
		}
	}
	return seg
}

// Page is the flattened, ordered list of segments for a verse range.
type Page struct {
	Segments        []Segment
	ShowTranslation bool

	verses map[[2]int]Verse
}

// BuildPage lays out verses, interleaving translations when requested.
// translations may be nil.
func BuildPage(verses []Verse, translations []TranslationWord, showTranslation bool) *Page {
	byVerse := make(map[[2]int][]TranslationWord)
	for _, tw := range translations {
		k := [2]int{tw.Surah, tw.Ayah}
		byVerse[k] = append(byVerse[k], tw)
	}

	p := &Page{ShowTranslation: showTranslation, verses: make(map[[2]int]Verse, len(verses))}
	for _, v := range verses {
		k := [2]int{v.Surah, v.Ayah}
		p.verses[k] = v
		p.Segments = append(p.Segments, SplitSegments(v, byVerse[k], showTranslation)...)
	}
	return p
}

// Locate returns the page position of the text segment containing loc,
// which is where the view should scroll.
func (p *Page) Locate(loc timing.WordLocation) (int, bool) {
	v, ok := p.verses[[2]int{loc.Surah, loc.Ayah}]
	if !ok {
		return 0, false
	}
	segIdx := SegmentIndex(v, loc.WordIndex, p.ShowTranslation)
	for i, s := range p.Segments {
		if s.Kind == KindArabic && s.Surah == loc.Surah && s.Ayah == loc.Ayah && s.Index == segIdx {
			return i, true
		}
	}
	return 0, false
}

// Highlight renders the segment at pos for a listener at loc: words already
// recited are wrapped in asterisks and the current word in brackets.
func (p *Page) Highlight(pos int, loc timing.WordLocation) string {
	if pos < 0 || pos >= len(p.Segments) {
		return ""
	}
	s := p.Segments[pos]
	cur, found := p.Locate(loc)
	active := found && cur == pos

	parts := make([]string, len(s.Words))
	for i, w := range s.Words {
		switch {
		case active && w.WordIndex == loc.WordIndex:
			parts[i] = "[" + w.Text + "]"
		case active && w.WordIndex < loc.WordIndex:
			parts[i] = "*" + w.Text + "*"
		default:
			parts[i] = w.Text
		}
	}
	return strings.Join(parts, " ")
}
