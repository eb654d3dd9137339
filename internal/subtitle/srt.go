// Package subtitle renders a recitation timing table as SRT captions, one
// cue per verse or one cue per word.
package subtitle

import (
	"fmt"
	"strings"

	"recitesync/internal/config"
	"recitesync/internal/mushaf"
	"recitesync/internal/timing"
)

// Mode selects the cue granularity.
type Mode string

const (
	PerVerse Mode = "verse"
	PerWord  Mode = "word"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case PerVerse:
		return PerVerse, nil
	case PerWord:
		return PerWord, nil
	}
	return "", fmt.Errorf("unknown cue mode %q (want %q or %q)", s, PerVerse, PerWord)
}

// Options controls cue generation.
type Options struct {
	Mode       Mode
	StartVerse int // 0 means from the first verse
	EndVerse   int // 0 means through the last verse
	MaxCPL     int // characters per line before wrapping; 0 disables
}

// Cue is one caption.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// BuildCues turns the timing table into cues. Verse text comes from verses
// when available; otherwise cues carry a verse label or word key.
func BuildCues(idx *timing.Index, verses []mushaf.Verse, opts Options) []Cue {
	text := make(map[int]mushaf.Verse, len(verses))
	for _, v := range verses {
		text[v.Ayah] = v
	}

	var cues []Cue
	for _, v := range idx.Verses() {
		if opts.StartVerse > 0 && v.Ayah < opts.StartVerse {
			continue
		}
		if opts.EndVerse > 0 && v.Ayah > opts.EndVerse {
			continue
		}
		tv, hasText := text[v.Ayah]

		if opts.Mode == PerWord {
			for _, w := range v.Words {
				label := timing.WordLocation{Surah: v.Surah, Ayah: v.Ayah, WordIndex: w.WordIndex}.Key()
				if hasText && w.WordIndex >= 1 && w.WordIndex <= len(tv.Words) {
					label = tv.Words[w.WordIndex-1].Text
				}
				cues = append(cues, Cue{
					Start: float64(w.StartTime) / 1000,
					End:   float64(w.EndTime) / 1000,
					Text:  label,
				})
			}
			continue
		}

		label := config.VerseLabel(v.Surah, v.Ayah)
		if hasText {
			label = strings.Join(tv.Texts(), " ")
		}
		cues = append(cues, Cue{
			Start: float64(v.TimestampFrom) / 1000,
			End:   float64(v.TimestampTo) / 1000,
			Text:  label,
		})
	}
	return cues
}

// Generate renders cues in SRT format.
func Generate(cues []Cue, maxCPL int) string {
	if len(cues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, cue := range cues {
		startStr := formatSRTTime(cue.Start)
		endStr := formatSRTTime(cue.End)
		text := optimizeTextDisplay(cue.Text, maxCPL)

		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1, startStr, endStr, text)
		if i < len(cues)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render builds and formats cues in one step.
func Render(idx *timing.Index, verses []mushaf.Verse, opts Options) string {
	return Generate(BuildCues(idx, verses, opts), opts.MaxCPL)
}
