package mushaf

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Word is one word of the verse text asset.
type Word struct {
	Surah int    `json:"surah"`
	Ayah  int    `json:"ayah"`
	Word  int    `json:"word"`
	Text  string `json:"text"`
}

// TranslationWord is one word of the word-by-word translation asset.
type TranslationWord struct {
	Surah int      `json:"surah_number"`
	Ayah  int      `json:"ayah_number"`
	Word  looseInt `json:"word_number"`
	Text  string   `json:"text"`
}

// looseInt accepts both 3 and "3".
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("word number %s: %w", b, err)
	}
	*n = looseInt(v)
	return nil
}

func (n looseInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(n))
}

// Verse groups the words of one verse in reading order.
type Verse struct {
	Surah int
	Ayah  int
	Words []Word
}

// Texts returns the verse's words as plain strings.
func (v Verse) Texts() []string {
	out := make([]string, len(v.Words))
	for i, w := range v.Words {
		out[i] = w.Text
	}
	return out
}

// SegmentKind distinguishes verse text from interleaved translation.
type SegmentKind string

const (
	KindArabic      SegmentKind = "arabic"
	KindTranslation SegmentKind = "translation"
)

// SegmentWord is a word placed in a segment. WordIndex is 1-based within
// the verse, matching the timing table.
type SegmentWord struct {
	Text      string
	WordIndex int
}

// Segment is one display block: a run of verse words up to a stop mark, or
// the translation of that run.
type Segment struct {
	Kind  SegmentKind
	Surah int
	Ayah  int
	Index int // position within the verse's segments
	Words []SegmentWord
}

// Key identifies the segment on a page.
func (s Segment) Key() string {
	return fmt.Sprintf("%s-%d-%d-%d", s.Kind, s.Surah, s.Ayah, s.Index)
}
