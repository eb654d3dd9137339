package timing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// errTripleArity is returned for a word entry that is not [wordIndex, start, end].
var errTripleArity = errors.New("word timing entry must have 3 elements")

// rawVerse mirrors one record of the bundled recitation timing asset.
// Segments is itself a JSON document, stored as a string.
type rawVerse struct {
	Surah         int     `json:"surah"`
	Ayah          int     `json:"ayah"`
	TimestampFrom float64 `json:"timestamp_from"`
	TimestampTo   float64 `json:"timestamp_to"`
	Segments      string  `json:"segments"`
}

// LoadFile reads a timing asset from disk.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timing asset: %w", err)
	}
	defer f.Close()

	idx, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Decode parses a timing asset. A verse whose word table fails to decode is
// kept with no words and reported through Diagnostics; only a malformed
// top-level document is an error.
func Decode(r io.Reader) (*Index, error) {
	var raws []rawVerse
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode timing asset: %w", err)
	}

	verses := make([]VerseSegment, 0, len(raws))
	var diags []Diagnostic
	for _, rv := range raws {
		v := VerseSegment{
			Surah:         rv.Surah,
			Ayah:          rv.Ayah,
			TimestampFrom: roundMs(rv.TimestampFrom),
			TimestampTo:   roundMs(rv.TimestampTo),
		}

		words, err := parseSegments(rv.Segments)
		if err != nil {
			slog.Warn("word timings unreadable, verse has no words",
				"surah", rv.Surah, "ayah", rv.Ayah, "err", err)
			diags = append(diags, Diagnostic{Surah: rv.Surah, Ayah: rv.Ayah, Err: err})
		}
		v.Words = words
		verses = append(verses, v)
	}

	idx := New(verses)
	idx.diags = diags
	slog.Debug("timing asset loaded", "verses", idx.Len(), "malformed", len(diags))
	return idx, nil
}

// parseSegments decodes a string-encoded array of [wordIndex, startMs, endMs].
// On any failure it returns an empty slice and the error.
func parseSegments(s string) ([]WordSegment, error) {
	var triples [][]float64
	if err := json.Unmarshal([]byte(s), &triples); err != nil {
		return []WordSegment{}, fmt.Errorf("parse segments: %w", err)
	}

	words := make([]WordSegment, 0, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return []WordSegment{}, fmt.Errorf("segment %d: %w", i, errTripleArity)
		}
		words = append(words, WordSegment{
			WordIndex: int(t[0]),
			StartTime: roundMs(t[1]),
			EndTime:   roundMs(t[2]),
		})
	}
	return words, nil
}

func roundMs(v float64) int64 {
	return int64(math.Round(v))
}
