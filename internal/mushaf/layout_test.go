package mushaf

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"recitesync/internal/timing"
)

// stopVerse has stop marks on words 2 and 5: segments are [1 2] [3 4 5] [6].
func stopVerse() Verse {
	texts := []string{"a", "bاۚ", "c", "d", "eهُۚ", "f"}
	v := Verse{Surah: 73, Ayah: 1}
	for i, tx := range texts {
		v.Words = append(v.Words, Word{Surah: 73, Ayah: 1, Word: i + 1, Text: tx})
	}
	return v
}

func plainVerse() Verse {
	return Verse{Surah: 73, Ayah: 2, Words: []Word{
		{Surah: 73, Ayah: 2, Word: 1, Text: "x"},
		{Surah: 73, Ayah: 2, Word: 2, Text: "y"},
	}}
}

func translationsFor(v Verse) []TranslationWord {
	var out []TranslationWord
	for _, w := range v.Words {
		out = append(out, TranslationWord{Surah: w.Surah, Ayah: w.Ayah, Word: looseInt(w.Word), Text: strings.ToUpper(w.Text[:1])})
	}
	return out
}

func TestHasSemanticStop(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"قَلِيلًا", false},
		{"قَلِيلًاۚ", true},
		{"عَلَيْهِ", false},
		{"عَلَيْهُۚ", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := hasSemanticStop(tt.word); got != tt.want {
			t.Errorf("hasSemanticStop(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestGroupVerses(t *testing.T) {
	words := []Word{
		{73, 1, 1, "a"}, {73, 1, 2, "b"},
		{73, 2, 1, "c"},
		{73, 1, 3, "d"},
	}
	got := GroupVerses(words)
	want := []Verse{
		{Surah: 73, Ayah: 1, Words: []Word{{73, 1, 1, "a"}, {73, 1, 2, "b"}, {73, 1, 3, "d"}}},
		{Surah: 73, Ayah: 2, Words: []Word{{73, 2, 1, "c"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupVerses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "d"}, got[0].Texts()); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRange(t *testing.T) {
	var verses []Verse
	for n := 1; n <= 20; n++ {
		verses = append(verses, Verse{Surah: 73, Ayah: n})
	}
	got := FilterRange(verses, 7, 9)
	if len(got) != 3 || got[0].Ayah != 7 || got[2].Ayah != 9 {
		t.Errorf("FilterRange(7, 9) = %v", got)
	}
	if got := FilterRange(verses, 21, 30); len(got) != 0 {
		t.Errorf("FilterRange(21, 30) = %v, want empty", got)
	}
}

func TestSplitSegments(t *testing.T) {
	segs := SplitSegments(stopVerse(), nil, false)
	var got [][]int
	for i, s := range segs {
		if s.Kind != KindArabic || s.Index != i {
			t.Errorf("segment %d = %s index %d", i, s.Kind, s.Index)
		}
		var idx []int
		for _, w := range s.Words {
			idx = append(idx, w.WordIndex)
		}
		got = append(got, idx)
	}
	want := [][]int{{1, 2}, {3, 4, 5}, {6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segment words (-want +got):\n%s", diff)
	}
}

func TestSplitSegments_WithTranslation(t *testing.T) {
	v := stopVerse()
	segs := SplitSegments(v, translationsFor(v), true)
	if len(segs) != 6 {
		t.Fatalf("len = %d, want 6", len(segs))
	}
	kinds := make([]SegmentKind, len(segs))
	for i, s := range segs {
		kinds[i] = s.Kind
	}
	wantKinds := []SegmentKind{KindArabic, KindTranslation, KindArabic, KindTranslation, KindArabic, KindTranslation}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	want := []SegmentWord{{"C", 3}, {"D", 4}, {"E", 5}}
	if diff := cmp.Diff(want, segs[3].Words); diff != "" {
		t.Errorf("translation of second segment (-want +got):\n%s", diff)
	}
}

func TestSplitSegments_ShortTranslationIsClipped(t *testing.T) {
	v := stopVerse()
	tr := translationsFor(v)[:3]
	segs := SplitSegments(v, tr, true)
	if n := len(segs[3].Words); n != 1 {
		t.Errorf("second translation has %d words, want 1", n)
	}
	if n := len(segs[5].Words); n != 0 {
		t.Errorf("third translation has %d words, want 0", n)
	}
}

func TestSegmentIndex(t *testing.T) {
	v := stopVerse()
	tests := []struct {
		word        int
		plain, both int
	}{
		{1, 0, 0},
		{2, 0, 0},
		{3, 1, 2},
		{5, 1, 2},
		{6, 2, 4},
	}
	for _, tt := range tests {
		if got := SegmentIndex(v, tt.word, false); got != tt.plain {
			t.Errorf("SegmentIndex(word %d, no translation) = %d, want %d", tt.word, got, tt.plain)
		}
		if got := SegmentIndex(v, tt.word, true); got != tt.both {
			t.Errorf("SegmentIndex(word %d, translation) = %d, want %d", tt.word, got, tt.both)
		}
	}
}

func TestPageLocate(t *testing.T) {
	verses := []Verse{stopVerse(), plainVerse()}
	tr := append(translationsFor(verses[0]), translationsFor(verses[1])...)

	tests := []struct {
		name string
		show bool
		loc  timing.WordLocation
		want int
		ok   bool
	}{
		{"first segment", false, timing.WordLocation{Surah: 73, Ayah: 1, WordIndex: 1}, 0, true},
		{"middle segment", false, timing.WordLocation{Surah: 73, Ayah: 1, WordIndex: 4}, 1, true},
		{"next verse", false, timing.WordLocation{Surah: 73, Ayah: 2, WordIndex: 2}, 3, true},
		{"last segment with translation", true, timing.WordLocation{Surah: 73, Ayah: 1, WordIndex: 6}, 4, true},
		{"next verse with translation", true, timing.WordLocation{Surah: 73, Ayah: 2, WordIndex: 1}, 6, true},
		{"verse not on page", false, timing.WordLocation{Surah: 73, Ayah: 9, WordIndex: 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPage(verses, tr, tt.show)
			got, ok := p.Locate(tt.loc)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Locate(%v) = %d, %v; want %d, %v", tt.loc, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPageHighlight(t *testing.T) {
	p := BuildPage([]Verse{stopVerse()}, nil, false)
	loc := timing.WordLocation{Surah: 73, Ayah: 1, WordIndex: 4}

	if got, want := p.Highlight(1, loc), "*c* [d] eهُۚ"; got != want {
		t.Errorf("Highlight(1) = %q, want %q", got, want)
	}
	if got, want := p.Highlight(0, loc), "a bاۚ"; got != want {
		t.Errorf("Highlight(0) = %q, want %q", got, want)
	}
	if got := p.Highlight(9, loc); got != "" {
		t.Errorf("Highlight(9) = %q, want empty", got)
	}
}

func TestDecodeTranslations_WordNumberForms(t *testing.T) {
	in := `[{"surah_number":73,"ayah_number":1,"word_number":"1","text":"O"},
		{"surah_number":73,"ayah_number":1,"word_number":2,"text":"you"}]`
	got, err := DecodeTranslations(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeTranslations: %v", err)
	}
	if len(got) != 2 || got[0].Word != 1 || got[1].Word != 2 {
		t.Errorf("DecodeTranslations = %+v", got)
	}

	if _, err := DecodeTranslations(strings.NewReader(`[{"word_number":"one"}]`)); err == nil {
		t.Error("DecodeTranslations accepted a non-numeric word number")
	}
}

func TestDecodeWords(t *testing.T) {
	in := `[{"surah":73,"ayah":1,"word":1,"text":"يَٰٓأَيُّهَا"}]`
	got, err := DecodeWords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeWords: %v", err)
	}
	want := []Word{{Surah: 73, Ayah: 1, Word: 1, Text: "يَٰٓأَيُّهَا"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeWords mismatch (-want +got):\n%s", diff)
	}
}
