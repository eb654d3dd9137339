package config

import "testing"

func TestDefault(t *testing.T) {
	c := Default()
	if c.StartVerse != 7 || c.EndVerse != 20 {
		t.Errorf("verse range = %d..%d, want 7..20", c.StartVerse, c.EndVerse)
	}
	if c.Speeds.Min != 0.5 || c.Speeds.Max != 2.0 || c.Speeds.Step != 0.1 {
		t.Errorf("Speeds = %+v, want 0.5..2.0 step 0.1", c.Speeds)
	}
	if c.Speed < c.Speeds.Min || c.Speed > c.Speeds.Max {
		t.Errorf("Speed %v outside %+v", c.Speed, c.Speeds)
	}
}

func TestChapterName(t *testing.T) {
	tests := []struct {
		surah int
		want  string
	}{
		{1, "Al-Fatihah"},
		{73, "Al-Muzzammil"},
		{114, "An-Nas"},
		{0, "Surah 0"},
		{115, "Surah 115"},
	}
	for _, tt := range tests {
		if got := ChapterName(tt.surah); got != tt.want {
			t.Errorf("ChapterName(%d) = %q, want %q", tt.surah, got, tt.want)
		}
	}
	if len(chapterNames) != 114 {
		t.Errorf("len(chapterNames) = %d, want 114", len(chapterNames))
	}
}

func TestVerseLabel(t *testing.T) {
	if got := VerseLabel(73, 7); got != "Al-Muzzammil 7" {
		t.Errorf("VerseLabel(73, 7) = %q", got)
	}
}
