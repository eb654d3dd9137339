package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"recitesync/internal/store"
	"recitesync/internal/timing"
)

const timingsJSON = `[
 {"surah":73,"ayah":1,"timestamp_from":0,"timestamp_to":1800,"segments":"[[1,0,800],[2,1000,1800]]"},
 {"surah":73,"ayah":2,"timestamp_from":2000,"timestamp_to":3800,"segments":"[[1,2000,2800],[2,3000,3800]]"},
 {"surah":73,"ayah":3,"timestamp_from":4000,"timestamp_to":5800,"segments":"not json"}
]`

const textJSON = `[
 {"surah":73,"ayah":1,"word":1,"text":"يَٰٓأَيُّهَا"},
 {"surah":73,"ayah":1,"word":2,"text":"ٱلْمُزَّمِّلُ"},
 {"surah":73,"ayah":2,"word":1,"text":"قُمِ"},
 {"surah":73,"ayah":2,"word":2,"text":"ٱلَّيْلَ"}
]`

const translationsJSON = `[
 {"surah_number":73,"ayah_number":1,"word_number":"1","text":"O you"},
 {"surah_number":73,"ayah_number":1,"word_number":2,"text":"who wraps himself"}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadAssets(t *testing.T) {
	dir := t.TempDir()
	a, err := LoadAssets(context.Background(), AssetPaths{
		Timings:      writeFile(t, dir, "timings.json", timingsJSON),
		Text:         writeFile(t, dir, "text.json", textJSON),
		Translations: writeFile(t, dir, "translations.json", translationsJSON),
	})
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}

	if a.Index.Len() != 3 {
		t.Errorf("Index.Len() = %d, want 3", a.Index.Len())
	}
	if n := len(a.Index.Diagnostics()); n != 1 {
		t.Errorf("Diagnostics = %d, want 1", n)
	}
	if len(a.Verses) != 2 {
		t.Errorf("Verses = %d, want 2", len(a.Verses))
	}
	if len(a.Translations) != 2 {
		t.Errorf("Translations = %d, want 2", len(a.Translations))
	}

	page := a.Page(2, 2, false)
	if len(page.Segments) != 1 || page.Segments[0].Ayah != 2 {
		t.Errorf("Page(2, 2) = %+v, want one segment for verse 2", page.Segments)
	}
}

func TestLoadAssets_FromCatalog(t *testing.T) {
	dir := t.TempDir()
	src, err := timing.LoadFile(writeFile(t, dir, "timings.json", timingsJSON))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	dbPath := filepath.Join(dir, "catalog.sqlite3")
	cat, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if _, err := cat.ImportIndex(src); err != nil {
		t.Fatalf("ImportIndex: %v", err)
	}
	cat.Close()

	a, err := LoadAssets(context.Background(), AssetPaths{DB: dbPath, Surah: 73})
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	if got, ok := a.Index.VerseStartTime(2); !ok || got != 2.0 {
		t.Errorf("VerseStartTime(2) = %v, %v, want 2, true", got, ok)
	}

	_, err = LoadAssets(context.Background(), AssetPaths{DB: dbPath, Surah: 1})
	if !errors.Is(err, store.ErrNoSurah) {
		t.Errorf("LoadAssets(surah 1) error = %v, want ErrNoSurah", err)
	}
}

func TestLoadAssets_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		paths AssetPaths
	}{
		{"no timing source", AssetPaths{Text: "x.json"}},
		{"missing timings", AssetPaths{Timings: filepath.Join(dir, "absent.json")}},
		{"bad text", AssetPaths{
			Timings: writeFile(t, dir, "t.json", timingsJSON),
			Text:    writeFile(t, dir, "bad.json", `{"not":"an array"}`),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadAssets(context.Background(), tt.paths); err == nil {
				t.Error("LoadAssets succeeded, want error")
			}
		})
	}
}
