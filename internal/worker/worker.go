package worker

import (
	"context"
	"fmt"
	"log/slog"

	"recitesync/internal/mushaf"
	"recitesync/internal/store"
	"recitesync/internal/timing"

	"golang.org/x/sync/errgroup"
)

// AssetPaths names where a session's inputs come from. Timings are read
// from DB when set, otherwise from the Timings JSON file. Text and
// Translations are optional.
type AssetPaths struct {
	Timings      string
	DB           string
	Surah        int
	Text         string
	Translations string
}

// Assets is everything a playback session needs.
type Assets struct {
	Index        *timing.Index
	Verses       []mushaf.Verse
	Translations []mushaf.TranslationWord
}

// Page lays out the verses between start and end for display.
func (a *Assets) Page(start, end int, showTranslation bool) *mushaf.Page {
	return mushaf.BuildPage(mushaf.FilterRange(a.Verses, start, end), a.Translations, showTranslation)
}

// LoadAssets reads the timing table, verse text and translations
// concurrently. Any failure cancels the whole load.
func LoadAssets(ctx context.Context, paths AssetPaths) (*Assets, error) {
	if paths.Timings == "" && paths.DB == "" {
		return nil, fmt.Errorf("no timing source: need a timings file or a catalog")
	}

	var a Assets
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		idx, err := loadIndex(gctx, paths)
		if err != nil {
			return err
		}
		if n := len(idx.Diagnostics()); n > 0 {
			slog.Warn("verses without word timings", "count", n)
		}
		slog.Debug("timings loaded", "verses", idx.Len(), "duration_sec", idx.Duration())
		a.Index = idx
		return nil
	})

	if paths.Text != "" {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			words, err := mushaf.LoadWords(paths.Text)
			if err != nil {
				return fmt.Errorf("verse text: %w", err)
			}
			a.Verses = mushaf.GroupVerses(words)
			slog.Debug("verse text loaded", "words", len(words), "verses", len(a.Verses))
			return nil
		})
	}

	if paths.Translations != "" {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tw, err := mushaf.LoadTranslations(paths.Translations)
			if err != nil {
				return fmt.Errorf("translations: %w", err)
			}
			a.Translations = tw
			slog.Debug("translations loaded", "words", len(tw))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}

func loadIndex(ctx context.Context, paths AssetPaths) (*timing.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if paths.DB == "" {
		idx, err := timing.LoadFile(paths.Timings)
		if err != nil {
			return nil, fmt.Errorf("timings: %w", err)
		}
		return idx, nil
	}

	cat, err := store.Open(paths.DB)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	idx, err := cat.LoadIndex(paths.Surah)
	if err != nil {
		return nil, fmt.Errorf("timings for surah %d: %w", paths.Surah, err)
	}
	return idx, nil
}
