// Package store keeps recitation timing tables in a SQLite catalog so a
// player can hold several chapters without bundling one JSON asset each.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recitesync/internal/timing"
)

// DefaultDBFile is used when no path is configured.
const DefaultDBFile = "recitesync.sqlite3"

// ErrNoSurah is returned when a chapter has no stored verses.
var ErrNoSurah = errors.New("surah not in catalog")

// Verse is one stored verse row.
type Verse struct {
	Surah         int   `gorm:"primaryKey;autoIncrement:false"`
	Ayah          int   `gorm:"primaryKey;autoIncrement:false"`
	TimestampFrom int64 `gorm:"not null"`
	TimestampTo   int64 `gorm:"not null"`
	CreatedAt     time.Time
}

// Word is one stored word timing row.
type Word struct {
	ID        uint  `gorm:"primaryKey;autoIncrement"`
	Surah     int   `gorm:"index:idx_word_verse,priority:1;not null"`
	Ayah      int   `gorm:"index:idx_word_verse,priority:2;not null"`
	WordIndex int   `gorm:"not null"`
	StartTime int64 `gorm:"not null"`
	EndTime   int64 `gorm:"not null"`
}

// Catalog is a gorm-backed timing store.
type Catalog struct {
	DB *gorm.DB
}

// Open opens (creating if needed) the catalog at path and migrates it.
func Open(path string) (*Catalog, error) {
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.AutoMigrate(&Verse{}, &Word{}); err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Catalog{DB: db}, nil
}

// Close releases the underlying connection pool.
func (c *Catalog) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ImportIndex replaces every stored chapter that appears in idx with its
// contents, in a single transaction. It returns the number of verses written.
func (c *Catalog) ImportIndex(idx *timing.Index) (int, error) {
	verses := idx.Verses()
	surahs := make(map[int]bool)
	for _, v := range verses {
		surahs[v.Surah] = true
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		for s := range surahs {
			if err := tx.Where("surah = ?", s).Delete(&Word{}).Error; err != nil {
				return fmt.Errorf("clearing words of surah %d: %w", s, err)
			}
			if err := tx.Where("surah = ?", s).Delete(&Verse{}).Error; err != nil {
				return fmt.Errorf("clearing verses of surah %d: %w", s, err)
			}
		}

		for _, v := range verses {
			row := Verse{Surah: v.Surah, Ayah: v.Ayah, TimestampFrom: v.TimestampFrom, TimestampTo: v.TimestampTo}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("inserting verse %d:%d: %w", v.Surah, v.Ayah, err)
			}
			if len(v.Words) == 0 {
				continue
			}
			words := make([]Word, 0, len(v.Words))
			for _, w := range v.Words {
				words = append(words, Word{
					Surah: v.Surah, Ayah: v.Ayah,
					WordIndex: w.WordIndex, StartTime: w.StartTime, EndTime: w.EndTime,
				})
			}
			if err := tx.CreateInBatches(words, 200).Error; err != nil {
				return fmt.Errorf("inserting words of %d:%d: %w", v.Surah, v.Ayah, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(verses), nil
}

// LoadIndex builds a timing index for one chapter from the catalog.
func (c *Catalog) LoadIndex(surah int) (*timing.Index, error) {
	var verses []Verse
	if err := c.DB.Where("surah = ?", surah).Order("ayah").Find(&verses).Error; err != nil {
		return nil, fmt.Errorf("querying verses: %w", err)
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("surah %d: %w", surah, ErrNoSurah)
	}

	var words []Word
	if err := c.DB.Where("surah = ?", surah).Order("ayah, word_index").Find(&words).Error; err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	byAyah := make(map[int][]timing.WordSegment)
	for _, w := range words {
		byAyah[w.Ayah] = append(byAyah[w.Ayah], timing.WordSegment{
			WordIndex: w.WordIndex, StartTime: w.StartTime, EndTime: w.EndTime,
		})
	}

	segs := make([]timing.VerseSegment, 0, len(verses))
	for _, v := range verses {
		segs = append(segs, timing.VerseSegment{
			Surah: v.Surah, Ayah: v.Ayah,
			TimestampFrom: v.TimestampFrom, TimestampTo: v.TimestampTo,
			Words: byAyah[v.Ayah],
		})
	}
	return timing.New(segs), nil
}

// Surahs lists the chapters present in the catalog.
func (c *Catalog) Surahs() ([]int, error) {
	var out []int
	if err := c.DB.Model(&Verse{}).Distinct("surah").Order("surah").Pluck("surah", &out).Error; err != nil {
		return nil, fmt.Errorf("listing surahs: %w", err)
	}
	return out, nil
}
