package mushaf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeWords parses the verse text asset.
func DecodeWords(r io.Reader) ([]Word, error) {
	var words []Word
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode text asset: %w", err)
	}
	return words, nil
}

// DecodeTranslations parses the word-by-word translation asset.
func DecodeTranslations(r io.Reader) ([]TranslationWord, error) {
	var words []TranslationWord
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode translation asset: %w", err)
	}
	return words, nil
}

// LoadWords reads the verse text asset from disk.
func LoadWords(path string) ([]Word, error) {
	return loadFile(path, DecodeWords)
}

// LoadTranslations reads the translation asset from disk.
func LoadTranslations(path string) ([]TranslationWord, error) {
	return loadFile(path, DecodeTranslations)
}

func loadFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f)
}
