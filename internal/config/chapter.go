package config

import (
	"fmt"
	"strings"
)

// chapterNames holds transliterated chapter names, indexed by number-1.
var chapterNames = strings.Split(
	"Al-Fatihah|Al-Baqarah|Ali 'Imran|An-Nisa|Al-Ma'idah|Al-An'am|Al-A'raf|Al-Anfal|At-Tawbah|Yunus|"+
		"Hud|Yusuf|Ar-Ra'd|Ibrahim|Al-Hijr|An-Nahl|Al-Isra|Al-Kahf|Maryam|Taha|"+
		"Al-Anbya|Al-Hajj|Al-Mu'minun|An-Nur|Al-Furqan|Ash-Shu'ara|An-Naml|Al-Qasas|Al-'Ankabut|Ar-Rum|"+
		"Luqman|As-Sajdah|Al-Ahzab|Saba|Fatir|Ya-Sin|As-Saffat|Sad|Az-Zumar|Ghafir|"+
		"Fussilat|Ash-Shuraa|Az-Zukhruf|Ad-Dukhan|Al-Jathiyah|Al-Ahqaf|Muhammad|Al-Fath|Al-Hujurat|Qaf|"+
		"Adh-Dhariyat|At-Tur|An-Najm|Al-Qamar|Ar-Rahman|Al-Waqi'ah|Al-Hadid|Al-Mujadila|Al-Hashr|Al-Mumtahanah|"+
		"As-Saf|Al-Jumu'ah|Al-Munafiqun|At-Taghabun|At-Talaq|At-Tahrim|Al-Mulk|Al-Qalam|Al-Haqqah|Al-Ma'arij|"+
		"Nuh|Al-Jinn|Al-Muzzammil|Al-Muddaththir|Al-Qiyamah|Al-Insan|Al-Mursalat|An-Naba|An-Nazi'at|'Abasa|"+
		"At-Takwir|Al-Infitar|Al-Mutaffifin|Al-Inshiqaq|Al-Buruj|At-Tariq|Al-A'la|Al-Ghashiyah|Al-Fajr|Al-Balad|"+
		"Ash-Shams|Al-Layl|Ad-Duhaa|Ash-Sharh|At-Tin|Al-'Alaq|Al-Qadr|Al-Bayyinah|Az-Zalzalah|Al-'Adiyat|"+
		"Al-Qari'ah|At-Takathur|Al-'Asr|Al-Humazah|Al-Fil|Quraysh|Al-Ma'un|Al-Kawthar|Al-Kafirun|An-Nasr|"+
		"Al-Masad|Al-Ikhlas|Al-Falaq|An-Nas",
	"|")

// ChapterName returns the transliterated name of a chapter, or "Surah N"
// for numbers outside 1..114.
func ChapterName(surah int) string {
	if surah < 1 || surah > len(chapterNames) {
		return fmt.Sprintf("Surah %d", surah)
	}
	return chapterNames[surah-1]
}

// VerseLabel formats a verse reference the way the player labels it,
// e.g. "Al-Muzzammil 7".
func VerseLabel(surah, ayah int) string {
	return fmt.Sprintf("%s %d", ChapterName(surah), ayah)
}
