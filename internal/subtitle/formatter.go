package subtitle

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// formatSRTTime converts seconds to SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	ms := int64(math.Round(math.Abs(seconds) * 1000))
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, ms/1000, ms%1000)
}

// optimizeTextDisplay returns text on a single line if it fits within maxCPL,
// otherwise splits it into at most two lines.
func optimizeTextDisplay(text string, maxCPL int) string {
	text = strings.TrimSpace(text)
	if text == "" || maxCPL <= 0 {
		return text
	}
	if utf8.RuneCountInString(text) <= maxCPL {
		return text
	}
	return splitTextIntoLines(text, maxCPL)
}

// splitTextIntoLines splits text into a maximum of two lines, breaking at
// the last space or pause mark that keeps the first line within maxCPL.
func splitTextIntoLines(text string, maxCPL int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxCPL {
		return string(runes)
	}

	splitPos := findSplitPosition(runes, maxCPL)

	firstLine := strings.TrimSpace(string(runes[:splitPos]))
	remaining := strings.TrimSpace(string(runes[splitPos:]))

	if remaining == "" {
		return firstLine
	}
	return firstLine + "\n" + remaining
}

// lineBreakAfter are marks a line may end on.
var lineBreakAfter = map[rune]struct{}{
	'\u06d6': {}, '\u06d7': {}, '\u06da': {}, // ۖ ۗ ۚ pause marks
	'\u060c': {}, // ، Arabic comma
	',': {}, '.': {}, ';': {},
}

func findSplitPosition(runes []rune, maxLen int) int {
	if len(runes) <= maxLen {
		return len(runes)
	}

	searchEnd := min(maxLen+1, len(runes))
	for i := searchEnd - 1; i > 0; i-- {
		if runes[i] == ' ' {
			return i
		}
		if _, ok := lineBreakAfter[runes[i]]; ok && i < maxLen {
			return i + 1
		}
	}
	return maxLen
}
