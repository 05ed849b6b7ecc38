package chunker

import "unicode"

// DefaultMaxRunes is the segment size used when none is configured.
const DefaultMaxRunes = 100000

// Segment is a contiguous piece of the source text. Offset is the rune
// index of Text within the source.
type Segment struct {
	Text   string
	Offset int
}

// Split breaks text into segments of at most maxRunes runes. Each cut is
// placed right before the last newline inside the window, so a newline and
// the indentation after it stay in one segment. A window with no newline
// is cut after its last whitespace, and only a window with neither is cut
// mid-word. Concatenating the segments reproduces text exactly.
func Split(text string, maxRunes int) []Segment {
	if text == "" {
		return nil
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return []Segment{{Text: text, Offset: 0}}
	}

	var segments []Segment
	start := 0
	for start < len(runes) {
		end := start + maxRunes
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end)
		}
		segments = append(segments, Segment{Text: string(runes[start:end]), Offset: start})
		start = end
	}
	return segments
}

// cutPoint picks where the window runes[start:end] should end.
func cutPoint(runes []rune, start, end int) int {
	space := -1
	for i := end - 1; i > start; i-- {
		if runes[i] == '\n' {
			return i
		}
		if space < 0 && unicode.IsSpace(runes[i]) {
			space = i + 1
		}
	}
	if space > 0 {
		return space
	}
	return end
}
