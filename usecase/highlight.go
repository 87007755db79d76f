package usecase

import (
	"unicode"
	"unicode/utf8"
)

// Segment is a run of display text, tagged when it matched the active
// search term.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// Highlight splits text on case-insensitive occurrences of query,
// tagging the matched spans and preserving the original casing. The
// query is always matched as a literal string; characters that are
// special to pattern engines carry no meaning here. An empty query
// yields the whole text as a single unmatched segment.
func Highlight(text, query string) []Segment {
	if query == "" {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	i := 0
	plainStart := 0
	for i < len(text) {
		n := foldMatchLen(text[i:], query)
		if n > 0 {
			if i > plainStart {
				segments = append(segments, Segment{Text: text[plainStart:i]})
			}
			segments = append(segments, Segment{Text: text[i : i+n], Matched: true})
			i += n
			plainStart = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if plainStart < len(text) || len(segments) == 0 {
		segments = append(segments, Segment{Text: text[plainStart:]})
	}
	return segments
}

// foldMatchLen reports the byte length of the prefix of s that equals
// query under simple case folding, or -1 when s does not start with it.
func foldMatchLen(s, query string) int {
	n := 0
	for _, qr := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if unicode.ToLower(r) != unicode.ToLower(qr) {
			return -1
		}
		n += size
	}
	return n
}
