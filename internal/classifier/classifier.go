
package classifier

import (
	"strings"

	"akandict-go-scraper/internal/models"
)

// Kind labels a paragraph of a word page's content block.
type Kind int

const (
	KindOther Kind = iota
	KindPartOfSpeech
	KindEnglish
)

func (k Kind) String() string {
	switch k {
	case KindPartOfSpeech:
		return "part_of_speech"
	case KindEnglish:
		return "english"
	default:
		return "other"
	}
}

const (
	posMarker     = "part of speech:"
	englishMarker = "english"
)

// Classify matches case-insensitively. The part-of-speech marker takes
// precedence, so "English part of speech: noun" is a KindPartOfSpeech.
func Classify(text string) Kind {
	low := strings.ToLower(text)
	switch {
	case strings.Contains(low, posMarker):
		return KindPartOfSpeech
	case strings.Contains(low, englishMarker):
		return KindEnglish
	default:
		return KindOther
	}
}

// ExtractFields scans paragraph texts in document order and fills the
// translation and part-of-speech fields. When several paragraphs match the
// same rule the last one wins.
func ExtractFields(blocks []string) models.Fields {
	var f models.Fields
	for _, b := range blocks {
		switch Classify(b) {
		case KindPartOfSpeech:
			if v, ok := afterDelimiter(b, ":"); ok {
				f.PartOfSpeech = v
			}
		case KindEnglish:
			delim := "-"
			if strings.Contains(b, ":") {
				delim = ":"
			}
			if v, ok := afterDelimiter(b, delim); ok {
				f.EnglishWord = v
			}
		}
	}
	return f
}

func afterDelimiter(s, delim string) (string, bool) {
	_, after, ok := strings.Cut(s, delim)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(after), true
}
