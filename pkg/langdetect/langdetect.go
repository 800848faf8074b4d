// Package langdetect guesses the language of a venue page so that prices
// can be classified with the right role words.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Unknown is returned when the text is too short or too ambiguous.
const Unknown = ""

// minRunes below which detection is not attempted.
const minRunes = 20

var (
	once     sync.Once
	detector lingua.LanguageDetector
)

func get() lingua.LanguageDetector {
	once.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.German, lingua.English).
			WithMinimumRelativeDistance(0.1).
			Build()
	})
	return detector
}

// Detect returns the ISO-639-1 code ("de" or "en") of text, or Unknown.
func Detect(text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minRunes {
		return Unknown
	}
	lang, ok := get().DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
