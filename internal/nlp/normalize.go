package nlp

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/themobileprof/listpilot/pkg/models"
)

// Fold lowercases text and strips diacritics so that "Añade" and "anade"
// compare equal. Rule tables are stored pre-folded.
func Fold(input string) string {
	lowered := strings.ToLower(input)
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Tokenize folds the input and splits it into words, dropping punctuation.
// Hyphens and decimal points inside tokens are kept ("4.99", "gluten-free");
// leading and trailing ones are trimmed. Empty input yields an empty slice.
func Tokenize(input string) []string {
	text := Fold(input)
	text = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Stem reduces a word to its snowball stem for the selected language.
// Used for category and substitute lookups so plural and inflected forms
// hit the same key; never used for display.
func Stem(word, language string) string {
	lang := "english"
	if language == models.LangSpanish {
		lang = "spanish"
	}
	stem, err := snowball.Stem(word, lang, false)
	if err != nil || stem == "" {
		return word
	}
	return stem
}

// Singularize trims a recognized trailing plural marker from a word.
// Deliberately conservative: unknown shapes pass through unchanged.
func Singularize(word, language string) string {
	if len(word) < 4 {
		return word
	}
	if language != models.LangSpanish {
		switch {
		case strings.HasSuffix(word, "ies"):
			return strings.TrimSuffix(word, "ies") + "y"
		case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
			strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "xes"):
			return strings.TrimSuffix(word, "es")
		}
	}
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// CanonicalName normalizes an item name into the shopping-list key form:
// folded, single-spaced, with the trailing token singularized.
func CanonicalName(item, language string) string {
	tokens := Tokenize(item)
	if len(tokens) == 0 {
		return ""
	}
	tokens[len(tokens)-1] = Singularize(tokens[len(tokens)-1], language)
	return strings.Join(tokens, " ")
}
