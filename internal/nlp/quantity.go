package nlp

import (
	"strconv"
	"strings"

	"github.com/themobileprof/listpilot/pkg/models"
)

var numberWordsEN = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var numberWordsES = map[string]int{
	"un": 1, "uno": 1, "una": 1, "dos": 2, "tres": 3, "cuatro": 4,
	"cinco": 5, "seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
}

// ExtractQuantity finds the first integer literal in the folded text,
// falling back to the number-word table for the selected language. The
// matched token is removed from the returned remainder. found is false when
// nothing matched; the caller applies the per-action default.
func ExtractQuantity(text, language string) (quantity int, found bool, remainder string) {
	words := numberWordsEN
	if language == models.LangSpanish {
		words = numberWordsES
	}

	tokens := strings.Fields(text)

	for i, token := range tokens {
		if !isDigits(token) {
			continue
		}
		// Zero is a meaningful explicit quantity: "change milk to 0"
		// removes the item.
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			continue
		}
		return n, true, joinWithout(tokens, i)
	}

	for i, token := range tokens {
		if n, ok := words[token]; ok {
			return n, true, joinWithout(tokens, i)
		}
	}

	return 0, false, strings.Join(tokens, " ")
}

func joinWithout(tokens []string, skip int) string {
	out := make([]string, 0, len(tokens)-1)
	for i, t := range tokens {
		if i != skip {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}
