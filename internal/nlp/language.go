package nlp

import (
	"strings"

	"github.com/themobileprof/listpilot/pkg/models"
)

// Anchor words used for language voting. Folded forms only, since voting
// runs over folded tokens.
var (
	spanishAnchors = buildWordSet(
		"agrega", "anade", "necesito", "compra", "quiero", "quita", "borra",
		"elimina", "busca", "encuentra", "muestra", "cambia", "modifica",
		"pon", "leche", "hasta", "marca", "por", "favor", "una", "unos",
		"dos", "tres", "cuatro", "cinco",
	)
	englishAnchors = buildWordSet(
		"add", "need", "buy", "get", "remove", "delete", "find", "search",
		"show", "change", "update", "set", "the", "please", "under", "brand",
		"some", "two", "three", "four", "five",
	)
)

func buildWordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// DetectLanguage picks the rule-table language for an utterance. An explicit
// recognized hint always wins. Otherwise Spanish diacritics in the raw text
// are decisive, then anchor-word voting; ties fall back to English.
func DetectLanguage(text, hint string) string {
	if hint != "" {
		lowered := strings.ToLower(hint)
		if strings.HasPrefix(lowered, models.LangSpanish) {
			return models.LangSpanish
		}
		if strings.HasPrefix(lowered, models.LangEnglish) {
			return models.LangEnglish
		}
	}

	if strings.ContainsAny(strings.ToLower(text), "áéíóúñ") {
		return models.LangSpanish
	}

	esVotes, enVotes := 0, 0
	for _, token := range Tokenize(text) {
		if spanishAnchors[token] {
			esVotes++
		}
		if englishAnchors[token] {
			enVotes++
		}
	}
	if esVotes > enVotes {
		return models.LangSpanish
	}
	return models.LangEnglish
}
