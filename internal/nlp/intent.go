package nlp

import (
	"strings"

	"github.com/themobileprof/listpilot/pkg/models"
)

// lexicon holds the per-language trigger phrases for each action. Phrases
// are stored folded and are matched in the fixed priority order
// remove > modify > add > search: removal verbs frequently co-occur with
// quantity words that would otherwise read as modify or add.
type lexicon struct {
	remove []string
	modify []string
	add    []string
	search []string
}

var lexiconEN = lexicon{
	remove: []string{"take off", "remove", "delete", "drop", "clear"},
	modify: []string{"change", "modify", "update", "set"},
	add:    []string{"pick up", "add", "need", "buy", "get", "grab"},
	search: []string{"look for", "search", "find", "show"},
}

var lexiconES = lexicon{
	remove: []string{"elimina", "borra", "quita", "remueve"},
	modify: []string{"cambia", "modifica", "actualiza", "pon", "establece", "ajusta"},
	add:    []string{"agrega", "anade", "necesito", "compra", "comprar", "quiero"},
	search: []string{"busca", "buscar", "encuentra", "muestra"},
}

// Question-like phrasing is conversation, not a list command.
var stopPhrases = []string{"how", "why", "what", "make", "recipe", "como", "receta"}

// Negated adds must never mutate the list; they downgrade to search.
// "don't" folds and tokenizes to "don t".
var negatedAddEN = []string{"do not add", "dont add", "don t add"}
var negatedAddES = []string{"no agregues", "no agregue"}

// DetectIntent maps an utterance to an action. The returned trigger is the
// matched phrase (empty for implicit adds) so the caller can excise it from
// the text before entity extraction.
func DetectIntent(text, language string) (action models.Action, trigger string) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return models.ActionUnknown, ""
	}
	joined := " " + strings.Join(tokens, " ") + " "

	for _, phrase := range stopPhrases {
		if containsPhrase(joined, phrase) {
			return models.ActionUnknown, ""
		}
	}

	negated := negatedAddEN
	lex := lexiconEN
	if language == models.LangSpanish {
		negated = negatedAddES
		lex = lexiconES
	}
	for _, phrase := range negated {
		if containsPhrase(joined, phrase) {
			return models.ActionSearch, phrase
		}
	}

	families := []struct {
		action  models.Action
		phrases []string
	}{
		{models.ActionRemove, lex.remove},
		{models.ActionModify, lex.modify},
		{models.ActionAdd, lex.add},
		{models.ActionSearch, lex.search},
	}
	for _, family := range families {
		for _, phrase := range family.phrases {
			if containsPhrase(joined, phrase) {
				return family.action, phrase
			}
		}
	}

	// A bare "quantity + noun" phrase ("two apples") is an implicit add.
	if hasQuantityNoun(tokens, language) {
		return models.ActionAdd, ""
	}

	return models.ActionUnknown, ""
}

func containsPhrase(joined, phrase string) bool {
	return strings.Contains(joined, " "+phrase+" ")
}

func hasQuantityNoun(tokens []string, language string) bool {
	words := numberWordsEN
	if language == models.LangSpanish {
		words = numberWordsES
	}
	for i, token := range tokens {
		if i+1 >= len(tokens) {
			break
		}
		if isDigits(token) {
			return true
		}
		if _, ok := words[token]; ok {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
