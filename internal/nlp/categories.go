package nlp

import "github.com/themobileprof/listpilot/pkg/models"

// DefaultCategory is assigned when no keyword matches.
const DefaultCategory = "other"

// categorySeeds maps a category to representative item words in both
// languages. Lookup goes through snowball stems so plural and inflected
// forms ("apples", "manzanas") hit their seed.
var categorySeeds = map[string][]string{
	"dairy":     {"milk", "cheese", "yogurt", "butter", "leche", "queso", "mantequilla"},
	"produce":   {"apple", "banana", "lettuce", "tomato", "onion", "manzana", "platano", "lechuga", "tomate", "cebolla"},
	"snacks":    {"chips", "cookies", "crackers", "granola", "galletas", "papitas"},
	"beverages": {"water", "juice", "soda", "coffee", "tea", "agua", "jugo", "cafe"},
	"bakery":    {"bread", "bagel", "croissant", "pan"},
	"pantry":    {"rice", "pasta", "beans", "flour", "sugar", "salt", "arroz", "frijoles", "harina", "azucar", "sal"},
}

var categoryByStem = buildCategoryIndex()

func buildCategoryIndex() map[string]string {
	index := make(map[string]string)
	for category, words := range categorySeeds {
		for _, w := range words {
			index[w] = category
			index[Stem(w, models.LangEnglish)] = category
			index[Stem(w, models.LangSpanish)] = category
		}
	}
	return index
}

// Categorize maps an item name to a high-level category.
func Categorize(item, language string) string {
	for _, token := range Tokenize(item) {
		if category, ok := categoryByStem[token]; ok {
			return category
		}
		if category, ok := categoryByStem[Stem(token, language)]; ok {
			return category
		}
	}
	return DefaultCategory
}
