package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/themobileprof/listpilot/pkg/models"
)

var (
	priceRegexEN = regexp.MustCompile(`\b(?:under|below|less than|cheaper than)\b\D*?(\d+(?:\.\d+)?)\b`)
	priceRegexES = regexp.MustCompile(`\b(?:hasta|bajo|menos de|menor que|por debajo de)\b\D*?(\d+(?:\.\d+)?)\b`)
	brandRegex   = regexp.MustCompile(`\b(?:brand|marca)\s+([a-z0-9][a-z0-9-]*)\b`)
	sizeRegex    = regexp.MustCompile(`\b(\d+(?:\.\d+)?) ?(ml|l|kg|g|oz|lb)\b`)
)

// Recognized size descriptors, folded form -> canonical value.
var sizeKeywords = map[string]string{
	"small": "small", "pequeno": "small", "chico": "small",
	"medium": "medium", "mediano": "medium",
	"large": "large", "grande": "large",
}

var brandTitler = cases.Title(language.Und)

// ExtractFilters pulls the price ceiling, brand, and size out of folded text
// and excises the matched fragments, so their numbers and tokens are never
// mistaken for part of the item name. Runs before quantity extraction:
// "cheaper than 4" must keep its 4.
func ExtractFilters(text, lang string) (models.Filters, string) {
	var f models.Filters
	cleaned := text

	priceRegex := priceRegexEN
	if lang == models.LangSpanish {
		priceRegex = priceRegexES
	}
	if m := priceRegex.FindStringSubmatchIndex(cleaned); m != nil {
		if v, err := strconv.ParseFloat(cleaned[m[2]:m[3]], 64); err == nil && v > 0 {
			f.PriceMax = v
		}
		cleaned = cleaned[:m[0]] + " " + cleaned[m[1]:]
	}

	if m := brandRegex.FindStringSubmatchIndex(cleaned); m != nil {
		f.Brand = brandTitler.String(cleaned[m[2]:m[3]])
		cleaned = cleaned[:m[0]] + " " + cleaned[m[1]:]
	}

	f.Size, cleaned = extractSize(cleaned)

	return f, collapseSpaces(cleaned)
}

func extractSize(text string) (string, string) {
	tokens := strings.Fields(text)
	for i, token := range tokens {
		if size, ok := sizeKeywords[token]; ok {
			return size, joinWithout(tokens, i)
		}
		if m := sizeRegex.FindStringSubmatch(token); m != nil && m[0] == token {
			return m[1] + m[2], joinWithout(tokens, i)
		}
	}
	// Spaced form like "500 ml".
	if m := sizeRegex.FindStringSubmatchIndex(text); m != nil {
		size := text[m[2]:m[3]] + text[m[4]:m[5]]
		return size, text[:m[0]] + " " + text[m[1]:]
	}
	return "", text
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
