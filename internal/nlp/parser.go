package nlp

import (
	"log"
	"strings"

	"github.com/themobileprof/listpilot/pkg/models"
)

// Stop words removed from the item span. Action verbs stay listed even
// though the matched trigger is excised earlier: utterances often carry a
// second verb ("add milk to buy list").
var stopwordsEN = buildWordSet(
	"a", "an", "the", "some", "of", "to", "for", "please", "me", "i", "we",
	"need", "want", "buy", "add", "remove", "delete", "change", "set",
	"update", "modify", "search", "find", "look", "show", "get", "my",
	"list", "dollars",
)

var stopwordsES = buildWordSet(
	"un", "una", "unos", "unas", "el", "la", "los", "las", "de", "del",
	"a", "al", "en", "con", "y", "por", "para", "favor", "porfavor",
	"yo", "necesito", "quiero",
	"compra", "agrega", "anade", "quita", "borra", "elimina", "cambia",
	"modifica", "actualiza", "busca", "muestra", "mi", "lista", "pesos",
)

// Container words are packaging, not the product.
var containersEN = buildWordSet(
	"bottle", "bottles", "pack", "packs", "bag", "bags", "box", "boxes",
	"can", "cans", "carton", "cartons",
)

var containersES = buildWordSet(
	"botella", "botellas", "paquete", "paquetes", "bolsa", "bolsas",
	"caja", "cajas", "lata", "latas", "carton", "cartones",
)

// ExtractItem reduces the remaining folded text to the item name span:
// stop words and container words are dropped, and the trailing token is
// singularized into the canonical form.
func ExtractItem(text, language string) string {
	stop, containers := stopwordsEN, containersEN
	if language == models.LangSpanish {
		stop, containers = stopwordsES, containersES
	}

	kept := make([]string, 0, 4)
	for _, token := range strings.Fields(text) {
		if stop[token] || containers[token] || isDigits(token) {
			continue
		}
		kept = append(kept, token)
	}
	return CanonicalName(strings.Join(kept, " "), language)
}

// RemoteCommandParser is the optional higher-accuracy parsing collaborator.
// It must return the same ParsedCommand shape as the rule-based path.
type RemoteCommandParser interface {
	Parse(text, language string) (*models.ParsedCommand, error)
}

// Parser turns free-form utterances into ParsedCommands. The zero
// configuration uses the rule-based path only; SetRemote installs the
// external collaborator, with the rule-based path as guaranteed fallback.
type Parser struct {
	remote RemoteCommandParser
}

// NewParser creates a rule-based parser.
func NewParser() *Parser {
	return &Parser{}
}

// SetRemote installs the external parsing collaborator.
func (p *Parser) SetRemote(remote RemoteCommandParser) {
	p.remote = remote
}

// Parse interprets one utterance. It never fails: unparseable input comes
// back as a structured outcome tagged with the reason, so the boundary
// layer decides presentation.
func (p *Parser) Parse(text, languageHint string) models.ParseOutcome {
	lang := DetectLanguage(text, languageHint)

	if p.remote != nil {
		cmd, err := p.remote.Parse(text, lang)
		if err == nil && cmd != nil {
			if cmd.Category == "" || cmd.Category == DefaultCategory {
				cmd.Category = Categorize(cmd.Item, lang)
			}
			cmd.Language = lang
			cmd.RawText = text
			return assemble(*cmd)
		}
		if err != nil {
			log.Printf("remote parser unavailable, falling back to rules: %v", err)
		}
	}

	return assemble(p.parseRules(text, lang))
}

func (p *Parser) parseRules(text, lang string) models.ParsedCommand {
	action, trigger := DetectIntent(text, lang)

	remainder := strings.Join(Tokenize(text), " ")
	if trigger != "" {
		remainder = collapseSpaces(strings.Replace(" "+remainder+" ", " "+trigger+" ", " ", 1))
	}

	filters, remainder := ExtractFilters(remainder, lang)

	quantity, found, remainder := ExtractQuantity(remainder, lang)
	if !found {
		quantity = defaultQuantity(action)
	}

	item := ExtractItem(remainder, lang)

	return models.ParsedCommand{
		Action:   action,
		Item:     item,
		Quantity: quantity,
		Category: Categorize(item, lang),
		Filters:  filters,
		Language: lang,
		RawText:  text,
	}
}

// defaultQuantity applies the per-action default when no quantity was
// spoken: 1 for add/modify, 0 ("not specified") for search/remove.
func defaultQuantity(action models.Action) int {
	switch action {
	case models.ActionAdd, models.ActionModify:
		return 1
	default:
		return 0
	}
}

// assemble validates and tags the command. Quantities are never negative;
// a command is returned even when unfulfillable.
func assemble(cmd models.ParsedCommand) models.ParseOutcome {
	if cmd.Quantity < 0 {
		cmd.Quantity = 0
	}
	if cmd.Filters.PriceMax < 0 {
		cmd.Filters.PriceMax = 0
	}
	if cmd.Category == "" {
		cmd.Category = DefaultCategory
	}

	outcome := models.ParseOutcome{Command: cmd}
	switch cmd.Action {
	case models.ActionUnknown:
		outcome.Reason = models.ReasonUnrecognizedIntent
	case models.ActionAdd, models.ActionRemove, models.ActionModify:
		if cmd.Item == "" {
			outcome.Reason = models.ReasonMissingItem
		}
	case models.ActionSearch:
		if cmd.Item == "" && cmd.Filters == (models.Filters{}) {
			outcome.Reason = models.ReasonMissingItem
		}
	}
	return outcome
}
