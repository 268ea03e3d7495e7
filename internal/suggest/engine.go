package suggest

import (
	"sort"
	"strings"
	"time"

	"github.com/themobileprof/listpilot/internal/nlp"
	"github.com/themobileprof/listpilot/pkg/models"
)

// Defaults mirror the shipped configuration.
const (
	DefaultHistoryLimit    = 3
	DefaultMinInteractions = 2
	DefaultCap             = 10
)

// substituteTable maps an item word to its alternatives. Matching goes
// through snowball stems, so "eggs" and "egg" hit the same row.
var substituteTable = map[string][]string{
	"milk":   {"almond milk", "soy milk", "oat milk"},
	"leche":  {"almond milk", "soy milk", "oat milk"},
	"sugar":  {"brown sugar", "stevia"},
	"azucar": {"brown sugar", "stevia"},
	"butter": {"olive oil", "ghee", "margarine"},
	"eggs":   {"flax eggs", "chia eggs"},
	"chips":  {"popcorn", "pretzels"},
}

// seasonalItems returns the static month table entry, by broad season.
func seasonalItems(month time.Month) []string {
	switch month {
	case time.June, time.July, time.August:
		return []string{"watermelon", "mango", "cold drinks"}
	case time.December, time.January, time.February:
		return []string{"soup", "oranges"}
	case time.March, time.April, time.May:
		return []string{"strawberries", "asparagus", "spinach"}
	default:
		return []string{"pumpkin", "apples", "cinnamon"}
	}
}

// Input is one consistent snapshot for a suggestion computation.
type Input struct {
	List    []models.ShoppingItem
	History []models.HistoryEntry
	Month   time.Month
	// QueryItem is the current command's item when substitutes apply:
	// the item is absent from the catalog or was just removed. Empty
	// otherwise.
	QueryItem string
	Language  string
}

// Engine computes suggestion groups. It is a pure function of its input
// snapshot and safe for concurrent use.
type Engine struct {
	historyLimit    int
	minInteractions int
	cap             int
}

// NewEngine creates an engine with the given history top-K, minimum
// interaction threshold, and merged-list cap. Non-positive values fall
// back to the defaults.
func NewEngine(historyLimit, minInteractions, cap int) *Engine {
	e := &Engine{
		historyLimit:    DefaultHistoryLimit,
		minInteractions: DefaultMinInteractions,
		cap:             DefaultCap,
	}
	if historyLimit > 0 {
		e.historyLimit = historyLimit
	}
	if minInteractions > 0 {
		e.minInteractions = minInteractions
	}
	if cap > 0 {
		e.cap = cap
	}
	return e
}

// Build computes the four suggestion lists. The merge order
// previous > seasonal > substitutes is the engine's contract; reordering
// it changes user-visible ranking.
func (e *Engine) Build(in Input) models.SuggestionGroup {
	onList := make(map[string]bool, len(in.List))
	for _, item := range in.List {
		onList[foldName(item.Name)] = true
	}

	previous := e.previous(in.History, onList)
	seasonal := excludeOnList(seasonalItems(in.Month), onList)
	substitutes := e.substitutes(in.QueryItem, in.Language)

	merged := make([]string, 0, len(previous)+len(seasonal)+len(substitutes))
	seen := make(map[string]bool)
	for _, name := range previous {
		merged = appendUnique(merged, name, seen, onList)
	}
	for _, name := range seasonal {
		merged = appendUnique(merged, name, seen, onList)
	}
	for _, name := range substitutes {
		merged = appendUnique(merged, name, seen, onList)
	}
	if len(merged) > e.cap {
		merged = merged[:e.cap]
	}

	return models.SuggestionGroup{
		Previous:    previous,
		Seasonal:    seasonal,
		Substitutes: substitutes,
		All:         merged,
	}
}

// previous ranks history names by descending frequency, most recent first
// on ties, excluding names already on the list and names under the
// interaction threshold.
func (e *Engine) previous(history []models.HistoryEntry, onList map[string]bool) []string {
	type stat struct {
		name     string
		count    int
		lastSeen time.Time
	}
	stats := make(map[string]*stat, len(history))
	for _, entry := range history {
		key := foldName(entry.Name)
		if key == "" {
			continue
		}
		s, ok := stats[key]
		if !ok {
			s = &stat{name: entry.Name}
			stats[key] = s
		}
		s.count++
		if entry.At.After(s.lastSeen) {
			s.lastSeen = entry.At
		}
	}

	ranked := make([]*stat, 0, len(stats))
	for key, s := range stats {
		if s.count < e.minInteractions || onList[key] {
			continue
		}
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if !ranked[i].lastSeen.Equal(ranked[j].lastSeen) {
			return ranked[i].lastSeen.After(ranked[j].lastSeen)
		}
		return ranked[i].name < ranked[j].name
	})

	names := make([]string, 0, e.historyLimit)
	for _, s := range ranked {
		names = append(names, s.name)
		if len(names) == e.historyLimit {
			break
		}
	}
	return names
}

// SubstitutesFor returns the static alternatives for a single query item,
// without the rest of the suggestion group.
func (e *Engine) SubstitutesFor(queryItem, language string) []string {
	return e.substitutes(queryItem, language)
}

// substitutes looks the query item up in the static alternatives table.
func (e *Engine) substitutes(queryItem, language string) []string {
	query := foldName(queryItem)
	if query == "" {
		return []string{}
	}

	queryStems := make(map[string]bool)
	for _, token := range nlp.Tokenize(query) {
		queryStems[nlp.Stem(token, language)] = true
	}

	out := []string{}
	seen := make(map[string]bool)
	for key, alternatives := range substituteTable {
		matched := strings.Contains(query, key)
		if !matched {
			for _, keyToken := range nlp.Tokenize(key) {
				if queryStems[nlp.Stem(keyToken, language)] {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		for _, alt := range alternatives {
			if !seen[foldName(alt)] {
				seen[foldName(alt)] = true
				out = append(out, alt)
			}
		}
	}
	sort.Strings(out)
	return out
}

func excludeOnList(names []string, onList map[string]bool) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !onList[foldName(name)] {
			out = append(out, name)
		}
	}
	return out
}

func appendUnique(merged []string, name string, seen, onList map[string]bool) []string {
	key := foldName(name)
	if key == "" || seen[key] || onList[key] {
		return merged
	}
	seen[key] = true
	return append(merged, name)
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
