package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/themobileprof/listpilot/internal/interfaces"
	"github.com/themobileprof/listpilot/internal/journey"
	"github.com/themobileprof/listpilot/internal/list"
	"github.com/themobileprof/listpilot/internal/nlp"
	"github.com/themobileprof/listpilot/internal/search"
	"github.com/themobileprof/listpilot/internal/suggest"
	"github.com/themobileprof/listpilot/pkg/models"
)

// Assistant runs the interpretation pipeline for one utterance: parse,
// apply or search, then suggest. It holds no cross-call mutable state; each
// call works on a fresh snapshot from the persistence collaborator.
type Assistant struct {
	parser  interfaces.CommandParser
	store   interfaces.ListStore
	catalog interfaces.CatalogProvider
	mutator *list.Mutator
	engine  *suggest.Engine
	journal *journey.Logger
	now     func() time.Time
}

// New wires the pipeline together. journal may be nil to disable auditing.
func New(parser interfaces.CommandParser, store interfaces.ListStore, catalog interfaces.CatalogProvider,
	mutator *list.Mutator, engine *suggest.Engine, journal *journey.Logger) *Assistant {
	return &Assistant{
		parser:  parser,
		store:   store,
		catalog: catalog,
		mutator: mutator,
		engine:  engine,
		journal: journal,
		now:     time.Now,
	}
}

// SetClock overrides the suggestion month source, for tests.
func (a *Assistant) SetClock(now func() time.Time) {
	a.now = now
}

// Process interprets and applies one utterance. The response is always
// structured: unparseable input yields Success=false with the parsed
// command echoed back for retry, never an error. Only collaborator
// failures return an error.
func (a *Assistant) Process(text, languageHint string) (*models.VoiceResponse, error) {
	j := journey.NewJourney(text, languageHint)

	start := a.now()
	outcome := a.parser.Parse(text, languageHint)
	cmd := outcome.Command
	j.AddStep("parse", time.Since(start), string(cmd.Action))

	resp := &models.VoiceResponse{
		Parsed:        cmd,
		SearchResults: []models.CatalogEntry{},
	}

	if !outcome.Fulfillable() {
		resp.Error = errorFor(outcome.Reason)
		if err := a.fill(resp, cmd, ""); err != nil {
			a.journal.Append(j, &cmd, "error")
			return nil, err
		}
		a.journal.Append(j, &cmd, string(outcome.Reason))
		return resp, nil
	}

	queryItem := ""
	switch cmd.Action {
	case models.ActionAdd, models.ActionModify, models.ActionRemove:
		start = a.now()
		result, err := a.mutator.Apply(cmd)
		if err != nil {
			a.journal.Append(j, &cmd, "error")
			return nil, err
		}
		j.AddStep("mutate", time.Since(start), result.Note)
		if result.Removed {
			queryItem = cmd.Item
		}
		resp.Success = true

	case models.ActionSearch:
		start = a.now()
		resp.SearchResults = search.Apply(a.catalog.Entries(), cmd.Item, cmd.Filters)
		j.AddStep("search", time.Since(start), fmt.Sprintf("%d results", len(resp.SearchResults)))
		resp.Success = true
	}

	// Substitutes also apply when the spoken item is unknown to the catalog.
	if queryItem == "" && cmd.Item != "" && a.catalog.Lookup(cmd.Item) == nil {
		queryItem = cmd.Item
	}

	if err := a.fill(resp, cmd, queryItem); err != nil {
		a.journal.Append(j, &cmd, "error")
		return nil, err
	}

	a.journal.Append(j, &cmd, "ok")
	return resp, nil
}

// fill attaches the current list snapshot and the suggestion group.
func (a *Assistant) fill(resp *models.VoiceResponse, cmd models.ParsedCommand, queryItem string) error {
	items, err := a.store.GetAllItems()
	if err != nil {
		return fmt.Errorf("failed to load shopping list: %w", err)
	}
	history, err := a.store.HistorySnapshot()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	resp.Items = items
	resp.Suggestions = a.engine.Build(suggest.Input{
		List:      items,
		History:   history,
		Month:     a.now().Month(),
		QueryItem: queryItem,
		Language:  cmd.Language,
	})
	return nil
}

// Search runs a catalog query. voiceText, when present and parsed as a
// search command, overrides the explicit query and filters. When nothing
// matches, substitutes for the query term are surfaced instead.
func (a *Assistant) Search(queryText, voiceText string, filters models.Filters) (*models.SearchResponse, error) {
	query := strings.TrimSpace(queryText)
	language := models.LangEnglish

	if strings.TrimSpace(voiceText) != "" {
		outcome := a.parser.Parse(voiceText, "")
		if outcome.Command.Action == models.ActionSearch {
			if outcome.Command.Item != "" {
				query = outcome.Command.Item
			}
			filters = outcome.Command.Filters
			language = outcome.Command.Language
		}
	}

	results := search.Apply(a.catalog.Entries(), query, filters)

	var substitutes []string
	if len(results) == 0 && query != "" {
		substitutes = a.engine.SubstitutesFor(query, language)
	}

	return &models.SearchResponse{
		Query:       query,
		Filters:     filters,
		Results:     results,
		Substitutes: substitutes,
	}, nil
}

// Items returns the current shopping list snapshot.
func (a *Assistant) Items() ([]models.ShoppingItem, error) {
	return a.store.GetAllItems()
}

// Recommendations computes the suggestion group for the current state.
func (a *Assistant) Recommendations() (models.SuggestionGroup, error) {
	items, err := a.store.GetAllItems()
	if err != nil {
		return models.SuggestionGroup{}, fmt.Errorf("failed to load shopping list: %w", err)
	}
	history, err := a.store.HistorySnapshot()
	if err != nil {
		return models.SuggestionGroup{}, fmt.Errorf("failed to load history: %w", err)
	}
	return a.engine.Build(suggest.Input{
		List:    items,
		History: history,
		Month:   a.now().Month(),
	}), nil
}

// ModifyItem sets an item's quantity directly (0 deletes). The name goes
// through the same canonicalization as parsed commands, so "Apples" hits
// the list key "apple". found is false when the name is not on the list.
func (a *Assistant) ModifyItem(name string, quantity int) (found bool, err error) {
	cmd := models.ParsedCommand{
		Action:   models.ActionModify,
		Item:     nlp.CanonicalName(name, models.LangEnglish),
		Quantity: quantity,
		Language: models.LangEnglish,
	}
	result, err := a.mutator.Apply(cmd)
	if err != nil {
		return false, err
	}
	return result.Changed, nil
}

func errorFor(reason models.ParseReason) *models.ErrorInfo {
	switch reason {
	case models.ReasonMissingItem:
		return &models.ErrorInfo{ErrorCode: "MISSING_ITEM", Message: "No item detected in command"}
	default:
		return &models.ErrorInfo{ErrorCode: "UNRECOGNIZED_INTENT", Message: "Could not understand command"}
	}
}
