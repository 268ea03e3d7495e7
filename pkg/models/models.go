package models

import "time"

// Action is the command verb extracted from an utterance.
type Action string

const (
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionModify  Action = "modify"
	ActionSearch  Action = "search"
	ActionUnknown Action = "unknown"
)

// Supported language codes.
const (
	LangEnglish = "en"
	LangSpanish = "es"
)

// Filters holds the optional constraints extracted from an utterance.
// A PriceMax of 0 means "no ceiling".
type Filters struct {
	Brand    string  `json:"brand" yaml:"brand"`
	PriceMax float64 `json:"price_max" yaml:"price_max"`
	Size     string  `json:"size" yaml:"size"`
}

// ParsedCommand is the structured result of interpreting one utterance.
// RawText always preserves the original input verbatim.
type ParsedCommand struct {
	Action   Action  `json:"action"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	Filters  Filters `json:"filters"`
	Language string  `json:"language"`
	RawText  string  `json:"raw_text"`
}

// ParseReason explains why a command cannot be acted on.
type ParseReason string

const (
	ReasonUnrecognizedIntent ParseReason = "unrecognized_intent"
	ReasonMissingItem        ParseReason = "missing_item"
)

// ParseOutcome wraps a ParsedCommand with its fulfillability. The command is
// always populated, even when unfulfillable, so callers can echo it back.
type ParseOutcome struct {
	Command ParsedCommand `json:"command"`
	Reason  ParseReason   `json:"reason,omitempty"`
}

// Fulfillable reports whether the command can be applied or searched.
func (o ParseOutcome) Fulfillable() bool {
	return o.Reason == ""
}

// ShoppingItem is one row on the shopping list. Quantity is always positive
// while the item exists; reaching zero deletes the row.
type ShoppingItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price"`
	Size      string    `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one append-only interaction record.
type HistoryEntry struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`
}

// CatalogEntry is static reference product data, never mutated.
type CatalogEntry struct {
	Name     string  `json:"name" yaml:"name"`
	Brand    string  `json:"brand" yaml:"brand"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price" yaml:"price"`
	Size     string  `json:"size" yaml:"size"`
}

// SuggestionGroup holds the three candidate lists plus their deduplicated
// merge. Merge precedence is previous > seasonal > substitutes, first
// occurrence wins.
type SuggestionGroup struct {
	Previous    []string `json:"previous"`
	Seasonal    []string `json:"seasonal"`
	Substitutes []string `json:"substitutes"`
	All         []string `json:"all"`
}

// UpsertMode selects how a quantity is applied to an existing item.
type UpsertMode string

const (
	UpsertAccumulate UpsertMode = "accumulate"
	UpsertReplace    UpsertMode = "replace"
)

// ErrorInfo is the user-facing error shape returned by the boundary layer.
type ErrorInfo struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// VoiceResponse is the full result of processing one utterance.
type VoiceResponse struct {
	Success       bool            `json:"success"`
	Error         *ErrorInfo      `json:"error,omitempty"`
	Parsed        ParsedCommand   `json:"parsed"`
	Items         []ShoppingItem  `json:"items"`
	Suggestions   SuggestionGroup `json:"suggestions"`
	SearchResults []CatalogEntry  `json:"search_results"`
}

// SearchResponse is the result of a catalog search.
type SearchResponse struct {
	Query       string         `json:"query"`
	Filters     Filters        `json:"filters"`
	Results     []CatalogEntry `json:"results"`
	Substitutes []string       `json:"substitutes,omitempty"`
}
