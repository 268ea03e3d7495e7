package interfaces

import (
	"time"

	"github.com/themobileprof/listpilot/pkg/models"
)

// CommandParser turns a free-form utterance into a structured command.
type CommandParser interface {
	// Parse interprets one utterance; it always returns a structured
	// outcome, never an error
	Parse(text, languageHint string) models.ParseOutcome
}

// ListStore is the persistence collaborator owning the shopping list and
// the interaction history. Implementations must serialize concurrent
// mutations to the same canonical item name.
type ListStore interface {
	// GetAllItems returns the current shopping list snapshot
	GetAllItems() ([]models.ShoppingItem, error)
	// GetItem returns one item by canonical name, nil when absent
	GetItem(name string) (*models.ShoppingItem, error)
	// UpsertItem creates or updates an item, accumulating or replacing quantity
	UpsertItem(name string, quantity int, mode models.UpsertMode, attrs models.CatalogEntry) (*models.ShoppingItem, error)
	// SetQuantity overwrites an item's quantity
	SetQuantity(name string, quantity int) error
	// DeleteItem removes an item by canonical name; missing items are a no-op
	DeleteItem(name string) (bool, error)
	// AppendHistory records one interaction in the append-only log
	AppendHistory(name string, at time.Time) error
	// HistorySnapshot returns the full interaction log, oldest first
	HistorySnapshot() ([]models.HistoryEntry, error)
}

// CatalogProvider is the read-only reference product data collaborator.
type CatalogProvider interface {
	// Entries returns all catalog entries in catalog order
	Entries() []models.CatalogEntry
	// Lookup resolves an item name to its catalog entry, nil when unknown
	Lookup(name string) *models.CatalogEntry
}
