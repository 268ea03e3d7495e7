package list

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/themobileprof/listpilot/internal/interfaces"
	"github.com/themobileprof/listpilot/pkg/models"
)

// DefaultMaxQuantity caps a single item's quantity. Values above it are
// clamped, never rejected: voice interactions stay forgiving.
const DefaultMaxQuantity = 100

// Result describes what a command did to the list.
type Result struct {
	Changed bool
	Removed bool
	Note    string
}

// Mutator applies parsed commands to the shopping list through the
// persistence collaborator. It holds no list state of its own.
type Mutator struct {
	store       interfaces.ListStore
	catalog     interfaces.CatalogProvider
	maxQuantity int
	now         func() time.Time
}

// NewMutator creates a mutator backed by the given collaborators.
func NewMutator(store interfaces.ListStore, catalog interfaces.CatalogProvider) *Mutator {
	return &Mutator{
		store:       store,
		catalog:     catalog,
		maxQuantity: DefaultMaxQuantity,
		now:         time.Now,
	}
}

// SetMaxQuantity overrides the quantity clamp.
func (m *Mutator) SetMaxQuantity(max int) {
	if max > 0 {
		m.maxQuantity = max
	}
}

// SetClock overrides the history timestamp source, for tests.
func (m *Mutator) SetClock(now func() time.Time) {
	m.now = now
}

// Apply executes the command against the list. Search and unknown actions
// never mutate. Only collaborator failures surface as errors; a missing
// item on remove/modify is a logged no-op.
func (m *Mutator) Apply(cmd models.ParsedCommand) (Result, error) {
	name := canonicalKey(cmd.Item)
	if name == "" {
		return Result{}, nil
	}

	switch cmd.Action {
	case models.ActionAdd:
		return m.add(name, cmd)
	case models.ActionRemove:
		return m.remove(name)
	case models.ActionModify:
		return m.modify(name, cmd.Quantity)
	default:
		return Result{}, nil
	}
}

func (m *Mutator) add(name string, cmd models.ParsedCommand) (Result, error) {
	quantity := cmd.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > m.maxQuantity {
		quantity = m.maxQuantity
	}

	attrs := models.CatalogEntry{Category: cmd.Category}
	if entry := m.catalog.Lookup(name); entry != nil {
		attrs.Brand = entry.Brand
		attrs.Price = entry.Price
		attrs.Size = entry.Size
		if attrs.Category == "" || attrs.Category == "other" {
			attrs.Category = entry.Category
		}
	}

	item, err := m.store.UpsertItem(name, quantity, models.UpsertAccumulate, attrs)
	if err != nil {
		return Result{}, fmt.Errorf("failed to add %s: %w", name, err)
	}
	if item.Quantity > m.maxQuantity {
		if err := m.store.SetQuantity(name, m.maxQuantity); err != nil {
			return Result{}, fmt.Errorf("failed to clamp %s: %w", name, err)
		}
	}

	if err := m.store.AppendHistory(name, m.now()); err != nil {
		return Result{}, fmt.Errorf("failed to record history for %s: %w", name, err)
	}
	return Result{Changed: true}, nil
}

func (m *Mutator) remove(name string) (Result, error) {
	// Deletes outright regardless of parsed quantity.
	removed, err := m.store.DeleteItem(name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to remove %s: %w", name, err)
	}
	if !removed {
		log.Printf("remove: item %q not on list, nothing to do", name)
		return Result{Note: "item not on list"}, nil
	}
	return Result{Changed: true, Removed: true}, nil
}

func (m *Mutator) modify(name string, quantity int) (Result, error) {
	if quantity <= 0 {
		return m.remove(name)
	}
	if quantity > m.maxQuantity {
		quantity = m.maxQuantity
	}

	existing, err := m.store.GetItem(name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to look up %s: %w", name, err)
	}
	if existing == nil {
		log.Printf("modify: item %q not on list, nothing to do", name)
		return Result{Note: "item not on list"}, nil
	}

	// Replace, not accumulate: the asymmetry with add is intentional.
	if _, err := m.store.UpsertItem(name, quantity, models.UpsertReplace, models.CatalogEntry{Category: existing.Category}); err != nil {
		return Result{}, fmt.Errorf("failed to modify %s: %w", name, err)
	}

	if err := m.store.AppendHistory(name, m.now()); err != nil {
		return Result{}, fmt.Errorf("failed to record history for %s: %w", name, err)
	}
	return Result{Changed: true}, nil
}

func canonicalKey(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
