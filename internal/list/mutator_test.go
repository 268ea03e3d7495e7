package list

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/themobileprof/listpilot/internal/catalog"
	"github.com/themobileprof/listpilot/internal/db"
	"github.com/themobileprof/listpilot/pkg/models"
)

func newTestMutator(t *testing.T) (*Mutator, *db.DB) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "listpilot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	database, err := db.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewMutator(database, catalog.Default()), database
}

func addCmd(item string, quantity int) models.ParsedCommand {
	return models.ParsedCommand{Action: models.ActionAdd, Item: item, Quantity: quantity, Language: models.LangEnglish}
}

func TestAddAccumulates(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("milk", 2)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	if _, err := m.Apply(addCmd("milk", 3)); err != nil {
		t.Fatalf("Failed to add again: %v", err)
	}

	item, err := database.GetItem("milk")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item == nil || item.Quantity != 5 {
		t.Errorf("Expected quantity 5 after two adds, got %+v", item)
	}

	history, err := database.HistorySnapshot()
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(history))
	}
}

func TestAddDefaultsToOne(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("bread", 0)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	item, err := database.GetItem("bread")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item == nil || item.Quantity != 1 {
		t.Errorf("Expected quantity 1, got %+v", item)
	}
}

func TestAddClampsQuantity(t *testing.T) {
	m, database := newTestMutator(t)
	m.SetMaxQuantity(10)

	if _, err := m.Apply(addCmd("rice", 50)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	item, err := database.GetItem("rice")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("Expected clamp to 10, got %d", item.Quantity)
	}

	// Accumulation is clamped too.
	if _, err := m.Apply(addCmd("rice", 8)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	item, err = database.GetItem("rice")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("Expected accumulated quantity clamped to 10, got %d", item.Quantity)
	}
}

func TestAddEnrichesFromCatalog(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("whole milk", 1)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	item, err := database.GetItem("whole milk")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item == nil {
		t.Fatal("Expected item")
	}
	if item.Brand == "" || item.Price == 0 {
		t.Errorf("Expected catalog enrichment, got %+v", item)
	}
	if item.Category != "dairy" {
		t.Errorf("Expected dairy category from catalog, got %s", item.Category)
	}
}

func TestRemoveDeletesOutright(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("apple", 5)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	// Quantity on a remove command is irrelevant.
	result, err := m.Apply(models.ParsedCommand{Action: models.ActionRemove, Item: "apple", Quantity: 1})
	if err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if !result.Removed {
		t.Error("Expected removal")
	}

	item, err := database.GetItem("apple")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item != nil {
		t.Errorf("Expected item gone, got %+v", item)
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	m, _ := newTestMutator(t)

	result, err := m.Apply(models.ParsedCommand{Action: models.ActionRemove, Item: "ghost"})
	if err != nil {
		t.Fatalf("Expected no error for missing item, got %v", err)
	}
	if result.Changed || result.Removed {
		t.Errorf("Expected no-op, got %+v", result)
	}
	if result.Note == "" {
		t.Error("Expected explanatory note for missing item")
	}
}

func TestModifyReplaces(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("eggs", 6)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	if _, err := m.Apply(models.ParsedCommand{Action: models.ActionModify, Item: "eggs", Quantity: 12}); err != nil {
		t.Fatalf("Failed to modify: %v", err)
	}

	item, err := database.GetItem("eggs")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item.Quantity != 12 {
		t.Errorf("Expected quantity replaced with 12, got %d", item.Quantity)
	}
}

func TestModifyToZeroRemoves(t *testing.T) {
	m, database := newTestMutator(t)

	if _, err := m.Apply(addCmd("milk", 2)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}

	result, err := m.Apply(models.ParsedCommand{Action: models.ActionModify, Item: "milk", Quantity: 0})
	if err != nil {
		t.Fatalf("Failed to modify to zero: %v", err)
	}
	if !result.Removed {
		t.Error("Expected modify-to-zero to remove the item")
	}

	item, err := database.GetItem("milk")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item != nil {
		t.Errorf("Expected item gone, got %+v", item)
	}
}

func TestModifyMissingIsNoOp(t *testing.T) {
	m, database := newTestMutator(t)

	result, err := m.Apply(models.ParsedCommand{Action: models.ActionModify, Item: "ghost", Quantity: 3})
	if err != nil {
		t.Fatalf("Expected no error for missing item, got %v", err)
	}
	if result.Changed {
		t.Errorf("Expected no-op, got %+v", result)
	}

	// Modify must never create the item.
	item, err := database.GetItem("ghost")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item != nil {
		t.Errorf("Expected no item created, got %+v", item)
	}
}

func TestHistoryOnlyOnAddAndModify(t *testing.T) {
	m, database := newTestMutator(t)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := base
	m.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	if _, err := m.Apply(addCmd("milk", 1)); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	if _, err := m.Apply(models.ParsedCommand{Action: models.ActionModify, Item: "milk", Quantity: 3}); err != nil {
		t.Fatalf("Failed to modify: %v", err)
	}
	if _, err := m.Apply(models.ParsedCommand{Action: models.ActionRemove, Item: "milk"}); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}

	history, err := database.HistorySnapshot()
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	// Add and positive modify record interactions; remove does not.
	if len(history) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(history))
	}
	for _, entry := range history {
		if entry.Name != "milk" {
			t.Errorf("Unexpected history entry: %+v", entry)
		}
	}
}

func TestSearchNeverMutates(t *testing.T) {
	m, database := newTestMutator(t)

	result, err := m.Apply(models.ParsedCommand{Action: models.ActionSearch, Item: "milk"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Changed {
		t.Error("Search must not mutate the list")
	}

	items, err := database.GetAllItems()
	if err != nil {
		t.Fatalf("Failed to get items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty list, got %d items", len(items))
	}
}
