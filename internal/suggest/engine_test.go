package suggest

import (
	"reflect"
	"testing"
	"time"

	"github.com/themobileprof/listpilot/pkg/models"
)

func historyOf(names ...string) []models.HistoryEntry {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]models.HistoryEntry, 0, len(names))
	for i, name := range names {
		entries = append(entries, models.HistoryEntry{Name: name, At: base.Add(time.Duration(i) * time.Hour)})
	}
	return entries
}

func listOf(names ...string) []models.ShoppingItem {
	items := make([]models.ShoppingItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.ShoppingItem{Name: name, Quantity: 1})
	}
	return items
}

func TestPreviousRanking(t *testing.T) {
	e := NewEngine(3, 2, 10)

	// milk x3, eggs x2, bread x2 (more recent), cheese x1 (under threshold).
	group := e.Build(Input{
		History: historyOf("milk", "eggs", "milk", "eggs", "bread", "milk", "bread", "cheese"),
		Month:   time.March,
	})

	expected := []string{"milk", "bread", "eggs"}
	if !reflect.DeepEqual(group.Previous, expected) {
		t.Errorf("Previous = %v, expected %v", group.Previous, expected)
	}
}

func TestPreviousThreshold(t *testing.T) {
	e := NewEngine(3, 2, 10)

	group := e.Build(Input{
		History: historyOf("milk", "eggs"),
		Month:   time.March,
	})

	// Single interactions never qualify.
	if len(group.Previous) != 0 {
		t.Errorf("Expected no previous suggestions, got %v", group.Previous)
	}
}

func TestPreviousExcludesOnList(t *testing.T) {
	e := NewEngine(3, 2, 10)

	group := e.Build(Input{
		List:    listOf("milk"),
		History: historyOf("milk", "milk", "eggs", "eggs"),
		Month:   time.March,
	})

	if !reflect.DeepEqual(group.Previous, []string{"eggs"}) {
		t.Errorf("Expected milk excluded, got %v", group.Previous)
	}
}

func TestPreviousLimit(t *testing.T) {
	e := NewEngine(2, 1, 10)

	group := e.Build(Input{
		History: historyOf("a", "b", "c", "d"),
		Month:   time.March,
	})

	if len(group.Previous) != 2 {
		t.Errorf("Expected top 2, got %v", group.Previous)
	}
}

func TestSeasonalByMonth(t *testing.T) {
	e := NewEngine(3, 2, 10)

	tests := []struct {
		month    time.Month
		contains string
	}{
		{time.July, "watermelon"},
		{time.January, "soup"},
		{time.April, "asparagus"},
		{time.October, "pumpkin"},
	}

	for _, tt := range tests {
		group := e.Build(Input{Month: tt.month})
		found := false
		for _, name := range group.Seasonal {
			if name == tt.contains {
				found = true
			}
		}
		if !found {
			t.Errorf("Month %s: expected %q in %v", tt.month, tt.contains, group.Seasonal)
		}
	}
}

func TestSubstitutes(t *testing.T) {
	e := NewEngine(3, 2, 10)

	group := e.Build(Input{
		Month:     time.March,
		QueryItem: "milk",
		Language:  models.LangEnglish,
	})

	if len(group.Substitutes) == 0 {
		t.Fatal("Expected substitutes for milk")
	}
	for _, name := range group.Substitutes {
		if name == "milk" {
			t.Error("The query item itself is not a substitute")
		}
	}
}

func TestSubstitutesStemMatch(t *testing.T) {
	e := NewEngine(3, 2, 10)

	// "eggs" row must match the singular query form.
	subs := e.SubstitutesFor("egg", models.LangEnglish)
	if len(subs) == 0 {
		t.Error("Expected stem-matched substitutes for egg")
	}

	subs = e.SubstitutesFor("motor oil", models.LangEnglish)
	if len(subs) != 0 {
		t.Errorf("Expected no substitutes for unknown item, got %v", subs)
	}
}

func TestSubstitutesCompoundQuery(t *testing.T) {
	e := NewEngine(3, 2, 10)

	// Substring containment covers compound names.
	subs := e.SubstitutesFor("whole milk", models.LangEnglish)
	if len(subs) == 0 {
		t.Error("Expected substitutes for whole milk")
	}
}

func TestMergeDedupes(t *testing.T) {
	e := NewEngine(3, 1, 10)

	group := e.Build(Input{
		// "apples" is both a frequent previous item and an autumn seasonal.
		History: historyOf("apples", "apples"),
		Month:   time.October,
	})

	count := 0
	for _, name := range group.All {
		if name == "apples" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected apples exactly once in merge, got %d in %v", count, group.All)
	}

	// First-wins: previous precedes seasonal.
	if len(group.All) == 0 || group.All[0] != "apples" {
		t.Errorf("Expected previous item first, got %v", group.All)
	}
}

func TestMergeExcludesOnList(t *testing.T) {
	e := NewEngine(3, 2, 10)

	group := e.Build(Input{
		List:  listOf("pumpkin"),
		Month: time.October,
	})

	for _, name := range group.All {
		if name == "pumpkin" {
			t.Errorf("On-list item leaked into merge: %v", group.All)
		}
	}
}

func TestMergeCap(t *testing.T) {
	e := NewEngine(10, 1, 4)

	group := e.Build(Input{
		History:   historyOf("a", "b", "c", "d", "e", "f"),
		Month:     time.October,
		QueryItem: "milk",
		Language:  models.LangEnglish,
	})

	if len(group.All) > 4 {
		t.Errorf("Expected merge capped at 4, got %d: %v", len(group.All), group.All)
	}
}

func TestEmptyInput(t *testing.T) {
	e := NewEngine(3, 2, 10)

	group := e.Build(Input{Month: time.March})
	if len(group.Previous) != 0 || len(group.Substitutes) != 0 {
		t.Errorf("Unexpected suggestions from empty input: %+v", group)
	}
	// Seasonal entries always exist.
	if len(group.Seasonal) == 0 {
		t.Error("Expected seasonal suggestions")
	}
}
