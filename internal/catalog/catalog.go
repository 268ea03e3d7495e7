package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/themobileprof/listpilot/internal/interfaces"
	"github.com/themobileprof/listpilot/internal/nlp"
	"github.com/themobileprof/listpilot/pkg/models"
)

//go:embed products.yaml
var defaultProductsYAML []byte

// Catalog holds the static reference product data. Entries keep file order;
// the search filter relies on that for stable results.
type Catalog struct {
	entries []models.CatalogEntry
}

// Ensure Catalog implements the provider interface
var _ interfaces.CatalogProvider = (*Catalog)(nil)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := parse(defaultProductsYAML)
	if err != nil {
		// The embedded catalog is validated by tests; an unparseable one is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog YAML file. An empty path falls back to the embedded
// default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var entries []models.CatalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if entries[i].Category == "" {
			entries[i].Category = nlp.DefaultCategory
		}
	}
	return &Catalog{entries: entries}, nil
}

// Entries returns all catalog entries in catalog order.
func (c *Catalog) Entries() []models.CatalogEntry {
	return c.entries
}

// Lookup resolves an item name to its catalog entry, preferring an exact
// match over a partial one. Partial matches cover both directions:
// "milk" hits "whole milk" and "whole milk 1l" hits "whole milk".
func (c *Catalog) Lookup(name string) *models.CatalogEntry {
	norm := strings.ToLower(strings.TrimSpace(name))
	if norm == "" {
		return nil
	}

	var partial *models.CatalogEntry
	for i := range c.entries {
		entryName := strings.ToLower(c.entries[i].Name)
		if entryName == norm {
			return &c.entries[i]
		}
		if partial == nil && (strings.Contains(entryName, norm) || strings.Contains(norm, entryName)) {
			partial = &c.entries[i]
		}
	}
	return partial
}
