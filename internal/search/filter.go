package search

import (
	"strings"

	"github.com/themobileprof/listpilot/pkg/models"
)

// Apply keeps the catalog entries matching every extracted filter. Matching
// is case-insensitive substring for brand, size, and name; a PriceMax of 0
// means no ceiling. Catalog order is preserved: this is a stable filter,
// not a ranking system.
func Apply(entries []models.CatalogEntry, item string, filters models.Filters) []models.CatalogEntry {
	name := strings.ToLower(strings.TrimSpace(item))
	brand := strings.ToLower(strings.TrimSpace(filters.Brand))
	size := strings.ToLower(strings.TrimSpace(filters.Size))

	results := []models.CatalogEntry{}
	for _, entry := range entries {
		if name != "" && !strings.Contains(strings.ToLower(entry.Name), name) {
			continue
		}
		if brand != "" && !strings.Contains(strings.ToLower(entry.Brand), brand) {
			continue
		}
		if size != "" && !strings.Contains(strings.ToLower(entry.Size), size) {
			continue
		}
		if filters.PriceMax > 0 && entry.Price > filters.PriceMax {
			continue
		}
		results = append(results, entry)
	}
	return results
}
