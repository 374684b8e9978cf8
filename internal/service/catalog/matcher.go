// Package catalog matches user-entered items against the reference
// price catalog.
package catalog

import (
	"strings"

	"github.com/subtrackhq/subtrack/internal/domain"
)

// Matcher resolves (title, category) pairs to catalog entries. Matching
// is exact on the normalized title within the category bucket; a miss is
// a nil result, never an error.
type Matcher struct {
	byCategory map[string]map[string]*domain.CatalogEntry
}

func NewMatcher(provider domain.CatalogProvider) *Matcher {
	byCategory := make(map[string]map[string]*domain.CatalogEntry)

	entries := provider.Entries()
	for i := range entries {
		entry := &entries[i]
		cat := Normalize(entry.Category)
		bucket, ok := byCategory[cat]
		if !ok {
			bucket = make(map[string]*domain.CatalogEntry)
			byCategory[cat] = bucket
		}
		bucket[Normalize(entry.Service)] = entry
	}

	return &Matcher{byCategory: byCategory}
}

// Lookup returns the catalog entry for the title inside the category
// bucket, or nil when the item is unknown.
func (m *Matcher) Lookup(title, category string) *domain.CatalogEntry {
	bucket, ok := m.byCategory[Normalize(category)]
	if !ok {
		return nil
	}
	return bucket[Normalize(title)]
}

// Normalize lowercases, trims and collapses inner whitespace so that
// "  Netflix " and "netflix" are the same key. Deliberately no fuzzy
// matching: near-miss titles are treated as unknown.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
