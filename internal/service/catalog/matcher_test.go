package catalog

import (
	"testing"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type fixtureProvider struct {
	entries []domain.CatalogEntry
}

func (p fixtureProvider) Entries() []domain.CatalogEntry {
	return p.entries
}

func newFixtureMatcher() *Matcher {
	return NewMatcher(fixtureProvider{entries: []domain.CatalogEntry{
		{Category: "streaming", Service: "Netflix"},
		{Category: "streaming", Service: "Ivi"},
		{Category: "music", Service: "Yandex Music"},
	}})
}

func TestLookup(t *testing.T) {
	m := newFixtureMatcher()

	tests := []struct {
		name     string
		title    string
		category string
		found    bool
	}{
		{"exact match", "Netflix", "streaming", true},
		{"case insensitive", "NETFLIX", "Streaming", true},
		{"surrounding whitespace", "  netflix ", "streaming", true},
		{"inner whitespace collapsed", "yandex   music", "music", true},
		{"wrong category bucket", "Netflix", "music", false},
		{"near miss is unknown", "Netflix Premium", "streaming", false},
		{"unknown title", "Some Local Gym", "fitness", false},
		{"empty title", "", "streaming", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := m.Lookup(tt.title, tt.category)
			if tt.found && entry == nil {
				t.Errorf("Lookup(%q, %q) = nil, want entry", tt.title, tt.category)
			}
			if !tt.found && entry != nil {
				t.Errorf("Lookup(%q, %q) = %v, want nil", tt.title, tt.category, entry.Service)
			}
		})
	}
}

func TestLookupIsDeterministic(t *testing.T) {
	m := newFixtureMatcher()
	first := m.Lookup("netflix", "streaming")
	second := m.Lookup("netflix", "streaming")
	if first != second {
		t.Error("repeated lookups returned different entries")
	}
}

func TestStaticProviderBucketsAreWellFormed(t *testing.T) {
	m := NewMatcher(StaticProvider())
	for _, entry := range StaticProvider().Entries() {
		if got := m.Lookup(entry.Service, entry.Category); got == nil {
			t.Errorf("built-in entry %q/%q not found through its own matcher", entry.Category, entry.Service)
		}
	}
}
