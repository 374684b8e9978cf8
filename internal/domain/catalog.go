package domain

// PlanTier is one price point of a cataloged service.
type PlanTier struct {
	Name  string
	Price float64
}

// Alternative is a competing service listed under a catalog entry.
type Alternative struct {
	Name     string
	Price    float64
	Features []string
}

// CatalogEntry is reference pricing data for one known service.
// Entries are static and read-only at runtime.
type CatalogEntry struct {
	Category     string
	Service      string
	Plans        []PlanTier
	FamilyPrice  float64 // 0 when the service has no family tier
	Alternatives []Alternative
}

// HasFamilyTier reports whether the service offers a family plan.
func (e *CatalogEntry) HasFamilyTier() bool {
	return e.FamilyPrice > 0
}

// CatalogProvider supplies the reference catalog. Injected so tests can
// substitute fixtures for the built-in table.
type CatalogProvider interface {
	Entries() []CatalogEntry
}
