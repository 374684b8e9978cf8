package catalog

import "github.com/subtrackhq/subtrack/internal/domain"

// staticProvider serves the built-in reference catalog. Prices are in
// RUB per month.
type staticProvider struct{}

// StaticProvider returns the built-in catalog. Production uses this;
// tests inject fixtures through domain.CatalogProvider.
func StaticProvider() domain.CatalogProvider {
	return staticProvider{}
}

func (staticProvider) Entries() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{
			Category: "streaming",
			Service:  "netflix",
			Plans: []domain.PlanTier{
				{Name: "basic", Price: 599},
				{Name: "premium", Price: 999},
			},
			Alternatives: []domain.Alternative{
				{Name: "Kinopoisk", Price: 399, Features: []string{"movies", "series", "ru-catalog"}},
				{Name: "Ivi", Price: 399, Features: []string{"movies", "series"}},
				{Name: "Okko", Price: 349, Features: []string{"movies", "sport"}},
			},
		},
		{
			Category: "streaming",
			Service:  "kinopoisk",
			Plans: []domain.PlanTier{
				{Name: "plus", Price: 399},
			},
			FamilyPrice: 649,
			Alternatives: []domain.Alternative{
				{Name: "Ivi", Price: 399, Features: []string{"movies", "series"}},
				{Name: "Okko", Price: 349, Features: []string{"movies", "sport"}},
			},
		},
		{
			Category: "streaming",
			Service:  "ivi",
			Plans: []domain.PlanTier{
				{Name: "subscription", Price: 399},
			},
			Alternatives: []domain.Alternative{
				{Name: "Okko", Price: 349, Features: []string{"movies", "sport"}},
			},
		},
		{
			Category: "music",
			Service:  "spotify",
			Plans: []domain.PlanTier{
				{Name: "individual", Price: 299},
			},
			FamilyPrice: 499,
			Alternatives: []domain.Alternative{
				{Name: "Yandex Music", Price: 199, Features: []string{"music", "podcasts"}},
				{Name: "VK Music", Price: 169, Features: []string{"music"}},
			},
		},
		{
			Category: "music",
			Service:  "yandex music",
			Plans: []domain.PlanTier{
				{Name: "plus", Price: 199},
			},
			FamilyPrice: 299,
			Alternatives: []domain.Alternative{
				{Name: "VK Music", Price: 169, Features: []string{"music"}},
			},
		},
		{
			Category: "cloud",
			Service:  "yandex disk",
			Plans: []domain.PlanTier{
				{Name: "100gb", Price: 99},
				{Name: "1tb", Price: 300},
			},
			Alternatives: []domain.Alternative{
				{Name: "Cloud Mail", Price: 149, Features: []string{"storage"}},
			},
		},
		{
			Category: "cloud",
			Service:  "google one",
			Plans: []domain.PlanTier{
				{Name: "100gb", Price: 139},
				{Name: "2tb", Price: 699},
			},
			FamilyPrice: 699,
			Alternatives: []domain.Alternative{
				{Name: "Yandex Disk", Price: 99, Features: []string{"storage"}},
			},
		},
		{
			Category: "education",
			Service:  "duolingo",
			Plans: []domain.PlanTier{
				{Name: "super", Price: 449},
			},
			FamilyPrice: 749,
			Alternatives: []domain.Alternative{
				{Name: "Lingualeo", Price: 249, Features: []string{"language"}},
			},
		},
		{
			Category: "fitness",
			Service:  "fitmost",
			Plans: []domain.PlanTier{
				{Name: "light", Price: 2900},
			},
			Alternatives: []domain.Alternative{
				{Name: "Sportmaster Pro", Price: 1990, Features: []string{"gym"}},
			},
		},
	}
}
