// Package savings derives cost-saving recommendations from a user's
// items and the reference catalog.
package savings

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/catalog"
)

// Analyzer runs the recommendation rules. Deterministic and
// side-effect-free: the same items and catalog snapshot always produce
// the same output, including ordering.
type Analyzer struct {
	matcher *catalog.Matcher
	cfg     *config.SavingsConfig
}

func NewAnalyzer(matcher *catalog.Matcher, cfg *config.SavingsConfig) *Analyzer {
	return &Analyzer{
		matcher: matcher,
		cfg:     cfg,
	}
}

// knownItem pairs an active item with its catalog entry.
type knownItem struct {
	item  *domain.Item
	entry *domain.CatalogEntry
}

// Analyze partitions active items into known and unknown and applies the
// rules in a fixed order: duplicates, alternatives, family plans, annual
// switches, catalog coverage. Rules are independent; one item may appear
// in several recommendations. Inactive items are ignored entirely.
func (a *Analyzer) Analyze(items []*domain.Item) []*domain.Recommendation {
	var (
		known   []knownItem
		unknown int
		active  int
	)

	for _, item := range items {
		if !item.Active {
			continue
		}
		active++
		entry := a.matcher.Lookup(item.Title, item.Category)
		if entry == nil {
			unknown++
			continue
		}
		known = append(known, knownItem{item: item, entry: entry})
	}

	var recs []*domain.Recommendation
	recs = append(recs, a.duplicates(known)...)
	recs = append(recs, a.alternatives(known)...)
	recs = append(recs, a.familyPlans(known)...)
	recs = append(recs, a.annualSwitches(known)...)
	recs = append(recs, a.coverage(active, unknown)...)
	return recs
}

// duplicates groups known items by catalog category and, where a
// category holds two or more, suggests keeping only the most expensive.
func (a *Analyzer) duplicates(known []knownItem) []*domain.Recommendation {
	groups := make(map[string][]knownItem)
	for _, k := range known {
		cat := catalog.Normalize(k.entry.Category)
		groups[cat] = append(groups[cat], k)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var recs []*domain.Recommendation
	for _, cat := range categories {
		group := groups[cat]
		if len(group) < 2 {
			continue
		}

		var total, max float64
		keep := group[0].item
		ids := make([]string, 0, len(group))
		for _, k := range group {
			monthly := k.item.MonthlyPrice()
			total += monthly
			if monthly > max {
				max = monthly
				keep = k.item
			}
			ids = append(ids, k.item.ID)
		}
		sort.Strings(ids)

		recs = append(recs, &domain.Recommendation{
			ID:   recID(domain.RecommendationDuplicate, cat),
			Kind: domain.RecommendationDuplicate,
			Title: fmt.Sprintf("%d subscriptions in %q", len(group), cat),
			Description: fmt.Sprintf(
				"You pay for %d services in the same category. Keeping only %q saves %s/month.",
				len(group), keep.Title, money(total-max),
			),
			MonthlySavings: total - max,
			Impact:         domain.ImpactHigh,
			ItemIDs:        ids,
			Verified:       true,
		})
	}
	return recs
}

// alternatives suggests cataloged competitors priced below the
// configured ratio of the item's current monthly price.
func (a *Analyzer) alternatives(known []knownItem) []*domain.Recommendation {
	var recs []*domain.Recommendation
	for _, k := range known {
		monthly := k.item.MonthlyPrice()
		threshold := monthly * a.cfg.AlternativeRatio

		for _, alt := range k.entry.Alternatives {
			if alt.Price >= threshold {
				continue
			}
			recs = append(recs, &domain.Recommendation{
				ID:   recID(domain.RecommendationAlternative, k.item.ID+":"+catalog.Normalize(alt.Name)),
				Kind: domain.RecommendationAlternative,
				Title: fmt.Sprintf("Cheaper alternative to %s", k.item.Title),
				Description: fmt.Sprintf(
					"%s costs %s/month against your current %s/month.",
					alt.Name, money(alt.Price), money(monthly),
				),
				MonthlySavings: monthly - alt.Price,
				Impact:         domain.ImpactMedium,
				ItemIDs:        []string{k.item.ID},
				Verified:       true,
			})
		}
	}
	sortBySavings(recs)
	return recs
}

// familyPlans fires when the catalog lists a family tier whose per-seat
// price undercuts the item's current monthly price.
func (a *Analyzer) familyPlans(known []knownItem) []*domain.Recommendation {
	var recs []*domain.Recommendation
	for _, k := range known {
		if !k.entry.HasFamilyTier() {
			continue
		}
		perSeat := k.entry.FamilyPrice / float64(a.cfg.FamilySeats)
		monthly := k.item.MonthlyPrice()
		if perSeat >= monthly {
			continue
		}
		recs = append(recs, &domain.Recommendation{
			ID:   recID(domain.RecommendationFamilyPlan, k.item.ID),
			Kind: domain.RecommendationFamilyPlan,
			Title: fmt.Sprintf("Family plan for %s", k.item.Title),
			Description: fmt.Sprintf(
				"The family tier costs %s/month; split %d ways that is %s per seat.",
				money(k.entry.FamilyPrice), a.cfg.FamilySeats, money(perSeat),
			),
			MonthlySavings: monthly - perSeat,
			Impact:         domain.ImpactHigh,
			ItemIDs:        []string{k.item.ID},
			Verified:       true,
		})
	}
	sortBySavings(recs)
	return recs
}

// annualSwitches estimates the annual-plan price as a flat fraction of
// the monthly price. A heuristic, not catalog data, hence Verified=false.
func (a *Analyzer) annualSwitches(known []knownItem) []*domain.Recommendation {
	var recs []*domain.Recommendation
	for _, k := range known {
		if k.item.Period != domain.PeriodMonth {
			continue
		}
		monthly := k.item.MonthlyPrice()
		if monthly <= a.cfg.AnnualMinMonthlyPrice {
			continue
		}
		annualEquivalent := monthly * a.cfg.AnnualDiscount
		saving := monthly - annualEquivalent
		if saving*12 <= a.cfg.AnnualMinYearlySaving {
			continue
		}
		recs = append(recs, &domain.Recommendation{
			ID:   recID(domain.RecommendationAnnualSwitch, k.item.ID),
			Kind: domain.RecommendationAnnualSwitch,
			Title: fmt.Sprintf("Switch %s to an annual plan", k.item.Title),
			Description: fmt.Sprintf(
				"Annual plans typically bring the monthly cost down to about %s, saving around %s/month.",
				money(annualEquivalent), money(saving),
			),
			MonthlySavings: saving,
			Impact:         domain.ImpactMedium,
			ItemIDs:        []string{k.item.ID},
			Verified:       false,
		})
	}
	sortBySavings(recs)
	return recs
}

// coverage emits a single info recommendation when most items are
// unknown to the catalog and there are enough items for that to matter.
func (a *Analyzer) coverage(active, unknown int) []*domain.Recommendation {
	if active <= a.cfg.CoverageMinItems {
		return nil
	}
	if float64(unknown)/float64(active) <= a.cfg.CoverageRatio {
		return nil
	}
	return []*domain.Recommendation{{
		ID:   recID(domain.RecommendationInfo, "coverage"),
		Kind: domain.RecommendationInfo,
		Title: "Limited catalog coverage",
		Description: fmt.Sprintf(
			"%d of your %d subscriptions are not in the price catalog, so some savings may be missed.",
			unknown, active,
		),
		MonthlySavings: 0,
		Impact:         domain.ImpactLow,
		Verified:       false,
	}}
}

func sortBySavings(recs []*domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MonthlySavings > recs[j].MonthlySavings
	})
}

func recID(kind domain.RecommendationKind, key string) string {
	return string(kind) + ":" + key
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
