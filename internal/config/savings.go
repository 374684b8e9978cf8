package config

import (
	"os"
	"strconv"
)

const (
	alternativeRatioEnv       = "SAVINGS_ALTERNATIVE_RATIO"
	familySeatsEnv            = "SAVINGS_FAMILY_SEATS"
	annualDiscountEnv         = "SAVINGS_ANNUAL_DISCOUNT"
	annualMinMonthlyPriceEnv  = "SAVINGS_ANNUAL_MIN_MONTHLY_PRICE"
	annualMinYearlySavingEnv  = "SAVINGS_ANNUAL_MIN_YEARLY_SAVING"
	coverageRatioEnv          = "SAVINGS_COVERAGE_RATIO"
	coverageMinItemsEnv       = "SAVINGS_COVERAGE_MIN_ITEMS"

	defaultAlternativeRatio      = 0.8
	defaultFamilySeats           = 4
	defaultAnnualDiscount        = 10.0 / 12.0
	defaultAnnualMinMonthlyPrice = 200.0
	defaultAnnualMinYearlySaving = 100.0
	defaultCoverageRatio         = 0.5
	defaultCoverageMinItems      = 3
)

// SavingsConfig carries the analyzer heuristics. The annual discount and
// family seat count are flat estimates, not catalog truths, so they are
// deliberately configurable.
type SavingsConfig struct {
	// AlternativeRatio: an alternative is suggested when its price is
	// below ratio * current monthly price.
	AlternativeRatio float64
	// FamilySeats divides the family tier price into a per-seat price.
	FamilySeats int
	// AnnualDiscount converts a monthly price to its estimated
	// annual-plan monthly equivalent.
	AnnualDiscount float64
	// AnnualMinMonthlyPrice gates the annual-switch rule to items where
	// the switch is material.
	AnnualMinMonthlyPrice float64
	// AnnualMinYearlySaving is the minimum projected saving per year for
	// the annual-switch rule to fire.
	AnnualMinYearlySaving float64
	// CoverageRatio and CoverageMinItems gate the low-coverage info
	// recommendation.
	CoverageRatio    float64
	CoverageMinItems int
}

func LoadSavingsConfig() *SavingsConfig {
	cfg := &SavingsConfig{
		AlternativeRatio:      defaultAlternativeRatio,
		FamilySeats:           defaultFamilySeats,
		AnnualDiscount:        defaultAnnualDiscount,
		AnnualMinMonthlyPrice: defaultAnnualMinMonthlyPrice,
		AnnualMinYearlySaving: defaultAnnualMinYearlySaving,
		CoverageRatio:         defaultCoverageRatio,
		CoverageMinItems:      defaultCoverageMinItems,
	}

	if v := os.Getenv(alternativeRatioEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed < 1 {
			cfg.AlternativeRatio = parsed
		}
	}
	if v := os.Getenv(familySeatsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.FamilySeats = parsed
		}
	}
	if v := os.Getenv(annualDiscountEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed < 1 {
			cfg.AnnualDiscount = parsed
		}
	}
	if v := os.Getenv(annualMinMonthlyPriceEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			cfg.AnnualMinMonthlyPrice = parsed
		}
	}
	if v := os.Getenv(annualMinYearlySavingEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			cfg.AnnualMinYearlySaving = parsed
		}
	}
	if v := os.Getenv(coverageRatioEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			cfg.CoverageRatio = parsed
		}
	}
	if v := os.Getenv(coverageMinItemsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.CoverageMinItems = parsed
		}
	}

	return cfg
}
