package config

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// Config2026MFJ is the first built-in filing configuration.
	Config2026MFJ = "2026-mfj"
	// Config2025MFJ is the second built-in filing configuration.
	Config2025MFJ = "2025-mfj"
)

// DefaultCapitalLossCap is the loss deduction cap used when none is given.
var DefaultCapitalLossCap = decimal.NewFromInt(3000)

func bracket(upper int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{UpperBound: decimal.NewFromInt(upper), Rate: decimal.NewFromFloat(rate)}
}

func topBracket(rate float64) domain.TaxBracket {
	return domain.TaxBracket{Rate: decimal.NewFromFloat(rate), Unbounded: true}
}

// DefaultFilingConfigurations returns the built-in married-filing-jointly
// configurations, 2026 first.
func DefaultFilingConfigurations() []domain.FilingConfiguration {
	return []domain.FilingConfiguration{
		{
			Name:         Config2026MFJ,
			Year:         2026,
			FilingStatus: "married_filing_jointly",
			Brackets: domain.BracketTable{
				bracket(24800, 0.10),
				bracket(100800, 0.12),
				bracket(211400, 0.22),
				bracket(403550, 0.24),
				bracket(512450, 0.32),
				bracket(768700, 0.35),
				topBracket(0.37),
			},
			Thresholds: domain.ThresholdPair{
				ZeroRateCeiling:    decimal.NewFromInt(98900),
				FifteenRateCeiling: decimal.NewFromInt(613700),
			},
			StandardDeduction: decimal.NewFromInt(32200),
			NIITThreshold:     decimal.NewFromInt(250000),
			CapitalLossCap:    DefaultCapitalLossCap,
		},
		{
			Name:         Config2025MFJ,
			Year:         2025,
			FilingStatus: "married_filing_jointly",
			Brackets: domain.BracketTable{
				bracket(23850, 0.10),
				bracket(96950, 0.12),
				bracket(206700, 0.22),
				bracket(394600, 0.24),
				bracket(501050, 0.32),
				bracket(751600, 0.35),
				topBracket(0.37),
			},
			Thresholds: domain.ThresholdPair{
				ZeroRateCeiling:    decimal.NewFromInt(96700),
				FifteenRateCeiling: decimal.NewFromInt(600050),
			},
			StandardDeduction: decimal.NewFromInt(31500),
			NIITThreshold:     decimal.NewFromInt(250000),
			CapitalLossCap:    DefaultCapitalLossCap,
		},
	}
}
