package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one slice of a progressive rate table. The bracket covers
// taxable amounts from the previous bracket's upper bound up to UpperBound.
type TaxBracket struct {
	UpperBound decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded  bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
}

// BracketTable is an ordered marginal-rate table. The final entry is unbounded.
type BracketTable []TaxBracket

// Validate checks that upper bounds strictly increase, rates are within
// [0,1] and that only the final bracket is unbounded.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	prev := decimal.Zero
	for i, b := range bt {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s outside [0,1]", i, b.Rate)
		}
		last := i == len(bt)-1
		if b.Unbounded {
			if !last {
				return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: final bracket must be unbounded", i)
		}
		if !b.UpperBound.GreaterThan(prev) {
			return fmt.Errorf("bracket %d: upper bound %s must exceed %s", i, b.UpperBound, prev)
		}
		prev = b.UpperBound
	}
	return nil
}

// ThresholdPair holds the breakpoints separating 0%, 15% and 20%
// preferential treatment.
type ThresholdPair struct {
	ZeroRateCeiling    decimal.Decimal `yaml:"zero_rate_ceiling" json:"zero_rate_ceiling"`
	FifteenRateCeiling decimal.Decimal `yaml:"fifteen_rate_ceiling" json:"fifteen_rate_ceiling"`
}

// Validate checks ordering of the two ceilings.
func (tp ThresholdPair) Validate() error {
	if tp.ZeroRateCeiling.IsNegative() {
		return fmt.Errorf("zero-rate ceiling must be non-negative")
	}
	if !tp.FifteenRateCeiling.GreaterThan(tp.ZeroRateCeiling) {
		return fmt.Errorf("fifteen-rate ceiling %s must exceed zero-rate ceiling %s",
			tp.FifteenRateCeiling, tp.ZeroRateCeiling)
	}
	return nil
}

// FilingConfiguration supplies every year/status dependent parameter the
// engine reads. The engine itself never branches on the year.
type FilingConfiguration struct {
	Name              string          `yaml:"name" json:"name"`
	Year              int             `yaml:"year" json:"year"`
	FilingStatus      string          `yaml:"filing_status" json:"filing_status"`
	Brackets          BracketTable    `yaml:"brackets" json:"brackets"`
	Thresholds        ThresholdPair   `yaml:"preferential_thresholds" json:"preferential_thresholds"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	NIITThreshold     decimal.Decimal `yaml:"niit_threshold" json:"niit_threshold"`
	CapitalLossCap    decimal.Decimal `yaml:"capital_loss_cap" json:"capital_loss_cap"`
}

// Validate checks the configuration is usable by the engine.
func (fc FilingConfiguration) Validate() error {
	if fc.Name == "" {
		return fmt.Errorf("filing configuration name is required")
	}
	if err := fc.Brackets.Validate(); err != nil {
		return fmt.Errorf("%s: %w", fc.Name, err)
	}
	if err := fc.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%s: %w", fc.Name, err)
	}
	if fc.StandardDeduction.IsNegative() || fc.NIITThreshold.IsNegative() || fc.CapitalLossCap.IsNegative() {
		return fmt.Errorf("%s: deduction, NIIT threshold and loss cap must be non-negative", fc.Name)
	}
	return nil
}

// RegulatoryConfig is the on-disk collection of filing configurations.
type RegulatoryConfig struct {
	Metadata       RegulatoryMetadata    `yaml:"metadata" json:"metadata"`
	Default        string                `yaml:"default" json:"default"`
	Configurations []FilingConfiguration `yaml:"configurations" json:"configurations"`
}

// RegulatoryMetadata describes the source of the regulatory data.
type RegulatoryMetadata struct {
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}
