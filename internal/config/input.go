package config

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Scenario record field names.
const (
	FieldID                 = "id"
	FieldShortTerm          = "short_term"
	FieldLongTerm           = "long_term"
	FieldDividends          = "dividends"
	FieldQualifiedDividends = "qualified_dividends"
	FieldInterest           = "interest"
	FieldOther              = "other"
	FieldUSShortTerm        = "us_short_term"
	FieldUSLongTerm         = "us_long_term"
	FieldUSDividends        = "us_dividends"
	FieldUSInterest         = "us_interest"
	FieldUSOther            = "us_other"
	FieldForeignTaxesPaid   = "foreign_taxes_paid"
	FieldFTCCarryover       = "ftc_carryover"
	FieldStandardDeduction  = "standard_deduction"
	FieldNIITThreshold      = "niit_threshold"
	FieldCapitalLossCap     = "capital_loss_cap"

	FieldIncome       = "income"
	FieldShortTermPct = "stcg_pct"
)

// ScenarioFile is the on-disk layout of a scenario file. Records are kept
// loosely typed so missing or non-numeric values can fall back to defaults.
type ScenarioFile struct {
	Configuration string           `yaml:"configuration"`
	Base          string           `yaml:"base"`
	Scenarios     []map[string]any `yaml:"scenarios"`
	Points        []map[string]any `yaml:"points"`
}

// LoadedScenarios is a parsed scenario file.
type LoadedScenarios struct {
	Configuration domain.FilingConfiguration
	Base          string
	Scenarios     []domain.NamedScenario
	Points        []domain.HeatmapPoint
	Warnings      []string
}

// InputParser handles parsing of regulatory and scenario files
type InputParser struct {
	Registry *Registry
	// DefaultConfiguration names the filing configuration used when a file
	// names none. Empty means the registry default.
	DefaultConfiguration string
	// ForceConfiguration, when set, wins over the file's own choice.
	ForceConfiguration string
	// CapitalLossCap, when positive, replaces the configuration's loss cap
	// as the default for records that carry none.
	CapitalLossCap decimal.Decimal
}

// NewInputParser creates a parser backed by the built-in configurations
func NewInputParser() *InputParser {
	return &InputParser{Registry: BuiltinRegistry()}
}

// LoadRegulatory reads a YAML file of filing configurations and makes it the
// parser's registry.
func (ip *InputParser) LoadRegulatory(filename string) (*Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var reg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	registry, err := NewRegistry(reg.Configurations, reg.Default)
	if err != nil {
		return nil, fmt.Errorf("regulatory config %s: %w", filename, err)
	}
	ip.Registry = registry
	return registry, nil
}

// LoadFromFile loads a scenario file. Every scenario is sanitized.
func (ip *InputParser) LoadFromFile(filename string) (*LoadedScenarios, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes scenario file contents.
func (ip *InputParser) Parse(data []byte) (*LoadedScenarios, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	name := file.Configuration
	if name == "" {
		name = ip.DefaultConfiguration
	}
	if ip.ForceConfiguration != "" {
		name = ip.ForceConfiguration
	}
	fc, err := ip.Registry.Get(name)
	if err != nil {
		return nil, err
	}
	if ip.CapitalLossCap.IsPositive() {
		fc.CapitalLossCap = ip.CapitalLossCap
	}
	if len(file.Scenarios) == 0 && len(file.Points) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	out := &LoadedScenarios{Configuration: fc, Base: file.Base}
	seen := make(map[string]bool)
	for i, rec := range file.Scenarios {
		id := recordID(rec, fmt.Sprintf("S%02d", i+1))
		if seen[id] {
			return nil, fmt.Errorf("scenario %d: duplicate id %s", i, id)
		}
		seen[id] = true

		inputs, warnings := ParseScenarioRecord(rec, fc)
		for _, w := range warnings {
			out.Warnings = append(out.Warnings, fmt.Sprintf("scenario %s: %s", id, w))
		}
		out.Scenarios = append(out.Scenarios, domain.NamedScenario{ID: id, Inputs: inputs})
	}
	if out.Base != "" && len(out.Scenarios) > 0 && !seen[out.Base] {
		return nil, fmt.Errorf("base scenario %s not found", out.Base)
	}
	if out.Base == "" && len(out.Scenarios) > 0 {
		out.Base = out.Scenarios[0].ID
	}

	for i, rec := range file.Points {
		p := domain.HeatmapPoint{ID: recordID(rec, fmt.Sprintf("P%02d", i+1))}
		var w []string
		p.Income, w = numberField(rec, FieldIncome, decimal.NewFromInt(1), w)
		p.ShortTermPct, w = numberField(rec, FieldShortTermPct, decimal.Zero, w)
		for _, msg := range w {
			out.Warnings = append(out.Warnings, fmt.Sprintf("point %s: %s", p.ID, msg))
		}
		out.Points = append(out.Points, p.Bounded())
	}

	return out, nil
}

// ParseScenarioRecord converts a loosely typed record into sanitized inputs.
// Missing or non-numeric fields fall back to defaults: 0 for amounts, the
// filing configuration's standard deduction, NIIT threshold and loss cap for
// the scalars, and unset for qualified dividends. The returned warnings name
// every non-numeric value that was replaced.
func ParseScenarioRecord(rec map[string]any, fc domain.FilingConfiguration) (domain.ScenarioInputs, []string) {
	var w []string
	lossCap := fc.CapitalLossCap
	if lossCap.IsZero() {
		lossCap = DefaultCapitalLossCap
	}

	var in domain.ScenarioInputs
	in.ShortTerm, w = numberField(rec, FieldShortTerm, decimal.Zero, w)
	in.LongTerm, w = numberField(rec, FieldLongTerm, decimal.Zero, w)
	in.Dividends, w = numberField(rec, FieldDividends, decimal.Zero, w)
	in.Interest, w = numberField(rec, FieldInterest, decimal.Zero, w)
	in.Other, w = numberField(rec, FieldOther, decimal.Zero, w)
	in.USShortTerm, w = numberField(rec, FieldUSShortTerm, decimal.Zero, w)
	in.USLongTerm, w = numberField(rec, FieldUSLongTerm, decimal.Zero, w)
	in.USDividends, w = numberField(rec, FieldUSDividends, decimal.Zero, w)
	in.USInterest, w = numberField(rec, FieldUSInterest, decimal.Zero, w)
	in.USOther, w = numberField(rec, FieldUSOther, decimal.Zero, w)
	in.ForeignTaxesPaid, w = numberField(rec, FieldForeignTaxesPaid, decimal.Zero, w)
	in.FTCCarryover, w = numberField(rec, FieldFTCCarryover, decimal.Zero, w)
	in.StandardDeduction, w = numberField(rec, FieldStandardDeduction, fc.StandardDeduction, w)
	in.NIITThreshold, w = numberField(rec, FieldNIITThreshold, fc.NIITThreshold, w)
	in.CapitalLossCap, w = numberField(rec, FieldCapitalLossCap, lossCap, w)

	in.QualifiedDividends = domain.UnsetQualified()
	if raw, ok := rec[FieldQualifiedDividends]; ok && raw != nil {
		if q, ok := toDecimal(raw); ok {
			in.QualifiedDividends = domain.QualifiedAmount(q)
		} else {
			w = append(w, fmt.Sprintf("%s: non-numeric value %v, left unset", FieldQualifiedDividends, raw))
		}
	}

	return Sanitize(in), w
}

// RecordFromInputs renders inputs back into a record, the inverse of
// ParseScenarioRecord for sanitized inputs.
func RecordFromInputs(id string, in domain.ScenarioInputs) map[string]any {
	rec := map[string]any{
		FieldID:                id,
		FieldShortTerm:         in.ShortTerm.String(),
		FieldLongTerm:          in.LongTerm.String(),
		FieldDividends:         in.Dividends.String(),
		FieldInterest:          in.Interest.String(),
		FieldOther:             in.Other.String(),
		FieldUSShortTerm:       in.USShortTerm.String(),
		FieldUSLongTerm:        in.USLongTerm.String(),
		FieldUSDividends:       in.USDividends.String(),
		FieldUSInterest:        in.USInterest.String(),
		FieldUSOther:           in.USOther.String(),
		FieldForeignTaxesPaid:  in.ForeignTaxesPaid.String(),
		FieldFTCCarryover:      in.FTCCarryover.String(),
		FieldStandardDeduction: in.StandardDeduction.String(),
		FieldNIITThreshold:     in.NIITThreshold.String(),
		FieldCapitalLossCap:    in.CapitalLossCap.String(),
	}
	if q, ok := in.QualifiedDividends.Amount(); ok {
		rec[FieldQualifiedDividends] = q.String()
	}
	return rec
}

func recordID(rec map[string]any, fallback string) string {
	if raw, ok := rec[FieldID]; ok && raw != nil {
		if id := strings.TrimSpace(fmt.Sprint(raw)); id != "" {
			return id
		}
	}
	return fallback
}

func numberField(rec map[string]any, key string, def decimal.Decimal, warnings []string) (decimal.Decimal, []string) {
	raw, ok := rec[key]
	if !ok || raw == nil {
		return def, warnings
	}
	if d, ok := toDecimal(raw); ok {
		return d, warnings
	}
	return def, append(warnings, fmt.Sprintf("%s: non-numeric value %v, using default %s", key, raw, def))
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		s = strings.TrimPrefix(s, "$")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return v, true
	}
	return decimal.Zero, false
}
