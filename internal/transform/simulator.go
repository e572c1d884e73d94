package transform

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultScenarioIDs are the identifiers derived from one base scenario.
var DefaultScenarioIDs = []string{"A", "B", "C", "D", "E", "F"}

// DefaultBaseID is the identifier that returns the base scenario unchanged.
const DefaultBaseID = "B"

// DefaultSeedPrefix is prepended to an identifier to form its seed string.
const DefaultSeedPrefix = "scenario:"

// ShareRange bounds the US-source share drawn for a category.
type ShareRange struct {
	Lo, Hi float64
}

// SimulationOptions configures scenario derivation.
type SimulationOptions struct {
	IDs         []string
	BaseID      string
	SeedPrefix  string
	MinDelta    int64
	MaxDelta    int64
	ShareRanges map[domain.Category]ShareRange
}

// DefaultSimulationOptions returns the standard derivation settings.
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		IDs:        append([]string(nil), DefaultScenarioIDs...),
		BaseID:     DefaultBaseID,
		SeedPrefix: DefaultSeedPrefix,
		MinDelta:   50000,
		MaxDelta:   500000,
		ShareRanges: map[domain.Category]ShareRange{
			domain.CategoryShortTerm: {0.08, 0.45},
			domain.CategoryLongTerm:  {0.08, 0.45},
			domain.CategoryDividends: {0.1, 0.6},
			domain.CategoryInterest:  {0.08, 0.75},
			domain.CategoryOther:     {0.05, 0.35},
		},
	}
}

// Simulator derives comparable scenario variants from a base scenario.
type Simulator struct {
	Options SimulationOptions
}

// NewSimulator creates a simulator with the given options.
func NewSimulator(opts SimulationOptions) *Simulator {
	return &Simulator{Options: opts}
}

// NewDefaultSimulator creates a simulator with DefaultSimulationOptions.
func NewDefaultSimulator() *Simulator {
	return NewSimulator(DefaultSimulationOptions())
}

// SeedString returns the seed string for an identifier.
func (s *Simulator) SeedString(id string) string {
	return s.Options.SeedPrefix + id
}

// Derive returns the variant for one identifier. The base identifier yields
// the sanitized base itself.
func (s *Simulator) Derive(base domain.ScenarioInputs, id string) domain.ScenarioInputs {
	if id == s.Options.BaseID {
		return config.Sanitize(base)
	}

	rng := SeedFromString(s.SeedString(id))
	out := base

	// Fixed perturbation order; changing it changes every derived scenario.
	perturbed := []*decimal.Decimal{
		&out.ShortTerm,
		&out.LongTerm,
		&out.Dividends,
		&out.Interest,
		&out.Other,
		&out.ForeignTaxesPaid,
		&out.FTCCarryover,
	}
	for _, field := range perturbed {
		var delta decimal.Decimal
		delta, rng = s.drawDelta(rng)
		*field = field.Add(delta)
	}

	out.Dividends = decimal.Max(decimal.Zero, out.Dividends)
	out.Interest = decimal.Max(decimal.Zero, out.Interest)
	out.Other = decimal.Max(decimal.Zero, out.Other)
	out.ForeignTaxesPaid = decimal.Max(decimal.Zero, out.ForeignTaxesPaid)
	out.FTCCarryover = decimal.Max(decimal.Zero, out.FTCCarryover)

	us := []*decimal.Decimal{
		&out.USShortTerm,
		&out.USLongTerm,
		&out.USDividends,
		&out.USInterest,
		&out.USOther,
	}
	for i, c := range domain.Categories {
		r := s.Options.ShareRanges[c]
		var share float64
		share, rng = rng.Uniform(r.Lo, r.Hi)
		*us[i] = roundHalfUp(out.Total(c).Mul(decimal.NewFromFloat(share)))
	}

	out.QualifiedDividends = domain.UnsetQualified()
	return config.Sanitize(out)
}

// DeriveAll derives every configured identifier in order.
func (s *Simulator) DeriveAll(base domain.ScenarioInputs) []domain.NamedScenario {
	out := make([]domain.NamedScenario, 0, len(s.Options.IDs))
	for _, id := range s.Options.IDs {
		out = append(out, domain.NamedScenario{ID: id, Inputs: s.Derive(base, id)})
	}
	return out
}

// Validate checks the options are usable.
func (o SimulationOptions) Validate() error {
	if len(o.IDs) == 0 {
		return fmt.Errorf("no scenario identifiers configured")
	}
	if o.MinDelta < 0 || o.MaxDelta < o.MinDelta {
		return fmt.Errorf("invalid delta range [%d, %d]", o.MinDelta, o.MaxDelta)
	}
	for _, c := range domain.Categories {
		r, ok := o.ShareRanges[c]
		if !ok {
			return fmt.Errorf("missing share range for %s", c)
		}
		if r.Lo < 0 || r.Hi > 1 || r.Hi < r.Lo {
			return fmt.Errorf("invalid share range for %s: [%g, %g]", c, r.Lo, r.Hi)
		}
	}
	return nil
}

func (s *Simulator) drawDelta(rng PRNG) (decimal.Decimal, PRNG) {
	magnitude, rng := rng.IntBetween(s.Options.MinDelta, s.Options.MaxDelta)
	sign, rng := rng.Sign()
	return decimal.NewFromInt(sign * magnitude), rng
}

func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}
