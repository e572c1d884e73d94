package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for the CLI.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale", createScaleCategory)
	registry.Register("hold_long_term", createHoldLongTerm)
	registry.Register("harvest_losses", createHarvestLosses)
	registry.Register("set_us_share", createSetUSShare)
	registry.Register("set_foreign_taxes", createSetForeignTaxes)
	registry.Register("set_qualified", createSetQualifiedDividends)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "harvest_losses:amount=25000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		if paramsStr := strings.TrimSpace(parts[1]); paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

func decimalParam(params map[string]string, transform, key string, required bool) (*decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		if required {
			return nil, fmt.Errorf("%s requires '%s' parameter", transform, key)
		}
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return &v, nil
}

func createScaleCategory(params map[string]string) (ScenarioTransform, error) {
	category, ok := params["category"]
	if !ok {
		return nil, fmt.Errorf("scale requires 'category' parameter")
	}
	factor, err := decimalParam(params, "scale", "factor", true)
	if err != nil {
		return nil, err
	}
	return &ScaleCategory{Category: domain.Category(category), Factor: *factor}, nil
}

func createHoldLongTerm(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "hold_long_term", "amount", false)
	if err != nil {
		return nil, err
	}
	t := &HoldLongTerm{}
	if amount != nil {
		t.Amount = *amount
	}
	return t, nil
}

func createHarvestLosses(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "harvest_losses", "amount", true)
	if err != nil {
		return nil, err
	}
	return &HarvestLosses{Amount: *amount}, nil
}

func createSetUSShare(params map[string]string) (ScenarioTransform, error) {
	category, ok := params["category"]
	if !ok {
		return nil, fmt.Errorf("set_us_share requires 'category' parameter")
	}
	pct, err := decimalParam(params, "set_us_share", "pct", true)
	if err != nil {
		return nil, err
	}
	return &SetUSShare{Category: domain.Category(category), Pct: *pct}, nil
}

func createSetForeignTaxes(params map[string]string) (ScenarioTransform, error) {
	paid, err := decimalParam(params, "set_foreign_taxes", "paid", true)
	if err != nil {
		return nil, err
	}
	carryover, err := decimalParam(params, "set_foreign_taxes", "carryover", false)
	if err != nil {
		return nil, err
	}
	return &SetForeignTaxes{Paid: *paid, Carryover: carryover}, nil
}

func createSetQualifiedDividends(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_qualified", "amount", false)
	if err != nil {
		return nil, err
	}
	return &SetQualifiedDividends{Amount: amount}, nil
}
