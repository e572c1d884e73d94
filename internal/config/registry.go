package config

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rptax/internal/domain"
)

// Registry holds the filing configurations available to the engine.
type Registry struct {
	configs     map[string]domain.FilingConfiguration
	order       []string
	defaultName string
}

// NewRegistry builds a registry. The default is defaultName, or the first
// configuration when defaultName is empty.
func NewRegistry(configs []domain.FilingConfiguration, defaultName string) (*Registry, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no filing configurations provided")
	}
	r := &Registry{configs: make(map[string]domain.FilingConfiguration, len(configs))}
	for _, fc := range configs {
		if err := fc.Validate(); err != nil {
			return nil, fmt.Errorf("invalid filing configuration: %w", err)
		}
		if _, dup := r.configs[fc.Name]; dup {
			return nil, fmt.Errorf("duplicate filing configuration %s", fc.Name)
		}
		r.configs[fc.Name] = fc
		r.order = append(r.order, fc.Name)
	}
	if defaultName == "" {
		defaultName = r.order[0]
	}
	if _, ok := r.configs[defaultName]; !ok {
		return nil, fmt.Errorf("default filing configuration %s not found", defaultName)
	}
	r.defaultName = defaultName
	return r, nil
}

// BuiltinRegistry returns a registry over DefaultFilingConfigurations.
func BuiltinRegistry() *Registry {
	r, err := NewRegistry(DefaultFilingConfigurations(), Config2026MFJ)
	if err != nil {
		panic(fmt.Sprintf("built-in filing configurations are invalid: %v", err))
	}
	return r
}

// Get looks up a configuration; an empty name selects the default.
func (r *Registry) Get(name string) (domain.FilingConfiguration, error) {
	if name == "" {
		name = r.defaultName
	}
	fc, ok := r.configs[name]
	if !ok {
		return domain.FilingConfiguration{}, fmt.Errorf("filing configuration %s not found (available: %v)", name, r.Names())
	}
	return fc, nil
}

// Default returns the default configuration.
func (r *Registry) Default() domain.FilingConfiguration {
	return r.configs[r.defaultName]
}

// DefaultName returns the name of the default configuration.
func (r *Registry) DefaultName() string { return r.defaultName }

// Names lists configurations in load order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SortedNames lists configurations alphabetically.
func (r *Registry) SortedNames() []string {
	out := r.Names()
	sort.Strings(out)
	return out
}
