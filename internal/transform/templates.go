package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func allCategories(pct int64) []ScenarioTransform {
	out := make([]ScenarioTransform, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, &SetUSShare{Category: c, Pct: decimal.NewFromInt(pct)})
	}
	return out
}

// CreateBuiltInTemplates creates a template registry with common tax
// planning moves
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	zero := decimal.Zero

	registry.Register(Template{
		Name:        "harvest_3k",
		Description: "Harvest $3,000 of short-term losses (the usual deduction cap)",
		Transforms:  []ScenarioTransform{&HarvestLosses{Amount: decimal.NewFromInt(3000)}},
	})

	registry.Register(Template{
		Name:        "harvest_50k",
		Description: "Harvest $50,000 of short-term losses",
		Transforms:  []ScenarioTransform{&HarvestLosses{Amount: decimal.NewFromInt(50000)}},
	})

	registry.Register(Template{
		Name:        "hold_long_term",
		Description: "Hold every short-term position past one year",
		Transforms:  []ScenarioTransform{&HoldLongTerm{}},
	})

	registry.Register(Template{
		Name:        "all_domestic",
		Description: "Treat all income as US-source (no foreign tax credit)",
		Transforms:  allCategories(100),
	})

	registry.Register(Template{
		Name:        "all_foreign",
		Description: "Treat all income as foreign-source",
		Transforms:  allCategories(0),
	})

	registry.Register(Template{
		Name:        "no_foreign_taxes",
		Description: "Drop foreign taxes paid and the credit carryover",
		Transforms:  []ScenarioTransform{&SetForeignTaxes{Paid: decimal.Zero, Carryover: &zero}},
	})

	registry.Register(Template{
		Name:        "double_income",
		Description: "Double every income category",
		Transforms: []ScenarioTransform{
			&ScaleCategory{Category: domain.CategoryShortTerm, Factor: decimal.NewFromInt(2)},
			&ScaleCategory{Category: domain.CategoryLongTerm, Factor: decimal.NewFromInt(2)},
			&ScaleCategory{Category: domain.CategoryDividends, Factor: decimal.NewFromInt(2)},
			&ScaleCategory{Category: domain.CategoryInterest, Factor: decimal.NewFromInt(2)},
			&ScaleCategory{Category: domain.CategoryOther, Factor: decimal.NewFromInt(2)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base domain.ScenarioInputs, template Template) (domain.ScenarioInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}
	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  rptax what-if scenarios.yaml --with harvest_50k,hold_long_term\n")
	sb.WriteString("  rptax what-if scenarios.yaml --transform harvest_losses:amount=25000\n")

	return sb.String()
}
