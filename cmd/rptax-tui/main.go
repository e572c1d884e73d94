package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/session"
	"github.com/rgehrsitz/rptax/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rptax-tui <scenario-file>")
		os.Exit(1)
	}
	scenarioPath := os.Args[1]

	settings, err := config.LoadSettings(os.Getenv("RPTAX_SETTINGS"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	parser := config.NewInputParser()
	if settings.RegulatoryFile != "" {
		if _, err := parser.LoadRegulatory(settings.RegulatoryFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	settings.Apply(parser)

	loaded, err := parser.LoadFromFile(scenarioPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Points join the store as detailed scenarios.
	named := append([]domain.NamedScenario(nil), loaded.Scenarios...)
	for _, p := range loaded.Points {
		named = append(named, domain.NamedScenario{ID: p.ID, Inputs: p.Inputs(loaded.Configuration)})
	}

	s, err := session.New(calculation.NewCalculationEngine(), loaded.Configuration, session.NewScenarioStore(named), loaded.Base)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
