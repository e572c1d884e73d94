package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ds(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func filing(t *testing.T, name string) domain.FilingConfiguration {
	t.Helper()
	fc, err := config.BuiltinRegistry().Get(name)
	require.NoError(t, err)
	return fc
}

// mixedScenario has a short-term loss against a large long-term gain and
// mostly foreign-source income.
func mixedScenario() domain.ScenarioInputs {
	return config.Sanitize(domain.ScenarioInputs{
		ShortTerm:          d(-290072),
		LongTerm:           d(1031155),
		Dividends:          d(22166),
		QualifiedDividends: domain.QualifiedAmount(d(2479)),
		Interest:           d(22849),
		Other:              d(101597),
		USShortTerm:        d(0),
		USLongTerm:         d(201184),
		USDividends:        d(2479),
		USInterest:         d(16925),
		USOther:            d(2982),
		ForeignTaxesPaid:   d(143430),
		FTCCarryover:       d(0),
		StandardDeduction:  d(31500),
		NIITThreshold:      d(250000),
		CapitalLossCap:     d(3000),
	})
}

// TestLogger records formatted messages.
type TestLogger struct {
	Messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }

func (l *TestLogger) add(level, format string, args ...any) {
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, args...))
}

// panicLogger fails on the first debug message.
type panicLogger struct{ NopLogger }

func (panicLogger) Debugf(format string, args ...any) { panic("logger exploded") }
