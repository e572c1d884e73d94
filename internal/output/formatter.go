package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Formatter renders a report into bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter.
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"csv":     GenerateCSVFormatter{},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":   "console",
	"table":  "console",
	"detail": "console",
}

// GetFormatterByName resolves a formatter by name or alias.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[name]; ok {
		name = alias
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names alphabetically.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases alphabetically.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
