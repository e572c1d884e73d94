package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names shared by the generate CSV and the merged comparison CSV.
const (
	ColScenarioID         = "scenario_id"
	ColTotalFederalTax    = "total_federal_tax"
	ColEffectiveRatePct   = "effective_rate_pct"
	ColAfterTaxIncome     = "after_tax_income"
	ColOtherTotalTax      = "other_total_federal_tax"
	ColOtherEffectiveRate = "other_effective_rate_pct"
	ColOtherAfterTax      = "other_after_tax_income"
	ColDiffTotalTax       = "diff_total_tax"
	ColDiffEffectiveRate  = "diff_effective_rate_pct"
	ColDiffAfterTax       = "diff_after_tax_income"
)

// mergedMetric describes one compared column: where our value lives, where
// the other value may live, and how both are written back.
type mergedMetric struct {
	ours      string
	otherKeys []string
	otherCol  string
	diffCol   string
	places    int32
}

var mergedMetrics = []mergedMetric{
	{ColTotalFederalTax, []string{ColTotalFederalTax, ColOtherTotalTax}, ColOtherTotalTax, ColDiffTotalTax, 2},
	{ColEffectiveRatePct, []string{ColEffectiveRatePct, ColOtherEffectiveRate}, ColOtherEffectiveRate, ColDiffEffectiveRate, 4},
	{ColAfterTaxIncome, []string{ColAfterTaxIncome, ColOtherAfterTax}, ColOtherAfterTax, ColDiffAfterTax, 2},
}

// CSVTable is a header plus rows keyed by column name.
type CSVTable struct {
	Header []string
	Rows   []map[string]string
}

// ReadCSVTable reads a CSV with a header row.
func ReadCSVTable(r io.Reader) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	table := &CSVTable{Header: records[0]}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(table.Header))
		for i, col := range table.Header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadCSVFile reads a CSV table from path.
func ReadCSVFile(path string) (*CSVTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSVTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Write writes the table with its header.
func (t *CSVTable) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Header))
		for i, col := range t.Header {
			rec[i] = row[col]
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// MergeCSV joins other onto ours by scenario_id. For every row of ours it
// fills the other_* columns from the matching other row and the diff_*
// columns as other minus ours. Values that are missing or unparseable on
// either side leave the corresponding cells untouched. Rows of other with no
// match in ours are ignored.
func MergeCSV(ours, other *CSVTable) *CSVTable {
	index := make(map[string]map[string]string, len(other.Rows))
	for _, row := range other.Rows {
		index[row[ColScenarioID]] = row
	}

	header := append([]string(nil), ours.Header...)
	for _, m := range mergedMetrics {
		header = appendMissing(header, m.otherCol, m.diffCol)
	}

	out := &CSVTable{Header: header, Rows: make([]map[string]string, 0, len(ours.Rows))}
	for _, row := range ours.Rows {
		merged := make(map[string]string, len(header))
		for k, v := range row {
			merged[k] = v
		}
		match := index[row[ColScenarioID]]

		for _, m := range mergedMetrics {
			ourValue, haveOurs := parseCell(row, m.ours)
			otherValue, haveOther := parseCell(match, m.otherKeys...)
			if haveOther {
				merged[m.otherCol] = otherValue.StringFixed(m.places)
			}
			if haveOurs && haveOther {
				merged[m.diffCol] = otherValue.Sub(ourValue).StringFixed(m.places)
			}
		}
		out.Rows = append(out.Rows, merged)
	}
	return out
}

// MergeCSVFiles merges the CSV at otherPath onto oursPath and writes the
// result to outPath, creating parent directories as needed.
func MergeCSVFiles(oursPath, otherPath, outPath string) (int, error) {
	ours, err := ReadCSVFile(oursPath)
	if err != nil {
		return 0, err
	}
	other, err := ReadCSVFile(otherPath)
	if err != nil {
		return 0, err
	}

	merged := MergeCSV(ours, other)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := writeAndClose(f, merged); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return len(merged.Rows), nil
}

// writeAndClose writes t to w and closes w, reporting the first error.
func writeAndClose(w io.WriteCloser, t *CSVTable) error {
	if err := t.Write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// parseCell returns the first non-empty value among keys. A present but
// unparseable value ends the search.
func parseCell(row map[string]string, keys ...string) (decimal.Decimal, bool) {
	for _, key := range keys {
		raw, ok := row[key]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

func appendMissing(header []string, cols ...string) []string {
	for _, col := range cols {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			header = append(header, col)
		}
	}
	return header
}
