package compare

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const oursCSV = `scenario_id,total_federal_tax,effective_rate_pct,after_tax_income,other_total_federal_tax,other_effective_rate_pct,other_after_tax_income,diff_total_tax,diff_effective_rate_pct,diff_after_tax_income
S01,227168.50,28.3961,572831.50,,,,,,
S02,1000.00,10.0000,9000.00,,,,,,
S03,abc,5.0000,95.00,,,,,,
`

const otherCSV = `scenario_id,other_total_federal_tax,effective_rate_pct,after_tax_income
S01,227200,28.4,572800
S03,10,5.5,
S99,1,1,1
`

func TestMergeCSV(t *testing.T) {
	ours, err := ReadCSVTable(strings.NewReader(oursCSV))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	other, err := ReadCSVTable(strings.NewReader(otherCSV))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	merged := MergeCSV(ours, other)

	if len(merged.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(merged.Rows))
	}
	if strings.Join(merged.Header, ",") != strings.Join(ours.Header, ",") {
		t.Errorf("Header changed: %v", merged.Header)
	}

	s01 := merged.Rows[0]
	checks := map[string]string{
		ColOtherTotalTax:      "227200.00",
		ColOtherEffectiveRate: "28.4000",
		ColOtherAfterTax:      "572800.00",
		ColDiffTotalTax:       "31.50",
		ColDiffEffectiveRate:  "0.0039",
		ColDiffAfterTax:       "-31.50",
	}
	for col, want := range checks {
		if s01[col] != want {
			t.Errorf("S01 %s = %q, want %q", col, s01[col], want)
		}
	}

	s02 := merged.Rows[1]
	if s02[ColOtherTotalTax] != "" || s02[ColDiffTotalTax] != "" {
		t.Errorf("Expected S02 untouched, got %v", s02)
	}

	s03 := merged.Rows[2]
	if s03[ColOtherTotalTax] != "10.00" {
		t.Errorf("Expected other total 10.00, got %q", s03[ColOtherTotalTax])
	}
	if s03[ColDiffTotalTax] != "" {
		t.Errorf("Expected no tax diff when ours is unparseable, got %q", s03[ColDiffTotalTax])
	}
	if s03[ColDiffEffectiveRate] != "0.5000" {
		t.Errorf("Expected rate diff 0.5000, got %q", s03[ColDiffEffectiveRate])
	}
	if s03[ColOtherAfterTax] != "" {
		t.Errorf("Expected empty other after-tax, got %q", s03[ColOtherAfterTax])
	}
}

func TestMergeCSV_AddsMissingColumns(t *testing.T) {
	ours, err := ReadCSVTable(strings.NewReader("scenario_id,total_federal_tax\nS01,100\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	other, err := ReadCSVTable(strings.NewReader("scenario_id,total_federal_tax\nS01,150\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	merged := MergeCSV(ours, other)

	if len(merged.Header) != 8 {
		t.Errorf("Expected 8 columns, got %d: %v", len(merged.Header), merged.Header)
	}
	if merged.Rows[0][ColDiffTotalTax] != "50.00" {
		t.Errorf("Expected diff 50.00, got %q", merged.Rows[0][ColDiffTotalTax])
	}
}

func TestMergeCSVFiles(t *testing.T) {
	dir := t.TempDir()
	oursPath := filepath.Join(dir, "ours.csv")
	otherPath := filepath.Join(dir, "other.csv")
	outPath := filepath.Join(dir, "nested", "out.csv")

	if err := os.WriteFile(oursPath, []byte(oursCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(otherPath, []byte(otherCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := MergeCSVFiles(oursPath, otherPath, outPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 rows written, got %d", n)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "S01,227168.50,28.3961,572831.50,227200.00,28.4000,572800.00,31.50,0.0039,-31.50") {
		t.Errorf("Unexpected merged output:\n%s", data)
	}
}

func TestReadCSVTable_Empty(t *testing.T) {
	if _, err := ReadCSVTable(strings.NewReader("")); err == nil {
		t.Error("Expected error for empty CSV")
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	table, err := ReadCSVTable(strings.NewReader(otherCSV))
	if err != nil {
		t.Fatal(err)
	}
	w := &failingCloser{closeErr: errors.New("disk quota exceeded")}

	err = writeAndClose(w, table)
	if err == nil || err.Error() != "disk quota exceeded" {
		t.Fatalf("Expected close error, got %v", err)
	}
	if !w.closed {
		t.Error("Expected the writer to be closed")
	}
	if !strings.HasPrefix(w.String(), "scenario_id,") {
		t.Errorf("Expected the table to be written before closing, got %q", w.String())
	}
}

func TestWriteAndClose_Success(t *testing.T) {
	table, err := ReadCSVTable(strings.NewReader(otherCSV))
	if err != nil {
		t.Fatal(err)
	}
	w := &failingCloser{}

	if err := writeAndClose(w, table); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !w.closed {
		t.Error("Expected the writer to be closed")
	}
}
