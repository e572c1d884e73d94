package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateColumns is the column layout of the batch CSV. The trailing
// other_* and diff_* columns are left blank for a later merge.
var GenerateColumns = []string{
	"scenario_id",
	"total_income",
	"stcg_pct",
	"ltcg_pct",
	"stcg_amount",
	"ltcg_amount",
	"std_deduction",
	"taxable_income",
	"taxable_ordinary",
	"taxable_ltcg",
	"ordinary_tax",
	"ltcg_0_amount",
	"ltcg_15_amount",
	"ltcg_20_amount",
	"ltcg_tax",
	"niit_threshold",
	"magi_excess",
	"nii",
	"niit_base",
	"niit",
	"base_tax",
	"total_federal_tax",
	"effective_rate_pct",
	"after_tax_income",
	"other_total_federal_tax",
	"other_effective_rate_pct",
	"other_after_tax_income",
	"diff_total_tax",
	"diff_effective_rate_pct",
	"diff_after_tax_income",
}

// GenerateCSVFormatter renders one row per result in the batch CSV layout.
type GenerateCSVFormatter struct{}

func (g GenerateCSVFormatter) Name() string { return "csv" }

func (g GenerateCSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(GenerateColumns); err != nil {
		return nil, err
	}
	for i := range report.Results {
		r := &report.Results[i]
		if err := w.Write(generateRow(r, report.Points)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// generateRow lays out a result. Points supply the exact income split;
// other results report their net short and long-term gains instead.
func generateRow(r *domain.TaxResult, points map[string]domain.HeatmapPoint) []string {
	hundred := decimal.NewFromInt(100)

	stAmount := r.Netting.OrdinaryCapGain
	ltAmount := r.Netting.PrefCapGain
	stPct, ltPct := decimal.Zero, decimal.Zero
	if p, ok := points[r.ScenarioID]; ok {
		stPct = p.ShortTermPct
		ltPct = p.LongTermPct()
		stAmount = p.Income.Mul(stPct).Div(hundred)
		ltAmount = p.Income.Sub(stAmount)
	} else if r.GrossIncome.IsPositive() {
		stPct = stAmount.Div(r.GrossIncome).Mul(hundred)
		ltPct = ltAmount.Div(r.GrossIncome).Mul(hundred)
	}

	return []string{
		r.ScenarioID,
		r.GrossIncome.StringFixed(2),
		stPct.StringFixed(2),
		ltPct.StringFixed(2),
		stAmount.StringFixed(2),
		ltAmount.StringFixed(2),
		r.StandardDeduction.StringFixed(2),
		r.TaxableIncome.StringFixed(2),
		r.TaxableOrdinary.StringFixed(2),
		r.TaxablePreferential.StringFixed(2),
		r.OrdinaryTax.StringFixed(2),
		r.Preferential.AtZero.StringFixed(2),
		r.Preferential.AtFifteen.StringFixed(2),
		r.Preferential.AtTwenty.StringFixed(2),
		r.PreferentialTax.StringFixed(2),
		r.NIIT.Threshold.StringFixed(2),
		r.NIIT.MAGIExcess.StringFixed(2),
		r.NIIT.NII.StringFixed(2),
		r.NIIT.Base.StringFixed(2),
		r.NIIT.Tax.StringFixed(2),
		r.RegularTax.StringFixed(2),
		r.FinalTax.StringFixed(2),
		r.EffectiveRatePct.StringFixed(4),
		r.AfterTaxIncome.StringFixed(2),
		"", "", "", "", "", "",
	}
}
