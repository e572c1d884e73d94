package calculation

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateNIIT computes the net investment income tax: the rate applied to
// the lesser of net investment income and MAGI above the threshold.
func CalculateNIIT(nii, magi, threshold decimal.Decimal) domain.NIITResult {
	excess := decimal.Max(decimal.Zero, magi.Sub(threshold))
	base := decimal.Min(nii, excess)
	return domain.NIITResult{
		Threshold:  threshold,
		MAGI:       magi,
		MAGIExcess: excess,
		NII:        nii,
		Base:       base,
		Tax:        base.Mul(NIITRate),
	}
}
