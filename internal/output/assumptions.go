package output

// DefaultAssumptions lists the modeling simplifications rendered in detailed
// reports.
var DefaultAssumptions = []string{
	"Single tax year; no carryover of capital losses or credits into the computation",
	"Standard deduction reduces ordinary income before preferential income",
	"Qualified dividends default to US-source dividends when not given",
	"NIIT uses AGI as modified AGI",
	"Foreign tax credit uses one basket with a gross-income ratio approximation",
	"No alternative minimum tax, state tax or phase-outs",
}
