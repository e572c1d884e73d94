package output

import (
	"bytes"
	_ "embed"
	"html/template"
)

// HTMLFormatter renders a report as a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Assumptions []string
	}{report, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
