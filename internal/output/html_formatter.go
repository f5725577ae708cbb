package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	money "github.com/fondsvergleich/vergleichsrechner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with both ledgers.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"num":   func(d decimal.Decimal) string { return money.GermanNumber(d, 2) },
	"year":  func(i int) int { return i + 1 },
	"years": func(h int) int { return h + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComparisonResult
		Recommendation Recommendation
		Assumptions    []string
	}{result, AnalyzeComparison(result), GenerateAssumptions(result.Input)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
