package output

import (
	"encoding/json"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// JSONFormatter serializes the comparison result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
