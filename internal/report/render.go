package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/expense-report/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Row is one line of a rendered CSV report.
type Row struct {
	Category string `csv:"category" yaml:"category"`
	Total    string `csv:"total" yaml:"total"`
}

// Rows returns the totals sorted by category, amounts in exact decimal form.
func Rows(totals models.CategoryTotals) []Row {
	rows := make([]Row, 0, len(totals))
	for _, label := range totals.Labels() {
		rows = append(rows, Row{Category: label, Total: totals[label].String()})
	}
	return rows
}

// Render serializes totals in the given format (json, yaml or csv).
func Render(totals models.CategoryTotals, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case models.FormatJSON, "":
		out, err := json.MarshalIndent(totals.Floats(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return out, nil
	case models.FormatYAML:
		out, err := yaml.Marshal(totals.Floats())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	case models.FormatCSV:
		rows := Rows(totals)
		out, err := gocsv.MarshalBytes(&rows)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
