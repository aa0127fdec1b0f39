package suite

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter renders results as JSON.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a JSON reporter. When pretty is true,
// output is indented.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// GenerateReport renders a single case result.
func (r *JSONReporter) GenerateReport(result *CaseResult) ([]byte, error) {
	return r.marshal(result)
}

type jsonRunSummary struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	TotalCases    int           `json:"total_cases"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Skipped       int           `json:"skipped"`
	TotalDuration time.Duration `json:"total_duration"`
	Results       []*CaseResult `json:"results"`
}

// GenerateSummary renders all results with their totals.
func (r *JSONReporter) GenerateSummary(results []*CaseResult) ([]byte, error) {
	summary := jsonRunSummary{
		GeneratedAt: time.Now(),
		TotalCases:  len(results),
		Results:     results,
	}
	for _, res := range results {
		switch res.Status {
		case StatusPassed:
			summary.Passed++
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		summary.TotalDuration += res.Duration
	}
	return r.marshal(summary)
}

// WriteReport writes the JSON report of result to w.
func (r *JSONReporter) WriteReport(w io.Writer, result *CaseResult) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
