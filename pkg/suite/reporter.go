package suite

import "io"

// Reporter renders case results.
type Reporter interface {
	// GenerateReport renders a single case result.
	GenerateReport(result *CaseResult) ([]byte, error)

	// GenerateSummary renders the results of a whole run.
	GenerateSummary(results []*CaseResult) ([]byte, error)

	// WriteReport writes the report of result to w.
	WriteReport(w io.Writer, result *CaseResult) error
}
