package suite

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// MarkdownReporter renders results as Markdown.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// GenerateReport renders a single case result.
func (r *MarkdownReporter) GenerateReport(result *CaseResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateSummary renders the summary of a run.
func (r *MarkdownReporter) GenerateSummary(results []*CaseResult) ([]byte, error) {
	return []byte(generateSummaryMarkdown(BuildSummary(results))), nil
}

// WriteReport writes the Markdown report of result to w. Failed
// checks are followed by their full message.
func (r *MarkdownReporter) WriteReport(w io.Writer, result *CaseResult) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Case Report: %s\n\n", result.CaseName)
	fmt.Fprintf(&sb, "**Case ID:** %s\n\n", result.CaseID)
	fmt.Fprintf(&sb, "**Status:** %s\n\n", strings.ToUpper(result.Status))
	fmt.Fprintf(&sb, "**Finished:** %s\n\n", result.EndTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Duration:** %v\n\n", result.Duration)
	if result.Error != "" {
		fmt.Fprintf(&sb, "**Error:** %s\n\n", result.Error)
	}

	if len(result.Assertions) > 0 {
		sb.WriteString("## Checks\n\n")
		sb.WriteString("| Check | Target | Result | Message |\n")
		sb.WriteString("|-------|--------|--------|---------|\n")
		for _, a := range result.Assertions {
			outcome := "PASS"
			if !a.Passed {
				outcome = "FAIL"
			}
			kind := a.Type
			if a.Negated {
				kind = "!" + kind
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				kind, a.Target, outcome, escapeCell(a.Message))
		}

		for _, a := range result.Assertions {
			if a.Passed || a.Detail == "" {
				continue
			}
			fmt.Fprintf(&sb, "\n### %s on %s\n\n```\n%s\n```\n", a.Type, a.Target, a.Detail)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
