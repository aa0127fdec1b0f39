package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Summary aggregates the results of a run.
type Summary struct {
	ID            string        `json:"id"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Cases         []CaseSummary `json:"cases"`
	TotalCases    int           `json:"total_cases"`
	PassedCases   int           `json:"passed_cases"`
	FailedCases   int           `json:"failed_cases"`
	SkippedCases  int           `json:"skipped_cases"`
	TotalDuration time.Duration `json:"total_duration"`
	PassRate      float64       `json:"pass_rate"`
}

// CaseSummary is the summary line of a single case.
type CaseSummary struct {
	CaseID           string        `json:"case_id"`
	CaseName         string        `json:"case_name"`
	Status           string        `json:"status"`
	Duration         time.Duration `json:"duration"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total"`
}

// BuildSummary creates a summary from case results.
func BuildSummary(results []*CaseResult) *Summary {
	now := time.Now()
	summary := &Summary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Cases:       make([]CaseSummary, 0, len(results)),
	}

	for _, r := range results {
		summary.Cases = append(summary.Cases, CaseSummary{
			CaseID:           r.CaseID,
			CaseName:         r.CaseName,
			Status:           r.Status,
			Duration:         r.Duration,
			AssertionsPassed: r.Passed(),
			AssertionsTotal:  len(r.Assertions),
		})
		summary.TotalCases++
		summary.TotalDuration += r.Duration

		switch r.Status {
		case StatusPassed:
			summary.PassedCases++
		case StatusSkipped:
			summary.SkippedCases++
		default:
			summary.FailedCases++
		}
	}

	if summary.TotalCases > 0 {
		summary.PassRate = float64(summary.PassedCases) / float64(summary.TotalCases)
	}
	return summary
}

// SaveSummary writes the summary as JSON and Markdown into
// outputDir and points latest_summary.json and latest_summary.md
// at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.json", ts))
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", ts))
	if err := os.WriteFile(mdPath, []byte(generateSummaryMarkdown(summary)), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

func generateSummaryMarkdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Check Suite Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Case | Status | Duration | Checks |\n")
	sb.WriteString("|------|--------|----------|--------|\n")
	for _, c := range summary.Cases {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d |\n",
			c.CaseName, strings.ToUpper(c.Status), c.Duration,
			c.AssertionsPassed, c.AssertionsTotal)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Cases | %d |\n", summary.TotalCases)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedCases)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedCases)
	fmt.Fprintf(&sb, "| Skipped | %d |\n", summary.SkippedCases)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}
