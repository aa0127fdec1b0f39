package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HistoryEntry is one case run in the history log.
type HistoryEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	CaseID           string    `json:"case_id"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
}

// AppendToHistory appends one JSON line per result to the log at
// historyPath.
func AppendToHistory(historyPath string, results ...*CaseResult) error {
	file, err := os.OpenFile(historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	for _, r := range results {
		data, err := json.Marshal(HistoryEntry{
			Timestamp:        r.EndTime,
			CaseID:           r.CaseID,
			Status:           r.Status,
			Duration:         r.Duration.String(),
			AssertionsPassed: r.Passed(),
			AssertionsTotal:  len(r.Assertions),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}
		if _, err := fmt.Fprintln(file, string(data)); err != nil {
			return err
		}
	}
	return nil
}
