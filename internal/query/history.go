package query

import (
	"strings"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

const anyValue = "all"

// HistoryFilter narrows unit history by status and issue type. Empty or
// "all" disables a criterion.
type HistoryFilter struct {
	Status    string
	IssueType string
}

// FilterHistory applies f to records, keeping order.
func FilterHistory(records []domain.HistoricalTicket, f HistoryFilter) []domain.HistoricalTicket {
	out := make([]domain.HistoricalTicket, 0, len(records))
	for _, record := range records {
		if !matchesCriterion(string(record.Status), f.Status) {
			continue
		}
		if !matchesCriterion(record.IssueType, f.IssueType) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesCriterion(value, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, anyValue) {
		return true
	}
	return strings.EqualFold(value, want)
}

// IssueTypes lists the distinct issue types of records in first-seen order.
func IssueTypes(records []domain.HistoricalTicket) []string {
	seen := make(map[string]struct{}, len(records))
	out := []string{}
	for _, record := range records {
		if _, ok := seen[record.IssueType]; ok {
			continue
		}
		seen[record.IssueType] = struct{}{}
		out = append(out, record.IssueType)
	}
	return out
}
