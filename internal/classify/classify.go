package classify

import (
	"strings"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

// urgentKeywords trigger an upgrade to urgent regardless of declared
// priority. Matching is case-insensitive substring.
var urgentKeywords = []string{
	"medical",
	"emergency",
	"urgent",
	"elderly",
	"disabled",
	"children",
	"baby",
	"infant",
	"asap",
	"today",
}

// Classify maps a declared priority plus free-text notes to the effective
// priority. It only ever upgrades: a keyword hit forces urgent, otherwise the
// declared priority stands, defaulting to medium when absent.
func Classify(declared models.Priority, needType models.NeedType, notes string) models.Priority {
	lower := strings.ToLower(notes)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return models.PriorityUrgent
		}
	}
	if models.ValidPriority(declared) {
		return declared
	}
	return models.PriorityMedium
}
