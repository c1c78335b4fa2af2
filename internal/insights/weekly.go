package insights

import (
	"fmt"
	"strings"

	"innerlog/internal/models"
)

// ConsolidateWeekly flattens a window of entries into a single analysis
// prompt, one date-stamped block per entry joined by blank lines. The anchor
// is the entry with the latest created_at, computed explicitly rather than
// assuming the slice is ordered.
func ConsolidateWeekly(entries []models.JournalEntry) (anchorID, text string) {
	blocks := make([]string, 0, len(entries))
	var anchor *models.JournalEntry
	for i := range entries {
		e := &entries[i]
		blocks = append(blocks, fmt.Sprintf("--- ENTRY (%s) ---\n%s",
			e.CreatedAt.Format("2006-01-02"), e.EntryText))
		if anchor == nil || e.CreatedAt.After(anchor.CreatedAt) {
			anchor = e
		}
	}
	if anchor != nil {
		anchorID = anchor.ID
	}
	return anchorID, strings.Join(blocks, "\n\n")
}
