package usecase

import (
	"regexp"
)

// NotScheduled is the marker used when no next-meeting date can be
// determined.
const NotScheduled = "Not scheduled"

// Matches dates like "January 5, 2026", "Mar 12 2026", case-insensitive.
// Best-effort only; free text is not a calendar.
var dateHintPattern = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?,?\s+([0-9]{4})\b`)

// ExtractDateHint scans free text for a recognizable calendar date
// (month name + day + year) and returns the first match verbatim, or
// NotScheduled. The output is a display string, never authoritative.
func ExtractDateHint(text string) string {
	if match := dateHintPattern.FindString(text); match != "" {
		return match
	}
	return NotScheduled
}
