package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDateHint(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"full month name", "We meet again on January 5, 2026 at their office", "January 5, 2026"},
		{"abbreviated month", "circle back Mar 12 2026", "Mar 12 2026"},
		{"ordinal day", "scheduled for March 3rd, 2026", "March 3rd, 2026"},
		{"lowercase", "follow-up on december 1, 2026", "december 1, 2026"},
		{"no date", "no concrete plans were made", NotScheduled},
		{"month without year", "sometime in March would work", NotScheduled},
		{"empty", "", NotScheduled},
		{"first of several", "either Jan 2, 2026 or Feb 9, 2026", "Jan 2, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDateHint(tt.text))
		})
	}
}
