package domain

import (
	"errors"
	"time"
)

// ErrSynthesisParse means the model reply could not be parsed into a
// structured briefing. Nothing is persisted when this happens.
var ErrSynthesisParse = errors.New("synthesis response not parseable")

// ErrPersistence means the briefing write failed. The pipeline writes
// nothing else, so there is no compensating action.
var ErrPersistence = errors.New("briefing persistence failed")

// ResearchItem is one piece of external research attached to a briefing
type ResearchItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Briefing is the generated pre-meeting artifact. Immutable once
// persisted; identified by (user, client, meeting date) for freshness.
type Briefing struct {
	ID                 string         `json:"id" gorm:"primaryKey"`
	UserID             string         `json:"user_id" gorm:"index;not null"`
	ClientName         string         `json:"client_name" gorm:"index;not null"`
	MeetingDate        time.Time      `json:"meeting_date"`
	NextMeeting        string         `json:"next_meeting"`
	Summary            string         `json:"summary"`
	Gaps               []string       `json:"gaps" gorm:"serializer:json"`
	ExternalResearch   []ResearchItem `json:"external_research" gorm:"serializer:json"`
	SuggestedQuestions []string       `json:"suggested_questions" gorm:"serializer:json"`
	CreatedAt          time.Time      `json:"created_at"`
}

// Outcome classifies one pipeline invocation for observability
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeNoop      Outcome = "noop"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped" // suppressed by the freshness window
)
