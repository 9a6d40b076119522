package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"consultant-backend/internal/briefing/domain"
	"consultant-backend/internal/briefing/repository"
	integrationdomain "consultant-backend/internal/integration/domain"
)

// Synthesizer is the LLM surface the pipeline calls exactly once per
// invocation. pkg/ai provides implementations.
type Synthesizer interface {
	SynthesizeBriefing(ctx context.Context, prompt string) (string, error)
}

// SearchProvider returns external research for a query. Failures are
// non-fatal to the pipeline.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]domain.ResearchItem, error)
}

// NotesSource aggregates meeting note content for a (user, client)
// pairing, chronological order, most recent last.
type NotesSource interface {
	NotesFor(userID, clientName string) ([]string, error)
}

// MeetingSource lists upcoming meetings; used only to pick the
// next-meeting reference date. nil disables the calendar lookup.
type MeetingSource interface {
	ListUpcoming(ctx context.Context, userID string, limit int) ([]integrationdomain.Meeting, error)
}

// Timeouts bound each external call so one hung provider cannot stall a
// whole scan cycle.
type Timeouts struct {
	Calendar time.Duration
	Search   time.Duration
	LLM      time.Duration
}

// pipeline stages, for failure logging
const (
	stageStarted      = "STARTED"
	stageNotesFetched = "NOTES_FETCHED"
	stageDrafted      = "DRAFTED"
	stageEnriched     = "ENRICHED"
	stagePersisted    = "PERSISTED"
)

// Pipeline drives one briefing generation: notes, prompt, LLM, search,
// persist. It never writes anything except the final briefing, so a
// failure at any stage leaves no partial state behind.
type Pipeline struct {
	notes        NotesSource
	synthesizer  Synthesizer
	search       SearchProvider
	meetings     MeetingSource
	briefingRepo repository.BriefingRepository
	timeouts     Timeouts
}

// NewPipeline creates a new synthesis Pipeline
func NewPipeline(
	notes NotesSource,
	synthesizer Synthesizer,
	search SearchProvider,
	meetings MeetingSource,
	briefingRepo repository.BriefingRepository,
	timeouts Timeouts,
) *Pipeline {
	if timeouts.Calendar <= 0 {
		timeouts.Calendar = 5 * time.Second
	}
	if timeouts.Search <= 0 {
		timeouts.Search = 8 * time.Second
	}
	if timeouts.LLM <= 0 {
		timeouts.LLM = 45 * time.Second
	}

	return &Pipeline{
		notes:        notes,
		synthesizer:  synthesizer,
		search:       search,
		meetings:     meetings,
		briefingRepo: briefingRepo,
		timeouts:     timeouts,
	}
}

// Generate runs the full pipeline for one (user, client, meeting date)
// unit. An empty notes result is a successful no-op, not an error. The
// caller is responsible for the freshness check; Generate itself is
// deliberately idempotence-free.
func (p *Pipeline) Generate(ctx context.Context, userID, clientName string, meetingDate time.Time) (*domain.Briefing, domain.Outcome, error) {
	stage := stageStarted

	notes, err := p.notes.NotesFor(userID, clientName)
	if err != nil {
		return nil, domain.OutcomeFailed, fmt.Errorf("fetching notes at %s: %w", stage, err)
	}
	if len(notes) == 0 {
		log.Printf("[Pipeline] No notes for user=%s client=%q, nothing to synthesize", userID, clientName)
		return nil, domain.OutcomeNoop, nil
	}
	stage = stageNotesFetched

	nextMeeting := p.nextMeetingReference(ctx, userID, clientName, notes)

	prompt := buildPrompt(clientName, meetingDate, nextMeeting, notes)

	llmCtx, cancel := context.WithTimeout(ctx, p.timeouts.LLM)
	raw, err := p.synthesizer.SynthesizeBriefing(llmCtx, prompt)
	cancel()
	if err != nil {
		return nil, domain.OutcomeFailed, fmt.Errorf("LLM call at %s: %w", stage, err)
	}

	parsed, err := parseSynthesis(raw)
	if err != nil {
		// Keep the raw reply in the log for diagnosis; nothing is persisted.
		log.Printf("[Pipeline] Unparseable synthesis for user=%s client=%q: %v\nraw: %s", userID, clientName, err, raw)
		return nil, domain.OutcomeFailed, err
	}
	stage = stageDrafted

	research := p.enrich(ctx, clientName)
	stage = stageEnriched

	briefing := &domain.Briefing{
		UserID:             userID,
		ClientName:         clientName,
		MeetingDate:        meetingDate,
		NextMeeting:        nextMeeting,
		Summary:            parsed.Summary,
		Gaps:               parsed.Gaps,
		ExternalResearch:   research,
		SuggestedQuestions: parsed.SuggestedQuestions,
	}
	if err := p.briefingRepo.Create(briefing); err != nil {
		return nil, domain.OutcomeFailed, fmt.Errorf("%w at %s: %v", domain.ErrPersistence, stage, err)
	}
	stage = stagePersisted

	log.Printf("[Pipeline] %s briefing %s for user=%s client=%q", stage, briefing.ID, userID, clientName)
	return briefing, domain.OutcomeGenerated, nil
}

// nextMeetingReference prefers an upcoming calendar event whose title
// mentions the client, then a date hint scraped from the notes, then the
// "Not scheduled" marker.
func (p *Pipeline) nextMeetingReference(ctx context.Context, userID, clientName string, notes []string) string {
	if p.meetings != nil {
		calCtx, cancel := context.WithTimeout(ctx, p.timeouts.Calendar)
		meetings, err := p.meetings.ListUpcoming(calCtx, userID, 10)
		cancel()
		if err != nil {
			log.Printf("[Pipeline] Calendar lookup failed for user=%s, falling back to note text: %v", userID, err)
		} else {
			lower := strings.ToLower(clientName)
			for _, m := range meetings {
				if strings.Contains(strings.ToLower(m.Summary), lower) {
					return m.Start.Format("January 2, 2006")
				}
			}
		}
	}

	for i := len(notes) - 1; i >= 0; i-- {
		if hint := ExtractDateHint(notes[i]); hint != NotScheduled {
			return hint
		}
	}
	return NotScheduled
}

// enrich queries the search provider; a failure degrades to an empty
// research list with a warning, never aborts the pipeline.
func (p *Pipeline) enrich(ctx context.Context, clientName string) []domain.ResearchItem {
	if p.search == nil {
		return []domain.ResearchItem{}
	}

	searchCtx, cancel := context.WithTimeout(ctx, p.timeouts.Search)
	defer cancel()

	results, err := p.search.Search(searchCtx, fmt.Sprintf("recent news about %s", clientName))
	if err != nil {
		log.Printf("[Pipeline] WARN search degraded for client=%q, continuing without research: %v", clientName, err)
		return []domain.ResearchItem{}
	}
	if results == nil {
		return []domain.ResearchItem{}
	}
	return results
}
