package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"consultant-backend/internal/briefing/domain"
	integrationdomain "consultant-backend/internal/integration/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotes struct {
	notes map[string][]string
	err   error
}

func (f *fakeNotes) NotesFor(userID, clientName string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notes[userID+"/"+clientName], nil
}

type fakeSynthesizer struct {
	reply string
	err   error
	calls int
}

func (f *fakeSynthesizer) SynthesizeBriefing(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSearch struct {
	results []domain.ResearchItem
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]domain.ResearchItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeMeetings struct {
	meetings []integrationdomain.Meeting
	err      error
}

func (f *fakeMeetings) ListUpcoming(ctx context.Context, userID string, limit int) ([]integrationdomain.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.meetings, nil
}

type memBriefingRepo struct {
	mu        sync.Mutex
	briefings []*domain.Briefing
	createErr error
	nextID    int
}

func (r *memBriefingRepo) Create(b *domain.Briefing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	if b.ID == "" {
		b.ID = fmt.Sprintf("b-%d", r.nextID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.briefings = append(r.briefings, b)
	return nil
}

func (r *memBriefingRepo) FindByID(id string) (*domain.Briefing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.briefings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBriefingRepo) FindByUser(userID string, limit, offset int) ([]*domain.Briefing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Briefing
	for _, b := range r.briefings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memBriefingRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.briefings {
		if b.ID == id {
			r.briefings = append(r.briefings[:i], r.briefings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memBriefingRepo) ExistsFresh(userID, clientName string, meetingDate time.Time, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-window)
	for _, b := range r.briefings {
		if b.UserID != userID {
			continue
		}
		if !strings.EqualFold(b.ClientName, clientName) {
			continue
		}
		y1, m1, d1 := b.MeetingDate.Date()
		y2, m2, d2 := meetingDate.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		if b.CreatedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBriefingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.briefings)
}

const validReply = `{"summary":"Acme wants a data platform overhaul","gaps":["budget unknown"],"suggested_questions":["What is the Q3 budget?"]}`

func newTestPipeline(notes NotesSource, synth Synthesizer, search SearchProvider, meetings MeetingSource, repo *memBriefingRepo) *Pipeline {
	return NewPipeline(notes, synth, search, meetings, repo, Timeouts{
		Calendar: time.Second,
		Search:   time.Second,
		LLM:      time.Second,
	})
}

func TestGenerateHappyPath(t *testing.T) {
	meetingDate := time.Now().Add(4 * time.Hour)
	notes := &fakeNotes{notes: map[string][]string{
		"u1/Acme Sync": {"Kickoff went well.", "Follow-up on March 3, 2026 about the platform."},
	}}
	synth := &fakeSynthesizer{reply: validReply}
	search := &fakeSearch{results: []domain.ResearchItem{{URL: "https://example.com/acme", Content: "Acme raised a round"}}}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, search, nil, repo)
	briefing, outcome, err := p.Generate(context.Background(), "u1", "Acme Sync", meetingDate)

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeGenerated, outcome)
	require.NotNil(t, briefing)
	assert.Equal(t, "u1", briefing.UserID)
	assert.Equal(t, "Acme Sync", briefing.ClientName)
	assert.Equal(t, "Acme wants a data platform overhaul", briefing.Summary)
	assert.Equal(t, []string{"budget unknown"}, briefing.Gaps)
	assert.Equal(t, []string{"What is the Q3 budget?"}, briefing.SuggestedQuestions)
	assert.Len(t, briefing.ExternalResearch, 1)
	assert.Equal(t, "March 3, 2026", briefing.NextMeeting)
	assert.Equal(t, 1, repo.count())
}

func TestGenerateEmptyNotesIsNoop(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{}}
	synth := &fakeSynthesizer{reply: validReply}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, nil, repo)
	briefing, outcome, err := p.Generate(context.Background(), "u1", "Ghost Client", time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoop, outcome)
	assert.Nil(t, briefing)
	assert.Equal(t, 0, repo.count(), "a no-op must not persist anything")
	assert.Equal(t, 0, synth.calls, "a no-op must not call the LLM")
}

func TestGenerateParseFailurePersistsNothing(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"some note"}}}
	synth := &fakeSynthesizer{reply: "I could not produce JSON, sorry."}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, nil, repo)
	briefing, outcome, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSynthesisParse)
	assert.Equal(t, domain.OutcomeFailed, outcome)
	assert.Nil(t, briefing)
	assert.Equal(t, 0, repo.count())
}

func TestGenerateSearchFailureDegrades(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"some note"}}}
	synth := &fakeSynthesizer{reply: validReply}
	search := &fakeSearch{err: errors.New("tavily 500")}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, search, nil, repo)
	briefing, outcome, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.NoError(t, err, "a search failure must not fail the briefing")
	assert.Equal(t, domain.OutcomeGenerated, outcome)
	require.NotNil(t, briefing)
	assert.Empty(t, briefing.ExternalResearch)
	assert.NotNil(t, briefing.ExternalResearch, "research degrades to empty, not nil")
	assert.Equal(t, 1, repo.count())
}

func TestGenerateLLMFailure(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"some note"}}}
	synth := &fakeSynthesizer{err: errors.New("model overloaded")}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, nil, repo)
	briefing, outcome, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.Error(t, err)
	assert.Equal(t, domain.OutcomeFailed, outcome)
	assert.Nil(t, briefing)
	assert.Equal(t, 0, repo.count())
}

func TestGeneratePersistenceFailure(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"some note"}}}
	synth := &fakeSynthesizer{reply: validReply}
	repo := &memBriefingRepo{createErr: errors.New("db down")}

	p := newTestPipeline(notes, synth, nil, nil, repo)
	_, outcome, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, domain.OutcomeFailed, outcome)
}

func TestNextMeetingPrefersCalendarMatch(t *testing.T) {
	calDate := time.Date(2026, 10, 12, 14, 0, 0, 0, time.UTC)
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"follow up on November 1, 2026"}}}
	synth := &fakeSynthesizer{reply: validReply}
	meetings := &fakeMeetings{meetings: []integrationdomain.Meeting{
		{Summary: "Internal standup", Start: time.Now().Add(time.Hour)},
		{Summary: "acme quarterly review", Start: calDate},
	}}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, meetings, repo)
	briefing, _, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "October 12, 2026", briefing.NextMeeting, "calendar title match wins over note hints")
}

func TestNextMeetingFallsBackToNoteHint(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {
		"old note, no date",
		"newest note mentions Dec 5, 2026 as a follow-up",
	}}}
	synth := &fakeSynthesizer{reply: validReply}
	meetings := &fakeMeetings{err: errors.New("calendar down")}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, meetings, repo)
	briefing, _, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Dec 5, 2026", briefing.NextMeeting)
}

func TestNextMeetingNotScheduled(t *testing.T) {
	notes := &fakeNotes{notes: map[string][]string{"u1/Acme": {"nothing datelike here"}}}
	synth := &fakeSynthesizer{reply: validReply}
	repo := &memBriefingRepo{}

	p := newTestPipeline(notes, synth, nil, nil, repo)
	briefing, _, err := p.Generate(context.Background(), "u1", "Acme", time.Now())

	require.NoError(t, err)
	assert.Equal(t, NotScheduled, briefing.NextMeeting)
}
