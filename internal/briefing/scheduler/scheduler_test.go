package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"consultant-backend/internal/briefing/domain"
	briefingusecase "consultant-backend/internal/briefing/usecase"
	integrationdomain "consultant-backend/internal/integration/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	userIDs []string
	err     error
}

func (f *fakeCredentials) ConnectedUserIDs() ([]string, error) {
	return f.userIDs, f.err
}

type fakeReader struct {
	meetings map[string][]integrationdomain.Meeting
	errs     map[string]error
}

func (f *fakeReader) ListUpcoming(ctx context.Context, userID string, limit int) ([]integrationdomain.Meeting, error) {
	if err, ok := f.errs[userID]; ok {
		return nil, err
	}
	return f.meetings[userID], nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []briefingusecase.Job
	full bool
}

func (f *fakeQueue) QueueJob(job briefingusecase.Job) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.jobs = append(f.jobs, job)
	return true
}

func (f *fakeQueue) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

type fakeFreshness struct {
	fresh map[string]bool
	err   error
}

func (f *fakeFreshness) Create(b *domain.Briefing) error              { return nil }
func (f *fakeFreshness) FindByID(id string) (*domain.Briefing, error) { return nil, nil }
func (f *fakeFreshness) FindByUser(userID string, limit, offset int) ([]*domain.Briefing, int64, error) {
	return nil, 0, nil
}
func (f *fakeFreshness) Delete(id string) error { return nil }
func (f *fakeFreshness) ExistsFresh(userID, clientName string, meetingDate time.Time, window time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.fresh[userID+"/"+clientName], nil
}

func TestRunCycleDispatchesEligibleMeetings(t *testing.T) {
	now := time.Now()
	creds := &fakeCredentials{userIDs: []string{"u1"}}
	reader := &fakeReader{meetings: map[string][]integrationdomain.Meeting{
		"u1": {
			{Summary: "Acme Sync", Start: now.Add(2 * time.Hour)},
			{Summary: "Globex Review", Start: now.Add(48 * time.Hour)}, // beyond lookahead
			{Summary: "Initech Retro", Start: now.Add(-time.Hour)},     // already started
			{Summary: "", Start: now.Add(3 * time.Hour)},               // untitled
		},
	}}
	queue := &fakeQueue{}

	s := NewScanScheduler(creds, reader, &fakeFreshness{}, queue, time.Hour, 24*time.Hour, 24*time.Hour)
	s.runCycle()

	require.Equal(t, 1, queue.count())
	job := queue.jobs[0]
	assert.Equal(t, "u1", job.UserID)
	assert.Equal(t, "Acme Sync", job.ClientName)
}

func TestRunCycleSkipsFreshBriefings(t *testing.T) {
	now := time.Now()
	creds := &fakeCredentials{userIDs: []string{"u1"}}
	reader := &fakeReader{meetings: map[string][]integrationdomain.Meeting{
		"u1": {
			{Summary: "Acme Sync", Start: now.Add(2 * time.Hour)},
			{Summary: "Globex Review", Start: now.Add(3 * time.Hour)},
		},
	}}
	fresh := &fakeFreshness{fresh: map[string]bool{"u1/Acme Sync": true}}
	queue := &fakeQueue{}

	s := NewScanScheduler(creds, reader, fresh, queue, time.Hour, 24*time.Hour, 24*time.Hour)
	s.runCycle()

	require.Equal(t, 1, queue.count())
	assert.Equal(t, "Globex Review", queue.jobs[0].ClientName)
}

func TestRunCycleIsolatesFailingUsers(t *testing.T) {
	now := time.Now()
	creds := &fakeCredentials{userIDs: []string{"expired", "broken", "healthy"}}
	reader := &fakeReader{
		meetings: map[string][]integrationdomain.Meeting{
			"healthy": {{Summary: "Acme Sync", Start: now.Add(time.Hour)}},
		},
		errs: map[string]error{
			"expired": integrationdomain.ErrAuthExpired,
			"broken":  integrationdomain.ErrCalendarUnavailable,
		},
	}
	queue := &fakeQueue{}

	s := NewScanScheduler(creds, reader, &fakeFreshness{}, queue, time.Hour, 24*time.Hour, 24*time.Hour)
	s.runCycle()

	require.Equal(t, 1, queue.count(), "one user's auth failure must not block the others")
	assert.Equal(t, "healthy", queue.jobs[0].UserID)
}

func TestRunCycleFullQueueLeavesMeetingsForNextCycle(t *testing.T) {
	now := time.Now()
	creds := &fakeCredentials{userIDs: []string{"u1"}}
	reader := &fakeReader{meetings: map[string][]integrationdomain.Meeting{
		"u1": {{Summary: "Acme Sync", Start: now.Add(time.Hour)}},
	}}
	queue := &fakeQueue{full: true}

	s := NewScanScheduler(creds, reader, &fakeFreshness{}, queue, time.Hour, 24*time.Hour, 24*time.Hour)

	// Must not panic or loop; the meeting is simply re-evaluated next cycle.
	s.runCycle()
	assert.Equal(t, 0, queue.count())
}

func TestStartStop(t *testing.T) {
	creds := &fakeCredentials{}
	reader := &fakeReader{}
	queue := &fakeQueue{}

	s := NewScanScheduler(creds, reader, &fakeFreshness{}, queue, time.Hour, 24*time.Hour, 24*time.Hour)
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
}
