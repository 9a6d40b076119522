package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	briefingrepo "consultant-backend/internal/briefing/repository"
	briefingusecase "consultant-backend/internal/briefing/usecase"
	integrationdomain "consultant-backend/internal/integration/domain"
)

// CredentialSource lists users whose calendars the scan should visit
type CredentialSource interface {
	ConnectedUserIDs() ([]string, error)
}

// MeetingReader lists a user's upcoming meetings
type MeetingReader interface {
	ListUpcoming(ctx context.Context, userID string, limit int) ([]integrationdomain.Meeting, error)
}

// JobQueue accepts briefing work for asynchronous execution
type JobQueue interface {
	QueueJob(job briefingusecase.Job) bool
}

// meetingsPerUser caps how many events one scan pulls per user
const meetingsPerUser = 10

// ScanScheduler periodically walks every connected calendar, applies the
// freshness policy and dispatches briefing jobs. All per-user failures
// are contained: nothing aborts a cycle.
type ScanScheduler struct {
	credentials  CredentialSource
	reader       MeetingReader
	briefingRepo briefingrepo.BriefingRepository
	queue        JobQueue

	interval  time.Duration
	lookahead time.Duration
	freshness time.Duration

	stopChan chan struct{}
}

// NewScanScheduler creates a new scheduler. interval is the cycle
// cadence, lookahead bounds which meetings are eligible, freshness is
// the briefing dedup window.
func NewScanScheduler(
	credentials CredentialSource,
	reader MeetingReader,
	briefingRepo briefingrepo.BriefingRepository,
	queue JobQueue,
	interval, lookahead, freshness time.Duration,
) *ScanScheduler {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if lookahead <= 0 {
		lookahead = 24 * time.Hour
	}
	if freshness <= 0 {
		freshness = 24 * time.Hour
	}

	return &ScanScheduler{
		credentials:  credentials,
		reader:       reader,
		briefingRepo: briefingRepo,
		queue:        queue,
		interval:     interval,
		lookahead:    lookahead,
		freshness:    freshness,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ScanScheduler) Start() {
	log.Printf("[Scheduler] Starting calendar scan scheduler (interval: %s, lookahead: %s)", s.interval, s.lookahead)

	go func() {
		// Run immediately on start
		s.runCycle()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runCycle()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ScanScheduler) Stop() {
	close(s.stopChan)
}

// runCycle scans every connected user once. The cycle deadline equals
// the interval so a slow cycle cannot overlap the next one.
func (s *ScanScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	userIDs, err := s.credentials.ConnectedUserIDs()
	if err != nil {
		log.Printf("[Scheduler] Error loading connected users: %v", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	log.Printf("[Scheduler] Scanning %d connected calendars", len(userIDs))

	var dispatched, skipped, failedUsers int
	for _, userID := range userIDs {
		d, sk, err := s.scanUser(ctx, userID)
		dispatched += d
		skipped += sk
		if err != nil {
			failedUsers++
		}
		if ctx.Err() != nil {
			log.Printf("[Scheduler] Cycle deadline exceeded, leaving remaining users to the next cycle")
			break
		}
	}

	log.Printf("[Scheduler] Cycle done: dispatched=%d skipped=%d failed_users=%d", dispatched, skipped, failedUsers)
}

// scanUser handles one user's calendar for the cycle. Errors skip the
// user for this cycle only; the credential bundle stays untouched.
func (s *ScanScheduler) scanUser(ctx context.Context, userID string) (dispatched, skipped int, err error) {
	meetings, err := s.reader.ListUpcoming(ctx, userID, meetingsPerUser)
	if err != nil {
		switch {
		case errors.Is(err, integrationdomain.ErrAuthExpired):
			log.Printf("[Scheduler] User %s needs to reconnect their calendar, skipping this cycle", userID)
		case errors.Is(err, integrationdomain.ErrCalendarUnavailable):
			log.Printf("[Scheduler] Calendar unavailable for user %s, skipping this cycle: %v", userID, err)
		default:
			log.Printf("[Scheduler] Error reading calendar for user %s: %v", userID, err)
		}
		return 0, 0, err
	}

	now := time.Now()
	horizon := now.Add(s.lookahead)

	for _, meeting := range meetings {
		if meeting.Summary == "" {
			continue
		}
		if !meeting.Start.After(now) || meeting.Start.After(horizon) {
			continue
		}

		// The meeting title doubles as the client name; the freshness
		// window is the only dedup there is.
		fresh, err := s.briefingRepo.ExistsFresh(userID, meeting.Summary, meeting.Start, s.freshness)
		if err != nil {
			log.Printf("[Scheduler] Freshness check failed for user=%s client=%q: %v", userID, meeting.Summary, err)
			continue
		}
		if fresh {
			skipped++
			continue
		}

		job := briefingusecase.Job{
			UserID:      userID,
			ClientName:  meeting.Summary,
			MeetingDate: meeting.Start,
		}
		if s.queue.QueueJob(job) {
			dispatched++
		} else {
			log.Printf("[Scheduler] Job queue full, user=%s client=%q left for the next cycle", userID, meeting.Summary)
		}
	}

	return dispatched, skipped, nil
}
