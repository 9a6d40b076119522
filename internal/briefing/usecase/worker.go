package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"consultant-backend/internal/briefing/domain"
	"consultant-backend/internal/briefing/repository"
)

// Job is one unit of briefing work for a (user, client, meeting date)
// triple.
type Job struct {
	UserID      string
	ClientName  string
	MeetingDate time.Time
}

// Notifier is told about every successfully generated briefing. nil
// disables notifications.
type Notifier interface {
	BriefingReady(ctx context.Context, briefing *domain.Briefing)
}

// WorkerService fans briefing jobs out to a fixed pool of workers. Units
// are fully independent: one failing job never touches another.
type WorkerService struct {
	pipeline     *Pipeline
	briefingRepo repository.BriefingRepository
	notifier     Notifier
	freshness    time.Duration

	jobQueue    chan Job
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

// NewWorkerService creates a new briefing worker pool
func NewWorkerService(pipeline *Pipeline, briefingRepo repository.BriefingRepository, notifier Notifier, workerCount int, freshness time.Duration) *WorkerService {
	if workerCount <= 0 {
		workerCount = 3
	}
	if freshness <= 0 {
		freshness = 24 * time.Hour
	}

	return &WorkerService{
		pipeline:     pipeline,
		briefingRepo: briefingRepo,
		notifier:     notifier,
		freshness:    freshness,
		jobQueue:     make(chan Job, 200),
		workerCount:  workerCount,
	}
}

// Start starts the workers
func (s *WorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	log.Printf("[BriefingWorker] Started %d workers", s.workerCount)
}

// Stop drains the queue and waits for in-flight jobs to finish
func (s *WorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[BriefingWorker] All workers stopped")
}

// QueueJob adds a job to the queue (non-blocking). Returns false when
// the queue is full; the next scan cycle will re-evaluate anyway.
func (s *WorkerService) QueueJob(job Job) bool {
	select {
	case s.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (s *WorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}
	log.Printf("[BriefingWorker] Worker %d stopped", id)
}

// processJob re-checks freshness at dispatch time, runs the pipeline,
// and notifies on success. All errors are contained here.
func (s *WorkerService) processJob(job Job) {
	ctx := context.Background()

	fresh, err := s.briefingRepo.ExistsFresh(job.UserID, job.ClientName, job.MeetingDate, s.freshness)
	if err != nil {
		log.Printf("[BriefingWorker] Freshness check failed for user=%s client=%q: %v", job.UserID, job.ClientName, err)
		return
	}
	if fresh {
		log.Printf("[BriefingWorker] %s: fresh briefing exists for user=%s client=%q", domain.OutcomeSkipped, job.UserID, job.ClientName)
		return
	}

	briefing, outcome, err := s.pipeline.Generate(ctx, job.UserID, job.ClientName, job.MeetingDate)
	if err != nil {
		log.Printf("[BriefingWorker] %s: user=%s client=%q: %v", outcome, job.UserID, job.ClientName, err)
		return
	}
	if outcome == domain.OutcomeNoop {
		return
	}

	if s.notifier != nil && briefing != nil {
		s.notifier.BriefingReady(ctx, briefing)
	}
}
