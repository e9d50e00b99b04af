package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

const (
	// CompletionReward is added to the client's reputation on every CompleteJob call.
	CompletionReward int64 = 10
	// DisputeDelta is added to (won) or subtracted from (lost) a dispute party's reputation.
	DisputeDelta int64 = 5
)

// MarketplaceService coordinates the user and job registries. A single lock
// guards both stores since most mutations touch both.
type MarketplaceService struct {
	mu       sync.RWMutex
	users    ports.UserRepository
	jobs     ports.JobRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger

	now func() time.Time
	seq atomic.Uint64
}

// Option customises a MarketplaceService.
type Option func(*MarketplaceService)

// WithClock replaces the time source used for job ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MarketplaceService) { s.now = now }
}

// WithActivityPublisher sets where audit events are sent. Without it events are dropped.
func WithActivityPublisher(p ports.ActivityPublisher) Option {
	return func(s *MarketplaceService) { s.activity = p }
}

func NewMarketplaceService(users ports.UserRepository, jobs ports.JobRepository, logger zerolog.Logger, opts ...Option) *MarketplaceService {
	s := &MarketplaceService{
		users:    users,
		jobs:     jobs,
		activity: nopPublisher{},
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.ActivityEvent) {}

// RegisterUser creates a user with zero reputation and counters.
func (s *MarketplaceService) RegisterUser(_ context.Context, id string) error {
	s.mu.Lock()
	err := s.users.Register(id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Msg("user registered")
	s.publish(domain.ActivityEvent{Kind: domain.ActivityUserRegistered, UserID: id})
	return nil
}

func (s *MarketplaceService) GetUser(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.Get(id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// PostJob creates an open job and bumps the client's assigned-job counter.
// The client does not have to be registered.
func (s *MarketplaceService) PostJob(_ context.Context, in ports.PostJobInput) (string, error) {
	now := s.now().UTC()
	job := domain.Job{
		ID:          s.nextJobID(now),
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Client:      in.Client,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.jobs.Insert(job)
	s.users.IncrementAssigned(in.Client)
	s.mu.Unlock()

	s.logger.Info().Str("job_id", job.ID).Str("client", in.Client).Uint64("budget", in.Budget).Msg("job posted")
	s.publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, JobID: job.ID, UserID: in.Client, Status: job.Status})
	return job.ID, nil
}

// nextJobID combines the wall-clock nanoseconds with a process-wide sequence so
// that ids stay unique even when the clock does not advance between calls.
func (s *MarketplaceService) nextJobID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(s.seq.Add(1), 10)
}

func (s *MarketplaceService) GetJob(_ context.Context, id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs.Get(id)
}

func (s *MarketplaceService) ListOpenJobs(ctx context.Context) []domain.Job {
	return s.ListJobsByStatus(ctx, domain.StatusOpen)
}

func (s *MarketplaceService) ListAllJobs(_ context.Context) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs.ListAll()
}

func (s *MarketplaceService) ListJobsByStatus(_ context.Context, status domain.JobStatus) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs.ListByStatus(status)
}

// SetJobStatus forces a job into status from any current status, including
// reopening completed jobs.
func (s *MarketplaceService) SetJobStatus(_ context.Context, id string, status domain.JobStatus) error {
	s.mu.Lock()
	err := s.jobs.SetStatus(id, status)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}

	s.logger.Info().Str("job_id", id).Str("status", string(status)).Msg("job status set")
	s.publish(domain.ActivityEvent{Kind: domain.ActivityStatusChanged, JobID: id, Status: status})
	return nil
}

// AssignJob attaches a freelancer to an open job.
func (s *MarketplaceService) AssignJob(_ context.Context, id, freelancer string) error {
	s.mu.Lock()
	job, ok := s.jobs.Get(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("assign job: %w", domain.ErrJobNotFound)
	}
	if !job.Status.CanTransitionTo(domain.StatusAssigned) {
		s.mu.Unlock()
		return fmt.Errorf("assign job: %w (from %s to %s)", domain.ErrInvalidTransition, job.Status, domain.StatusAssigned)
	}
	err := s.jobs.Assign(id, freelancer)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("assign job: %w", err)
	}

	s.logger.Info().Str("job_id", id).Str("freelancer", freelancer).Msg("job assigned")
	s.publish(domain.ActivityEvent{Kind: domain.ActivityJobAssigned, JobID: id, UserID: freelancer, Status: domain.StatusAssigned})
	return nil
}

// CompleteJob rewards the client and marks the job completed regardless of its
// prior status. Repeated calls reward the client again.
func (s *MarketplaceService) CompleteJob(_ context.Context, id string) error {
	s.mu.Lock()
	job, ok := s.jobs.Get(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("complete job: %w", domain.ErrJobNotFound)
	}
	s.users.AdjustReputation(job.Client, CompletionReward)
	s.users.IncrementCompleted(job.Client)
	err := s.jobs.SetStatus(id, domain.StatusCompleted)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}

	if job.Status == domain.StatusCompleted {
		s.logger.Warn().Str("job_id", id).Str("client", job.Client).Msg("job completed again, client rewarded twice")
	}
	s.logger.Info().Str("job_id", id).Str("client", job.Client).Str("previous_status", string(job.Status)).Msg("job completed")
	s.publish(domain.ActivityEvent{
		Kind:   domain.ActivityJobCompleted,
		JobID:  id,
		UserID: job.Client,
		Status: domain.StatusCompleted,
		Delta:  CompletionReward,
	})
	return nil
}

// ResolveDispute adjusts userID's reputation by +DisputeDelta when outcome is
// true and -DisputeDelta otherwise. The user need not be a party to the job and
// the job status is left untouched.
func (s *MarketplaceService) ResolveDispute(_ context.Context, in ports.ResolveDisputeInput) error {
	delta := -DisputeDelta
	if in.Outcome {
		delta = DisputeDelta
	}

	s.mu.Lock()
	job, ok := s.jobs.Get(in.JobID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("resolve dispute: %w", domain.ErrJobNotFound)
	}
	s.users.AdjustReputation(in.UserID, delta)
	s.mu.Unlock()

	s.logger.Info().
		Str("job_id", in.JobID).
		Str("user_id", in.UserID).
		Bool("outcome", in.Outcome).
		Int64("delta", delta).
		Msg("dispute resolved")
	s.publish(domain.ActivityEvent{
		Kind:   domain.ActivityDisputeResolved,
		JobID:  in.JobID,
		UserID: in.UserID,
		Status: job.Status,
		Delta:  delta,
	})
	return nil
}

func (s *MarketplaceService) GetUserReputation(_ context.Context, userID string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.Get(userID)
	if !ok {
		return 0, false
	}
	return u.Reputation, true
}

// CalculateReputation reports completed/assigned as a truncated integer
// percentage such as "33%". It is independent of the stored reputation score.
func (s *MarketplaceService) CalculateReputation(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	u, ok := s.users.Get(userID)
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("calculate reputation: %w", domain.ErrUserNotFound)
	}
	return completionRate(u.CompletedJobs, u.AssignedJobs), nil
}

func completionRate(completed, assigned uint64) string {
	if assigned == 0 {
		return "0%"
	}
	return strconv.FormatUint(completed*100/assigned, 10) + "%"
}

func (s *MarketplaceService) publish(e domain.ActivityEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	s.activity.Publish(e)
}
