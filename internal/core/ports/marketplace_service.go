package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// PostJobInput carries the fields a client supplies when posting a job.
type PostJobInput struct {
	Client      string
	Title       string
	Description string
	Budget      uint64
}

// ResolveDisputeInput names the job, the party whose reputation is adjusted
// and whether that party prevailed.
type ResolveDisputeInput struct {
	JobID   string
	UserID  string
	Outcome bool
}

// MarketplaceService defines the use-case operations over users and jobs.
type MarketplaceService interface {
	RegisterUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (domain.User, error)

	PostJob(ctx context.Context, input PostJobInput) (string, error)
	GetJob(ctx context.Context, id string) (domain.Job, bool)
	ListOpenJobs(ctx context.Context) []domain.Job
	ListAllJobs(ctx context.Context) []domain.Job
	ListJobsByStatus(ctx context.Context, status domain.JobStatus) []domain.Job
	SetJobStatus(ctx context.Context, id string, status domain.JobStatus) error
	AssignJob(ctx context.Context, id, freelancer string) error
	CompleteJob(ctx context.Context, id string) error

	ResolveDispute(ctx context.Context, input ResolveDisputeInput) error
	GetUserReputation(ctx context.Context, userID string) (int64, bool)
	CalculateReputation(ctx context.Context, userID string) (string, error)
}
