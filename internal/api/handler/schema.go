package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// registerUserRequest accepts any id, including the empty string, as long as
// the field is present.
type registerUserRequest struct {
	ID *string `json:"id" validate:"required"`
}

type postJobRequest struct {
	Client      *string `json:"client"      validate:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      uint64  `json:"budget"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open assigned completed disputed"`
}

type assignJobRequest struct {
	Freelancer string `json:"freelancer" validate:"required"`
}

type resolveDisputeRequest struct {
	UserID  *string `json:"user_id" validate:"required"`
	Outcome *bool   `json:"outcome" validate:"required"`
}

// --- Response types ---

type jobLinks struct {
	Self string `json:"self"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      uint64    `json:"budget"`
	Client      string    `json:"client"`
	Freelancer  *string   `json:"freelancer,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Links       jobLinks  `json:"_links"`
}

type postJobResponse struct {
	JobID  string   `json:"job_id"`
	Status string   `json:"status"`
	Links  jobLinks `json:"_links"`
}

type listJobsResponse struct {
	Data  []jobResponse `json:"data"`
	Total int           `json:"total"`
}

type userResponse struct {
	ID            string `json:"id"`
	Reputation    int64  `json:"reputation"`
	AssignedJobs  uint64 `json:"assigned_jobs"`
	CompletedJobs uint64 `json:"completed_jobs"`
}

type reputationResponse struct {
	UserID     string `json:"user_id"`
	Reputation int64  `json:"reputation"`
}

type completionRateResponse struct {
	UserID         string `json:"user_id"`
	CompletionRate string `json:"completion_rate"`
}

type messageResponse struct {
	Message string `json:"message"`
}
