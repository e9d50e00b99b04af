package domain

// User is a marketplace participant. Reputation is signed: dispute losses may
// take it below zero.
type User struct {
	ID            string `json:"id"`
	Reputation    int64  `json:"reputation"`
	AssignedJobs  uint64 `json:"assigned_jobs"`
	CompletedJobs uint64 `json:"completed_jobs"`
}
