package handler

import (
	"sort"

	"github.com/gigboard/marketplace/internal/core/domain"
)

func jobSelf(id string) string {
	return "/v1/jobs/" + id
}

func toJobResponse(j domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Budget:      j.Budget,
		Client:      j.Client,
		Freelancer:  j.Freelancer,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt.UTC(),
		Links:       jobLinks{Self: jobSelf(j.ID)},
	}
}

// toListResponse orders jobs by creation time (then id) so that responses are
// stable even though the registry is unordered.
func toListResponse(jobs []domain.Job) listJobsResponse {
	sort.Slice(jobs, func(a, b int) bool {
		if !jobs[a].CreatedAt.Equal(jobs[b].CreatedAt) {
			return jobs[a].CreatedAt.Before(jobs[b].CreatedAt)
		}
		return jobs[a].ID < jobs[b].ID
	})

	items := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = toJobResponse(j)
	}
	return listJobsResponse{Data: items, Total: len(items)}
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Reputation:    u.Reputation,
		AssignedJobs:  u.AssignedJobs,
		CompletedJobs: u.CompletedJobs,
	}
}
