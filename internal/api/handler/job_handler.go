package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	service        ports.MarketplaceService
	idempotency    ports.IdempotencyStore
	idempotencyTTL time.Duration
	log            zerolog.Logger
}

func NewJobHandler(service ports.MarketplaceService, idempotency ports.IdempotencyStore, idempotencyTTL time.Duration, log zerolog.Logger) *JobHandler {
	return &JobHandler{service: service, idempotency: idempotency, idempotencyTTL: idempotencyTTL, log: log}
}

// Post handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      postJobRequest  true   "Job details"
// @Success      201              {object}  postJobResponse
// @Success      200              {object}  postJobResponse  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "An earlier request with the same key is still in progress"
// @Failure      422              {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Post(c echo.Context) error {
	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	key := c.Request().Header.Get(headerIdempotencyKey)
	claimed := false
	if key != "" {
		stored, ok, err := h.idempotency.Claim(ctx, key, h.idempotencyTTL)
		switch {
		case err != nil:
			h.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, posting anyway")
		case ok:
			claimed = true
		case stored == "":
			return echo.NewHTTPError(http.StatusConflict, "a request with this Idempotency-Key is still in progress")
		default:
			h.log.Info().Str("idempotency_key", key).Str("job_id", stored).Msg("idempotent replay")
			metrics.JobsPostedTotal.WithLabelValues("true").Inc()
			return c.JSON(http.StatusOK, h.replayResponse(ctx, stored))
		}
	}

	jobID, err := h.service.PostJob(ctx, ports.PostJobInput{
		Client:      *req.Client,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		if claimed {
			if rerr := h.idempotency.Release(ctx, key); rerr != nil {
				h.log.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return err
	}
	metrics.JobsPostedTotal.WithLabelValues("false").Inc()

	if claimed {
		if err := h.idempotency.Complete(ctx, key, jobID, h.idempotencyTTL); err != nil {
			h.log.Warn().Err(err).Str("idempotency_key", key).Str("job_id", jobID).Msg("failed to store idempotency key")
		}
	}

	return c.JSON(http.StatusCreated, postJobResponse{
		JobID:  jobID,
		Status: string(domain.StatusOpen),
		Links:  jobLinks{Self: jobSelf(jobID)},
	})
}

// replayResponse describes a job created by an earlier request with the same
// Idempotency-Key, reporting its current status.
func (h *JobHandler) replayResponse(ctx context.Context, jobID string) postJobResponse {
	resp := postJobResponse{JobID: jobID, Links: jobLinks{Self: jobSelf(jobID)}}
	if job, ok := h.service.GetJob(ctx, jobID); ok {
		resp.Status = string(job.Status)
	}
	return resp
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, ok := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if !ok {
		return domain.ErrJobNotFound
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// List handles GET /v1/jobs, optionally filtered with ?status=.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(open, assigned, completed, disputed)
// @Success      200     {object}  listJobsResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	raw := c.QueryParam("status")
	if raw == "" {
		return c.JSON(http.StatusOK, toListResponse(h.service.ListAllJobs(ctx)))
	}

	status, err := domain.ParseJobStatus(raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(h.service.ListJobsByStatus(ctx, status)))
}

// ListOpen handles GET /v1/jobs/open.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  listJobsResponse
// @Router       /v1/jobs/open [get]
func (h *JobHandler) ListOpen(c echo.Context) error {
	return c.JSON(http.StatusOK, toListResponse(h.service.ListOpenJobs(c.Request().Context())))
}

// SetStatus handles PUT /v1/jobs/:id/status. Any status may be forced from
// any other status.
//
// @Summary      Override a job's status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/status [put]
func (h *JobHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	status, err := domain.ParseJobStatus(req.Status)
	if err != nil {
		return err
	}

	if err := h.service.SetJobStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return err
	}
	metrics.JobStatusChangesTotal.WithLabelValues(string(status), "set_status").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "status updated"})
}

// Assign handles POST /v1/jobs/:id/assign.
//
// @Summary      Assign a freelancer to an open job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job id"
// @Param        body  body      assignJobRequest  true  "Freelancer"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/assign [post]
func (h *JobHandler) Assign(c echo.Context) error {
	var req assignJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.AssignJob(c.Request().Context(), c.Param("id"), req.Freelancer); err != nil {
		return err
	}
	metrics.JobStatusChangesTotal.WithLabelValues(string(domain.StatusAssigned), "assign").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "job assigned"})
}

// Complete handles POST /v1/jobs/:id/complete. Each call rewards the client,
// so repeating it on the same job counts the completion again.
//
// @Summary      Complete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/complete [post]
func (h *JobHandler) Complete(c echo.Context) error {
	if err := h.service.CompleteJob(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.JobStatusChangesTotal.WithLabelValues(string(domain.StatusCompleted), "complete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "job completed"})
}

// ResolveDispute handles POST /v1/jobs/:id/disputes.
//
// @Summary      Resolve a dispute for a user
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Job id"
// @Param        body  body      resolveDisputeRequest  true  "Dispute outcome"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/disputes [post]
func (h *JobHandler) ResolveDispute(c echo.Context) error {
	var req resolveDisputeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.ResolveDispute(c.Request().Context(), ports.ResolveDisputeInput{
		JobID:   c.Param("id"),
		UserID:  *req.UserID,
		Outcome: *req.Outcome,
	})
	if err != nil {
		return err
	}

	outcome := "lost"
	if *req.Outcome {
		outcome = "won"
	}
	metrics.DisputesResolvedTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "dispute resolved"})
}
