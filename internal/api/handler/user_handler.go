package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// UserHandler handles HTTP requests for users and their reputation.
type UserHandler struct {
	service ports.MarketplaceService
}

func NewUserHandler(service ports.MarketplaceService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /v1/users.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User id"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.RegisterUser(c.Request().Context(), *req.ID); err != nil {
		return err
	}
	metrics.UsersRegisteredTotal.Inc()

	return c.JSON(http.StatusCreated, toUserResponse(domain.User{ID: *req.ID}))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user with reputation and job counters
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Reputation handles GET /v1/users/:id/reputation.
//
// @Summary      Get the raw reputation score
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  reputationResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/reputation [get]
func (h *UserHandler) Reputation(c echo.Context) error {
	id := c.Param("id")
	rep, ok := h.service.GetUserReputation(c.Request().Context(), id)
	if !ok {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, reputationResponse{UserID: id, Reputation: rep})
}

// CompletionRate handles GET /v1/users/:id/reputation/percentage.
//
// @Summary      Get completed/assigned jobs as a percentage
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  completionRateResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/reputation/percentage [get]
func (h *UserHandler) CompletionRate(c echo.Context) error {
	id := c.Param("id")
	pct, err := h.service.CalculateReputation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, completionRateResponse{UserID: id, CompletionRate: pct})
}
