package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"brandexpo/internal/delivery/http/helpers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/domain"
)

// ApplyRequest is the request body for POST /events/{eventID}/applications.
// The body may be empty when use_brand_profile=true is set.
type ApplyRequest struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// UpdateApplicationStatusRequest is the request body for
// PATCH /admin/applications/{applicationID}/status.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateApplicationStatusRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Status) == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// HasAppliedResponse is the response body for GET /events/{eventID}/applications/me.
type HasAppliedResponse struct {
	Applied bool `json:"applied"`
}

// PaginatedApplicationsResponse is the response body for GET /admin/applications.
type PaginatedApplicationsResponse struct {
	Applications []*domain.ApplicationWithEvent `json:"applications"`
	Pagination   helpers.PaginationMeta         `json:"pagination"`
}

type ApplicationController struct {
	Logger  *slog.Logger
	Service domain.ApplicationService
}

func NewApplicationController(logger *slog.Logger, svc domain.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Logger:  logger,
		Service: svc,
	}
}

// Apply godoc
// @Summary Apply to an event
// @Description Submit an application to an open event. With use_brand_profile=true the applicant fields are pre-filled from the caller's saved brand profile and the body is ignored. A second application to the same event fails with 409.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param use_brand_profile query bool false "Pre-fill from the saved brand profile"
// @Param body body ApplyRequest false "Applicant contact fields"
// @Success 201 {object} helpers.APIResponse "data contains the created application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/applications [post]
func (c *ApplicationController) Apply(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if r.URL.Query().Get("use_brand_profile") == "true" {
		app, err := c.Service.ApplyWithBrandProfile(r.Context(), actor, eventID)
		if err != nil {
			helpers.WriteDomainError(w, r, c.Logger, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusCreated, app)
		return
	}

	var req ApplyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	app, err := c.Service.Apply(r.Context(), actor, eventID, req.UserName, req.UserEmail)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, app)
}

// HasApplied godoc
// @Summary Check whether the caller has applied to an event
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {applied}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/applications/me [get]
func (c *ApplicationController) HasApplied(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	applied, err := c.Service.HasUserApplied(r.Context(), actor.ID, eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HasAppliedResponse{Applied: applied})
}

// ListMyApplications godoc
// @Summary List the caller's applications
// @Description Lists the caller's applications with their event summaries, newest first.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the application list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/applications [get]
func (c *ApplicationController) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	apps, err := c.Service.ListMyApplications(r.Context(), actor)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, apps)
}

// ListAllApplications godoc
// @Summary List all applications
// @Description Paginated list of every application with its event summary, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains applications and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/applications [get]
func (c *ApplicationController) ListAllApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	apps, total, err := c.Service.ListAllApplications(r.Context(), actor, params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedApplicationsResponse{
		Applications: apps,
		Pagination:   helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListEventApplications godoc
// @Summary List applications for an event
// @Description Lists the applications submitted to one event, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the application list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/applications [get]
func (c *ApplicationController) ListEventApplications(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	apps, err := c.Service.ListEventApplications(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, apps)
}

// UpdateApplicationStatus godoc
// @Summary Approve or reject an application
// @Description Moves a pending application to "approved" or "rejected". Resolved applications only accept an idempotent rewrite of the same status. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID"
// @Param body body UpdateApplicationStatusRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/applications/{applicationID}/status [patch]
func (c *ApplicationController) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("applicationID")
	if applicationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing applicationID")
		return
	}
	var req UpdateApplicationStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	app, err := c.Service.UpdateApplicationStatus(r.Context(), actor, applicationID, req.Status)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, app)
}

// GetApplicationStats godoc
// @Summary Application statistics
// @Description Aggregate per-status application counts. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains application statistics"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/stats/applications [get]
func (c *ApplicationController) GetApplicationStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	stats, err := c.Service.GetApplicationStats(r.Context(), actor)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
