package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"brandexpo/internal/delivery/http/helpers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/domain"
)

// SubmitProposalRequest is the request body for POST /proposals.
type SubmitProposalRequest struct {
	BrandName   string    `json:"brand_name"`
	Description string    `json:"description"`
	Budget      string    `json:"budget"`
	TargetDate  time.Time `json:"target_date"`
	Category    string    `json:"category"`
}

// Validate implements Validator.
func (s SubmitProposalRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.BrandName) == "" {
		errs = append(errs, "brand_name is required")
	}
	if strings.TrimSpace(s.Description) == "" {
		errs = append(errs, "description is required")
	}
	return errs
}

// UpdateProposalRequest is the request body for PATCH /proposals/{proposalID}.
// All fields optional; omitted fields are unchanged.
type UpdateProposalRequest struct {
	BrandName   *string    `json:"brand_name"`
	Description *string    `json:"description"`
	Budget      *string    `json:"budget"`
	TargetDate  *time.Time `json:"target_date"`
	Category    *string    `json:"category"`
}

// UpdateProposalStatusRequest is the request body for
// PATCH /admin/proposals/{proposalID}/status.
type UpdateProposalStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateProposalStatusRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Status) == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// PaginatedProposalsResponse is the response body for GET /admin/proposals.
type PaginatedProposalsResponse struct {
	Proposals  []*domain.CounterProposal `json:"proposals"`
	Pagination helpers.PaginationMeta    `json:"pagination"`
}

type ProposalController struct {
	Logger  *slog.Logger
	Service domain.CounterProposalService
}

func NewProposalController(logger *slog.Logger, svc domain.CounterProposalService) *ProposalController {
	return &ProposalController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitProposal godoc
// @Summary Submit a counter-proposal
// @Description Submit an unsolicited request for a custom event. The proposal starts in the "pending" status.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitProposalRequest true "Proposal data"
// @Success 201 {object} helpers.APIResponse "data contains the created proposal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals [post]
func (c *ProposalController) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	var req SubmitProposalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposal := &domain.CounterProposal{
		BrandName:   req.BrandName,
		Description: req.Description,
		Budget:      req.Budget,
		TargetDate:  req.TargetDate,
		Category:    req.Category,
	}
	if err := c.Service.SubmitProposal(r.Context(), actor, proposal); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, proposal)
}

// GetProposalByID godoc
// @Summary Get a proposal by ID
// @Description Returns one proposal. Callers may only read their own proposals unless they are admin.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Success 200 {object} helpers.APIResponse "data contains the proposal"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID} [get]
func (c *ProposalController) GetProposalByID(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposalID")
	if proposalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing proposalID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposal, err := c.Service.GetProposalByID(r.Context(), actor, proposalID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposal)
}

// ListMyProposals godoc
// @Summary List the caller's proposals
// @Description Lists the caller's proposals, newest first.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the proposal list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/proposals [get]
func (c *ProposalController) ListMyProposals(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposals, err := c.Service.ListMyProposals(r.Context(), actor)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposals)
}

// UpdateProposal godoc
// @Summary Edit a pending proposal
// @Description Partially update a proposal. Only the owner may edit, and only while the proposal is pending.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body UpdateProposalRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated proposal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID} [patch]
func (c *ProposalController) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposalID")
	if proposalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing proposalID")
		return
	}
	var req UpdateProposalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.ProposalUpdate{
		BrandName:   req.BrandName,
		Description: req.Description,
		Budget:      req.Budget,
		TargetDate:  req.TargetDate,
		Category:    req.Category,
	}
	proposal, err := c.Service.UpdateProposal(r.Context(), actor, proposalID, upd)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposal)
}

// DeleteProposal godoc
// @Summary Delete a proposal
// @Description Deletes a proposal. Allowed for the owner and for admins.
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Success 200 {object} helpers.APIResponse "data contains the deleted proposal ID"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /proposals/{proposalID} [delete]
func (c *ProposalController) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposalID")
	if proposalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing proposalID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteProposal(r.Context(), actor, proposalID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": proposalID})
}

// ListAllProposals godoc
// @Summary List all proposals
// @Description Paginated list of every proposal, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains proposals and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/proposals [get]
func (c *ProposalController) ListAllProposals(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	proposals, total, err := c.Service.ListAllProposals(r.Context(), actor, params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedProposalsResponse{
		Proposals:  proposals,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateProposalStatus godoc
// @Summary Accept or reject a proposal
// @Description Moves a pending proposal to "accepted" or "rejected". Resolved proposals only accept an idempotent rewrite of the same status. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body UpdateProposalStatusRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated proposal"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/proposals/{proposalID}/status [patch]
func (c *ProposalController) UpdateProposalStatus(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposalID")
	if proposalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing proposalID")
		return
	}
	var req UpdateProposalStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	proposal, err := c.Service.UpdateProposalStatus(r.Context(), actor, proposalID, req.Status)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, proposal)
}

// GetProposalStats godoc
// @Summary Proposal statistics
// @Description Aggregate per-status proposal counts. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains proposal statistics"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/stats/proposals [get]
func (c *ProposalController) GetProposalStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	stats, err := c.Service.GetProposalStats(r.Context(), actor)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
