package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"brandexpo/internal/delivery/http/helpers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/domain"
)

// maxUploadBytes caps multipart upload bodies.
const maxUploadBytes = 10 << 20

// CreateBrandProfileRequest is the request body for POST /brand-profile.
type CreateBrandProfileRequest struct {
	BrandName            string   `json:"brand_name"`
	CompanyName          string   `json:"company_name"`
	BusinessNumber       string   `json:"business_number"`
	RepresentativeName   string   `json:"representative_name"`
	Email                string   `json:"email"`
	Phone                string   `json:"phone"`
	Website              *string  `json:"website"`
	Description          string   `json:"description"`
	Industry             string   `json:"industry"`
	Address              string   `json:"address"`
	ProductImages        []string `json:"product_images"`
	BusinessRegistration *string  `json:"business_registration"`
}

// Validate implements Validator.
func (c CreateBrandProfileRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.BrandName) == "" {
		errs = append(errs, "brand_name is required")
	}
	if strings.TrimSpace(c.RepresentativeName) == "" {
		errs = append(errs, "representative_name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// UpdateBrandProfileRequest is the request body for PATCH /brand-profile.
// All fields optional; omitted fields are unchanged.
type UpdateBrandProfileRequest struct {
	BrandName            *string  `json:"brand_name"`
	CompanyName          *string  `json:"company_name"`
	BusinessNumber       *string  `json:"business_number"`
	RepresentativeName   *string  `json:"representative_name"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	Website              *string  `json:"website"`
	Description          *string  `json:"description"`
	Industry             *string  `json:"industry"`
	Address              *string  `json:"address"`
	ProductImages        []string `json:"product_images"`
	BusinessRegistration *string  `json:"business_registration"`
}

// UploadResponse is the response body for the upload endpoints.
type UploadResponse struct {
	URL string `json:"url"`
}

type BrandProfileController struct {
	Logger  *slog.Logger
	Service domain.BrandProfileService
}

func NewBrandProfileController(logger *slog.Logger, svc domain.BrandProfileService) *BrandProfileController {
	return &BrandProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMyBrandProfile godoc
// @Summary Get the caller's brand profile
// @Description Returns the caller's saved brand profile, or null when none is registered.
// @Tags brand-profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the brand profile or null"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile [get]
func (c *BrandProfileController) GetMyBrandProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bp, err := c.Service.GetMyBrandProfile(r.Context(), actor)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bp)
}

// CreateBrandProfile godoc
// @Summary Register a brand profile
// @Description Registers the caller's brand profile. Each user may have at most one; a second registration fails with 409.
// @Tags brand-profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBrandProfileRequest true "Brand profile data"
// @Success 201 {object} helpers.APIResponse "data contains the created brand profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile [post]
func (c *BrandProfileController) CreateBrandProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bp := &domain.BrandProfile{
		BrandName:            req.BrandName,
		CompanyName:          req.CompanyName,
		BusinessNumber:       req.BusinessNumber,
		RepresentativeName:   req.RepresentativeName,
		Email:                req.Email,
		Phone:                req.Phone,
		Website:              req.Website,
		Description:          req.Description,
		Industry:             req.Industry,
		Address:              req.Address,
		ProductImages:        req.ProductImages,
		BusinessRegistration: req.BusinessRegistration,
	}
	if err := c.Service.CreateBrandProfile(r.Context(), actor, bp); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, bp)
}

// UpdateBrandProfile godoc
// @Summary Update the caller's brand profile
// @Description Partially update the caller's brand profile. Omitted fields are unchanged.
// @Tags brand-profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateBrandProfileRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated brand profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile [patch]
func (c *BrandProfileController) UpdateBrandProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.BrandProfileUpdate{
		BrandName:            req.BrandName,
		CompanyName:          req.CompanyName,
		BusinessNumber:       req.BusinessNumber,
		RepresentativeName:   req.RepresentativeName,
		Email:                req.Email,
		Phone:                req.Phone,
		Website:              req.Website,
		Description:          req.Description,
		Industry:             req.Industry,
		Address:              req.Address,
		ProductImages:        req.ProductImages,
		BusinessRegistration: req.BusinessRegistration,
	}
	bp, err := c.Service.UpdateBrandProfile(r.Context(), actor, upd)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bp)
}

// DeleteBrandProfile godoc
// @Summary Delete the caller's brand profile
// @Tags brand-profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the owner's user ID"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile [delete]
func (c *BrandProfileController) DeleteBrandProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteBrandProfile(r.Context(), actor); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"user_id": actor.ID})
}

// UploadProductImage godoc
// @Summary Upload a product image
// @Description Stores a product image in object storage under the caller's namespace and returns its public URL. Multipart field name: "file".
// @Tags brand-profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} helpers.APIResponse "data contains the public URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile/product-images [post]
func (c *BrandProfileController) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.Service.UploadProductImage)
}

// UploadBusinessRegistration godoc
// @Summary Upload a business registration document
// @Description Stores the caller's business registration document, replacing any previous one, and returns its public URL. Multipart field name: "file".
// @Tags brand-profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Success 201 {object} helpers.APIResponse "data contains the public URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /brand-profile/business-registration [post]
func (c *BrandProfileController) UploadBusinessRegistration(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.Service.UploadBusinessRegistration)
}

func (c *BrandProfileController) upload(
	w http.ResponseWriter,
	r *http.Request,
	store func(ctx context.Context, actor domain.Actor, filename string, body io.Reader) (string, error),
) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := store(r.Context(), actor, header.Filename, file)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadResponse{URL: url})
}
