package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"brandexpo/internal/delivery/http/controllers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Authorization beyond authentication (admin, ownership) is enforced in the
// services; the router only decides which routes require a valid token.
func NewRouter(
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	applicationController *controllers.ApplicationController,
	proposalController *controllers.ProposalController,
	brandProfileController *controllers.BrandProfileController,
	authController *controllers.AuthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Events (public browsing)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)

	// Applications
	mux.HandleFunc("POST /events/{eventID}/applications", auth(applicationController.Apply))
	mux.HandleFunc("GET /events/{eventID}/applications/me", auth(applicationController.HasApplied))
	mux.HandleFunc("GET /me/applications", auth(applicationController.ListMyApplications))

	// Counter-proposals
	mux.HandleFunc("POST /proposals", auth(proposalController.SubmitProposal))
	mux.HandleFunc("GET /proposals/{proposalID}", auth(proposalController.GetProposalByID))
	mux.HandleFunc("PATCH /proposals/{proposalID}", auth(proposalController.UpdateProposal))
	mux.HandleFunc("DELETE /proposals/{proposalID}", auth(proposalController.DeleteProposal))
	mux.HandleFunc("GET /me/proposals", auth(proposalController.ListMyProposals))

	// Brand profile
	mux.HandleFunc("GET /brand-profile", auth(brandProfileController.GetMyBrandProfile))
	mux.HandleFunc("POST /brand-profile", auth(brandProfileController.CreateBrandProfile))
	mux.HandleFunc("PATCH /brand-profile", auth(brandProfileController.UpdateBrandProfile))
	mux.HandleFunc("DELETE /brand-profile", auth(brandProfileController.DeleteBrandProfile))
	mux.HandleFunc("POST /brand-profile/product-images", auth(brandProfileController.UploadProductImage))
	mux.HandleFunc("POST /brand-profile/business-registration", auth(brandProfileController.UploadBusinessRegistration))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.SignIn)
	mux.HandleFunc("POST /auth/oauth/callback", authController.OAuthCallback)
	mux.HandleFunc("GET /auth/me", auth(authController.GetMe))

	// Admin console
	mux.HandleFunc("POST /admin/events", auth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /admin/events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /admin/events/{eventID}/applications", auth(applicationController.ListEventApplications))
	mux.HandleFunc("GET /admin/applications", auth(applicationController.ListAllApplications))
	mux.HandleFunc("PATCH /admin/applications/{applicationID}/status", auth(applicationController.UpdateApplicationStatus))
	mux.HandleFunc("GET /admin/proposals", auth(proposalController.ListAllProposals))
	mux.HandleFunc("PATCH /admin/proposals/{proposalID}/status", auth(proposalController.UpdateProposalStatus))
	mux.HandleFunc("GET /admin/stats/events", auth(eventController.GetEventStats))
	mux.HandleFunc("GET /admin/stats/applications", auth(applicationController.GetApplicationStats))
	mux.HandleFunc("GET /admin/stats/proposals", auth(proposalController.GetProposalStats))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
