package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/performance"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermReviewsWrite)).Post("/reviews", h.handleSubmitReview)
}

// RegisterEmployeeRoutes expects to run inside /employees/{employeeID}.
func (h *Handler) RegisterEmployeeRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermReviewsRead)).Get("/reviews", h.handleListReviews)
}

func (h *Handler) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())

	var payload performance.ReviewInput
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Positive("employeeId", payload.EmployeeID)
	if payload.ReviewDate != "" {
		v.Date("reviewDate", payload.ReviewDate)
	}
	if v.Reject(w, requestID) {
		return
	}

	review, err := h.Service.SubmitReview(r.Context(), session, payload)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, review, requestID)
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	reviews, err := h.Service.ReviewsForEmployee(r.Context(), session, employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, reviews, requestID)
}
