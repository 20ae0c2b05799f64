package authhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service         *auth.Service
	LoginRateLimit  int
	LoginRateWindow time.Duration
	TrustedProxies  []string
}

func NewHandler(service *auth.Service, limit int, window time.Duration, trustedProxies []string) *Handler {
	return &Handler{Service: service, LoginRateLimit: limit, LoginRateWindow: window, TrustedProxies: trustedProxies}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRoutes mounts /auth. The login route is public and rate limited per
// client and username.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(h.LoginRateLimit, h.LoginRateWindow, middleware.LoginKey(h.TrustedProxies))).Post("/login", h.HandleLogin)
		r.With(middleware.RequireSession).Get("/me", h.HandleMe)
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, requestID) {
		return
	}

	token, session, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{
		"token":     token,
		"expiresIn": int(h.Service.TTL.Seconds()),
		"user":      session,
	}, requestID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	api.Success(w, map[string]any{
		"user":        session,
		"permissions": auth.RolePermissions[session.Role],
	}, middleware.GetRequestID(r.Context()))
}
