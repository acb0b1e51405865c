package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "eventplanner/docs"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events      *controllers.EventController
	RSVP        *controllers.RSVPController
	Dashboard   *controllers.DashboardController
	Invitations *controllers.InvitationController
}

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	SessionUserID  string
	AllowedOrigins []string
	// Metrics is mounted on GET /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter initializes the HTTP router with all application routes wrapped in
// CORS, identity and request logging middleware.
func NewRouter(c Controllers, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("DELETE /events", c.Events.ClearEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/countdown", c.Events.GetCountdown)
	mux.HandleFunc("GET /events/{eventID}/ics", c.Events.ExportICS)

	// RSVP
	mux.HandleFunc("PUT /events/{eventID}/rsvp", c.RSVP.SetRSVP)
	mux.HandleFunc("POST /events/{eventID}/rsvp/toggle", c.RSVP.ToggleRSVP)

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", c.Invitations.SendInvitations)

	// Dashboard
	mux.HandleFunc("GET /dashboard", c.Dashboard.GetDashboard)

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	sessionUserID := opts.SessionUserID
	if sessionUserID == "" {
		sessionUserID = domain.DefaultSessionUserID
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var h http.Handler = mux
	h = middleware.RequestLogger(logger, h)
	h = middleware.Identity(opts.Verifier, sessionUserID, h)
	h = middleware.CORS(opts.AllowedOrigins, h)
	return h
}
