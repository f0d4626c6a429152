package http

import (
	"net/http"
	"strings"

	"eventplanner/internal/delivery/http/handler"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth             *handler.AuthHandler
	User             *handler.UserHandler
	Event            *handler.EventHandler
	AttendeeTask     *handler.AttendeeTaskHandler
	Feedback         *handler.FeedbackHandler
	Report           *handler.ReportHandler
	Block            *handler.BlockHandler
	Question         *handler.QuestionHandler
	Category         *handler.CatalogHandler[entity.Category]
	NotificationType *handler.CatalogHandler[entity.NotificationType]
	SuggestedItem    *handler.SuggestedItemHandler
	Notification     *handler.NotificationHandler
	FAQ              *handler.FAQHandler
	Upload           *handler.UploadHandler
	AuditLog         *handler.AuditLogHandler
}

type Options struct {
	MetricsEnabled bool
	// StaticPrefix and StaticDir serve locally stored uploads; empty disables it.
	StaticPrefix string
	StaticDir    string
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	options           Options
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	options Options,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		options:           options,
	}
}

func (r *Router) Setup() http.Handler {
	h := r.handlers

	r.router.Use(r.loggingMiddleware.Handle)

	if r.options.MetricsEnabled {
		r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	if r.options.StaticPrefix != "" && r.options.StaticDir != "" {
		prefix := "/" + strings.Trim(r.options.StaticPrefix, "/") + "/"
		r.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(r.options.StaticDir)))).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", h.Auth.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", h.Auth.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", h.Auth.ResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/signin", h.Auth.SignIn).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", h.User.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/users/deleted", h.User.GetRecentlyDeleted).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/reports", h.Report.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/reports", h.Report.DeleteAll).Methods(http.MethodDelete)
	admin.HandleFunc("/blocks", h.Block.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/blocks", h.Block.DeleteAll).Methods(http.MethodDelete)
	admin.HandleFunc("/feedback", h.Feedback.DeleteAll).Methods(http.MethodDelete)

	admin.HandleFunc("/question-types", h.Question.CreateType).Methods(http.MethodPost)
	admin.HandleFunc("/question-types", h.Question.DeleteAllTypes).Methods(http.MethodDelete)
	admin.HandleFunc("/question-types/{id:[0-9]+}", h.Question.UpdateType).Methods(http.MethodPatch)
	admin.HandleFunc("/question-types/{id:[0-9]+}", h.Question.DeleteType).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", h.Category.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", h.Category.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/categories/{id:[0-9]+}", h.Category.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/notification-types", h.NotificationType.Create).Methods(http.MethodPost)
	admin.HandleFunc("/notification-types/{id:[0-9]+}", h.NotificationType.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/notification-types/{id:[0-9]+}", h.NotificationType.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/faqs", h.FAQ.Create).Methods(http.MethodPost)
	admin.HandleFunc("/faqs", h.FAQ.DeleteAll).Methods(http.MethodDelete)
	admin.HandleFunc("/faqs/{id:[0-9]+}", h.FAQ.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/faqs/{id:[0-9]+}", h.FAQ.Delete).Methods(http.MethodDelete)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Users
	protected.HandleFunc("/users/{id:[0-9]+}", h.User.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}", h.User.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id:[0-9]+}", h.User.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/events", h.Event.DeleteByUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/reports", h.Report.GetByUser).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/reports", h.Report.DeleteByUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/blocks", h.Block.GetByUser).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/blocks", h.Block.DeleteByUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/question-responses", h.Question.DeleteUserResponses).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId:[0-9]+}/notifications", h.Notification.GetByReceiver).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/notifications", h.Notification.DeleteByReceiver).Methods(http.MethodDelete)

	// Events
	protected.HandleFunc("/events", h.Event.Create).Methods(http.MethodPost)
	protected.HandleFunc("/events", h.Event.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/events/details", h.Event.GetAllDetails).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id:[0-9]+}", h.Event.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id:[0-9]+}", h.Event.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/events/{id:[0-9]+}", h.Event.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/events/{id:[0-9]+}/join", h.Event.Join).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id:[0-9]+}/leave", h.Event.Leave).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id:[0-9]+}/attendees", h.Event.GetAttendees).Methods(http.MethodGet)

	// Attendee tasks
	protected.HandleFunc("/attendee-tasks", h.AttendeeTask.Create).Methods(http.MethodPost)
	protected.HandleFunc("/attendee-tasks", h.AttendeeTask.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/attendee-tasks/{id:[0-9]+}", h.AttendeeTask.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/attendee-tasks/{id:[0-9]+}", h.AttendeeTask.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/attendee-tasks/{id:[0-9]+}/status", h.AttendeeTask.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/attendee-tasks/{id:[0-9]+}", h.AttendeeTask.Delete).Methods(http.MethodDelete)

	// Feedback
	protected.HandleFunc("/feedback", h.Feedback.Create).Methods(http.MethodPost)
	protected.HandleFunc("/feedback", h.Feedback.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/feedback/{id:[0-9]+}", h.Feedback.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/feedback/{id:[0-9]+}", h.Feedback.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/feedback/{id:[0-9]+}", h.Feedback.Delete).Methods(http.MethodDelete)

	// Reports
	protected.HandleFunc("/reports", h.Report.Create).Methods(http.MethodPost)
	protected.HandleFunc("/reports/{id:[0-9]+}", h.Report.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/reports/{id:[0-9]+}", h.Report.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/reports/{id:[0-9]+}", h.Report.Delete).Methods(http.MethodDelete)

	// Blocks
	protected.HandleFunc("/blocks", h.Block.Create).Methods(http.MethodPost)
	protected.HandleFunc("/blocks/{id:[0-9]+}", h.Block.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/blocks/{id:[0-9]+}", h.Block.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/blocks/{id:[0-9]+}", h.Block.Delete).Methods(http.MethodDelete)

	// Questionnaire
	protected.HandleFunc("/question-types", h.Question.GetAllTypes).Methods(http.MethodGet)
	protected.HandleFunc("/question-types/{id:[0-9]+}", h.Question.GetType).Methods(http.MethodGet)
	protected.HandleFunc("/question-responses", h.Question.CreateResponse).Methods(http.MethodPost)
	protected.HandleFunc("/question-responses", h.Question.GetAllResponses).Methods(http.MethodGet)
	protected.HandleFunc("/question-responses/{id:[0-9]+}", h.Question.GetResponse).Methods(http.MethodGet)
	protected.HandleFunc("/question-responses/{id:[0-9]+}", h.Question.UpdateResponse).Methods(http.MethodPatch)
	protected.HandleFunc("/question-responses/{id:[0-9]+}", h.Question.DeleteResponse).Methods(http.MethodDelete)

	// Lookups
	protected.HandleFunc("/categories", h.Category.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/categories/{id:[0-9]+}", h.Category.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/notification-types", h.NotificationType.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/notification-types/{id:[0-9]+}", h.NotificationType.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/faqs", h.FAQ.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/faqs/{id:[0-9]+}", h.FAQ.GetByID).Methods(http.MethodGet)

	// Suggested items
	protected.HandleFunc("/suggested-items", h.SuggestedItem.Create).Methods(http.MethodPost)
	protected.HandleFunc("/suggested-items", h.SuggestedItem.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/suggested-items/{id:[0-9]+}", h.SuggestedItem.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/suggested-items/{id:[0-9]+}", h.SuggestedItem.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/suggested-items/{id:[0-9]+}", h.SuggestedItem.Delete).Methods(http.MethodDelete)

	// Notifications
	protected.HandleFunc("/notifications", h.Notification.Create).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id:[0-9]+}", h.Notification.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id:[0-9]+}", h.Notification.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id:[0-9]+}", h.Notification.Delete).Methods(http.MethodDelete)

	// Uploads
	protected.HandleFunc("/uploads", h.Upload.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/uploads/{id:[0-9]+}", h.Upload.GetByID).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never need a matching route.
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
