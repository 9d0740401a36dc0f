package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	limited := middleware.RateLimit(s.authLimiter)

	// Session gate: public, it is how the dashboard gets authenticated.
	session := r.PathPrefix("/api/session").Subrouter()
	session.HandleFunc("", s.SessionHandler.HandleGet).Methods(http.MethodGet)
	session.Handle("/login", limited(http.HandlerFunc(s.SessionHandler.HandleLogin))).Methods(http.MethodPost)
	session.Handle("/signup", limited(http.HandlerFunc(s.SessionHandler.HandleSignup))).Methods(http.MethodPost)
	session.HandleFunc("/logout", s.SessionHandler.HandleLogout).Methods(http.MethodPost)
	session.HandleFunc("/check", s.SessionHandler.HandleCheck).Methods(http.MethodPost)
	session.HandleFunc("/error", s.SessionHandler.HandleClearError).Methods(http.MethodDelete)

	// Local provider REST contract
	if s.AuthHandler != nil {
		a := r.PathPrefix("/api/auth").Subrouter()
		a.Handle("/login", limited(http.HandlerFunc(s.AuthHandler.HandleLogin))).Methods(http.MethodPost)
		a.Handle("/signup", limited(http.HandlerFunc(s.AuthHandler.HandleSignup))).Methods(http.MethodPost)
		a.HandleFunc("/verify", s.AuthHandler.HandleVerify).Methods(http.MethodGet)
		a.HandleFunc("/logout", s.AuthHandler.HandleLogout).Methods(http.MethodPost)
	}

	// Protected API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuthenticated(s.store))
	api.HandleFunc("/state", s.StateHandler.HandleState).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.StateHandler.HandleSummary).Methods(http.MethodGet)
	api.HandleFunc("/screens", s.StateHandler.HandleScreens).Methods(http.MethodGet)
	api.HandleFunc("/screens/{screen}", s.StateHandler.HandleScreen).Methods(http.MethodGet)
	api.HandleFunc("/actions", s.ActionHandler.HandleDispatch).Methods(http.MethodPost)
	api.HandleFunc("/refresh/{resource}", s.RefreshHandler.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/reports/{id}/export", s.ReportHandler.HandleExport).Methods(http.MethodGet)
	api.HandleFunc("/export/{resource}", s.ExportHandler.HandleExport).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs", s.AuditHandler.HandleGetLogs).Methods(http.MethodGet)

	r.Handle("/ws", middleware.RequireAuthenticated(s.store)(http.HandlerFunc(s.WSManager.HandleWebSocket)))

	// CORS wraps the router so preflight requests never reach method matching.
	var h http.Handler = r
	h = cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
	h = middleware.Logging(s.logger)(h)
	return middleware.Recover(s.logger)(h)
}
