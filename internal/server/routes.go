package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Webhook endpoint (handshake + event deliveries + GET liveness)
	mux.HandleFunc("/webhook", s.app.WebhookHandler.HandleWebhook)

	// Manual-trigger endpoints
	mux.HandleFunc("/", s.app.AdminHandler.HomeHandler)
	mux.HandleFunc("/setup", s.app.AdminHandler.SetupHandler)
	mux.HandleFunc("/test-email", s.app.AdminHandler.TestEmailHandler)
	mux.HandleFunc("/process-task/", s.app.AdminHandler.ProcessTaskHandler)
	mux.HandleFunc("/process-recent", s.app.AdminHandler.ProcessRecentHandler)

	// API routes - System
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/deliveries", s.app.AdminHandler.DeliveriesHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
