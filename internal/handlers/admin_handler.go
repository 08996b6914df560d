package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/services/classify"
	"github.com/ternarybob/reparo/internal/services/mailer"
	"github.com/ternarybob/reparo/internal/services/workflow"
)

// AdminHandler serves the manual-trigger endpoints: webhook registration,
// test email, single-task processing, and the recent-task sweep. These are
// operator conveniences around the webhook pipeline, not part of it.
type AdminHandler struct {
	config       *common.Config
	tasks        interfaces.TaskAPI
	classifier   *classify.Classifier
	orchestrator interfaces.Orchestrator
	mailer       *mailer.Service
	sweeper      *workflow.Sweeper
	deliveries   interfaces.DeliveryStorage // may be nil when storage is disabled
	logger       arbor.ILogger
}

// NewAdminHandler creates the admin handler
func NewAdminHandler(config *common.Config, tasks interfaces.TaskAPI, classifier *classify.Classifier, orchestrator interfaces.Orchestrator, mailerService *mailer.Service, sweeper *workflow.Sweeper, deliveries interfaces.DeliveryStorage, logger arbor.ILogger) *AdminHandler {
	return &AdminHandler{
		config:       config,
		tasks:        tasks,
		classifier:   classifier,
		orchestrator: orchestrator,
		mailer:       mailerService,
		sweeper:      sweeper,
		deliveries:   deliveries,
		logger:       logger,
	}
}

// SetupHandler registers the webhook for the repair project with the upstream platform
func (h *AdminHandler) SetupHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	targetURL := h.config.Webhook.TargetURL
	if targetURL == "" {
		WriteError(w, http.StatusBadRequest, "webhook target_url is not configured")
		return
	}

	webhookGID, err := h.tasks.CreateWebhook(r.Context(), h.config.Asana.RepairProjectGID, targetURL)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to register webhook")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to setup: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"message":     "Webhook registered for repair project",
		"webhook_gid": webhookGID,
		"target_url":  targetURL,
	})
}

// TestEmailHandler sends a canned notification to verify SMTP configuration
func (h *AdminHandler) TestEmailHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if !h.mailer.IsConfigured() {
		WriteError(w, http.StatusBadRequest, "email transport is not configured")
		return
	}

	if err := h.mailer.SendTestEmail(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to send test email: %v", err))
		return
	}

	WriteSuccess(w, "Test email sent successfully")
}

// ProcessTaskHandler manually processes a specific task: /process-task/{gid}
func (h *AdminHandler) ProcessTaskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	gid := strings.TrimPrefix(r.URL.Path, "/process-task/")
	if gid == "" || strings.Contains(gid, "/") {
		WriteError(w, http.StatusBadRequest, "task gid is required")
		return
	}

	task, err := h.tasks.GetTask(r.Context(), gid)
	if err != nil {
		h.logger.Error().Err(err).Str("task", gid).Msg("Failed to fetch task")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to fetch task %s: %v", gid, err))
		return
	}

	if !h.classifier.IsRepairRequest(task) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("task %s is not a repair request task", gid))
		return
	}

	outcome, err := h.orchestrator.Process(r.Context(), task)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to process task %s: %v", gid, err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Task %s processed", gid),
		"outcome": string(outcome),
	})
}

// ProcessRecentHandler sweeps tasks modified within the configured lookback window
func (h *AdminHandler) ProcessRecentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	processed, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to process recent tasks")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to process recent tasks: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"message":   fmt.Sprintf("Processed %d recent repair request tasks", processed),
		"processed": processed,
	})
}

// DeliveriesHandler lists recent webhook deliveries from the delivery log
func (h *AdminHandler) DeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if h.deliveries == nil {
		WriteError(w, http.StatusServiceUnavailable, "delivery log storage is disabled")
		return
	}

	deliveries, err := h.deliveries.ListDeliveries(r.Context(), 50)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list deliveries: %v", err))
		return
	}

	count, err := h.deliveries.CountDeliveries(r.Context())
	if err != nil {
		count = len(deliveries)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":      count,
		"deliveries": deliveries,
	})
}

// HomeHandler serves a minimal operator page linking the manual actions
func (h *AdminHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	page := fmt.Sprintf(`<html>
<head>
  <title>Property Repair Management</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; line-height: 1.6; }
    .container { max-width: 600px; margin: 0 auto; }
    .button { display: inline-block; background: #4CAF50; color: white; padding: 10px 20px;
              text-decoration: none; border-radius: 4px; margin: 10px; }
  </style>
</head>
<body>
  <div class="container">
    <h1>🔧 Property Repair Management</h1>
    <p>Use this page to manually trigger actions for the repair management system.</p>
    <div>
      <a href="/process-recent" class="button">Process Recent Repair Requests</a>
      <a href="/test-email" class="button">Send Test Email</a>
      <a href="/setup" class="button">Setup/Reset Webhook</a>
      <a href="/api/deliveries" class="button">Delivery Log</a>
    </div>
    <hr>
    <p>Version: %s &middot; Current time: %s</p>
  </div>
</body>
</html>`, common.GetVersion(), time.Now().Format("2006-01-02 15:04:05"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}
