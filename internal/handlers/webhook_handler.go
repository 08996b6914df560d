package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/models"
	"github.com/ternarybob/reparo/internal/services/classify"
	"github.com/ternarybob/reparo/internal/services/webhooksec"
)

const (
	headerHookSecret    = "X-Hook-Secret"
	headerHookSignature = "X-Hook-Signature"
)

// WebhookHandler receives change-notification deliveries from the upstream
// task-tracking platform. It is a two-state machine: Unarmed until the first
// handshake stores a shared secret, Armed afterwards. Re-handshake is always
// accepted and overwrites the secret.
type WebhookHandler struct {
	secrets      *webhooksec.Store
	tasks        interfaces.TaskAPI
	classifier   *classify.Classifier
	orchestrator interfaces.Orchestrator
	deliveries   interfaces.DeliveryStorage // may be nil when storage is disabled
	logger       arbor.ILogger
}

// NewWebhookHandler creates the webhook receiver
func NewWebhookHandler(secrets *webhooksec.Store, tasks interfaces.TaskAPI, classifier *classify.Classifier, orchestrator interfaces.Orchestrator, deliveries interfaces.DeliveryStorage, logger arbor.ILogger) *WebhookHandler {
	return &WebhookHandler{
		secrets:      secrets,
		tasks:        tasks,
		classifier:   classifier,
		orchestrator: orchestrator,
		deliveries:   deliveries,
		logger:       logger,
	}
}

// HandleWebhook serves /webhook. Event deliveries always answer 200 once
// every event has been attempted: surfacing per-event failures as non-200
// would trigger upstream retry-on-error and amplify duplicate side effects.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// Handshake wins over everything, including a request that also carries
	// a body: any request with the secret header re-arms the receiver.
	if secret := r.Header.Get(headerHookSecret); secret != "" {
		h.handleHandshake(w, secret)
		return
	}

	// Liveness probe
	if r.Method == http.MethodGet {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Webhook endpoint is accessible"))
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read webhook body")
		h.recordRejection(http.StatusInternalServerError, "failed to read body")
		WriteError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}

	if !h.authenticate(w, r, body) {
		return
	}

	var envelope models.EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.logger.Error().Err(err).Msg("Malformed webhook payload")
		h.recordRejection(http.StatusInternalServerError, "malformed payload")
		WriteError(w, http.StatusInternalServerError, "malformed payload")
		return
	}

	h.logger.Info().Int("events", len(envelope.Events)).Msg("Webhook delivery received")

	delivery := &models.Delivery{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		Kind:       models.DeliveryKindEvents,
		Status:     http.StatusOK,
		EventCount: len(envelope.Events),
	}

	// Each event is evaluated independently; one event's failure must not
	// abort its siblings.
	for _, event := range envelope.Events {
		switch h.processEvent(r.Context(), event) {
		case interfaces.OutcomeSucceeded, interfaces.OutcomePartiallyFailed:
			delivery.Processed++
		case interfaces.OutcomeSkipped:
			delivery.Skipped++
		case eventOutcomeFailed:
			delivery.Failed++
		}
	}

	h.recordDelivery(delivery)

	WriteJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

// handleHandshake stores the secret verbatim and echoes it back
func (h *WebhookHandler) handleHandshake(w http.ResponseWriter, secret string) {
	rearmed := h.secrets.Armed()
	h.secrets.Set(secret)

	h.logger.Info().Bool("rearmed", rearmed).Msg("Webhook handshake completed")
	h.recordDelivery(&models.Delivery{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		Kind:       models.DeliveryKindHandshake,
		Status:     http.StatusOK,
	})

	w.Header().Set(headerHookSecret, secret)
	w.WriteHeader(http.StatusOK)
}

// authenticate enforces the Armed-state signature rule. While Armed every
// delivery must carry a valid signature. While Unarmed an unsigned request is
// accepted (first-run bootstrap leniency, deliberately visible here) but a
// signed one is rejected since there is nothing to verify against.
func (h *WebhookHandler) authenticate(w http.ResponseWriter, r *http.Request, body []byte) bool {
	signature := r.Header.Get(headerHookSignature)

	if h.secrets.Armed() {
		if !h.secrets.Verify(body, signature) {
			h.logger.Error().Msg("Webhook signature verification failed")
			h.recordRejection(http.StatusUnauthorized, "signature verification failed")
			WriteError(w, http.StatusUnauthorized, "invalid signature")
			return false
		}
		return true
	}

	if signature != "" {
		h.logger.Error().Msg("Signed delivery received but no webhook secret is stored")
		h.recordRejection(http.StatusUnauthorized, "no stored webhook secret")
		WriteError(w, http.StatusUnauthorized, "no stored webhook secret")
		return false
	}

	h.logger.Warn().Msg("Accepting unsigned delivery: no handshake has occurred yet")
	return true
}

// eventOutcomeFailed marks an event whose processing errored before the
// orchestrator could report an outcome
const eventOutcomeFailed interfaces.Outcome = "failed"

// eventOutcomeIgnored marks an event that did not qualify for processing
const eventOutcomeIgnored interfaces.Outcome = "ignored"

// processEvent handles a single event from the envelope. Errors are logged
// with identifiers and swallowed; retry is the upstream platform's job.
func (h *WebhookHandler) processEvent(ctx context.Context, event models.Event) interfaces.Outcome {
	if !event.IsTaskAdded() {
		return eventOutcomeIgnored
	}

	gid := event.Resource.GID
	task, err := h.tasks.GetTask(ctx, gid)
	if err != nil {
		h.logger.Error().Err(err).Str("task", gid).Msg("Failed to fetch task for event")
		return eventOutcomeFailed
	}

	if !h.classifier.IsRepairRequest(task) {
		h.logger.Debug().Str("task", gid).Msg("Task did not classify as a repair request")
		return eventOutcomeIgnored
	}

	outcome, err := h.orchestrator.Process(ctx, task)
	if err != nil {
		h.logger.Error().Err(err).Str("task", gid).Msg("Failed to process repair request")
		return eventOutcomeFailed
	}

	h.logger.Info().Str("task", gid).Str("outcome", string(outcome)).Msg("Event processed")
	return outcome
}

func (h *WebhookHandler) recordRejection(status int, reason string) {
	h.recordDelivery(&models.Delivery{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		Kind:       models.DeliveryKindRejected,
		Status:     status,
		Error:      reason,
	})
}

// recordDelivery writes to the delivery log, best-effort
func (h *WebhookHandler) recordDelivery(delivery *models.Delivery) {
	if h.deliveries == nil {
		return
	}
	if err := h.deliveries.SaveDelivery(context.Background(), delivery); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to record delivery")
	}
}
