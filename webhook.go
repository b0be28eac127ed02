package chapa

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Webhook event names with dedicated handler callbacks.
const (
	EventChargeSuccess   = "charge.success"
	EventTransferSuccess = "transfer.success"
)

// WebhookEvent is a notification delivered to a webhook URL.
type WebhookEvent struct {
	Event         string          `json:"event"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Mobile        string          `json:"mobile"`
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Charge        decimal.Decimal `json:"charge"`
	Status        string          `json:"status"`
	Mode          string          `json:"mode"`
	Reference     string          `json:"reference"`
	Type          string          `json:"type"`
	TxRef         string          `json:"tx_ref"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Raw is the payload the event was parsed from, for fields this
	// struct does not model.
	Raw json.RawMessage `json:"-"`
}

// WebhookHandler is an http.Handler that verifies, parses and dispatches
// incoming webhook events.
//
// Events are acknowledged with 200 even when a callback fails, so the
// API does not redeliver an event the application already saw. Callback
// failures are reported through OnError.
type WebhookHandler struct {
	// Secret is the webhook secret configured on the dashboard.
	Secret string

	// SkipSignatureValidation accepts unsigned payloads. Tests only.
	SkipSignatureValidation bool

	// OnChargeSuccess runs for charge.success events.
	OnChargeSuccess func(ctx context.Context, event *WebhookEvent) error

	// OnTransferSuccess runs for transfer.success events.
	OnTransferSuccess func(ctx context.Context, event *WebhookEvent) error

	// OnEvent runs for every event without a dedicated callback.
	OnEvent func(ctx context.Context, event *WebhookEvent) error

	// OnError observes callback failures.
	OnError func(ctx context.Context, err error)

	// Logger defaults to the standard logger.
	Logger *logrus.Logger
}

// NewWebhookHandler builds a handler that verifies payloads with secret.
func NewWebhookHandler(secret string) *WebhookHandler {
	return &WebhookHandler{
		Secret: secret,
		Logger: logrus.StandardLogger(),
	}
}

// ServeHTTP implements http.Handler.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	if !h.SkipSignatureValidation {
		signature := r.Header.Get("Chapa-Signature")
		if signature == "" {
			signature = r.Header.Get("x-chapa-signature")
		}
		if !VerifyWebhookSignature(h.Secret, payload, signature) {
			h.logger().WithField("remote", r.RemoteAddr).Warn("chapa: webhook signature rejected")
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	event, err := ParseWebhookEvent(payload)
	if err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.processEvent(r.Context(), event); err != nil {
		h.logger().WithError(err).WithField("event", event.Event).Error("chapa: webhook callback failed")
		if h.OnError != nil {
			h.OnError(r.Context(), err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *WebhookHandler) processEvent(ctx context.Context, event *WebhookEvent) error {
	switch event.Event {
	case EventChargeSuccess:
		if h.OnChargeSuccess != nil {
			return h.OnChargeSuccess(ctx, event)
		}
	case EventTransferSuccess:
		if h.OnTransferSuccess != nil {
			return h.OnTransferSuccess(ctx, event)
		}
	}
	if h.OnEvent != nil {
		return h.OnEvent(ctx, event)
	}
	return nil
}

func (h *WebhookHandler) logger() *logrus.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logrus.StandardLogger()
}

// VerifyWebhookSignature reports whether signature is a valid HMAC-SHA256
// of payload under secret. The comparison is constant time.
func VerifyWebhookSignature(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhookEvent decodes a webhook payload without verifying it. Use
// WebhookHandler, or VerifyWebhookSignature first, on untrusted input.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &DecodeError{RawBody: payload, Err: err}
	}
	event.Raw = append(json.RawMessage(nil), payload...)
	return &event, nil
}
