package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the canonical event/command envelope.
// All messages published to or consumed from NATS must follow this format.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
	ClientID      string          `json:"client_id,omitempty"`
	Topic         string          `json:"topic"`
	EventType     string          `json:"event_type"`
	Version       string          `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// RawRFQ is an inbound request-for-quote as a loosely typed field map,
// exactly as an upstream parser emits it. Field names follow the
// validator's vocabulary (direction, currency, notional, tenor, rate,
// day_count, ...).
type RawRFQ struct {
	RequestID string            `json:"request_id"`
	ClientID  string            `json:"client_id,omitempty"`
	Fields    map[string]string `json:"fields"`
	Source    string            `json:"source,omitempty"` // e.g. "SLACK", "CHAT"

	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// RFQBatch groups several raw RFQs handed off in one message.
type RFQBatch struct {
	BatchID string   `json:"batch_id"`
	Items   []RawRFQ `json:"items"`
}

// Issue is one validation finding, serialized for events and API responses.
type Issue struct {
	Severity   string `json:"severity"` // ERROR | WARNING | INFO
	Field      string `json:"field"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationSummary is the outcome of running the rule set over one RawRFQ.
type ValidationSummary struct {
	RequestID string    `json:"request_id"`
	Valid     bool      `json:"valid"`
	Errors    int       `json:"errors"`
	Warnings  int       `json:"warnings"`
	Issues    []Issue   `json:"issues,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// PricedQuote is the canonical pricing result event payload.
type PricedQuote struct {
	RequestID    string    `json:"request_id"`
	ClientID     string    `json:"client_id,omitempty"`
	SwaptionKind string    `json:"swaption_kind"` // PAYER | RECEIVER
	Style        string    `json:"style"`         // EUROPEAN | AMERICAN | BERMUDAN
	Notional     float64   `json:"notional"`
	Strike       float64   `json:"strike"`
	ForwardRate  float64   `json:"forward_rate"`
	Volatility   float64   `json:"volatility"`
	TimeToExpiry float64   `json:"time_to_expiry"`
	Price        float64   `json:"price"`
	Annuity      float64   `json:"annuity"`
	PricedAt     time.Time `json:"priced_at"`
}

// RFQRejection is emitted when validation blocks pricing.
type RFQRejection struct {
	RequestID  string            `json:"request_id"`
	ClientID   string            `json:"client_id,omitempty"`
	Summary    ValidationSummary `json:"summary"`
	RejectedAt time.Time         `json:"rejected_at"`
}

func NewUUID() uuid.UUID {
	return uuid.New()
}
