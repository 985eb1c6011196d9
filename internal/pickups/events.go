package pickups

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPickupScheduled = "PickupScheduled"
	EventPickupCancelled = "PickupCancelled"
	EventNotification    = "Notification"
)

const (
	TopicPickupScheduled = "pickup.scheduled"
	TopicPickupCancelled = "pickup.cancelled"
	TopicNotifications   = "pickup.notifications"
)

// Partition key = pickup_id supaya event satu pickup terjaga urutannya.
func PartitionKey(id string) []byte { return []byte(id) }

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload per event ----

type ItemSnapshot struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PickupScheduledPayload struct {
	PickupID string          `json:"pickup_id"`
	UserID   string          `json:"user_id"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Total    decimal.Decimal `json:"total"`
	Items    []ItemSnapshot  `json:"items"`
}

type PickupCancelledPayload struct {
	PickupID string `json:"pickup_id"`
	UserID   string `json:"user_id"`
}

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// NotificationPayload adalah feedback user-visible, fire-and-forget.
type NotificationPayload struct {
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
