package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/kedaikopi/go-coffee-pickups.git/internal/kafka"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/pickups"
)

// Publisher menerbitkan event pickup dan notifikasi user ke Kafka.
// Satu producer per topic, semuanya async fire-and-forget.
type Publisher struct {
	Scheduled     *kafkax.Producer
	Cancelled     *kafkax.Producer
	Notifications *kafkax.Producer
	ServiceName   string
}

func (p *Publisher) PickupScheduled(ctx context.Context, pk pickups.Pickup, items []pickups.ItemInput) {
	snapshots := make([]pickups.ItemSnapshot, 0, len(items))
	for _, it := range items {
		snapshots = append(snapshots, pickups.ItemSnapshot{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	payload := pickups.PickupScheduledPayload{
		PickupID: pk.ID.String(),
		UserID:   pk.UserID,
		Date:     pk.Date,
		Time:     pk.Time,
		Total:    pk.Total,
		Items:    snapshots,
	}
	p.publish(p.Scheduled, pickups.EventPickupScheduled, pk.ID.String(), kafkax.MustMarshal(payload))
}

func (p *Publisher) PickupCancelled(ctx context.Context, userID string, pickupID uuid.UUID) {
	payload := pickups.PickupCancelledPayload{
		PickupID: pickupID.String(),
		UserID:   userID,
	}
	p.publish(p.Cancelled, pickups.EventPickupCancelled, pickupID.String(), kafkax.MustMarshal(payload))
}

func (p *Publisher) Notify(ctx context.Context, userID, title, description string, severity pickups.Severity) {
	payload := pickups.NotificationPayload{
		UserID:      userID,
		Title:       title,
		Description: description,
		Severity:    severity,
	}
	// partition key = user_id supaya notifikasi per user urut
	p.publish(p.Notifications, pickups.EventNotification, userID, kafkax.MustMarshal(payload))
}

func (p *Publisher) publish(prod *kafkax.Producer, eventType, correlationID string, payload []byte) {
	ev := pickups.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.ServiceName,
		CorrelationID: correlationID,
		Payload:       payload,
	}
	prod.Publish(pickups.PartitionKey(correlationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
