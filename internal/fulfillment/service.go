package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/kedaikopi/go-coffee-pickups.git/internal/kafka"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/pickups"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/redisx"
)

// StatusStore adalah bagian repo pickup yang dipakai worker ini.
type StatusStore interface {
	UpdateStatus(ctx context.Context, pickupID uuid.UUID, from, to pickups.Status) (bool, error)
}

type Deduper interface {
	SeenBefore(ctx context.Context, key string) (bool, error)
}

// Service adalah stand-in untuk tooling fulfillment: menandai pickup `ready`
// begitu event PickupScheduled masuk. Transisi ready -> completed terjadi di
// toko, di luar service ini.
type Service struct {
	Store       StatusStore
	Dedup       Deduper
	Notifier    pickups.Notifier
	ServiceName string
}

// HandlePickupScheduled dipasang sebagai handler consumer.
func (s *Service) HandlePickupScheduled(ctx context.Context, m kafkago.Message) error {
	var env pickups.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventType != pickups.EventPickupScheduled {
		return nil // ignore
	}

	// dedup via event_id; event ulang langsung di-commit
	dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
	seen, err := s.Dedup.SeenBefore(ctx, dkey)
	if err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if seen {
		return nil
	}

	payload, err := kafkax.UnwrapPayload[pickups.PickupScheduledPayload](env.Payload)
	if err != nil {
		return err
	}

	pickupID, err := uuid.Parse(payload.PickupID)
	if err != nil {
		return fmt.Errorf("pickup_id[%s]: %w", payload.PickupID, err)
	}

	ok, err := s.Store.UpdateStatus(ctx, pickupID, pickups.StatusPending, pickups.StatusReady)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !ok {
		// sudah cancelled atau sudah ready; commit saja
		return nil
	}

	s.Notifier.Notify(ctx, payload.UserID, "Pickup Ready",
		fmt.Sprintf("Your pickup for %s at %s is ready for collection.", payload.Date, payload.Time),
		pickups.SeverityDefault)

	return nil
}
