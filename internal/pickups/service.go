package pickups

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kedaikopi/go-coffee-pickups.git/internal/redisx"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/wallet"
)

// Store adalah operasi repository yang dipakai orchestrator.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]Pickup, error)
	CreateTx(ctx context.Context, tx pgx.Tx, userID, date, timeSlot string, total decimal.Decimal) (uuid.UUID, error)
	InsertItemsTx(ctx context.Context, tx pgx.Tx, pickupID uuid.UUID, items []ItemInput) error
	Cancel(ctx context.Context, userID string, pickupID uuid.UUID) (bool, error)
}

type WalletCharger interface {
	ChargeTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, description string) (wallet.Transaction, error)
}

// Cache adalah capability invalidate/read-through untuk listing,
// lepas dari binding UI apa pun.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Notifier mengirim feedback user-visible. Fire-and-forget, tanpa ack.
type Notifier interface {
	Notify(ctx context.Context, userID, title, description string, severity Severity)
}

type EventPublisher interface {
	PickupScheduled(ctx context.Context, p Pickup, items []ItemInput)
	PickupCancelled(ctx context.Context, userID string, pickupID uuid.UUID)
}

// TxBeginner dipenuhi *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Service struct {
	DB       TxBeginner
	Store    Store
	Wallet   WalletCharger
	Cache    Cache
	Notifier Notifier
	Events   EventPublisher
}

// Schedule menjalankan charge wallet + insert pickup + insert item dalam SATU
// transaksi Postgres. Gagal di langkah mana pun -> rollback semuanya; tidak ada
// charge tanpa order maupun order tanpa charge.
func (s *Service) Schedule(ctx context.Context, userID, date, timeSlot string, items []ItemInput) (Pickup, error) {
	var p Pickup

	if len(items) == 0 {
		return p, ErrEmptyPickup
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return p, fmt.Errorf("product %s: %w", it.ProductID, ErrInvalidQuantity)
		}
		if !it.Price.IsPositive() {
			return p, fmt.Errorf("product %s: %w", it.ProductID, ErrInvalidPrice)
		}
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	pickupID, err := s.scheduleTx(ctx, userID, date, timeSlot, total, items)
	if err != nil {
		s.notifyError(ctx, userID, "Error Scheduling Pickup", err)
		return p, err
	}

	p = Pickup{
		ID:     pickupID,
		UserID: userID,
		Date:   date,
		Time:   timeSlot,
		Status: StatusPending,
		Total:  total,
	}

	s.invalidateListing(ctx, userID)
	s.Events.PickupScheduled(ctx, p, items)
	s.Notifier.Notify(ctx, userID, "Pickup Scheduled",
		"Your pickup has been scheduled successfully.", SeverityDefault)

	return p, nil
}

func (s *Service) scheduleTx(ctx context.Context, userID, date, timeSlot string, total decimal.Decimal, items []ItemInput) (uuid.UUID, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	desc := fmt.Sprintf("Coffee Pickup Scheduled for %s at %s", date, timeSlot)
	if _, err := s.Wallet.ChargeTx(ctx, tx, userID, total, desc); err != nil {
		return uuid.Nil, err
	}

	pickupID, err := s.Store.CreateTx(ctx, tx, userID, date, timeSlot, total)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.Store.InsertItemsTx(ctx, tx, pickupID, items); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit tx: %w", err)
	}
	return pickupID, nil
}

// Cancel hanya flip status, tanpa refund wallet.
func (s *Service) Cancel(ctx context.Context, userID string, pickupID uuid.UUID) error {
	found, err := s.Store.Cancel(ctx, userID, pickupID)
	if err != nil {
		s.notifyError(ctx, userID, "Error Cancelling Pickup", err)
		return err
	}
	if !found {
		s.notifyError(ctx, userID, "Error Cancelling Pickup", ErrNotFound)
		return ErrNotFound
	}

	s.invalidateListing(ctx, userID)
	s.Events.PickupCancelled(ctx, userID, pickupID)
	s.Notifier.Notify(ctx, userID, "Pickup Cancelled",
		"Your pickup has been cancelled successfully.", SeverityDefault)

	return nil
}

// List membaca lewat cache: hit -> snapshot, miss -> DB lalu simpan dengan TTL.
func (s *Service) List(ctx context.Context, userID string) ([]Pickup, error) {
	key := listingKey(userID)

	var cached []Pickup
	if ok, err := s.Cache.Get(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	// cache error diabaikan, DB tetap sumber kebenaran

	out, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = s.Cache.Set(ctx, key, out, redisx.TTLPickupList)
	return out, nil
}

func (s *Service) invalidateListing(ctx context.Context, userID string) {
	_ = s.Cache.Del(ctx, listingKey(userID))
}

func (s *Service) notifyError(ctx context.Context, userID, title string, err error) {
	s.Notifier.Notify(ctx, userID, title, err.Error(), SeverityDestructive)
}

func listingKey(userID string) string {
	return fmt.Sprintf(redisx.KeyUserPickups, userID)
}
