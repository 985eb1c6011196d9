package pickups

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Repo struct{ DB *pgxpool.Pool }

// ListByUser mengambil semua pickup milik user, lalu fan-out satu query item
// per pickup secara concurrent. Satu batch item gagal -> seluruh listing gagal,
// tidak ada partial result.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Pickup, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, pickup_date, pickup_time, status, total, created_at, updated_at
		FROM pickups
		WHERE user_id = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query pickups: %w", err)
	}
	defer rows.Close()

	out := []Pickup{}
	for rows.Next() {
		var (
			p         Pickup
			rawStatus string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Date, &p.Time, &rawStatus, &p.Total, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pickup: %w", err)
		}
		p.Status, err = ToStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("status[%s]: %w", rawStatus, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range out {
		g.Go(func() error {
			items, err := r.listItems(gctx, out[i].ID)
			if err != nil {
				return err
			}
			out[i].Items = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repo) listItems(ctx context.Context, pickupID uuid.UUID) ([]PickupItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pi.quantity, pi.price,
		       p.id, p.name, p.price, p.image, p.description, p.long_description,
		       p.roast_level, p.origin, p.flavor_notes, p.weight,
		       c.name
		FROM pickup_items pi
		JOIN products p ON p.id = pi.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE pi.pickup_id = $1
		ORDER BY pi.id`, pickupID)
	if err != nil {
		return nil, fmt.Errorf("query pickup_items[%s]: %w", pickupID, err)
	}
	defer rows.Close()

	var items []PickupItem
	for rows.Next() {
		var row itemRow
		if err := rows.Scan(
			&row.Quantity, &row.Price,
			&row.ProductID, &row.ProductName, &row.ProductPrice, &row.Image, &row.Description,
			&row.LongDescription, &row.RoastLevel, &row.Origin, &row.FlavorNotes, &row.Weight,
			&row.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan pickup_item: %w", err)
		}
		items = append(items, mapItemRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return items, nil
}

// CreateTx menyisipkan baris pickup berstatus pending di dalam transaksi milik caller.
func (r *Repo) CreateTx(ctx context.Context, tx pgx.Tx, userID, date, timeSlot string, total decimal.Decimal) (uuid.UUID, error) {
	id := uuid.New()
	_, err := tx.Exec(ctx, `
		INSERT INTO pickups(id, user_id, pickup_date, pickup_time, status, total)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userID, date, timeSlot, string(StatusPending), total)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert pickup: %w", err)
	}
	return id, nil
}

// InsertItemsTx bulk-insert line item via batch, satu round-trip.
func (r *Repo) InsertItemsTx(ctx context.Context, tx pgx.Tx, pickupID uuid.UUID, items []ItemInput) error {
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO pickup_items(pickup_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			pickupID, it.ProductID, it.Quantity, it.Price)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert pickup_item: %w", err)
		}
	}
	return nil
}

// Cancel memakai authorization-by-filter: id + user_id + masih pending.
// Nol baris ter-update berarti not found (termasuk pickup milik user lain).
func (r *Repo) Cancel(ctx context.Context, userID string, pickupID uuid.UUID) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE pickups
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		pickupID, userID, string(StatusCancelled), string(StatusPending))
	if err != nil {
		return false, fmt.Errorf("cancel pickup: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateStatus memindahkan status dengan guard state machine.
// false berarti pickup sudah tidak di status `from` (bukan error).
func (r *Repo) UpdateStatus(ctx context.Context, pickupID uuid.UUID, from, to Status) (bool, error) {
	if !CanTransition(from, to) {
		return false, fmt.Errorf("invalid transition %s -> %s", from, to)
	}

	ct, err := r.DB.Exec(ctx, `
		UPDATE pickups
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		pickupID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) GetStatus(ctx context.Context, pickupID uuid.UUID) (Status, error) {
	var raw string
	err := r.DB.QueryRow(ctx, `SELECT status FROM pickups WHERE id = $1`, pickupID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query status: %w", err)
	}
	return ToStatus(raw)
}
