package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Transaction adalah satu entri log saldo. Amount negatif = debit.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Service struct{ DB *pgxpool.Pool }

// ChargeTx mendebit saldo di dalam transaksi milik caller.
// Lock baris wallet dulu (FOR UPDATE) supaya dua charge paralel tidak
// sama-sama lolos cek saldo. Wallet yang belum ada diperlakukan saldo nol.
func (s *Service) ChargeTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, description string) (Transaction, error) {
	var t Transaction

	if !amount.IsPositive() {
		return t, fmt.Errorf("charge of %s: %w", amount, ErrInvalidAmount)
	}

	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrInsufficientFunds
	}
	if err != nil {
		return t, fmt.Errorf("select balance: %w", err)
	}

	if balance.LessThan(amount) {
		return t, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `
		UPDATE wallets SET balance = balance - $2, updated_at = now()
		WHERE user_id = $1`, userID, amount); err != nil {
		return t, fmt.Errorf("debit balance: %w", err)
	}

	t = Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount.Neg(),
		Description: description,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO wallet_transactions(id, user_id, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		t.ID, t.UserID, t.Amount, t.Description).Scan(&t.CreatedAt)
	if err != nil {
		return t, fmt.Errorf("insert transaction: %w", err)
	}

	return t, nil
}

// Deposit menambah saldo (upsert wallet) dan mencatat transaksi kredit.
func (s *Service) Deposit(ctx context.Context, userID string, amount decimal.Decimal, description string) (Transaction, error) {
	var t Transaction

	if !amount.IsPositive() {
		return t, fmt.Errorf("deposit of %s: %w", amount, ErrInvalidAmount)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return t, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO wallets(user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance, updated_at = now()`,
		userID, amount); err != nil {
		return t, fmt.Errorf("credit balance: %w", err)
	}

	t = Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO wallet_transactions(id, user_id, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		t.ID, t.UserID, t.Amount, t.Description).Scan(&t.CreatedAt)
	if err != nil {
		return t, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return t, fmt.Errorf("commit tx: %w", err)
	}
	return t, nil
}

// Balance mengembalikan nol untuk user tanpa wallet, bukan error.
func (s *Service) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.DB.QueryRow(ctx, `SELECT balance FROM wallets WHERE user_id = $1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("select balance: %w", err)
	}
	return balance, nil
}

func (s *Service) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, user_id, amount, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []Transaction{}
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}
