package wallet_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kedaikopi/go-coffee-pickups.git/internal/wallet"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "migrations", "001_init.sql")),
		tcpostgres.WithDatabase("coffee"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("secret"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", err
	}
	return container, connStr, nil
}

type walletServiceSuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container
	svc       *wallet.Service
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(walletServiceSuite))
}

func (suite *walletServiceSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.svc = &wallet.Service{DB: suite.pool}
}

func (suite *walletServiceSuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *walletServiceSuite) mustBalance(userID string) decimal.Decimal {
	b, err := suite.svc.Balance(suite.T().Context(), userID)
	suite.NoError(err)
	return b
}

func (suite *walletServiceSuite) TestDepositCreatesWallet() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	created, err := suite.svc.Deposit(ctx, userID, decimal.RequireFromString("50.00"), "top up")
	require.NoError(t, err)
	assert.Equal(t, userID, created.UserID)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("50.00")))
	assert.False(t, created.CreatedAt.IsZero())

	assert.True(t, suite.mustBalance(userID).Equal(decimal.RequireFromString("50.00")))

	// deposit kedua menambah, bukan menimpa
	_, err = suite.svc.Deposit(ctx, userID, decimal.RequireFromString("25.50"), "top up")
	require.NoError(t, err)
	assert.True(t, suite.mustBalance(userID).Equal(decimal.RequireFromString("75.50")))
}

func (suite *walletServiceSuite) TestDepositInvalidAmount() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err := suite.svc.Deposit(ctx, userID, decimal.Zero, "noop")
	require.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = suite.svc.Deposit(ctx, userID, decimal.RequireFromString("-5"), "noop")
	require.ErrorIs(t, err, wallet.ErrInvalidAmount)

	txs, err := suite.svc.Transactions(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func (suite *walletServiceSuite) TestChargeCommits() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err := suite.svc.Deposit(ctx, userID, decimal.RequireFromString("100.00"), "top up")
	require.NoError(t, err)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	charged, err := suite.svc.ChargeTx(ctx, tx, userID, decimal.RequireFromString("40.00"), "pickup charge")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	// log menyimpan debit sebagai nilai negatif
	assert.True(t, charged.Amount.Equal(decimal.RequireFromString("-40.00")))
	assert.True(t, suite.mustBalance(userID).Equal(decimal.RequireFromString("60.00")))
}

func (suite *walletServiceSuite) TestChargeRollsBackWithCallerTx() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err := suite.svc.Deposit(ctx, userID, decimal.RequireFromString("100.00"), "top up")
	require.NoError(t, err)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	_, err = suite.svc.ChargeTx(ctx, tx, userID, decimal.RequireFromString("40.00"), "pickup charge")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	// charge ikut nasib transaksi caller
	assert.True(t, suite.mustBalance(userID).Equal(decimal.RequireFromString("100.00")))

	txs, err := suite.svc.Transactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, txs, 1) // hanya deposit
}

func (suite *walletServiceSuite) TestChargeInsufficientFunds() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err := suite.svc.Deposit(ctx, userID, decimal.RequireFromString("10.00"), "top up")
	require.NoError(t, err)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = suite.svc.ChargeTx(ctx, tx, userID, decimal.RequireFromString("40.00"), "pickup charge")
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	require.NoError(t, tx.Rollback(ctx))

	assert.True(t, suite.mustBalance(userID).Equal(decimal.RequireFromString("10.00")))
}

func (suite *walletServiceSuite) TestChargeUnknownWallet() {
	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	// belum pernah deposit = saldo nol
	_, err = suite.svc.ChargeTx(ctx, tx, gofakeit.UUID(), decimal.RequireFromString("1.00"), "pickup charge")
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
}

func (suite *walletServiceSuite) TestChargeInvalidAmount() {
	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = suite.svc.ChargeTx(ctx, tx, gofakeit.UUID(), decimal.Zero, "noop")
	require.ErrorIs(t, err, wallet.ErrInvalidAmount)
}

func (suite *walletServiceSuite) TestTransactionsLog() {
	t := suite.T()
	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err := suite.svc.Deposit(ctx, userID, decimal.RequireFromString("100.00"), "top up")
	require.NoError(t, err)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	_, err = suite.svc.ChargeTx(ctx, tx, userID, decimal.RequireFromString("30.00"), "pickup charge")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	txs, err := suite.svc.Transactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	var total decimal.Decimal
	for _, entry := range txs {
		assert.Equal(t, userID, entry.UserID)
		total = total.Add(entry.Amount)
	}
	// kredit 100 + debit 30 = net 70, sama dengan saldo
	assert.True(t, total.Equal(decimal.RequireFromString("70.00")))
	assert.True(t, suite.mustBalance(userID).Equal(total))
}

func (suite *walletServiceSuite) TestBalanceUnknownUser() {
	t := suite.T()

	b, err := suite.svc.Balance(t.Context(), gofakeit.UUID())
	require.NoError(t, err)
	assert.True(t, b.Equal(decimal.Zero))
}
