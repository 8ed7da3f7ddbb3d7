package postgres

import (
	"context"
	"testing"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttempt(saleID uuid.UUID) *domain.PaymentAttempt {
	return &domain.PaymentAttempt{
		ID:          uuid.New(),
		SaleID:      saleID,
		Gateway:     domain.ProviderAcquirerA,
		Method:      domain.MethodPix,
		AmountCents: 10000,
		Status:      domain.AttemptStatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func attemptTestColumns() []string {
	return []string{"id", "sale_id", "gateway", "payment_method", "amount_cents", "status",
		"error_code", "error_message", "is_fallback", "attempt_number", "provider_tx_ref", "resolves_attempt", "created_at"}
}

func attemptRow(rows *pgxmock.Rows, a *domain.PaymentAttempt) *pgxmock.Rows {
	return rows.AddRow(
		a.ID, a.SaleID, a.Gateway, a.Method, a.AmountCents, a.Status,
		a.ErrorCode, a.ErrorMessage, a.IsFallback, a.AttemptNumber,
		a.ProviderTxRef, a.ResolvesAttempt, a.CreatedAt,
	)
}

func TestAttemptRepo_Insert_AssignsNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payment_attempts").
		WithArgs(a.ID, a.SaleID, a.Gateway, a.Method, a.AmountCents, a.Status,
			a.ErrorCode, a.ErrorMessage, a.IsFallback, a.ProviderTxRef, a.ResolvesAttempt, a.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"attempt_number"}).AddRow(3))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	n, err := repo.Insert(context.Background(), tx, a)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_Insert_GeneratesID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt(uuid.New())
	a.ID = uuid.Nil

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payment_attempts").
		WithArgs(pgxmock.AnyArg(), a.SaleID, a.Gateway, a.Method, a.AmountCents, a.Status,
			a.ErrorCode, a.ErrorMessage, a.IsFallback, a.ProviderTxRef, a.ResolvesAttempt, a.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"attempt_number"}).AddRow(1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), tx, a)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_ListBySale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	saleID := uuid.New()

	first := newTestAttempt(saleID)
	first.Status = domain.AttemptStatusFailed
	first.ErrorCode = "card_declined"
	first.AttemptNumber = 1

	second := newTestAttempt(saleID)
	second.Gateway = domain.ProviderAcquirerB
	second.Status = domain.AttemptStatusSuccess
	second.IsFallback = true
	second.AttemptNumber = 2

	rows := pgxmock.NewRows(attemptTestColumns())
	attemptRow(rows, first)
	attemptRow(rows, second)

	mock.ExpectQuery("SELECT .+ FROM payment_attempts WHERE sale_id").
		WithArgs(saleID).
		WillReturnRows(rows)

	result, err := repo.ListBySale(context.Background(), saleID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 1, result[0].AttemptNumber)
	assert.Equal(t, "card_declined", result[0].ErrorCode)
	assert.True(t, result[1].IsFallback)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_MaxAttemptNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	saleID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(saleID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(5))

	n, err := repo.MaxAttemptNumber(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_HasSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	saleID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(saleID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.HasSuccess(context.Background(), saleID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_GetPendingByProviderRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)
	a := newTestAttempt(uuid.New())
	a.ProviderTxRef = "tx-abc"
	a.AttemptNumber = 2

	mock.ExpectQuery("SELECT .+ FROM payment_attempts a").
		WithArgs(a.Gateway, a.ProviderTxRef).
		WillReturnRows(attemptRow(pgxmock.NewRows(attemptTestColumns()), a))

	result, err := repo.GetPendingByProviderRef(context.Background(), a.Gateway, a.ProviderTxRef)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.SaleID, result.SaleID)
	assert.Equal(t, 2, result.AttemptNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepo_GetPendingByProviderRef_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttemptRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_attempts a").
		WithArgs(domain.ProviderAcquirerA, "tx-missing").
		WillReturnRows(pgxmock.NewRows(attemptTestColumns()))

	result, err := repo.GetPendingByProviderRef(context.Background(), domain.ProviderAcquirerA, "tx-missing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
