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

func newTestSale() *domain.Sale {
	return &domain.Sale{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Method:       domain.MethodPix,
		AmountCents:  10000,
		Installments: 1,
		Status:       domain.SaleStatusPending,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func saleTestColumns() []string {
	return []string{"id", "tenant_id", "payment_method", "amount_cents", "installments", "status", "created_at", "updated_at"}
}

func TestSaleRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSaleRepo(mock)
	s := newTestSale()

	mock.ExpectExec("INSERT INTO sales").
		WithArgs(s.ID, s.TenantID, s.Method, s.AmountCents, s.Installments, s.Status, s.CreatedAt, s.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSaleRepo(mock)
	s := newTestSale()

	mock.ExpectQuery("SELECT .+ FROM sales WHERE id").
		WithArgs(s.ID).
		WillReturnRows(pgxmock.NewRows(saleTestColumns()).AddRow(
			s.ID, s.TenantID, s.Method, s.AmountCents, s.Installments, s.Status, s.CreatedAt, s.UpdatedAt,
		))

	result, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, s.ID, result.ID)
	assert.Equal(t, domain.SaleStatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSaleRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM sales WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(saleTestColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSaleRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sales SET status").
		WithArgs(domain.SaleStatusPaid, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), tx, id, domain.SaleStatusPaid)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSaleRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sales SET status").
		WithArgs(domain.SaleStatusPaid, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), tx, uuid.New(), domain.SaleStatusPaid)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
