package service

import (
	"context"
	"testing"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports/mocks"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupLedgerService(t *testing.T) (*LedgerServiceImpl, *mocks.MockAttemptRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	attemptRepo := mocks.NewMockAttemptRepository(ctrl)
	svc := NewLedgerService(attemptRepo, zerolog.Nop())
	return svc, attemptRepo, ctrl
}

func TestLedgerService_Append_AssignsNumber(t *testing.T) {
	svc, attemptRepo, ctrl := setupLedgerService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	attempt := &domain.PaymentAttempt{
		ID:      uuid.New(),
		SaleID:  uuid.New(),
		Gateway: domain.ProviderAcquirerA,
		Status:  domain.AttemptStatusFailed,
	}

	attemptRepo.EXPECT().Insert(ctx, tx, attempt).Return(3, nil)

	n, err := svc.Append(ctx, tx, attempt)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, attempt.AttemptNumber)
}

func TestLedgerService_Append_RefusesSecondSuccess(t *testing.T) {
	svc, attemptRepo, ctrl := setupLedgerService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	attempt := &domain.PaymentAttempt{
		ID:      uuid.New(),
		SaleID:  saleID,
		Gateway: domain.ProviderAcquirerB,
		Status:  domain.AttemptStatusSuccess,
	}

	attemptRepo.EXPECT().HasSuccess(ctx, saleID).Return(true, nil)

	_, err := svc.Append(ctx, &mockTx{}, attempt)
	assertAppError(t, err, apperror.CodeConsistency)
}

func TestLedgerService_Append_FirstSuccessAllowed(t *testing.T) {
	svc, attemptRepo, ctrl := setupLedgerService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	saleID := uuid.New()
	attempt := &domain.PaymentAttempt{
		ID:      uuid.New(),
		SaleID:  saleID,
		Gateway: domain.ProviderAcquirerB,
		Status:  domain.AttemptStatusSuccess,
	}

	attemptRepo.EXPECT().HasSuccess(ctx, saleID).Return(false, nil)
	attemptRepo.EXPECT().Insert(ctx, tx, attempt).Return(2, nil)

	n, err := svc.Append(ctx, tx, attempt)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLedgerService_Append_RequiresSaleID(t *testing.T) {
	svc, _, ctrl := setupLedgerService(t)
	defer ctrl.Finish()

	_, err := svc.Append(context.Background(), &mockTx{}, &domain.PaymentAttempt{})
	assertAppError(t, err, apperror.CodeValidation)
}

func TestLedgerService_ListAndMax(t *testing.T) {
	svc, attemptRepo, ctrl := setupLedgerService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()

	attemptRepo.EXPECT().ListBySale(ctx, saleID).Return([]domain.PaymentAttempt{
		{AttemptNumber: 1}, {AttemptNumber: 2},
	}, nil)
	attemptRepo.EXPECT().MaxAttemptNumber(ctx, saleID).Return(2, nil)

	attempts, err := svc.ListBySale(ctx, saleID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)

	n, err := svc.MaxAttemptNumber(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
