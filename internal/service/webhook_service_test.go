package service

import (
	"context"
	"testing"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/core/ports/mocks"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type webhookTestDeps struct {
	svc          *WebhookServiceImpl
	attemptRepo  *mocks.MockAttemptRepository
	saleRepo     *mocks.MockSaleRepository
	ledger       *mocks.MockAttemptLedger
	orchestrator *mocks.MockPaymentOrchestrator
	deduper      *mocks.MockWebhookDeduper
	locker       *mocks.MockSaleLocker
	transactor   *mocks.MockDBTransactor
	ctrl         *gomock.Controller

	appended []domain.PaymentAttempt
}

func setupWebhookService(t *testing.T) *webhookTestDeps {
	ctrl := gomock.NewController(t)
	d := &webhookTestDeps{
		attemptRepo:  mocks.NewMockAttemptRepository(ctrl),
		saleRepo:     mocks.NewMockSaleRepository(ctrl),
		ledger:       mocks.NewMockAttemptLedger(ctrl),
		orchestrator: mocks.NewMockPaymentOrchestrator(ctrl),
		deduper:      mocks.NewMockWebhookDeduper(ctrl),
		locker:       mocks.NewMockSaleLocker(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewWebhookService(
		d.attemptRepo, d.saleRepo, d.ledger, d.orchestrator,
		d.deduper, d.locker, d.transactor, zerolog.Nop(),
	)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil).AnyTimes()
	d.ledger.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, a *domain.PaymentAttempt) (int, error) {
			d.appended = append(d.appended, *a)
			return a.AttemptNumber + 10, nil
		}).AnyTimes()
	return d
}

func pendingAttempt(saleID uuid.UUID) *domain.PaymentAttempt {
	return &domain.PaymentAttempt{
		ID:            uuid.New(),
		SaleID:        saleID,
		Gateway:       domain.ProviderAcquirerA,
		Method:        domain.MethodPix,
		AmountCents:   10000,
		Status:        domain.AttemptStatusPending,
		AttemptNumber: 1,
		ProviderTxRef: "acq-a-async",
	}
}

func TestWebhookService_RecordWebhook_Success(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	pending := pendingAttempt(saleID)

	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("tok", true, nil)
	d.saleRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), saleID, domain.SaleStatusPaid).Return(nil)
	d.locker.EXPECT().Release(gomock.Any(), saleID, "tok").Return(nil)

	outcome, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "acq-a-async",
		Status:        ports.WebhookStatusSuccess,
	})
	require.NoError(t, err)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, domain.SaleStatusPaid, outcome.SaleStatus)

	// The initiation row is untouched; a resolution row references it.
	require.Len(t, d.appended, 1)
	row := d.appended[0]
	assert.Equal(t, domain.AttemptStatusSuccess, row.Status)
	require.NotNil(t, row.ResolvesAttempt)
	assert.Equal(t, 1, *row.ResolvesAttempt)
	assert.Equal(t, pending.Gateway, row.Gateway)
	assert.Equal(t, pending.ProviderTxRef, row.ProviderTxRef)
}

func TestWebhookService_RecordWebhook_Duplicate(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "ref-1", ports.WebhookStatusSuccess).Return(false, nil)

	outcome, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "ref-1",
		Status:        ports.WebhookStatusSuccess,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
	assert.Empty(t, d.appended)
}

func TestWebhookService_RecordWebhook_FailureResumesChain(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	pending := pendingAttempt(saleID)

	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusFailed).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("tok", true, nil)
	d.saleRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), saleID, domain.SaleStatusFailed).Return(nil)
	d.locker.EXPECT().Release(gomock.Any(), saleID, "tok").Return(nil)
	d.orchestrator.EXPECT().ResumeChain(ctx, saleID).Return(&ports.OrchestrationResult{
		SaleID:       saleID,
		Status:       ports.OrchestrationPaid,
		AttemptsMade: 1,
	}, nil)

	outcome, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "acq-a-async",
		Status:        ports.WebhookStatusFailed,
		ErrorCode:     "expired",
		ErrorMessage:  "boleto expired unpaid",
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Resumed)
	assert.Equal(t, ports.OrchestrationPaid, outcome.Resumed.Status)
	assert.Equal(t, domain.SaleStatus("paid"), outcome.SaleStatus)

	require.Len(t, d.appended, 1)
	assert.Equal(t, domain.AttemptStatusFailed, d.appended[0].Status)
	assert.Equal(t, "expired", d.appended[0].ErrorCode)
}

func TestWebhookService_RecordWebhook_AnalyzingTransition(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	pending := pendingAttempt(saleID)

	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusAnalyzing).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("tok", true, nil)
	d.saleRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), saleID, domain.SaleStatusAnalyzing).Return(nil)
	d.locker.EXPECT().Release(gomock.Any(), saleID, "tok").Return(nil)

	outcome, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "acq-a-async",
		Status:        ports.WebhookStatusAnalyzing,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusAnalyzing, outcome.SaleStatus)
	assert.Nil(t, outcome.Resumed)
}

func TestWebhookService_RecordWebhook_NoMatchingAttempt(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerB, "ghost", ports.WebhookStatusSuccess).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerB, "ghost").Return(nil, nil)
	// The delivery was not applied, so the dedup mark must not survive it.
	d.deduper.EXPECT().Forget(gomock.Any(), domain.ProviderAcquirerB, "ghost", ports.WebhookStatusSuccess).Return(nil)

	_, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerB,
		ProviderTxRef: "ghost",
		Status:        ports.WebhookStatusSuccess,
	})
	assertAppError(t, err, apperror.CodeNotFound)
}

func TestWebhookService_RecordWebhook_RetryAfterLockContention(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	pending := pendingAttempt(saleID)
	notice := ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "acq-a-async",
		Status:        ports.WebhookStatusSuccess,
	}

	// First delivery arrives while a chain holds the sale lock. It must fail
	// without leaving a dedup mark behind.
	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("", false, nil)
	d.deduper.EXPECT().Forget(gomock.Any(), domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(nil)

	_, err := d.svc.RecordWebhook(ctx, notice)
	assertAppError(t, err, apperror.CodeConcurrentRun)
	assert.Empty(t, d.appended)

	// The provider retries once the lock is free; the retry settles the sale.
	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("tok", true, nil)
	d.saleRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), saleID, domain.SaleStatusPaid).Return(nil)
	d.locker.EXPECT().Release(gomock.Any(), saleID, "tok").Return(nil)

	outcome, err := d.svc.RecordWebhook(ctx, notice)
	require.NoError(t, err)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, domain.SaleStatusPaid, outcome.SaleStatus)
	require.Len(t, d.appended, 1)
	assert.Equal(t, domain.AttemptStatusSuccess, d.appended[0].Status)
}

func TestWebhookService_RecordWebhook_CommitFailureClearsDedup(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	saleID := uuid.New()
	pending := pendingAttempt(saleID)

	d.deduper.EXPECT().CheckAndSet(ctx, domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(true, nil)
	d.attemptRepo.EXPECT().GetPendingByProviderRef(ctx, domain.ProviderAcquirerA, "acq-a-async").Return(pending, nil)
	d.locker.EXPECT().Acquire(ctx, saleID).Return("tok", true, nil)
	d.saleRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), saleID, domain.SaleStatusPaid).
		Return(assert.AnError)
	d.locker.EXPECT().Release(gomock.Any(), saleID, "tok").Return(nil)
	d.deduper.EXPECT().Forget(gomock.Any(), domain.ProviderAcquirerA, "acq-a-async", ports.WebhookStatusSuccess).Return(nil)

	_, err := d.svc.RecordWebhook(ctx, ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "acq-a-async",
		Status:        ports.WebhookStatusSuccess,
	})
	assertAppError(t, err, apperror.CodeInternal)
}

func TestWebhookService_RecordWebhook_Validation(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.RecordWebhook(context.Background(), ports.WebhookNotice{
		Gateway: domain.ProviderAcquirerA,
		Status:  ports.WebhookStatusSuccess,
	})
	assertAppError(t, err, apperror.CodeValidation)

	_, err = d.svc.RecordWebhook(context.Background(), ports.WebhookNotice{
		Gateway:       domain.ProviderAcquirerA,
		ProviderTxRef: "ref",
		Status:        "exploded",
	})
	assertAppError(t, err, apperror.CodeValidation)
}
