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

func adminActionTestColumns() []string {
	return []string{"id", "sale_id", "action_type", "performed_by", "notes", "result_status", "created_at"}
}

func TestAdminActionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAdminActionRepo(mock)
	action := &domain.AdminAction{
		ID:           uuid.New(),
		SaleID:       uuid.New(),
		ActionType:   domain.ActionReprocess,
		PerformedBy:  "ops@example.com",
		Notes:        "customer called in",
		ResultStatus: domain.ActionResultSuccess,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO admin_actions").
		WithArgs(action.ID, action.SaleID, action.ActionType, action.PerformedBy,
			action.Notes, action.ResultStatus, action.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), action)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminActionRepo_Create_GeneratesID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAdminActionRepo(mock)
	action := &domain.AdminAction{
		SaleID:       uuid.New(),
		ActionType:   domain.ActionManualCapture,
		PerformedBy:  "ops@example.com",
		ResultStatus: domain.ActionResultSuccess,
	}

	mock.ExpectExec("INSERT INTO admin_actions").
		WithArgs(pgxmock.AnyArg(), action.SaleID, action.ActionType, action.PerformedBy,
			action.Notes, action.ResultStatus, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), action)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, action.ID)
	assert.False(t, action.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminActionRepo_ListBySale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAdminActionRepo(mock)
	saleID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM admin_actions WHERE sale_id").
		WithArgs(saleID).
		WillReturnRows(pgxmock.NewRows(adminActionTestColumns()).
			AddRow(uuid.New(), saleID, domain.ActionReleaseAntifraud, "ops@example.com", "", domain.ActionResultSuccess, now).
			AddRow(uuid.New(), saleID, domain.ActionReprocess, "ops@example.com", "", domain.ActionResultFailed, now.Add(-time.Hour)))

	actions, err := repo.ListBySale(context.Background(), saleID)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, domain.ActionReleaseAntifraud, actions[0].ActionType)
	assert.Equal(t, domain.ActionResultFailed, actions[1].ResultStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
