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

func newTestGateway(provider domain.ProviderType, priority int) *domain.GatewayConfig {
	return &domain.GatewayConfig{
		ID:               uuid.New(),
		Provider:         provider,
		DisplayName:      "Gateway " + string(provider),
		CredentialRef:    "enc_credential_blob",
		WebhookSecretEnc: "enc_webhook_secret",
		IsPrimary:        priority == 10,
		Priority:         priority,
		IsActive:         true,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
}

func gatewayTestColumns() []string {
	return []string{"id", "provider", "display_name", "credential_ref", "webhook_secret_enc",
		"is_primary", "priority", "is_active", "is_sandbox", "created_at", "updated_at"}
}

func gatewayRow(rows *pgxmock.Rows, g *domain.GatewayConfig) *pgxmock.Rows {
	return rows.AddRow(
		g.ID, g.Provider, g.DisplayName, g.CredentialRef, g.WebhookSecretEnc,
		g.IsPrimary, g.Priority, g.IsActive, g.IsSandbox, g.CreatedAt, g.UpdatedAt,
	)
}

func TestGatewayConfigRepo_ListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewGatewayConfigRepo(mock)
	a := newTestGateway(domain.ProviderAcquirerA, 10)
	b := newTestGateway(domain.ProviderAcquirerB, 20)

	rows := pgxmock.NewRows(gatewayTestColumns())
	gatewayRow(rows, a)
	gatewayRow(rows, b)

	mock.ExpectQuery("SELECT .+ FROM gateway_configs WHERE is_active").
		WillReturnRows(rows)

	result, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, domain.ProviderAcquirerA, result[0].Provider)
	assert.Equal(t, domain.ProviderAcquirerB, result[1].Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayConfigRepo_GetByProvider(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewGatewayConfigRepo(mock)
	g := newTestGateway(domain.ProviderAcquirerC, 30)

	mock.ExpectQuery("SELECT .+ FROM gateway_configs WHERE provider").
		WithArgs(g.Provider).
		WillReturnRows(gatewayRow(pgxmock.NewRows(gatewayTestColumns()), g))

	result, err := repo.GetByProvider(context.Background(), g.Provider)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, g.ID, result.ID)
	assert.Equal(t, g.CredentialRef, result.CredentialRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayConfigRepo_GetByProvider_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewGatewayConfigRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM gateway_configs WHERE provider").
		WithArgs(domain.ProviderAcquirerD).
		WillReturnRows(pgxmock.NewRows(gatewayTestColumns()))

	result, err := repo.GetByProvider(context.Background(), domain.ProviderAcquirerD)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayConfigRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewGatewayConfigRepo(mock)
	g := newTestGateway(domain.ProviderAcquirerA, 10)

	mock.ExpectExec("INSERT INTO gateway_configs").
		WithArgs(g.ID, g.Provider, g.DisplayName, g.CredentialRef, g.WebhookSecretEnc,
			g.IsPrimary, g.Priority, g.IsActive, g.IsSandbox, g.CreatedAt, g.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), g)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
