package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Gateway Config Repo ---

type inMemoryGatewayRepo struct {
	mu       sync.RWMutex
	gateways map[domain.ProviderType]*domain.GatewayConfig
}

func newInMemoryGatewayRepo() *inMemoryGatewayRepo {
	return &inMemoryGatewayRepo{gateways: make(map[domain.ProviderType]*domain.GatewayConfig)}
}

func (r *inMemoryGatewayRepo) List(ctx context.Context) ([]domain.GatewayConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.GatewayConfig
	for _, g := range r.gateways {
		out = append(out, *g)
	}
	sortByPriority(out)
	return out, nil
}

func (r *inMemoryGatewayRepo) ListActive(ctx context.Context) ([]domain.GatewayConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.GatewayConfig
	for _, g := range r.gateways {
		if g.IsActive {
			out = append(out, *g)
		}
	}
	sortByPriority(out)
	return out, nil
}

func (r *inMemoryGatewayRepo) GetByProvider(ctx context.Context, provider domain.ProviderType) (*domain.GatewayConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gateways[provider]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *inMemoryGatewayRepo) Upsert(ctx context.Context, cfg *domain.GatewayConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now().UTC()
	cp := *cfg
	r.gateways[cfg.Provider] = &cp
	return nil
}

func sortByPriority(gws []domain.GatewayConfig) {
	sort.Slice(gws, func(i, j int) bool {
		if gws[i].Priority != gws[j].Priority {
			return gws[i].Priority < gws[j].Priority
		}
		return gws[i].Provider < gws[j].Provider
	})
}

// --- In-Memory Fallback Policy Repo ---

type inMemoryPolicyRepo struct {
	mu       sync.RWMutex
	policies map[domain.PaymentMethod]*domain.FallbackPolicy
}

func newInMemoryPolicyRepo() *inMemoryPolicyRepo {
	return &inMemoryPolicyRepo{policies: make(map[domain.PaymentMethod]*domain.FallbackPolicy)}
}

func (r *inMemoryPolicyRepo) GetByMethod(ctx context.Context, method domain.PaymentMethod) (*domain.FallbackPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[method]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPolicyRepo) Upsert(ctx context.Context, policy *domain.FallbackPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	policy.UpdatedAt = time.Now().UTC()
	cp := *policy
	r.policies[policy.Method] = &cp
	return nil
}

// --- In-Memory Fee Schedule Repo ---

type feeKey struct {
	tenant uuid.UUID
	method domain.PaymentMethod
}

type inMemoryFeeRepo struct {
	mu        sync.RWMutex
	schedules map[feeKey]*domain.TenantFeeSchedule
}

func newInMemoryFeeRepo() *inMemoryFeeRepo {
	return &inMemoryFeeRepo{schedules: make(map[feeKey]*domain.TenantFeeSchedule)}
}

func (r *inMemoryFeeRepo) GetByTenantAndMethod(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schedules[feeKey{tenantID, method}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryFeeRepo) Upsert(ctx context.Context, schedule *domain.TenantFeeSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule.UpdatedAt = time.Now().UTC()
	cp := *schedule
	r.schedules[feeKey{schedule.TenantID, schedule.Method}] = &cp
	return nil
}

// --- In-Memory Sale Repo ---

type inMemorySaleRepo struct {
	mu    sync.RWMutex
	sales map[uuid.UUID]*domain.Sale
}

func newInMemorySaleRepo() *inMemorySaleRepo {
	return &inMemorySaleRepo{sales: make(map[uuid.UUID]*domain.Sale)}
}

func (r *inMemorySaleRepo) Create(ctx context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[sale.ID]; ok {
		return fmt.Errorf("sale already exists")
	}
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *inMemorySaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemorySaleRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return fmt.Errorf("sale not found")
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Attempt Repo ---

type inMemoryAttemptRepo struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID][]domain.PaymentAttempt // keyed by sale id, append order
}

func newInMemoryAttemptRepo() *inMemoryAttemptRepo {
	return &inMemoryAttemptRepo{attempts: make(map[uuid.UUID][]domain.PaymentAttempt)}
}

func (r *inMemoryAttemptRepo) Insert(ctx context.Context, tx pgx.Tx, attempt *domain.PaymentAttempt) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.attempts[attempt.SaleID]
	n := 0
	for _, a := range rows {
		if a.AttemptNumber > n {
			n = a.AttemptNumber
		}
	}
	n++
	attempt.AttemptNumber = n
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	r.attempts[attempt.SaleID] = append(rows, *attempt)
	return n, nil
}

func (r *inMemoryAttemptRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.attempts[saleID]
	out := make([]domain.PaymentAttempt, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber < out[j].AttemptNumber })
	return out, nil
}

func (r *inMemoryAttemptRepo) MaxAttemptNumber(ctx context.Context, saleID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.attempts[saleID] {
		if a.AttemptNumber > n {
			n = a.AttemptNumber
		}
	}
	return n, nil
}

func (r *inMemoryAttemptRepo) HasSuccess(ctx context.Context, saleID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attempts[saleID] {
		if a.Status == domain.AttemptStatusSuccess {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryAttemptRepo) GetPendingByProviderRef(ctx context.Context, gateway domain.ProviderType, providerTxRef string) (*domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rows := range r.attempts {
		resolved := make(map[int]bool)
		for _, a := range rows {
			if a.ResolvesAttempt != nil {
				resolved[*a.ResolvesAttempt] = true
			}
		}
		for i := len(rows) - 1; i >= 0; i-- {
			a := rows[i]
			if a.Gateway == gateway && a.ProviderTxRef == providerTxRef &&
				a.Status == domain.AttemptStatusPending && a.ResolvesAttempt == nil &&
				!resolved[a.AttemptNumber] {
				cp := a
				return &cp, nil
			}
		}
	}
	return nil, nil
}

// --- In-Memory Admin Action Repo ---

type inMemoryAdminActionRepo struct {
	mu      sync.RWMutex
	actions map[uuid.UUID][]domain.AdminAction
}

func newInMemoryAdminActionRepo() *inMemoryAdminActionRepo {
	return &inMemoryAdminActionRepo{actions: make(map[uuid.UUID][]domain.AdminAction)}
}

func (r *inMemoryAdminActionRepo) Create(ctx context.Context, action *domain.AdminAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[action.SaleID] = append(r.actions[action.SaleID], *action)
	return nil
}

func (r *inMemoryAdminActionRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.AdminAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.actions[saleID]
	// Newest first, matching the persistent repo.
	out := make([]domain.AdminAction, len(rows))
	for i, a := range rows {
		out[len(rows)-1-i] = a
	}
	return out, nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
