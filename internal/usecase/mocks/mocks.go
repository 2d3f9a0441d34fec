package mocks

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
)

// onCommit defers fn until tx commits when tx is a *MockTransaction, so rolled
// back writes never reach the in-memory stores. Other transactions run fn now.
func onCommit(tx usecase.Transaction, fn func()) {
	if mt, ok := tx.(*MockTransaction); ok {
		mt.OnCommit(fn)
		return
	}
	fn()
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := append([]uuid.UUID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i][:], out[j][:]) < 0 })
	return out
}

// MockAccountRepository is an in-memory implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account

	// LockedIDs records the id order of every GetByIDsForUpdate call.
	LockedIDs [][]uuid.UUID

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Account, error)
	ApplyDeltaFunc        func(ctx context.Context, tx usecase.Transaction, id uuid.UUID, delta domain.BalanceDelta, updatedAt int64) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[uuid.UUID]*domain.Account),
	}
}

// Put stores accounts directly, bypassing transactions.
func (m *MockAccountRepository) Put(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a.Clone()
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.RLock()
	for _, existing := range m.accounts {
		if existing.TenantID == account.TenantID && existing.IdempotenceKey == account.IdempotenceKey {
			m.mu.RUnlock()
			return existing.Clone(), nil
		}
	}
	m.mu.RUnlock()

	stored := account.Clone()
	onCommit(tx, func() { m.Put(stored) })
	return account.Clone(), nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Clone(), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockedIDs = append(m.LockedIDs, append([]uuid.UUID(nil), ids...))
	var accounts []*domain.Account
	for _, id := range sortedIDs(ids) {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc.Clone())
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, id uuid.UUID, delta domain.BalanceDelta, updatedAt int64) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.RLock()
	acc, ok := m.accounts[id]
	m.mu.RUnlock()
	if !ok {
		return domain.ErrAccountNotFound
	}
	if err := acc.ValidateDelta(delta); err != nil {
		return err
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		acc.ApplyDelta(delta)
		acc.Audit.UpdatedAt = updatedAt
	})
	return nil
}

func (m *MockAccountRepository) ListByLedger(ctx context.Context, ledgerID uuid.UUID, limit, offset int) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.accounts))
	for id, acc := range m.accounts {
		if acc.LedgerID == ledgerID {
			ids = append(ids, id)
		}
	}
	ids = sortedIDs(ids)

	var accounts []*domain.Account
	for i := offset; i < len(ids) && len(accounts) < limit; i++ {
		accounts = append(accounts, m.accounts[ids[i]].Clone())
	}
	return accounts, nil
}

// MockTransferRepository is an in-memory implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[uuid.UUID]*domain.Transfer

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	GetByIDsFunc      func(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Transfer, error)
	ListByAccountFunc func(ctx context.Context, accountID uuid.UUID, from, to int64, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[uuid.UUID]*domain.Transfer),
	}
}

// Put stores transfers directly, bypassing transactions.
func (m *MockTransferRepository) Put(transfers ...*domain.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range transfers {
		c := *t
		m.transfers[t.ID] = &c
	}
}

// Len returns the number of committed transfers.
func (m *MockTransferRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transfers)
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.RLock()
	_, exists := m.transfers[transfer.ID]
	m.mu.RUnlock()
	if exists {
		return domain.ErrTransferExists
	}
	stored := *transfer
	onCommit(tx, func() { m.Put(&stored) })
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Transfer, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, id := range ids {
		if t, ok := m.transfers[id]; ok {
			c := *t
			transfers = append(transfers, &c)
		}
	}
	return transfers, nil
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to int64, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, from, to, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Transfer
	for _, t := range m.transfers {
		if t.DebitAccountID != accountID && t.CreditAccountID != accountID {
			continue
		}
		if t.CreatedAt < from || t.CreatedAt >= to {
			continue
		}
		c := *t
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt < matched[j].CreatedAt })

	if offset >= len(matched) {
		return []*domain.Transfer{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// MockPendingRepository is an in-memory implementation of PendingRepository.
type MockPendingRepository struct {
	mu       sync.RWMutex
	pendings map[uuid.UUID]*domain.PendingTransfer

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error
	ResolveFunc func(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error
}

func NewMockPendingRepository() *MockPendingRepository {
	return &MockPendingRepository{
		pendings: make(map[uuid.UUID]*domain.PendingTransfer),
	}
}

// Get returns the committed pending state.
func (m *MockPendingRepository) Get(id uuid.UUID) (*domain.PendingTransfer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pendings[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (m *MockPendingRepository) put(p *domain.PendingTransfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendings[p.PendingID] = p
}

func (m *MockPendingRepository) Create(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, pending)
	}
	stored := pending.Clone()
	onCommit(tx, func() { m.put(stored) })
	return nil
}

func (m *MockPendingRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.PendingTransfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pendings []*domain.PendingTransfer
	for _, id := range ids {
		if p, ok := m.pendings[id]; ok {
			pendings = append(pendings, p.Clone())
		}
	}
	return pendings, nil
}

func (m *MockPendingRepository) Resolve(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, tx, pending)
	}
	m.mu.RLock()
	_, ok := m.pendings[pending.PendingID]
	m.mu.RUnlock()
	if !ok {
		return domain.ErrPendingNotFound
	}
	stored := pending.Clone()
	onCommit(tx, func() { m.put(stored) })
	return nil
}

// MockLedgerMasterStore is an in-memory implementation of LedgerMasterRepository.
type MockLedgerMasterStore struct {
	mu      sync.RWMutex
	ledgers map[uuid.UUID]*domain.LedgerMaster
}

func NewMockLedgerMasterStore() *MockLedgerMasterStore {
	return &MockLedgerMasterStore{
		ledgers: make(map[uuid.UUID]*domain.LedgerMaster),
	}
}

// Put stores ledger masters directly, bypassing transactions.
func (m *MockLedgerMasterStore) Put(ledgers ...*domain.LedgerMaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range ledgers {
		c := *l
		m.ledgers[l.ID] = &c
	}
}

func (m *MockLedgerMasterStore) Create(ctx context.Context, tx usecase.Transaction, ledger *domain.LedgerMaster) (*domain.LedgerMaster, error) {
	m.mu.RLock()
	for _, existing := range m.ledgers {
		if existing.TenantID == ledger.TenantID && existing.IdempotenceKey == ledger.IdempotenceKey {
			c := *existing
			m.mu.RUnlock()
			return &c, nil
		}
	}
	m.mu.RUnlock()

	stored := *ledger
	onCommit(tx, func() { m.Put(&stored) })
	c := *ledger
	return &c, nil
}

func (m *MockLedgerMasterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerMaster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.ledgers[id]; ok {
		c := *l
		return &c, nil
	}
	return nil, domain.ErrLedgerNotFound
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu  sync.Mutex
	txs []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	return tx, nil
}

// Transactions returns every transaction begun so far.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.txs...)
}

// MockTransaction is a mock implementation of Transaction. Writes registered
// with OnCommit are applied on Commit and dropped on Rollback.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu         sync.Mutex
	deferred   []func()
	Committed  bool
	RolledBack bool
}

// OnCommit registers fn to run when the transaction commits.
func (m *MockTransaction) OnCommit(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferred = append(m.deferred, fn)
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	deferred := m.deferred
	m.deferred = nil
	m.Committed = true
	m.mu.Unlock()

	for _, fn := range deferred {
		fn()
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Committed {
		return nil
	}
	m.deferred = nil
	m.RolledBack = true
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	Gets int
	Sets int
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Stored returns the raw value held for key.
func (m *MockIdempotencyStore) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
