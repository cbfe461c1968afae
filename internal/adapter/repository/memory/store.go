// Package memory is a process-local store. Wallets are locked individually
// with read/write mutexes; writes are buffered on the transaction and
// applied under the store lock at commit, so readers never see half of one.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

var (
	errTxDone      = errors.New("memory: transaction already finished")
	errForeignTx   = errors.New("memory: transaction does not belong to this store")
	errNotLocked   = errors.New("memory: wallet is not locked for update")
	errDuplicateID = errors.New("memory: duplicate id")
)

// Store holds committed state.
type Store struct {
	mu        sync.RWMutex
	wallets   map[string]domain.Wallet
	byAccount map[string]string
	records   map[string]domain.TransactionRecord
	byWallet  map[string][]string
	byRelated map[string][]string
	outbox    map[string]*domain.OutboxEvent

	locksMu sync.Mutex
	locks   map[string]*sync.RWMutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		wallets:   make(map[string]domain.Wallet),
		byAccount: make(map[string]string),
		records:   make(map[string]domain.TransactionRecord),
		byWallet:  make(map[string][]string),
		byRelated: make(map[string][]string),
		outbox:    make(map[string]*domain.OutboxEvent),
		locks:     make(map[string]*sync.RWMutex),
	}
}

// Begin starts a new transaction. Store implements usecase.TransactionManager.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		store:   s,
		locked:  make(map[string]bool),
		wallets: make(map[string]domain.Wallet),
	}, nil
}

func (s *Store) walletLock(id string) *sync.RWMutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) committedWallet(id string) (domain.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	return w, ok
}

// recordsLocked returns copies of the records with the given ids, ordered by (timestamp, id).
// Callers hold s.mu.
func (s *Store) recordsLocked(ids []string, keep func(*domain.TransactionRecord) bool) []*domain.TransactionRecord {
	out := make([]*domain.TransactionRecord, 0, len(ids))
	for _, id := range ids {
		r := s.records[id]
		if keep != nil && !keep(&r) {
			continue
		}
		out = append(out, &r)
	}
	domain.SortRecords(out)
	return out
}

type heldLock struct {
	mu     *sync.RWMutex
	shared bool
}

// Tx buffers writes until Commit.
type Tx struct {
	store   *Store
	held    []heldLock
	locked  map[string]bool // wallet id -> exclusive
	wallets map[string]domain.Wallet
	created []string
	records []domain.TransactionRecord
	events  []*domain.OutboxEvent
	done    bool
}

func asTx(s *Store, tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, errForeignTx
	}
	if t.done {
		return nil, errTxDone
	}
	return t, nil
}

// lock acquires the wallet's lock once per transaction.
func (t *Tx) lock(id string, shared bool) {
	if _, ok := t.locked[id]; ok {
		return
	}
	l := t.store.walletLock(id)
	if shared {
		l.RLock()
	} else {
		l.Lock()
	}
	t.held = append(t.held, heldLock{mu: l, shared: shared})
	t.locked[id] = !shared
}

func (t *Tx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		if t.held[i].shared {
			t.held[i].mu.RUnlock()
		} else {
			t.held[i].mu.Unlock()
		}
	}
	t.held = nil
}

// wallet returns the transaction's view of a wallet.
func (t *Tx) wallet(id string) (domain.Wallet, bool) {
	if w, ok := t.wallets[id]; ok {
		return w, true
	}
	return t.store.committedWallet(id)
}

// Commit applies buffered writes atomically and releases every lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range t.created {
		w := t.wallets[id]
		if _, ok := s.byAccount[w.AccountID]; ok {
			return domain.ErrWalletAlreadyExists
		}
		if _, ok := s.wallets[id]; ok {
			return errDuplicateID
		}
	}
	for _, r := range t.records {
		if _, ok := s.records[r.ID]; ok {
			return errDuplicateID
		}
	}

	for id, w := range t.wallets {
		s.wallets[id] = w
	}
	for _, id := range t.created {
		s.byAccount[t.wallets[id].AccountID] = id
	}
	for _, r := range t.records {
		s.records[r.ID] = r
		s.byWallet[r.WalletID] = append(s.byWallet[r.WalletID], r.ID)
		if r.RelatedWalletID != nil {
			s.byRelated[*r.RelatedWalletID] = append(s.byRelated[*r.RelatedWalletID], r.ID)
		}
	}
	for _, e := range t.events {
		s.outbox[e.ID] = e
	}

	return nil
}

// Rollback discards buffered writes and releases every lock. It is a no-op
// after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

// Repositories returns every repository backed by s.
func (s *Store) Repositories(idGen usecase.IDGenerator) usecase.Stores {
	return usecase.Stores{
		TxManager:    s,
		IDGen:        idGen,
		Retrier:      usecase.NoRetry,
		Wallets:      NewWalletRepository(s),
		Transactions: NewTransactionRepository(s),
		Ledger:       NewLedgerRepository(s),
		Outbox:       NewOutboxRepository(s),
	}
}

func sortedWalletIDs(wallets map[string]domain.Wallet) []string {
	ids := make([]string, 0, len(wallets))
	for id := range wallets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
