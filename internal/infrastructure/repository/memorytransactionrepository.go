package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandpay-io/sandpay/internal/domain/transaction"
)

// MemoryTransactionRepository keeps transactions in process memory.
type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*transaction.Transaction
	byOrder      map[string][]string
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		transactions: make(map[string]*transaction.Transaction),
		byOrder:      make(map[string][]string),
	}
}

var _ transaction.Repository = (*MemoryTransactionRepository)(nil)

func (r *MemoryTransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[txn.ID()]; exists {
		return fmt.Errorf("transaction %s already exists", txn.ID())
	}
	r.transactions[txn.ID()] = txn
	r.byOrder[txn.OrderID()] = append(r.byOrder[txn.OrderID()], txn.ID())
	return nil
}

func (r *MemoryTransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, exists := r.transactions[id]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	return txn, nil
}

func (r *MemoryTransactionRepository) GetByOrderID(ctx context.Context, orderID string) ([]*transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOrder[orderID]
	txns := make([]*transaction.Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, r.transactions[id])
	}
	return txns, nil
}
