package transaction

import "context"

// Repository is the typed store boundary for transactions.
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByOrderID(ctx context.Context, orderID string) ([]*Transaction, error)
}
