package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sandpay-io/sandpay/internal/domain/transaction"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/mappers"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/models"
)

// TransactionRepository is the gorm-backed transaction store.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	model := mappers.TransactionToModel(txn)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", id).
		First(&model).Error; err != nil {
		return nil, fmt.Errorf("transaction %s not found: %w", id, err)
	}
	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) GetByOrderID(ctx context.Context, orderID string) ([]*transaction.Transaction, error) {
	var found []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC").
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to query transactions for order %s: %w", orderID, err)
	}

	txns := make([]*transaction.Transaction, 0, len(found))
	for i := range found {
		txn, err := mappers.TransactionToDomain(&found[i])
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
