package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/copebusiness/portal/internal/core/domain"
)

// WalletTransactionRepository appends ledger lines to wallet_transactions.
type WalletTransactionRepository struct {
	col *mongo.Collection
}

func NewWalletTransactionRepository(db *mongo.Database) *WalletTransactionRepository {
	return &WalletTransactionRepository{col: db.Collection(collectionTransactions)}
}

func (r *WalletTransactionRepository) Append(ctx context.Context, tx *domain.WalletTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

func (r *WalletTransactionRepository) List(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID}, sortedFind("date", limit))
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	return decodeAll[domain.WalletTransaction](ctx, cur)
}
