package postgres

import (
	"context"
	"fmt"

	"github.com/copebusiness/portal/internal/core/domain"
)

type WalletTransactionRepository struct {
	s *Store
}

func (r *WalletTransactionRepository) Append(ctx context.Context, tx *domain.WalletTransaction) error {
	const query = `
		INSERT INTO wallet_transactions (id, client_id, date, description, type, amount, balance_after, order_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.s.q(ctx).Exec(ctx, query,
		tx.ID, tx.ClientID, tx.Date, tx.Description, string(tx.Type),
		int64(tx.Amount), int64(tx.BalanceAfter), tx.OrderID)
	if err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

func (r *WalletTransactionRepository) List(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error) {
	query := `
		SELECT id, client_id, date, description, type, amount, balance_after, order_id
		FROM wallet_transactions
		WHERE client_id = $1
		ORDER BY date DESC` + limitClause(limit) + `;`
	rows, err := r.s.q(ctx).Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.WalletTransaction, 0)
	for rows.Next() {
		var (
			tx            domain.WalletTransaction
			txType        string
			amount, after int64
		)
		if err := rows.Scan(&tx.ID, &tx.ClientID, &tx.Date, &tx.Description, &txType, &amount, &after, &tx.OrderID); err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		tx.Type = domain.TransactionType(txType)
		tx.Amount = domain.Money(amount)
		tx.BalanceAfter = domain.Money(after)
		tx.Date = tx.Date.UTC()
		out = append(out, &tx)
	}
	return out, rows.Err()
}
