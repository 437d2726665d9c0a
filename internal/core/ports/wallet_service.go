package ports

import (
	"context"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

// PurchaseInput carries a client's plan purchase. IdempotencyKey is optional.
type PurchaseInput struct {
	ClientID       string
	ServiceID      int
	Plan           domain.Plan
	IdempotencyKey string
}

// PurchaseResult is returned after a purchase.
type PurchaseResult struct {
	Order   *domain.Order
	Balance domain.Money
	// Replayed is true when the Idempotency-Key matched an earlier purchase.
	Replayed bool
}

type AddFundsInput struct {
	ClientID      string
	Amount        domain.Money
	PaymentMethod domain.PaymentMethod
}

type WalletService interface {
	Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error)
	AddFunds(ctx context.Context, in AddFundsInput) (domain.Money, error)
	Balance(ctx context.Context, clientID string) (domain.Money, error)
	Transactions(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error)
}

// IdempotencyStore remembers purchase keys per client.
type IdempotencyStore interface {
	// Reserve claims key. When the key was already completed it returns the
	// stored order ID; when it is still being processed it returns
	// ErrPurchaseInProgress.
	Reserve(ctx context.Context, clientID, key string, ttl time.Duration) (orderID string, reserved bool, err error)
	Complete(ctx context.Context, clientID, key, orderID string, ttl time.Duration) error
	Release(ctx context.Context, clientID, key string) error
}
