package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const (
	idempotencyTTL      = 24 * time.Hour
	defaultHistoryLimit = 50
)

// WalletDeps groups the collaborators of WalletService.
type WalletDeps struct {
	Profiles    ports.ProfileRepository
	Orders      ports.OrderRepository
	Ledger      ports.WalletTransactionRepository
	Tx          ports.TransactionManager
	Idempotency ports.IdempotencyStore
	Sessions    ports.SessionCache
	Catalog     domain.Catalog
}

type WalletService struct {
	deps WalletDeps
	log  zerolog.Logger
	now  func() time.Time
}

var _ ports.WalletService = (*WalletService)(nil)

func NewWalletService(deps WalletDeps, log zerolog.Logger) *WalletService {
	if deps.Catalog == nil {
		deps.Catalog = domain.DefaultCatalog()
	}
	return &WalletService{deps: deps, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Purchase buys a catalog plan. The balance is checked up front; order
// creation, the conditional debit and the ledger line then commit together.
// A repeated Idempotency-Key returns the original order without side effects.
func (s *WalletService) Purchase(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
	svc, offer, err := s.deps.Catalog.Lookup(in.ServiceID, in.Plan)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey == "" || s.deps.Idempotency == nil {
		return s.purchase(ctx, in.ClientID, svc, offer)
	}

	orderID, reserved, err := s.deps.Idempotency.Reserve(ctx, in.ClientID, in.IdempotencyKey, idempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if !reserved {
		order, err := s.deps.Orders.FindByID(ctx, orderID, in.ClientID)
		if err != nil {
			return nil, fmt.Errorf("purchase replay: %w", err)
		}
		balance, err := s.Balance(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("order_id", order.ID).Msg("idempotent replay")
		return &ports.PurchaseResult{Order: order, Balance: balance, Replayed: true}, nil
	}

	res, err := s.purchase(ctx, in.ClientID, svc, offer)
	if err != nil {
		if rerr := s.deps.Idempotency.Release(ctx, in.ClientID, in.IdempotencyKey); rerr != nil {
			s.log.Warn().Err(rerr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
		}
		return nil, err
	}
	if cerr := s.deps.Idempotency.Complete(ctx, in.ClientID, in.IdempotencyKey, res.Order.ID, idempotencyTTL); cerr != nil {
		s.log.Warn().Err(cerr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to record idempotency key")
	}
	return res, nil
}

func (s *WalletService) purchase(ctx context.Context, clientID string, svc domain.Service, offer domain.PlanOffer) (*ports.PurchaseResult, error) {
	profile, err := s.deps.Profiles.FindByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if profile.WalletBalance < offer.Price {
		return nil, domain.ErrInsufficientFunds
	}

	now := s.now()
	order := &domain.Order{
		ID:          newID(prefixOrder),
		ClientID:    clientID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Plan:        offer.Tier,
		Price:       offer.Price,
		Status:      domain.OrderPending,
		Progress:    0,
		CreatedAt:   now,
	}

	var balance domain.Money
	err = s.deps.Tx.Execute(ctx, func(ctx context.Context) error {
		if err := s.deps.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		bal, err := s.deps.Profiles.Debit(ctx, clientID, offer.Price)
		if err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
		balance = bal
		entry := &domain.WalletTransaction{
			ID:           newID(prefixTransaction),
			ClientID:     clientID,
			Date:         now,
			Description:  fmt.Sprintf("%s - %s Plan", svc.Name, offer.Tier),
			Type:         domain.TxOrderDeduction,
			Amount:       -offer.Price,
			BalanceAfter: bal,
			OrderID:      order.ID,
		}
		if err := s.deps.Ledger.Append(ctx, entry); err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", clientID).Str("service", svc.Name).Msg("purchase rolled back")
		return nil, fmt.Errorf("purchase: %w", err)
	}

	if s.deps.Sessions != nil {
		s.deps.Sessions.MergeBalance(clientID, balance)
	}
	s.log.Info().
		Str("order_id", order.ID).
		Str("client_id", clientID).
		Str("price", offer.Price.String()).
		Msg("order created")

	return &ports.PurchaseResult{Order: order, Balance: balance}, nil
}

// AddFunds credits the wallet. Credits are always additive.
func (s *WalletService) AddFunds(ctx context.Context, in ports.AddFundsInput) (domain.Money, error) {
	if in.Amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if in.Amount > domain.MaxTopUp {
		return 0, domain.ErrAmountTooLarge
	}
	if !in.PaymentMethod.Valid() {
		return 0, domain.ErrInvalidPaymentMethod
	}

	var balance domain.Money
	err := s.deps.Tx.Execute(ctx, func(ctx context.Context) error {
		bal, err := s.deps.Profiles.Credit(ctx, in.ClientID, in.Amount)
		if err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}
		balance = bal
		entry := &domain.WalletTransaction{
			ID:           newID(prefixTransaction),
			ClientID:     in.ClientID,
			Date:         s.now(),
			Description:  "Wallet Top-up (" + paymentLabel(in.PaymentMethod) + ")",
			Type:         domain.TxPayment,
			Amount:       in.Amount,
			BalanceAfter: bal,
		}
		return s.deps.Ledger.Append(ctx, entry)
	})
	if err != nil {
		return 0, fmt.Errorf("add funds: %w", err)
	}

	if s.deps.Sessions != nil {
		s.deps.Sessions.MergeBalance(in.ClientID, balance)
	}
	s.log.Info().Str("client_id", in.ClientID).Str("amount", in.Amount.String()).Msg("wallet credited")
	return balance, nil
}

func (s *WalletService) Balance(ctx context.Context, clientID string) (domain.Money, error) {
	p, err := s.deps.Profiles.FindByID(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return p.WalletBalance, nil
}

func (s *WalletService) Transactions(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}
	return s.deps.Ledger.List(ctx, clientID, limit)
}

func paymentLabel(m domain.PaymentMethod) string {
	if m == domain.PaymentPayPal {
		return "PayPal"
	}
	return "Card"
}
