package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
	"github.com/copebusiness/portal/internal/infrastructure/db/memory"
)

type stubSessionCache struct {
	mu       sync.Mutex
	balances map[string]domain.Money
}

func (s *stubSessionCache) MergeBalance(userID string, balance domain.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances == nil {
		s.balances = make(map[string]domain.Money)
	}
	s.balances[userID] = balance
}

type failingLedger struct {
	ports.WalletTransactionRepository
	err error
}

func (f failingLedger) Append(context.Context, *domain.WalletTransaction) error {
	return f.err
}

func newWalletService(t *testing.T) (*WalletService, ports.Repositories, *stubSessionCache) {
	t.Helper()
	repos := newRepos(t)
	cache := &stubSessionCache{}
	svc := NewWalletService(WalletDeps{
		Profiles:    repos.Profiles,
		Orders:      repos.Orders,
		Ledger:      repos.Wallet,
		Tx:          repos.Tx,
		Idempotency: memory.NewTokenStore(),
		Sessions:    cache,
	}, discardLogger)
	svc.now = fixedNowFun
	return svc, repos, cache
}

func balanceOf(t *testing.T, repos ports.Repositories, id string) domain.Money {
	t.Helper()
	p, err := repos.Profiles.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find profile: %v", err)
	}
	return p.WalletBalance
}

// ---------------------------------------------------------------------------
// Purchase
// ---------------------------------------------------------------------------

func TestWalletService_Purchase_DebitsAndRecords(t *testing.T) {
	svc, repos, cache := newWalletService(t)
	ctx := context.Background()

	res, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: johnActor.ID, ServiceID: 1, Plan: domain.PlanBasic})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.MoneyFromFloat(951.50)
	if res.Balance != want {
		t.Errorf("expected balance %s, got %s", want, res.Balance)
	}
	if got := balanceOf(t, repos, johnActor.ID); got != want {
		t.Errorf("stored balance %s, want %s", got, want)
	}
	if cache.balances[johnActor.ID] != want {
		t.Errorf("session cache not refreshed: %v", cache.balances)
	}

	o := res.Order
	if o.Status != domain.OrderPending || o.Progress != 0 {
		t.Errorf("new order must be Pending at 0%%, got %q %d", o.Status, o.Progress)
	}
	if o.Price != domain.Dollars(299) || o.ServiceName != "SEO Optimization" {
		t.Errorf("order must carry catalog price and name: %+v", o)
	}

	txs, err := svc.Transactions(ctx, johnActor.ID, 0)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 ledger line, got %d", len(txs))
	}
	line := txs[0]
	if line.Type != domain.TxOrderDeduction || line.Amount != -domain.Dollars(299) || line.BalanceAfter != want {
		t.Errorf("unexpected ledger line: %+v", line)
	}
	if line.OrderID != o.ID {
		t.Errorf("ledger line must reference order %s, got %s", o.ID, line.OrderID)
	}
	if line.Description != "SEO Optimization - Basic Plan" {
		t.Errorf("unexpected description %q", line.Description)
	}
}

func TestWalletService_Purchase_InsufficientFunds(t *testing.T) {
	svc, repos, _ := newWalletService(t)
	ctx := context.Background()
	before := balanceOf(t, repos, sarahActor.ID)

	_, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: sarahActor.ID, ServiceID: 4, Plan: domain.PlanBasic})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := balanceOf(t, repos, sarahActor.ID); got != before {
		t.Errorf("balance changed on failed purchase: %s -> %s", before, got)
	}
	if n, _ := repos.Orders.Count(ctx, ports.OrderFilter{ClientID: sarahActor.ID}); n != 0 {
		t.Errorf("expected no orders, got %d", n)
	}
}

func TestWalletService_Purchase_UnknownCatalogEntry(t *testing.T) {
	svc, _, _ := newWalletService(t)
	ctx := context.Background()

	if _, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: johnActor.ID, ServiceID: 99, Plan: domain.PlanBasic}); !errors.Is(err, domain.ErrUnknownService) {
		t.Errorf("expected ErrUnknownService, got %v", err)
	}
	if _, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: johnActor.ID, ServiceID: 1, Plan: "Gold"}); !errors.Is(err, domain.ErrUnknownPlan) {
		t.Errorf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestWalletService_Purchase_RollsBackOnLedgerFailure(t *testing.T) {
	repos := newRepos(t)
	boom := errors.New("ledger unavailable")
	svc := NewWalletService(WalletDeps{
		Profiles: repos.Profiles,
		Orders:   repos.Orders,
		Ledger:   failingLedger{err: boom},
		Tx:       repos.Tx,
	}, discardLogger)
	ctx := context.Background()
	before := balanceOf(t, repos, johnActor.ID)

	_, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: johnActor.ID, ServiceID: 2, Plan: domain.PlanBasic})
	if !errors.Is(err, boom) {
		t.Fatalf("expected ledger error, got %v", err)
	}
	if got := balanceOf(t, repos, johnActor.ID); got != before {
		t.Errorf("debit not rolled back: %s -> %s", before, got)
	}
	if n, _ := repos.Orders.Count(ctx, ports.OrderFilter{}); n != 0 {
		t.Errorf("order not rolled back, %d stored", n)
	}
}

func TestWalletService_Purchase_IdempotentReplay(t *testing.T) {
	svc, repos, _ := newWalletService(t)
	ctx := context.Background()
	in := ports.PurchaseInput{ClientID: johnActor.ID, ServiceID: 2, Plan: domain.PlanStandard, IdempotencyKey: "key-1"}

	first, err := svc.Purchase(ctx, in)
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	second, err := svc.Purchase(ctx, in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if !second.Replayed || first.Replayed {
		t.Errorf("replay flags wrong: first=%v second=%v", first.Replayed, second.Replayed)
	}
	if second.Order.ID != first.Order.ID {
		t.Errorf("replay returned a different order: %s vs %s", second.Order.ID, first.Order.ID)
	}
	if second.Balance != first.Balance {
		t.Errorf("replay must not debit again: %s vs %s", second.Balance, first.Balance)
	}
	if n, _ := repos.Orders.Count(ctx, ports.OrderFilter{ClientID: johnActor.ID}); n != 1 {
		t.Errorf("expected 1 order, got %d", n)
	}
}

func TestWalletService_Purchase_FailedAttemptReleasesKey(t *testing.T) {
	svc, _, _ := newWalletService(t)
	ctx := context.Background()
	in := ports.PurchaseInput{ClientID: sarahActor.ID, ServiceID: 4, Plan: domain.PlanBasic, IdempotencyKey: "key-2"}

	if _, err := svc.Purchase(ctx, in); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: sarahActor.ID, Amount: domain.Dollars(500), PaymentMethod: domain.PaymentCard}); err != nil {
		t.Fatalf("add funds: %v", err)
	}

	res, err := svc.Purchase(ctx, in)
	if err != nil {
		t.Fatalf("retry with same key after top-up: %v", err)
	}
	if res.Replayed {
		t.Error("a failed attempt must not be replayed")
	}
}

func TestWalletService_Purchase_ConcurrentNeverOverdraws(t *testing.T) {
	svc, repos, _ := newWalletService(t)
	ctx := context.Background()

	// Sarah holds 850.00; each Standard SEO plan costs 599.00.
	const attempts = 5
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: sarahActor.ID, ServiceID: 1, Plan: domain.PlanStandard})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, domain.ErrInsufficientFunds):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly one purchase, got %d", succeeded)
	}
	if got := balanceOf(t, repos, sarahActor.ID); got != domain.Dollars(251) {
		t.Errorf("expected balance 251.00, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// AddFunds
// ---------------------------------------------------------------------------

func TestWalletService_AddFunds(t *testing.T) {
	svc, repos, cache := newWalletService(t)
	ctx := context.Background()

	bal, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: johnActor.ID, Amount: domain.MoneyFromFloat(49.50), PaymentMethod: domain.PaymentPayPal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Dollars(1300)
	if bal != want || balanceOf(t, repos, johnActor.ID) != want {
		t.Errorf("expected balance %s, got %s", want, bal)
	}
	if cache.balances[johnActor.ID] != want {
		t.Error("session cache not refreshed")
	}

	txs, _ := svc.Transactions(ctx, johnActor.ID, 10)
	if len(txs) != 1 || txs[0].Type != domain.TxPayment || txs[0].Description != "Wallet Top-up (PayPal)" {
		t.Errorf("unexpected ledger: %+v", txs)
	}
}

func TestWalletService_AddFunds_Rejections(t *testing.T) {
	svc, repos, _ := newWalletService(t)
	ctx := context.Background()
	before := balanceOf(t, repos, johnActor.ID)

	for _, amt := range []domain.Money{0, -100} {
		if _, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: johnActor.ID, Amount: amt, PaymentMethod: domain.PaymentCard}); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amt, err)
		}
	}
	if _, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: johnActor.ID, Amount: 100, PaymentMethod: "crypto"}); !errors.Is(err, domain.ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}
	if got := balanceOf(t, repos, johnActor.ID); got != before {
		t.Errorf("balance changed: %s -> %s", before, got)
	}
}

func TestWalletService_Purchase_BalanceTable(t *testing.T) {
	catalog := append(domain.DefaultCatalog(), domain.Service{
		ID:    9,
		Name:  "Email Campaign",
		Plans: []domain.PlanOffer{{Tier: domain.PlanBasic, Price: domain.Dollars(150)}},
	})

	tests := []struct {
		name      string
		balance   domain.Money
		serviceID int
		want      domain.Money
		err       error
	}{
		{"short balance", domain.Dollars(100), 9, domain.Dollars(100), domain.ErrInsufficientFunds},
		{"social media basic", domain.Dollars(500), 3, domain.Dollars(301), nil},
		{"exact balance", domain.Dollars(150), 9, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repos := memory.New().Repositories()
			if err := repos.Profiles.Create(ctx, &domain.Profile{ID: "buyer", Role: domain.RoleClient, WalletBalance: tt.balance}); err != nil {
				t.Fatalf("seed: %v", err)
			}
			svc := NewWalletService(WalletDeps{
				Profiles:    repos.Profiles,
				Orders:      repos.Orders,
				Ledger:      repos.Wallet,
				Tx:          repos.Tx,
				Idempotency: memory.NewTokenStore(),
				Catalog:     catalog,
			}, discardLogger)

			_, err := svc.Purchase(ctx, ports.PurchaseInput{ClientID: "buyer", ServiceID: tt.serviceID, Plan: domain.PlanBasic})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if got := balanceOf(t, repos, "buyer"); got != tt.want {
				t.Errorf("expected balance %s, got %s", tt.want, got)
			}
			wantOrders := int64(1)
			if tt.err != nil {
				wantOrders = 0
			}
			if n, _ := repos.Orders.Count(ctx, ports.OrderFilter{ClientID: "buyer"}); n != wantOrders {
				t.Errorf("expected %d orders, got %d", wantOrders, n)
			}
		})
	}
}

func TestWalletService_AddFunds_UpperBound(t *testing.T) {
	svc, repos, _ := newWalletService(t)
	ctx := context.Background()
	before := balanceOf(t, repos, johnActor.ID)

	for _, amt := range []domain.Money{domain.MaxTopUp + 1, 1 << 62} {
		if _, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: johnActor.ID, Amount: amt, PaymentMethod: domain.PaymentCard}); !errors.Is(err, domain.ErrAmountTooLarge) {
			t.Errorf("amount %s: expected ErrAmountTooLarge, got %v", amt, err)
		}
	}
	if got := balanceOf(t, repos, johnActor.ID); got != before {
		t.Errorf("balance changed: %s -> %s", before, got)
	}

	bal, err := svc.AddFunds(ctx, ports.AddFundsInput{ClientID: johnActor.ID, Amount: domain.MaxTopUp, PaymentMethod: domain.PaymentCard})
	if err != nil || bal != before+domain.MaxTopUp {
		t.Fatalf("top-up at the limit: %s %v", bal, err)
	}
}
