package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type stubOrderService struct {
	ports.OrderService
	listFn     func(ctx context.Context, a domain.Actor, f ports.OrderFilter) ([]*domain.Order, error)
	progressFn func(ctx context.Context, a domain.Actor, id string, progress int) (*domain.Order, error)
}

func (s *stubOrderService) List(ctx context.Context, a domain.Actor, f ports.OrderFilter) ([]*domain.Order, error) {
	return s.listFn(ctx, a, f)
}

func (s *stubOrderService) UpdateProgress(ctx context.Context, a domain.Actor, id string, progress int) (*domain.Order, error) {
	return s.progressFn(ctx, a, id, progress)
}

type stubWalletService struct {
	ports.WalletService
	purchaseFn func(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error)
	addFundsFn func(ctx context.Context, in ports.AddFundsInput) (domain.Money, error)
	balanceFn  func(ctx context.Context, clientID string) (domain.Money, error)
}

func (s *stubWalletService) Purchase(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
	return s.purchaseFn(ctx, in)
}

func (s *stubWalletService) AddFunds(ctx context.Context, in ports.AddFundsInput) (domain.Money, error) {
	return s.addFundsFn(ctx, in)
}

func (s *stubWalletService) Balance(ctx context.Context, clientID string) (domain.Money, error) {
	return s.balanceFn(ctx, clientID)
}

func TestOrderHandler_Purchase_Created(t *testing.T) {
	wallet := &stubWalletService{
		purchaseFn: func(_ context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
			if in.ClientID != johnProfile.ID || in.ServiceID != 1 || in.Plan != domain.PlanBasic || in.IdempotencyKey != "abc" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.PurchaseResult{
				Order:   &domain.Order{ID: "ORD-1", ClientID: in.ClientID, Status: domain.OrderPending, Price: domain.Dollars(299)},
				Balance: domain.MoneyFromFloat(951.50),
			}, nil
		},
	}
	h := NewOrderHandler(&stubOrderService{}, wallet)
	c, rec := newContext(http.MethodPost, "/v1/orders", `{"service_id":1,"plan":"Basic"}`, johnProfile)
	c.Request().Header.Set("Idempotency-Key", "abc")

	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode[purchaseResponse](t, rec)
	if resp.Order == nil || resp.Order.ID != "ORD-1" || resp.Balance != domain.MoneyFromFloat(951.50) {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Purchase_ReplayedIsOK(t *testing.T) {
	wallet := &stubWalletService{
		purchaseFn: func(context.Context, ports.PurchaseInput) (*ports.PurchaseResult, error) {
			return &ports.PurchaseResult{Order: &domain.Order{ID: "ORD-1"}, Replayed: true}, nil
		},
	}
	h := NewOrderHandler(&stubOrderService{}, wallet)
	c, rec := newContext(http.MethodPost, "/v1/orders", `{"service_id":1,"plan":"Basic"}`, johnProfile)

	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Purchase_Errors(t *testing.T) {
	wallet := &stubWalletService{
		purchaseFn: func(context.Context, ports.PurchaseInput) (*ports.PurchaseResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}
	h := NewOrderHandler(&stubOrderService{}, wallet)

	c, _ := newContext(http.MethodPost, "/v1/orders", `{"service_id":4,"plan":"Premium"}`, johnProfile)
	if err := h.Purchase(c); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/v1/orders", `{"service_id":1,"plan":"Gold"}`, johnProfile)
	if err := h.Purchase(c); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown plan: expected ErrValidation, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/v1/orders", `{"service_id":1,"plan":"Basic"}`, nil)
	if err := h.Purchase(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
}

func TestOrderHandler_List_PassesFilter(t *testing.T) {
	orders := &stubOrderService{
		listFn: func(_ context.Context, a domain.Actor, f ports.OrderFilter) ([]*domain.Order, error) {
			if a.ID != johnProfile.ID {
				t.Fatalf("unexpected actor %+v", a)
			}
			if f.Limit != 100 || len(f.Statuses) != 1 || f.Statuses[0] != domain.OrderInProgress {
				t.Fatalf("unexpected filter %+v", f)
			}
			return nil, nil
		},
	}
	h := NewOrderHandler(orders, &stubWalletService{})
	c, rec := newContext(http.MethodGet, "/v1/orders?status=In+Progress&limit=500", "", johnProfile)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode[listResponse[domain.Order]](t, rec)
	if resp.Items == nil || resp.Count != 0 {
		t.Errorf("expected an empty items array, got %s", rec.Body.String())
	}
}

func TestOrderHandler_List_BadLimit(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{}, &stubWalletService{})
	c, _ := newContext(http.MethodGet, "/v1/orders?limit=-1", "", johnProfile)

	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderHandler_UpdateProgress(t *testing.T) {
	orders := &stubOrderService{
		progressFn: func(_ context.Context, a domain.Actor, id string, progress int) (*domain.Order, error) {
			if !a.IsAdmin() || id != "ORD-1" || progress != 0 {
				t.Fatalf("unexpected call: %+v %s %d", a, id, progress)
			}
			return &domain.Order{ID: id, Progress: progress, Status: domain.OrderPending}, nil
		},
	}
	h := NewOrderHandler(orders, &stubWalletService{})
	c, rec := newContext(http.MethodPatch, "/v1/admin/orders/ORD-1/progress", `{"progress":0}`, adminProfile)
	c.SetParamNames("id")
	c.SetParamValues("ORD-1")

	if err := h.UpdateProgress(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[domain.Order](t, rec); got.Status != domain.OrderPending {
		t.Errorf("unexpected order %+v", got)
	}
}

func TestOrderHandler_UpdateProgress_Validation(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{}, &stubWalletService{})

	for _, body := range []string{`{}`, `{"progress":101}`, `{"progress":-5}`} {
		c, _ := newContext(http.MethodPatch, "/v1/admin/orders/ORD-1/progress", body, adminProfile)
		c.SetParamNames("id")
		c.SetParamValues("ORD-1")
		if err := h.UpdateProgress(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("body %s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestCatalogHandler_List(t *testing.T) {
	h := NewCatalogHandler(domain.DefaultCatalog())
	c, rec := newContext(http.MethodGet, "/v1/services", "", nil)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode[listResponse[domain.Service]](t, rec)
	if resp.Count != 4 {
		t.Fatalf("expected 4 services, got %d", resp.Count)
	}
}

func TestWalletHandler_AddFunds(t *testing.T) {
	wallet := &stubWalletService{
		addFundsFn: func(_ context.Context, in ports.AddFundsInput) (domain.Money, error) {
			if in.Amount != domain.MoneyFromFloat(49.50) || in.PaymentMethod != domain.PaymentPayPal {
				t.Fatalf("unexpected input: %+v", in)
			}
			return domain.Dollars(1300), nil
		},
	}
	h := NewWalletHandler(wallet)
	c, rec := newContext(http.MethodPost, "/v1/wallet/funds", `{"amount":49.50,"payment_method":"paypal"}`, johnProfile)

	if err := h.AddFunds(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"wallet_balance\":1300.00}\n" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestWalletHandler_AddFunds_Validation(t *testing.T) {
	h := NewWalletHandler(&stubWalletService{})

	for name, body := range map[string]string{
		"zero amount":    `{"amount":0,"payment_method":"card"}`,
		"negative":       `{"amount":-10,"payment_method":"card"}`,
		"unknown method": `{"amount":10,"payment_method":"crypto"}`,
		"over the limit": `{"amount":1000000.01,"payment_method":"card"}`,
	} {
		c, _ := newContext(http.MethodPost, "/v1/wallet/funds", body, johnProfile)
		if err := h.AddFunds(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestWalletHandler_Balance(t *testing.T) {
	wallet := &stubWalletService{
		balanceFn: func(_ context.Context, clientID string) (domain.Money, error) {
			if clientID != johnProfile.ID {
				t.Fatalf("unexpected client %q", clientID)
			}
			return domain.MoneyFromFloat(1250.5), nil
		},
	}
	h := NewWalletHandler(wallet)
	c, rec := newContext(http.MethodGet, "/v1/wallet", "", johnProfile)

	if err := h.Balance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[walletResponse](t, rec); got.Balance != domain.MoneyFromFloat(1250.50) {
		t.Errorf("unexpected balance %s", got.Balance)
	}
}
