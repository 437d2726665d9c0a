package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/copebusiness/portal/internal/core/domain"
)

func openIntegrationStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStore_PurchaseTransaction(t *testing.T) {
	s := openIntegrationStore(t)
	repos := s.Repositories()
	ctx := context.Background()

	id := uuid.NewString()
	p := &domain.Profile{ID: id, Name: "Integration", Email: id + "@example.com", Role: domain.RoleClient, WalletBalance: domain.Dollars(100), CreatedAt: time.Now().UTC()}
	if err := repos.Profiles.Create(ctx, p); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	orderID := uuid.NewString()
	err := repos.Tx.Execute(ctx, func(ctx context.Context) error {
		if err := repos.Orders.Create(ctx, &domain.Order{ID: orderID, ClientID: id, ServiceID: 1, ServiceName: "SEO Optimization", Plan: domain.PlanBasic, Price: domain.Dollars(299), Status: domain.OrderPending, CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		_, err := repos.Profiles.Debit(ctx, id, domain.Dollars(299))
		return err
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := repos.Orders.FindByID(ctx, orderID, ""); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("order survived the rolled back debit: %v", err)
	}

	bal, err := repos.Profiles.Debit(ctx, id, domain.Dollars(40))
	if err != nil || bal != domain.Dollars(60) {
		t.Fatalf("debit: %s %v", bal, err)
	}
}
