package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
	"github.com/copebusiness/portal/internal/infrastructure/db/memory"
)

var discardLogger = zerolog.Nop()

var (
	adminActor  = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin, Name: "Admin User"}
	johnActor   = domain.Actor{ID: "client-john", Role: domain.RoleClient, Name: "John Davidson"}
	sarahActor  = domain.Actor{ID: "client-sarah", Role: domain.RoleClient, Name: "Sarah Miller"}
	fixedTime   = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	fixedNowFun = func() time.Time { return fixedTime }
)

// newRepos returns a memory store holding the admin and two clients.
func newRepos(t *testing.T) ports.Repositories {
	t.Helper()
	repos := memory.New().Repositories()
	ctx := context.Background()
	for _, p := range []*domain.Profile{
		{ID: adminActor.ID, Name: adminActor.Name, Email: "admin@copebusiness.com", Role: domain.RoleAdmin},
		{ID: johnActor.ID, Name: johnActor.Name, Email: "john@davidsoncorp.com", Role: domain.RoleClient, Company: "Davidson Corp", WalletBalance: domain.MoneyFromFloat(1250.50)},
		{ID: sarahActor.ID, Name: sarahActor.Name, Email: "sarah@millerindustries.com", Role: domain.RoleClient, WalletBalance: domain.MoneyFromFloat(850)},
	} {
		if err := repos.Profiles.Create(ctx, p); err != nil {
			t.Fatalf("seed profile %s: %v", p.ID, err)
		}
	}
	return repos
}

func seedOrder(t *testing.T, repos ports.Repositories, id, clientID string, progress int) *domain.Order {
	t.Helper()
	o := &domain.Order{
		ID:          id,
		ClientID:    clientID,
		ServiceID:   1,
		ServiceName: "SEO Optimization",
		Plan:        domain.PlanBasic,
		Price:       domain.Dollars(299),
		CreatedAt:   fixedTime,
	}
	if err := o.SetProgress(progress); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	if err := repos.Orders.Create(context.Background(), o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}
