package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type failingTicketRepo struct {
	ports.TicketRepository
	err error
}

func (f failingTicketRepo) Count(context.Context, ports.TicketFilter) (int64, error) {
	return 0, f.err
}

func (f failingTicketRepo) List(context.Context, ports.TicketFilter) ([]*domain.Ticket, error) {
	return nil, f.err
}

func TestDashboardService_Client(t *testing.T) {
	repos := newRepos(t)
	for i := 0; i <= 5; i++ {
		seedOrder(t, repos, fmt.Sprintf("ORD-%d", i), johnActor.ID, i*20)
	}
	seedOrder(t, repos, "ORD-SARAH", sarahActor.ID, 0)
	tickets := NewTicketService(repos.Tickets, discardLogger)
	if _, err := tickets.Create(context.Background(), johnActor, ports.CreateTicketInput{Subject: "Help", Message: "Please"}); err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	svc := NewDashboardService(repos, discardLogger)

	d, err := svc.Client(context.Background(), johnActor.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Progress 0 through 80 is active, 100 is completed.
	if d.WalletBalance != domain.MoneyFromFloat(1250.50) {
		t.Errorf("unexpected balance %s", d.WalletBalance)
	}
	if d.ActiveOrders != 5 {
		t.Errorf("expected 5 active orders, got %d", d.ActiveOrders)
	}
	if d.CompletedOrders != 1 {
		t.Errorf("expected 1 completed order, got %d", d.CompletedOrders)
	}
	if d.OpenTickets != 1 {
		t.Errorf("expected 1 open ticket, got %d", d.OpenTickets)
	}
	if len(d.RecentOrders) != recentItems {
		t.Errorf("expected %d recent orders, got %d", recentItems, len(d.RecentOrders))
	}
}

func TestDashboardService_Admin(t *testing.T) {
	repos := newRepos(t)
	seedOrder(t, repos, "ORD-1", johnActor.ID, 10)
	seedOrder(t, repos, "ORD-2", sarahActor.ID, 100)
	invoices := NewInvoiceService(repos.Invoices, repos.Profiles, discardLogger)
	if _, err := invoices.Create(context.Background(), adminActor, invoiceInput(johnActor.ID)); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	svc := NewDashboardService(repos, discardLogger)

	d, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalClients != 2 {
		t.Errorf("expected 2 clients, got %d", d.TotalClients)
	}
	if d.ActiveOrders != 1 {
		t.Errorf("expected 1 active order, got %d", d.ActiveOrders)
	}
	if d.PendingInvoices != 1 || len(d.RecentInvoices) != 1 {
		t.Errorf("expected 1 pending invoice, got %d (%d recent)", d.PendingInvoices, len(d.RecentInvoices))
	}
	if d.OpenTickets != 0 || len(d.RecentTickets) != 0 {
		t.Errorf("expected no tickets, got %d", d.OpenTickets)
	}
}

func TestDashboardService_Admin_PropagatesErrors(t *testing.T) {
	repos := newRepos(t)
	boom := errors.New("tickets offline")
	repos.Tickets = failingTicketRepo{err: boom}
	svc := NewDashboardService(repos, discardLogger)

	if _, err := svc.Admin(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected ticket error, got %v", err)
	}
}

func TestDashboardService_ClientSummary(t *testing.T) {
	repos := newRepos(t)
	invoices := NewInvoiceService(repos.Invoices, repos.Profiles, discardLogger)
	for i := 0; i < 2; i++ {
		if _, err := invoices.Create(context.Background(), adminActor, invoiceInput(johnActor.ID)); err != nil {
			t.Fatalf("create invoice: %v", err)
		}
	}
	seedOrder(t, repos, "ORD-1", johnActor.ID, 0)
	svc := NewDashboardService(repos, discardLogger)

	s, err := svc.ClientSummary(context.Background(), johnActor.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Profile.Company != "Davidson Corp" {
		t.Errorf("unexpected profile %+v", s.Profile)
	}
	if s.OrdersCount != 1 || s.InvoicesCount != 2 || s.TicketsCount != 0 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.TotalSpent != domain.MoneyFromFloat(897.94) {
		t.Errorf("expected total 897.94, got %s", s.TotalSpent)
	}

	if _, err := svc.ClientSummary(context.Background(), adminActor.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("admin profile: expected ErrProfileNotFound, got %v", err)
	}
}

func TestDashboardService_Clients_OnlyClients(t *testing.T) {
	repos := newRepos(t)
	svc := NewDashboardService(repos, discardLogger)

	clients, err := svc.Clients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	for _, c := range clients {
		if c.Role != domain.RoleClient {
			t.Errorf("non-client listed: %s", c.ID)
		}
	}
}
