package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const recentItems = 5

// DashboardService aggregates counts for the client and admin overviews.
// Independent queries run concurrently and are joined before returning.
type DashboardService struct {
	repos ports.Repositories
	log   zerolog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

func NewDashboardService(repos ports.Repositories, log zerolog.Logger) *DashboardService {
	return &DashboardService{repos: repos, log: log}
}

func (s *DashboardService) Client(ctx context.Context, clientID string) (*ports.ClientDashboard, error) {
	var d ports.ClientDashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.repos.Profiles.FindByID(ctx, clientID)
		if err != nil {
			return err
		}
		d.WalletBalance = p.WalletBalance
		return nil
	})
	g.Go(func() (err error) {
		d.ActiveOrders, err = s.repos.Orders.Count(ctx, ports.OrderFilter{ClientID: clientID, Statuses: domain.ActiveOrderStatuses})
		return err
	})
	g.Go(func() (err error) {
		d.CompletedOrders, err = s.repos.Orders.Count(ctx, ports.OrderFilter{ClientID: clientID, Statuses: []domain.OrderStatus{domain.OrderCompleted}})
		return err
	})
	g.Go(func() (err error) {
		d.OpenTickets, err = s.repos.Tickets.Count(ctx, ports.TicketFilter{ClientID: clientID, Status: domain.TicketOpen})
		return err
	})
	g.Go(func() (err error) {
		d.RecentOrders, err = s.repos.Orders.List(ctx, ports.OrderFilter{ClientID: clientID, Limit: recentItems})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("client dashboard: %w", err)
	}
	return &d, nil
}

func (s *DashboardService) Admin(ctx context.Context) (*ports.AdminDashboard, error) {
	var d ports.AdminDashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalClients, err = s.repos.Profiles.Count(ctx, domain.RoleClient)
		return err
	})
	g.Go(func() (err error) {
		d.OpenTickets, err = s.repos.Tickets.Count(ctx, ports.TicketFilter{Status: domain.TicketOpen})
		return err
	})
	g.Go(func() (err error) {
		d.PendingInvoices, err = s.repos.Invoices.Count(ctx, ports.InvoiceFilter{Status: domain.InvoicePending})
		return err
	})
	g.Go(func() (err error) {
		d.ActiveOrders, err = s.repos.Orders.Count(ctx, ports.OrderFilter{Statuses: domain.ActiveOrderStatuses})
		return err
	})
	g.Go(func() (err error) {
		d.RecentTickets, err = s.repos.Tickets.List(ctx, ports.TicketFilter{Limit: recentItems})
		return err
	})
	g.Go(func() (err error) {
		d.RecentInvoices, err = s.repos.Invoices.List(ctx, ports.InvoiceFilter{Limit: recentItems})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("admin dashboard: %w", err)
	}
	return &d, nil
}

func (s *DashboardService) Clients(ctx context.Context) ([]*domain.Profile, error) {
	return s.repos.Profiles.List(ctx, domain.RoleClient)
}

// ClientSummary returns one client's profile with order, ticket and invoice
// counts. TotalSpent is the sum of all invoice amounts.
func (s *DashboardService) ClientSummary(ctx context.Context, clientID string) (*ports.ClientSummary, error) {
	p, err := s.repos.Profiles.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleClient {
		return nil, domain.ErrProfileNotFound
	}

	sum := ports.ClientSummary{Profile: p}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sum.OrdersCount, err = s.repos.Orders.Count(ctx, ports.OrderFilter{ClientID: clientID})
		return err
	})
	g.Go(func() (err error) {
		sum.TicketsCount, err = s.repos.Tickets.Count(ctx, ports.TicketFilter{ClientID: clientID})
		return err
	})
	g.Go(func() (err error) {
		sum.InvoicesCount, err = s.repos.Invoices.Count(ctx, ports.InvoiceFilter{ClientID: clientID})
		return err
	})
	g.Go(func() (err error) {
		sum.TotalSpent, err = s.repos.Invoices.SumAmount(ctx, ports.InvoiceFilter{ClientID: clientID})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("client summary: %w", err)
	}
	return &sum, nil
}
