package handler

import (
	"fmt"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// --- Request → Service input ---

func toInvoiceInput(req createInvoiceRequest) (ports.CreateInvoiceInput, error) {
	due, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		return ports.CreateInvoiceInput{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	items := make([]ports.LineItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.LineItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return ports.CreateInvoiceInput{ClientID: req.ClientID, DueDate: due.UTC(), Items: items}, nil
}

func toProfilePatch(req updateProfileRequest) domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:      req.Name,
		Company:   req.Company,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	}
}

// --- Service result → HTTP response ---

func toAuthResponse(r *ports.LoginResult) *authResponse {
	if r == nil {
		return nil
	}
	return &authResponse{Token: r.Token, ExpiresAt: r.ExpiresAt.UTC(), Session: r.Session}
}

func toClientDashboard(d *ports.ClientDashboard) clientDashboardResponse {
	return clientDashboardResponse{
		WalletBalance:   d.WalletBalance,
		ActiveOrders:    d.ActiveOrders,
		CompletedOrders: d.CompletedOrders,
		OpenTickets:     d.OpenTickets,
		RecentOrders:    nonNil(d.RecentOrders),
	}
}

func toAdminDashboard(d *ports.AdminDashboard) adminDashboardResponse {
	return adminDashboardResponse{
		TotalClients:    d.TotalClients,
		OpenTickets:     d.OpenTickets,
		PendingInvoices: d.PendingInvoices,
		ActiveOrders:    d.ActiveOrders,
		RecentTickets:   nonNil(d.RecentTickets),
		RecentInvoices:  nonNil(d.RecentInvoices),
	}
}

func toClientSummary(s *ports.ClientSummary) clientSummaryResponse {
	return clientSummaryResponse{
		Profile:       s.Profile,
		OrdersCount:   s.OrdersCount,
		TicketsCount:  s.TicketsCount,
		InvoicesCount: s.InvoicesCount,
		TotalSpent:    s.TotalSpent,
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
