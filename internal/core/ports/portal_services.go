package ports

import (
	"context"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

type OrderService interface {
	List(ctx context.Context, actor domain.Actor, f OrderFilter) ([]*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	UpdateProgress(ctx context.Context, actor domain.Actor, id string, progress int) (*domain.Order, error)
}

// LineItemInput is an admin-entered invoice line; totals are computed.
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   domain.Money
}

type CreateInvoiceInput struct {
	ClientID string
	DueDate  time.Time
	Items    []LineItemInput
}

type InvoiceService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateInvoiceInput) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error)
	List(ctx context.Context, actor domain.Actor, f InvoiceFilter) ([]*domain.Invoice, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error)
}

type CreateReportInput struct {
	ClientID string
	Title    string
	Content  string
}

type ReportService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateReportInput) (*domain.Report, error)
	Send(ctx context.Context, actor domain.Actor, id string) (*domain.Report, error)
	List(ctx context.Context, actor domain.Actor, f ReportFilter) ([]*domain.Report, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Report, error)
}

type CreateTicketInput struct {
	Subject  string
	Priority domain.TicketPriority
	Message  string
}

type TicketService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateTicketInput) (*domain.Ticket, error)
	Reply(ctx context.Context, actor domain.Actor, id, message string) (*domain.Ticket, error)
	SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.TicketStatus) (*domain.Ticket, error)
	List(ctx context.Context, actor domain.Actor, f TicketFilter) ([]*domain.Ticket, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Ticket, error)
}

type ClientDashboard struct {
	WalletBalance   domain.Money
	ActiveOrders    int64
	CompletedOrders int64
	OpenTickets     int64
	RecentOrders    []*domain.Order
}

type AdminDashboard struct {
	TotalClients    int64
	OpenTickets     int64
	PendingInvoices int64
	ActiveOrders    int64
	RecentTickets   []*domain.Ticket
	RecentInvoices  []*domain.Invoice
}

// ClientSummary is the admin view of one client.
type ClientSummary struct {
	Profile       *domain.Profile
	OrdersCount   int64
	TicketsCount  int64
	InvoicesCount int64
	TotalSpent    domain.Money
}

type DashboardService interface {
	Client(ctx context.Context, clientID string) (*ClientDashboard, error)
	Admin(ctx context.Context) (*AdminDashboard, error)
	Clients(ctx context.Context) ([]*domain.Profile, error)
	ClientSummary(ctx context.Context, clientID string) (*ClientSummary, error)
}
