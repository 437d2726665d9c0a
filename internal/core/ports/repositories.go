package ports

import (
	"context"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

// Repository lookups take a clientID filter: empty means no filter (admin),
// non-empty scopes the query to that client.

// OrderFilter selects orders, newest first.
type OrderFilter struct {
	ClientID string
	Statuses []domain.OrderStatus // optional: any of
	Limit    int                  // 0 = no limit
}

// InvoiceFilter selects invoices, newest first.
type InvoiceFilter struct {
	ClientID string
	Status   domain.InvoiceStatus // optional
	Limit    int
}

// ReportFilter selects reports, newest first.
type ReportFilter struct {
	ClientID string
	Status   domain.ReportStatus // optional
	Limit    int
}

// TicketFilter selects tickets, most recently updated first.
type TicketFilter struct {
	ClientID string
	Status   domain.TicketStatus // optional
	Limit    int
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error)
	List(ctx context.Context, role domain.Role) ([]*domain.Profile, error)
	Count(ctx context.Context, role domain.Role) (int64, error)
	// Debit subtracts amount only when the balance covers it and returns the
	// new balance. A balance that would go negative yields ErrInsufficientFunds
	// and leaves the row untouched.
	Debit(ctx context.Context, id string, amount domain.Money) (domain.Money, error)
	Credit(ctx context.Context, id string, amount domain.Money) (domain.Money, error)
}

// CredentialRepository persists auth identities (auth_users).
type CredentialRepository interface {
	Create(ctx context.Context, c *domain.Credential) error
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
	SetPassword(ctx context.Context, id, hash string, at time.Time) error
	Confirm(ctx context.Context, id string, at time.Time) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id, clientID string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*domain.Order, error)
	Count(ctx context.Context, f OrderFilter) (int64, error)
	UpdateProgress(ctx context.Context, id string, progress int, status domain.OrderStatus) (*domain.Order, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id, clientID string) (*domain.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*domain.Invoice, error)
	Count(ctx context.Context, f InvoiceFilter) (int64, error)
	SumAmount(ctx context.Context, f InvoiceFilter) (domain.Money, error)
	// MarkPaid sets the invoice to Paid; paying a paid invoice is a no-op.
	MarkPaid(ctx context.Context, id string) (*domain.Invoice, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	FindByID(ctx context.Context, id, clientID string) (*domain.Report, error)
	List(ctx context.Context, f ReportFilter) ([]*domain.Report, error)
	// MarkSent moves a Draft to Sent; a Sent report is returned unchanged.
	MarkSent(ctx context.Context, id string) (*domain.Report, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	FindByID(ctx context.Context, id, clientID string) (*domain.Ticket, error)
	List(ctx context.Context, f TicketFilter) ([]*domain.Ticket, error)
	Count(ctx context.Context, f TicketFilter) (int64, error)
	// AppendMessage appends msg and sets last_updated to its timestamp. With
	// requireOpen the append only applies while the ticket is Open, otherwise
	// ErrTicketResolved is returned and nothing changes.
	AppendMessage(ctx context.Context, id string, msg domain.Message, requireOpen bool) (*domain.Ticket, error)
	// UpdateStatus moves the ticket from one status to another. If the stored
	// status is no longer from, ErrInvalidTransition is returned.
	UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, at time.Time) (*domain.Ticket, error)
}

// WalletTransactionRepository is the append-only wallet ledger.
type WalletTransactionRepository interface {
	Append(ctx context.Context, tx *domain.WalletTransaction) error
	List(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error)
}

// TransactionManager runs fn atomically. Repository calls made with the ctx
// handed to fn join the transaction; any error rolls everything back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories bundles one storage backend.
type Repositories struct {
	Profiles    ProfileRepository
	Credentials CredentialRepository
	Orders      OrderRepository
	Invoices    InvoiceRepository
	Reports     ReportRepository
	Tickets     TicketRepository
	Wallet      WalletTransactionRepository
	Tx          TransactionManager
}
