package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type InvoiceService struct {
	invoices ports.InvoiceRepository
	profiles ports.ProfileRepository
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.InvoiceService = (*InvoiceService)(nil)

func NewInvoiceService(invoices ports.InvoiceRepository, profiles ports.ProfileRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		profiles: profiles,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create issues a pending invoice to a client. Line totals and the invoice
// amount are computed from quantity and unit price; callers cannot set them.
func (s *InvoiceService) Create(ctx context.Context, actor domain.Actor, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	client, err := s.profiles.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if client.Role != domain.RoleClient {
		return nil, fmt.Errorf("create invoice: %w", domain.ErrProfileNotFound)
	}
	if in.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", domain.ErrValidation)
	}

	items := make([]domain.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	inv, err := domain.NewInvoice(newID(prefixInvoice), client.ID, s.now(), in.DueDate.UTC(), items)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	s.log.Info().Str("invoice_id", inv.ID).Str("client_id", client.ID).Str("amount", inv.Amount.String()).Msg("invoice created")
	return inv, nil
}

// MarkPaid settles an invoice. Paying a paid invoice is a no-op.
func (s *InvoiceService) MarkPaid(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	inv, err := s.invoices.MarkPaid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark invoice paid: %w", err)
	}
	return inv, nil
}

func (s *InvoiceService) List(ctx context.Context, actor domain.Actor, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
	if !actor.IsAdmin() {
		f.ClientID = actor.ID
	}
	f.Limit = clampLimit(f.Limit)
	return s.invoices.List(ctx, f)
}

func (s *InvoiceService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id, actor.Scope())
}
