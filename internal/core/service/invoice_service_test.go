package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

func newInvoiceService(t *testing.T) (*InvoiceService, ports.Repositories) {
	t.Helper()
	repos := newRepos(t)
	svc := NewInvoiceService(repos.Invoices, repos.Profiles, discardLogger)
	svc.now = fixedNowFun
	return svc, repos
}

func invoiceInput(clientID string) ports.CreateInvoiceInput {
	return ports.CreateInvoiceInput{
		ClientID: clientID,
		DueDate:  fixedTime.Add(30 * 24 * time.Hour),
		Items: []ports.LineItemInput{
			{Description: "SEO audit", Quantity: 1, UnitPrice: domain.Dollars(299)},
			{Description: "Blog posts", Quantity: 3, UnitPrice: domain.MoneyFromFloat(49.99)},
		},
	}
}

func TestInvoiceService_Create_ComputesTotals(t *testing.T) {
	svc, _ := newInvoiceService(t)

	inv, err := svc.Create(context.Background(), adminActor, invoiceInput(johnActor.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.Status != domain.InvoicePending {
		t.Errorf("expected Pending, got %q", inv.Status)
	}
	if inv.LineItems[1].Total != domain.MoneyFromFloat(149.97) {
		t.Errorf("line total wrong: %s", inv.LineItems[1].Total)
	}
	if inv.Amount != domain.MoneyFromFloat(448.97) {
		t.Errorf("amount must equal sum of line totals, got %s", inv.Amount)
	}
	if !inv.Date.Equal(fixedTime) {
		t.Errorf("issue date should be now, got %v", inv.Date)
	}
}

func TestInvoiceService_Create_ZeroQuantityLine(t *testing.T) {
	svc, _ := newInvoiceService(t)

	in := invoiceInput(johnActor.ID)
	in.Items[0].Quantity = 0
	inv, err := svc.Create(context.Background(), adminActor, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.LineItems[0].Total != 0 || inv.Amount != domain.MoneyFromFloat(149.97) {
		t.Errorf("unexpected totals: line %s amount %s", inv.LineItems[0].Total, inv.Amount)
	}
}

func TestInvoiceService_Create_Rejections(t *testing.T) {
	svc, _ := newInvoiceService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, johnActor, invoiceInput(johnActor.ID)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client caller: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, invoiceInput("nobody")); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("unknown client: expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, invoiceInput(adminActor.ID)); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("admin as recipient: expected ErrProfileNotFound, got %v", err)
	}

	empty := invoiceInput(johnActor.ID)
	empty.Items = nil
	if _, err := svc.Create(ctx, adminActor, empty); !errors.Is(err, domain.ErrEmptyInvoice) {
		t.Errorf("no items: expected ErrEmptyInvoice, got %v", err)
	}

	bad := invoiceInput(johnActor.ID)
	bad.Items[0].Quantity = -1
	if _, err := svc.Create(ctx, adminActor, bad); !errors.Is(err, domain.ErrInvalidLineItem) {
		t.Errorf("negative quantity: expected ErrInvalidLineItem, got %v", err)
	}

	huge := invoiceInput(johnActor.ID)
	huge.Items[0] = ports.LineItemInput{Description: "Bulk", Quantity: 1 << 62, UnitPrice: 4}
	if _, err := svc.Create(ctx, adminActor, huge); !errors.Is(err, domain.ErrAmountTooLarge) {
		t.Errorf("overflowing line: expected ErrAmountTooLarge, got %v", err)
	}

	noDue := invoiceInput(johnActor.ID)
	noDue.DueDate = time.Time{}
	if _, err := svc.Create(ctx, adminActor, noDue); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing due date: expected ErrValidation, got %v", err)
	}
}

func TestInvoiceService_MarkPaid_Idempotent(t *testing.T) {
	svc, _ := newInvoiceService(t)
	ctx := context.Background()
	inv, err := svc.Create(ctx, adminActor, invoiceInput(johnActor.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		paid, err := svc.MarkPaid(ctx, adminActor, inv.ID)
		if err != nil {
			t.Fatalf("mark paid #%d: %v", i+1, err)
		}
		if paid.Status != domain.InvoicePaid || paid.Amount != inv.Amount {
			t.Errorf("mark paid #%d: unexpected invoice %+v", i+1, paid)
		}
	}

	if _, err := svc.MarkPaid(ctx, johnActor, inv.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.MarkPaid(ctx, adminActor, "INV-MISSING"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("missing: expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceService_ListAndGet_Scoped(t *testing.T) {
	svc, _ := newInvoiceService(t)
	ctx := context.Background()
	johns, err := svc.Create(ctx, adminActor, invoiceInput(johnActor.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, invoiceInput(sarahActor.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.List(ctx, johnActor, ports.InvoiceFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != johns.ID {
		t.Errorf("client list not scoped: %+v", mine)
	}

	all, _ := svc.List(ctx, adminActor, ports.InvoiceFilter{Status: domain.InvoicePending})
	if len(all) != 2 {
		t.Errorf("expected 2 pending invoices, got %d", len(all))
	}

	if _, err := svc.Get(ctx, sarahActor, johns.ID); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("cross-client get: expected ErrInvoiceNotFound, got %v", err)
	}
}
