package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type stubInvoiceService struct {
	ports.InvoiceService
	createFn func(ctx context.Context, a domain.Actor, in ports.CreateInvoiceInput) (*domain.Invoice, error)
	listFn   func(ctx context.Context, a domain.Actor, f ports.InvoiceFilter) ([]*domain.Invoice, error)
}

func (s *stubInvoiceService) Create(ctx context.Context, a domain.Actor, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	return s.createFn(ctx, a, in)
}

func (s *stubInvoiceService) List(ctx context.Context, a domain.Actor, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
	return s.listFn(ctx, a, f)
}

type stubReportService struct {
	ports.ReportService
	sendFn func(ctx context.Context, a domain.Actor, id string) (*domain.Report, error)
}

func (s *stubReportService) Send(ctx context.Context, a domain.Actor, id string) (*domain.Report, error) {
	return s.sendFn(ctx, a, id)
}

const invoiceBody = `{
	"client_id": "client-john",
	"due_date": "2025-04-15",
	"line_items": [
		{"description": "SEO audit", "quantity": 1, "unit_price": 299},
		{"description": "Blog posts", "quantity": 3, "unit_price": "49.99"}
	]
}`

func TestInvoiceHandler_Create(t *testing.T) {
	stub := &stubInvoiceService{
		createFn: func(_ context.Context, _ domain.Actor, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
			if in.ClientID != "client-john" || len(in.Items) != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			if !in.DueDate.Equal(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected due date %v", in.DueDate)
			}
			if in.Items[1].UnitPrice != domain.MoneyFromFloat(49.99) {
				t.Fatalf("unit price not decoded: %s", in.Items[1].UnitPrice)
			}
			return &domain.Invoice{ID: "INV-1", ClientID: in.ClientID, Status: domain.InvoicePending}, nil
		},
	}
	h := NewInvoiceHandler(stub)
	c, rec := newContext(http.MethodPost, "/v1/admin/invoices", invoiceBody, adminProfile)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Create_Validation(t *testing.T) {
	h := NewInvoiceHandler(&stubInvoiceService{})

	for name, body := range map[string]string{
		"bad due date":  `{"client_id":"c","due_date":"15/04/2025","line_items":[{"description":"x","quantity":1,"unit_price":1}]}`,
		"no line items": `{"client_id":"c","due_date":"2025-04-15","line_items":[]}`,
		"negative quantity": `{"client_id":"c","due_date":"2025-04-15","line_items":[{"description":"x","quantity":-1,"unit_price":1}]}`,
		"huge quantity":     `{"client_id":"c","due_date":"2025-04-15","line_items":[{"description":"x","quantity":4611686018427387904,"unit_price":0.04}]}`,
		"huge unit price":   `{"client_id":"c","due_date":"2025-04-15","line_items":[{"description":"x","quantity":1,"unit_price":1000000.01}]}`,
	} {
		c, _ := newContext(http.MethodPost, "/v1/admin/invoices", body, adminProfile)
		if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestInvoiceHandler_List_StatusFilter(t *testing.T) {
	stub := &stubInvoiceService{
		listFn: func(_ context.Context, a domain.Actor, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
			if a.ID != johnProfile.ID || f.Status != domain.InvoicePaid || f.Limit != 5 {
				t.Fatalf("unexpected call %+v %+v", a, f)
			}
			return []*domain.Invoice{{ID: "INV-1", Status: domain.InvoicePaid}}, nil
		},
	}
	h := NewInvoiceHandler(stub)
	c, rec := newContext(http.MethodGet, "/v1/invoices?status=Paid&limit=5", "", johnProfile)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[listResponse[domain.Invoice]](t, rec); got.Count != 1 {
		t.Errorf("unexpected list %+v", got)
	}
}

func TestReportHandler_Send_Forbidden(t *testing.T) {
	stub := &stubReportService{
		sendFn: func(context.Context, domain.Actor, string) (*domain.Report, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewReportHandler(stub)
	c, _ := newContext(http.MethodPost, "/v1/admin/reports/RPT-1/send", "", johnProfile)
	c.SetParamNames("id")
	c.SetParamValues("RPT-1")

	if err := h.Send(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
