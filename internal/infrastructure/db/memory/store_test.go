package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

func seedClient(t *testing.T, repos ports.Repositories, id string, balance domain.Money) {
	t.Helper()
	p := &domain.Profile{ID: id, Name: "Client " + id, Email: id + "@example.com", Role: domain.RoleClient, WalletBalance: balance}
	if err := repos.Profiles.Create(context.Background(), p); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestStore_ExecuteRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	seedClient(t, repos, "c1", domain.Dollars(100))

	boom := errors.New("boom")
	err := repos.Tx.Execute(ctx, func(ctx context.Context) error {
		if _, err := repos.Profiles.Debit(ctx, "c1", domain.Dollars(40)); err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, &domain.Order{ID: "o1", ClientID: "c1"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the fn error, got %v", err)
	}

	p, _ := repos.Profiles.FindByID(ctx, "c1")
	if p.WalletBalance != domain.Dollars(100) {
		t.Errorf("balance not restored: %s", p.WalletBalance)
	}
	if _, err := repos.Orders.FindByID(ctx, "o1", ""); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("order survived rollback: %v", err)
	}
}

func TestStore_NestedExecuteReusesLock(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	seedClient(t, repos, "c1", domain.Dollars(10))

	done := make(chan error, 1)
	go func() {
		done <- repos.Tx.Execute(ctx, func(ctx context.Context) error {
			return repos.Tx.Execute(ctx, func(ctx context.Context) error {
				_, err := repos.Profiles.Credit(ctx, "c1", domain.Dollars(5))
				return err
			})
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nested Execute deadlocked")
	}
	p, _ := repos.Profiles.FindByID(ctx, "c1")
	if p.WalletBalance != domain.Dollars(15) {
		t.Errorf("expected 15.00, got %s", p.WalletBalance)
	}
}

func TestProfiles_DebitRefusesOverdraw(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	seedClient(t, repos, "c1", domain.Dollars(50))

	if _, err := repos.Profiles.Debit(ctx, "c1", domain.Dollars(51)); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	bal, err := repos.Profiles.Debit(ctx, "c1", domain.Dollars(50))
	if err != nil || bal != 0 {
		t.Fatalf("exact debit: balance %s err %v", bal, err)
	}
	if _, err := repos.Profiles.Credit(ctx, "missing", 1); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfiles_CreditRefusesOverflow(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	seedClient(t, repos, "c1", domain.Money(math.MaxInt64-10))

	if _, err := repos.Profiles.Credit(ctx, "c1", 11); !errors.Is(err, domain.ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
	p, _ := repos.Profiles.FindByID(ctx, "c1")
	if p.WalletBalance != domain.Money(math.MaxInt64-10) {
		t.Errorf("balance changed to %d", p.WalletBalance)
	}
	if bal, err := repos.Profiles.Credit(ctx, "c1", 10); err != nil || bal != math.MaxInt64 {
		t.Errorf("credit to the limit: %d %v", bal, err)
	}
}

func TestProfiles_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	seedClient(t, repos, "c1", 0)
	seedClient(t, repos, "c2", 0)
	if err := repos.Profiles.Create(ctx, &domain.Profile{ID: "a1", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if err := repos.Profiles.Create(ctx, &domain.Profile{ID: "c1"}); !errors.Is(err, domain.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}

	clients, _ := repos.Profiles.List(ctx, domain.RoleClient)
	if len(clients) != 2 || clients[0].ID != "c2" {
		t.Errorf("expected c2 then c1, got %d profiles", len(clients))
	}
	if n, _ := repos.Profiles.Count(ctx, ""); n != 3 {
		t.Errorf("expected 3 profiles, got %d", n)
	}

	// Returned profiles are copies.
	clients[0].Name = "changed"
	p, _ := repos.Profiles.FindByID(ctx, "c2")
	if p.Name == "changed" {
		t.Error("List leaked internal state")
	}
}

func TestCredentials_EmailIsUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	if err := repos.Credentials.Create(ctx, &domain.Credential{ID: "u1", Email: "john@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repos.Credentials.Create(ctx, &domain.Credential{ID: "u2", Email: "JOHN@example.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	c, err := repos.Credentials.FindByEmail(ctx, "John@Example.com")
	if err != nil || c.ID != "u1" {
		t.Fatalf("lookup: %+v %v", c, err)
	}
	if err := repos.Credentials.Confirm(ctx, "u1", time.Now()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if c, _ := repos.Credentials.FindByID(ctx, "u1"); !c.Confirmed {
		t.Error("credential not confirmed")
	}
	if err := repos.Credentials.SetPassword(ctx, "nobody", "hash", time.Now()); !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestOrders_ListNewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for _, o := range []domain.Order{
		{ID: "o1", ClientID: "c1", Status: domain.OrderCompleted},
		{ID: "o2", ClientID: "c2", Status: domain.OrderPending},
		{ID: "o3", ClientID: "c1", Status: domain.OrderInProgress},
		{ID: "o4", ClientID: "c1", Status: domain.OrderPending},
	} {
		if err := repos.Orders.Create(ctx, &o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, _ := repos.Orders.List(ctx, ports.OrderFilter{ClientID: "c1"})
	if len(list) != 3 || list[0].ID != "o4" || list[2].ID != "o1" {
		t.Fatalf("unexpected order list %v", ids(list))
	}

	active, _ := repos.Orders.Count(ctx, ports.OrderFilter{ClientID: "c1", Statuses: domain.ActiveOrderStatuses, Limit: 1})
	if active != 2 {
		t.Errorf("count should ignore the limit, got %d", active)
	}

	limited, _ := repos.Orders.List(ctx, ports.OrderFilter{Limit: 2})
	if len(limited) != 2 || limited[0].ID != "o4" {
		t.Errorf("unexpected limited list %v", ids(limited))
	}

	if _, err := repos.Orders.FindByID(ctx, "o2", "c1"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("another client's order must not resolve, got %v", err)
	}

	o, err := repos.Orders.UpdateProgress(ctx, "o2", 100, domain.OrderCompleted)
	if err != nil || o.Status != domain.OrderCompleted {
		t.Fatalf("update progress: %+v %v", o, err)
	}
}

func ids(orders []*domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestInvoices_SumAndMarkPaid(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for _, inv := range []domain.Invoice{
		{ID: "i1", ClientID: "c1", Amount: domain.Dollars(100), Status: domain.InvoicePaid},
		{ID: "i2", ClientID: "c1", Amount: domain.Dollars(50), Status: domain.InvoicePending, LineItems: []domain.LineItem{{Description: "Audit"}}},
		{ID: "i3", ClientID: "c2", Amount: domain.Dollars(70), Status: domain.InvoicePending},
	} {
		if err := repos.Invoices.Create(ctx, &inv); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pending, _ := repos.Invoices.SumAmount(ctx, ports.InvoiceFilter{Status: domain.InvoicePending})
	if pending != domain.Dollars(120) {
		t.Errorf("expected 120.00 pending, got %s", pending)
	}

	inv, err := repos.Invoices.MarkPaid(ctx, "i2")
	if err != nil || inv.Status != domain.InvoicePaid {
		t.Fatalf("mark paid: %+v %v", inv, err)
	}
	inv.LineItems[0].Description = "changed"
	again, _ := repos.Invoices.FindByID(ctx, "i2", "c1")
	if again.LineItems[0].Description != "Audit" {
		t.Error("line items leaked internal state")
	}

	if n, _ := repos.Invoices.Count(ctx, ports.InvoiceFilter{ClientID: "c1", Status: domain.InvoicePaid}); n != 2 {
		t.Errorf("expected 2 paid invoices, got %d", n)
	}
}

func TestReports_MarkSent(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	if err := repos.Reports.Create(ctx, &domain.Report{ID: "r1", ClientID: "c1", Status: domain.ReportDraft}); err != nil {
		t.Fatalf("create: %v", err)
	}

	drafts, _ := repos.Reports.List(ctx, ports.ReportFilter{Status: domain.ReportDraft})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	r, err := repos.Reports.MarkSent(ctx, "r1")
	if err != nil || r.Status != domain.ReportSent {
		t.Fatalf("mark sent: %+v %v", r, err)
	}
	if _, err := repos.Reports.MarkSent(ctx, "r9"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestTickets_MessagesAndTransitions(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"t1", "t2"} {
		tk := &domain.Ticket{ID: id, ClientID: "c1", Status: domain.TicketOpen, LastUpdated: base.Add(time.Duration(i) * time.Hour)}
		if err := repos.Tickets.Create(ctx, tk); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// A reply on the older ticket moves it to the top.
	msg := domain.Message{Author: "John", Message: "Any news?", Timestamp: base.Add(3 * time.Hour)}
	if _, err := repos.Tickets.AppendMessage(ctx, "t1", msg, true); err != nil {
		t.Fatalf("append: %v", err)
	}
	list, _ := repos.Tickets.List(ctx, ports.TicketFilter{ClientID: "c1"})
	if len(list) != 2 || list[0].ID != "t1" {
		t.Fatalf("expected t1 first after a reply")
	}

	if _, err := repos.Tickets.UpdateStatus(ctx, "t1", domain.TicketOpen, domain.TicketResolved, base.Add(4*time.Hour)); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := repos.Tickets.UpdateStatus(ctx, "t1", domain.TicketOpen, domain.TicketResolved, base); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("stale transition: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := repos.Tickets.AppendMessage(ctx, "t1", msg, true); !errors.Is(err, domain.ErrTicketResolved) {
		t.Errorf("client reply on resolved ticket: expected ErrTicketResolved, got %v", err)
	}
	support := domain.Message{Author: domain.SupportAuthor, Message: "Done", IsSupport: true, Timestamp: base.Add(5 * time.Hour)}
	tk, err := repos.Tickets.AppendMessage(ctx, "t1", support, false)
	if err != nil || len(tk.Messages) != 2 {
		t.Fatalf("support reply: %+v %v", tk, err)
	}

	if n, _ := repos.Tickets.Count(ctx, ports.TicketFilter{Status: domain.TicketOpen}); n != 1 {
		t.Errorf("expected 1 open ticket, got %d", n)
	}
}

func TestLedger_ListPerClient(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for i, c := range []string{"c1", "c2", "c1", "c1"} {
		tx := &domain.WalletTransaction{ID: string(rune('a' + i)), ClientID: c}
		if err := repos.Wallet.Append(ctx, tx); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, _ := repos.Wallet.List(ctx, "c1", 2)
	if len(list) != 2 || list[0].ID != "d" || list[1].ID != "c" {
		t.Fatalf("unexpected ledger page")
	}
	all, _ := repos.Wallet.List(ctx, "c1", 0)
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}
}
