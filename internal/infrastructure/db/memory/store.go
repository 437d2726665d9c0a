// Package memory is an in-process storage backend for local runs and tests.
// Transactions are serialized; a failed transaction restores the state it
// started from.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type txKey struct{}

type state struct {
	profiles    []domain.Profile
	credentials []domain.Credential
	orders      []domain.Order
	invoices    []domain.Invoice
	reports     []domain.Report
	tickets     []domain.Ticket
	ledger      []domain.WalletTransaction
}

func (s *state) clone() *state {
	c := &state{
		profiles:    append([]domain.Profile(nil), s.profiles...),
		credentials: append([]domain.Credential(nil), s.credentials...),
		orders:      append([]domain.Order(nil), s.orders...),
		invoices:    make([]domain.Invoice, len(s.invoices)),
		reports:     append([]domain.Report(nil), s.reports...),
		tickets:     make([]domain.Ticket, len(s.tickets)),
		ledger:      append([]domain.WalletTransaction(nil), s.ledger...),
	}
	for i := range s.invoices {
		c.invoices[i] = cloneInvoice(s.invoices[i])
	}
	for i := range s.tickets {
		c.tickets[i] = cloneTicket(s.tickets[i])
	}
	return c
}

// Store holds every collection behind a single mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{}}
}

// Repositories exposes the store through the storage ports.
func (s *Store) Repositories() ports.Repositories {
	return ports.Repositories{
		Profiles:    profileRepo{s},
		Credentials: credentialRepo{s},
		Orders:      orderRepo{s},
		Invoices:    invoiceRepo{s},
		Reports:     reportRepo{s},
		Tickets:     ticketRepo{s},
		Wallet:      ledgerRepo{s},
		Tx:          s,
	}
}

// Execute runs fn holding the store lock. Calls made with the ctx passed to
// fn reuse the held lock.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	tx, _ := ctx.Value(txKey{}).(*Store)
	return tx == s
}

func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── profiles ────────────────────────────────────────────────────────────────

type profileRepo struct{ s *Store }

func (r profileRepo) find(id string) *domain.Profile {
	for i := range r.s.st.profiles {
		if r.s.st.profiles[i].ID == id {
			return &r.s.st.profiles[i]
		}
	}
	return nil
}

func (r profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	defer r.s.lock(ctx)()
	if r.find(p.ID) != nil {
		return domain.ErrProfileExists
	}
	r.s.st.profiles = append(r.s.st.profiles, *p)
	return nil
}

func (r profileRepo) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	defer r.s.lock(ctx)()
	p := r.find(id)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r profileRepo) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	defer r.s.lock(ctx)()
	p := r.find(id)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	*p = patch.Apply(*p)
	cp := *p
	return &cp, nil
}

func (r profileRepo) List(ctx context.Context, role domain.Role) ([]*domain.Profile, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Profile, 0)
	for i := len(r.s.st.profiles) - 1; i >= 0; i-- {
		p := r.s.st.profiles[i]
		if role == "" || p.Role == role {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r profileRepo) Count(ctx context.Context, role domain.Role) (int64, error) {
	list, err := r.List(ctx, role)
	return int64(len(list)), err
}

func (r profileRepo) Debit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	defer r.s.lock(ctx)()
	p := r.find(id)
	if p == nil {
		return 0, domain.ErrProfileNotFound
	}
	if p.WalletBalance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	p.WalletBalance -= amount
	return p.WalletBalance, nil
}

func (r profileRepo) Credit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	defer r.s.lock(ctx)()
	p := r.find(id)
	if p == nil {
		return 0, domain.ErrProfileNotFound
	}
	bal, err := p.WalletBalance.Add(amount)
	if err != nil {
		return 0, err
	}
	p.WalletBalance = bal
	return bal, nil
}

// ── credentials ─────────────────────────────────────────────────────────────

type credentialRepo struct{ s *Store }

func (r credentialRepo) find(match func(*domain.Credential) bool) *domain.Credential {
	for i := range r.s.st.credentials {
		if match(&r.s.st.credentials[i]) {
			return &r.s.st.credentials[i]
		}
	}
	return nil
}

func (r credentialRepo) Create(ctx context.Context, c *domain.Credential) error {
	defer r.s.lock(ctx)()
	if r.find(func(e *domain.Credential) bool { return strings.EqualFold(e.Email, c.Email) }) != nil {
		return domain.ErrEmailTaken
	}
	r.s.st.credentials = append(r.s.st.credentials, *c)
	return nil
}

func (r credentialRepo) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	defer r.s.lock(ctx)()
	c := r.find(func(e *domain.Credential) bool { return strings.EqualFold(e.Email, email) })
	if c == nil {
		return nil, domain.ErrCredentialNotFound
	}
	cp := *c
	return &cp, nil
}

func (r credentialRepo) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	defer r.s.lock(ctx)()
	c := r.find(func(e *domain.Credential) bool { return e.ID == id })
	if c == nil {
		return nil, domain.ErrCredentialNotFound
	}
	cp := *c
	return &cp, nil
}

func (r credentialRepo) SetPassword(ctx context.Context, id, hash string, at time.Time) error {
	defer r.s.lock(ctx)()
	c := r.find(func(e *domain.Credential) bool { return e.ID == id })
	if c == nil {
		return domain.ErrCredentialNotFound
	}
	c.PasswordHash = hash
	c.UpdatedAt = at
	return nil
}

func (r credentialRepo) Confirm(ctx context.Context, id string, at time.Time) error {
	defer r.s.lock(ctx)()
	c := r.find(func(e *domain.Credential) bool { return e.ID == id })
	if c == nil {
		return domain.ErrCredentialNotFound
	}
	c.Confirmed = true
	c.UpdatedAt = at
	return nil
}

// ── orders ──────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, o *domain.Order) error {
	defer r.s.lock(ctx)()
	r.s.st.orders = append(r.s.st.orders, *o)
	return nil
}

func (r orderRepo) FindByID(ctx context.Context, id, clientID string) (*domain.Order, error) {
	defer r.s.lock(ctx)()
	for _, o := range r.s.st.orders {
		if o.ID == id && (clientID == "" || o.ClientID == clientID) {
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r orderRepo) match(o domain.Order, f ports.OrderFilter) bool {
	if f.ClientID != "" && o.ClientID != f.ClientID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, st := range f.Statuses {
		if o.Status == st {
			return true
		}
	}
	return false
}

func (r orderRepo) List(ctx context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Order, 0)
	for i := len(r.s.st.orders) - 1; i >= 0; i-- {
		o := r.s.st.orders[i]
		if !r.match(o, f) {
			continue
		}
		out = append(out, &o)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r orderRepo) Count(ctx context.Context, f ports.OrderFilter) (int64, error) {
	f.Limit = 0
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r orderRepo) UpdateProgress(ctx context.Context, id string, progress int, status domain.OrderStatus) (*domain.Order, error) {
	defer r.s.lock(ctx)()
	for i := range r.s.st.orders {
		if r.s.st.orders[i].ID == id {
			r.s.st.orders[i].Progress = progress
			r.s.st.orders[i].Status = status
			o := r.s.st.orders[i]
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// ── invoices ────────────────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.LineItems = append([]domain.LineItem(nil), inv.LineItems...)
	return inv
}

func (r invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	defer r.s.lock(ctx)()
	r.s.st.invoices = append(r.s.st.invoices, cloneInvoice(*inv))
	return nil
}

func (r invoiceRepo) FindByID(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	defer r.s.lock(ctx)()
	for _, inv := range r.s.st.invoices {
		if inv.ID == id && (clientID == "" || inv.ClientID == clientID) {
			c := cloneInvoice(inv)
			return &c, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r invoiceRepo) List(ctx context.Context, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Invoice, 0)
	for i := len(r.s.st.invoices) - 1; i >= 0; i-- {
		inv := r.s.st.invoices[i]
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		c := cloneInvoice(inv)
		out = append(out, &c)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r invoiceRepo) Count(ctx context.Context, f ports.InvoiceFilter) (int64, error) {
	f.Limit = 0
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r invoiceRepo) SumAmount(ctx context.Context, f ports.InvoiceFilter) (domain.Money, error) {
	f.Limit = 0
	list, err := r.List(ctx, f)
	var total domain.Money
	for _, inv := range list {
		total += inv.Amount
	}
	return total, err
}

func (r invoiceRepo) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	defer r.s.lock(ctx)()
	for i := range r.s.st.invoices {
		if r.s.st.invoices[i].ID == id {
			r.s.st.invoices[i].Status = domain.InvoicePaid
			c := cloneInvoice(r.s.st.invoices[i])
			return &c, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

// ── reports ─────────────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

func (r reportRepo) Create(ctx context.Context, rep *domain.Report) error {
	defer r.s.lock(ctx)()
	r.s.st.reports = append(r.s.st.reports, *rep)
	return nil
}

func (r reportRepo) FindByID(ctx context.Context, id, clientID string) (*domain.Report, error) {
	defer r.s.lock(ctx)()
	for _, rep := range r.s.st.reports {
		if rep.ID == id && (clientID == "" || rep.ClientID == clientID) {
			return &rep, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (r reportRepo) List(ctx context.Context, f ports.ReportFilter) ([]*domain.Report, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Report, 0)
	for i := len(r.s.st.reports) - 1; i >= 0; i-- {
		rep := r.s.st.reports[i]
		if f.ClientID != "" && rep.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && rep.Status != f.Status {
			continue
		}
		out = append(out, &rep)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r reportRepo) MarkSent(ctx context.Context, id string) (*domain.Report, error) {
	defer r.s.lock(ctx)()
	for i := range r.s.st.reports {
		if r.s.st.reports[i].ID == id {
			r.s.st.reports[i].Send()
			rep := r.s.st.reports[i]
			return &rep, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

// ── tickets ─────────────────────────────────────────────────────────────────

type ticketRepo struct{ s *Store }

func cloneTicket(t domain.Ticket) domain.Ticket {
	t.Messages = append([]domain.Message(nil), t.Messages...)
	return t
}

func (r ticketRepo) find(id, clientID string) *domain.Ticket {
	for i := range r.s.st.tickets {
		t := &r.s.st.tickets[i]
		if t.ID == id && (clientID == "" || t.ClientID == clientID) {
			return t
		}
	}
	return nil
}

func (r ticketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	defer r.s.lock(ctx)()
	r.s.st.tickets = append(r.s.st.tickets, cloneTicket(*t))
	return nil
}

func (r ticketRepo) FindByID(ctx context.Context, id, clientID string) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()
	t := r.find(id, clientID)
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	c := cloneTicket(*t)
	return &c, nil
}

func (r ticketRepo) List(ctx context.Context, f ports.TicketFilter) ([]*domain.Ticket, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Ticket, 0)
	for i := len(r.s.st.tickets) - 1; i >= 0; i-- {
		t := r.s.st.tickets[i]
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		c := cloneTicket(t)
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r ticketRepo) Count(ctx context.Context, f ports.TicketFilter) (int64, error) {
	f.Limit = 0
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r ticketRepo) AppendMessage(ctx context.Context, id string, msg domain.Message, requireOpen bool) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()
	t := r.find(id, "")
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	if requireOpen && t.Status != domain.TicketOpen {
		return nil, domain.ErrTicketResolved
	}
	t.Messages = append(t.Messages, msg)
	t.LastUpdated = msg.Timestamp
	c := cloneTicket(*t)
	return &c, nil
}

func (r ticketRepo) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, at time.Time) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()
	t := r.find(id, "")
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	if t.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	t.Status = to
	t.LastUpdated = at
	c := cloneTicket(*t)
	return &c, nil
}

// ── wallet ledger ───────────────────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

func (r ledgerRepo) Append(ctx context.Context, tx *domain.WalletTransaction) error {
	defer r.s.lock(ctx)()
	r.s.st.ledger = append(r.s.st.ledger, *tx)
	return nil
}

func (r ledgerRepo) List(ctx context.Context, clientID string, limit int) ([]*domain.WalletTransaction, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.WalletTransaction, 0)
	for i := len(r.s.st.ledger) - 1; i >= 0; i-- {
		e := r.s.st.ledger[i]
		if e.ClientID != clientID {
			continue
		}
		out = append(out, &e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
