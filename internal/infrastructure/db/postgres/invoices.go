package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const invoiceColumns = `id, client_id, date, due_date, amount, status`

// InvoiceRepository keeps line items in invoice_line_items, ordered by position.
type InvoiceRepository struct {
	s *Store
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.s.Execute(ctx, func(ctx context.Context) error {
		q := r.s.q(ctx)
		_, err := q.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`) VALUES ($1, $2, $3, $4, $5, $6);`,
			inv.ID, inv.ClientID, inv.Date, inv.DueDate, int64(inv.Amount), string(inv.Status))
		if err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		batch := &pgx.Batch{}
		for i, it := range inv.LineItems {
			batch.Queue(`
				INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, total)
				VALUES ($1, $2, $3, $4, $5, $6);`,
				inv.ID, i, it.Description, it.Quantity, int64(it.UnitPrice), int64(it.Total))
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert invoice line items: %w", err)
		}
		return nil
	})
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Invoice, error) {
	var w where
	w.add("id = $%d", id)
	if clientID != "" {
		w.add("client_id = $%d", clientID)
	}
	inv, err := scanInvoice(r.s.q(ctx).QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices`+w.String()+`;`, w.args...))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

func invoiceWhere(f ports.InvoiceFilter) *where {
	w := &where{}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	return w
}

func (r *InvoiceRepository) List(ctx context.Context, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
	w := invoiceWhere(f)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.String() + ` ORDER BY date DESC` + limitClause(f.Limit) + `;`
	rows, err := r.s.q(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InvoiceRepository) Count(ctx context.Context, f ports.InvoiceFilter) (int64, error) {
	w := invoiceWhere(f)
	var n int64
	err := r.s.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+w.String()+`;`, w.args...).Scan(&n)
	return n, err
}

func (r *InvoiceRepository) SumAmount(ctx context.Context, f ports.InvoiceFilter) (domain.Money, error) {
	w := invoiceWhere(f)
	var total int64
	err := r.s.q(ctx).QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM invoices`+w.String()+`;`, w.args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum invoices: %w", err)
	}
	return domain.Money(total), nil
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	const query = `UPDATE invoices SET status = $2 WHERE id = $1 RETURNING ` + invoiceColumns + `;`
	inv, err := scanInvoice(r.s.q(ctx).QueryRow(ctx, query, id, string(domain.InvoicePaid)))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) loadItems(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		inv.LineItems = make([]domain.LineItem, 0)
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	rows, err := r.s.q(ctx).Query(ctx, `
		SELECT invoice_id, description, quantity, unit_price, total
		FROM invoice_line_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position;`, ids)
	if err != nil {
		return fmt.Errorf("load invoice line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			invoiceID   string
			it          domain.LineItem
			unit, total int64
		)
		if err := rows.Scan(&invoiceID, &it.Description, &it.Quantity, &unit, &total); err != nil {
			return fmt.Errorf("scan invoice line item: %w", err)
		}
		it.UnitPrice = domain.Money(unit)
		it.Total = domain.Money(total)
		inv := byID[invoiceID]
		inv.LineItems = append(inv.LineItems, it)
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		amount int64
		status string
	)
	if err := row.Scan(&inv.ID, &inv.ClientID, &inv.Date, &inv.DueDate, &amount, &status); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.Amount = domain.Money(amount)
	inv.Status = domain.InvoiceStatus(status)
	inv.Date = inv.Date.UTC()
	inv.DueDate = inv.DueDate.UTC()
	return &inv, nil
}
