package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const orderColumns = `id, client_id, service_id, service_name, plan, price, status, progress, created_at`

type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	const query = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.s.q(ctx).Exec(ctx, query,
		o.ID, o.ClientID, o.ServiceID, o.ServiceName, string(o.Plan), int64(o.Price),
		string(o.Status), o.Progress, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Order, error) {
	var w where
	w.add("id = $%d", id)
	if clientID != "" {
		w.add("client_id = $%d", clientID)
	}
	row := r.s.q(ctx).QueryRow(ctx, `SELECT `+orderColumns+` FROM orders`+w.String()+`;`, w.args...)
	return scanOrder(row)
}

func orderWhere(f ports.OrderFilter) *where {
	w := &where{}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		w.add("status = ANY($%d)", statuses)
	}
	return w
}

func (r *OrderRepository) List(ctx context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	w := orderWhere(f)
	query := `SELECT ` + orderColumns + ` FROM orders` + w.String() + ` ORDER BY created_at DESC` + limitClause(f.Limit) + `;`
	rows, err := r.s.q(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context, f ports.OrderFilter) (int64, error) {
	w := orderWhere(f)
	var n int64
	err := r.s.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM orders`+w.String()+`;`, w.args...).Scan(&n)
	return n, err
}

func (r *OrderRepository) UpdateProgress(ctx context.Context, id string, progress int, status domain.OrderStatus) (*domain.Order, error) {
	const query = `
		UPDATE orders SET progress = $2, status = $3
		WHERE id = $1
		RETURNING ` + orderColumns + `;`
	return scanOrder(r.s.q(ctx).QueryRow(ctx, query, id, progress, string(status)))
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		plan   string
		status string
		price  int64
	)
	if err := row.Scan(&o.ID, &o.ClientID, &o.ServiceID, &o.ServiceName, &plan, &price, &status, &o.Progress, &o.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Plan = domain.Plan(plan)
	o.Status = domain.OrderStatus(status)
	o.Price = domain.Money(price)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}
