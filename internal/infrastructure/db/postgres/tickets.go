package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const ticketColumns = `id, client_id, client_name, subject, status, priority, created_at, last_updated`

// TicketRepository keeps the conversation in ticket_messages.
type TicketRepository struct {
	s *Store
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.s.Execute(ctx, func(ctx context.Context) error {
		q := r.s.q(ctx)
		_, err := q.Exec(ctx, `INSERT INTO tickets (`+ticketColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			t.ID, t.ClientID, t.ClientName, t.Subject, string(t.Status), string(t.Priority), t.CreatedAt, t.LastUpdated)
		if err != nil {
			return fmt.Errorf("insert ticket: %w", err)
		}
		for _, m := range t.Messages {
			if err := insertMessage(ctx, q, t.ID, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TicketRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Ticket, error) {
	var w where
	w.add("id = $%d", id)
	if clientID != "" {
		w.add("client_id = $%d", clientID)
	}
	t, err := scanTicket(r.s.q(ctx).QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets`+w.String()+`;`, w.args...))
	if err != nil {
		return nil, err
	}
	if err := r.loadMessages(ctx, []*domain.Ticket{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func ticketWhere(f ports.TicketFilter) *where {
	w := &where{}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	return w
}

func (r *TicketRepository) List(ctx context.Context, f ports.TicketFilter) ([]*domain.Ticket, error) {
	w := ticketWhere(f)
	query := `SELECT ` + ticketColumns + ` FROM tickets` + w.String() + ` ORDER BY last_updated DESC` + limitClause(f.Limit) + `;`
	rows, err := r.s.q(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadMessages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TicketRepository) Count(ctx context.Context, f ports.TicketFilter) (int64, error) {
	w := ticketWhere(f)
	var n int64
	err := r.s.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+w.String()+`;`, w.args...).Scan(&n)
	return n, err
}

// AppendMessage locks the ticket row so the open check and the insert see the
// same status.
func (r *TicketRepository) AppendMessage(ctx context.Context, id string, msg domain.Message, requireOpen bool) (*domain.Ticket, error) {
	err := r.s.Execute(ctx, func(ctx context.Context) error {
		q := r.s.q(ctx)
		var status string
		if err := q.QueryRow(ctx, `SELECT status FROM tickets WHERE id = $1 FOR UPDATE;`, id).Scan(&status); err != nil {
			if isNoRows(err) {
				return domain.ErrTicketNotFound
			}
			return fmt.Errorf("lock ticket: %w", err)
		}
		if requireOpen && domain.TicketStatus(status) != domain.TicketOpen {
			return domain.ErrTicketResolved
		}
		if err := insertMessage(ctx, q, id, msg); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `UPDATE tickets SET last_updated = $2 WHERE id = $1;`, id, msg.Timestamp); err != nil {
			return fmt.Errorf("touch ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id, "")
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, at time.Time) (*domain.Ticket, error) {
	tag, err := r.s.q(ctx).Exec(ctx, `UPDATE tickets SET status = $3, last_updated = $4 WHERE id = $1 AND status = $2;`,
		id, string(from), string(to), at)
	if err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	t, err := r.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrInvalidTransition
	}
	return t, nil
}

func (r *TicketRepository) loadMessages(ctx context.Context, tickets []*domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Ticket, len(tickets))
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		t.Messages = make([]domain.Message, 0)
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := r.s.q(ctx).Query(ctx, `
		SELECT ticket_id, author, sent_at, message, is_support
		FROM ticket_messages
		WHERE ticket_id = ANY($1)
		ORDER BY ticket_id, id;`, ids)
	if err != nil {
		return fmt.Errorf("load ticket messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ticketID string
			m        domain.Message
		)
		if err := rows.Scan(&ticketID, &m.Author, &m.Timestamp, &m.Message, &m.IsSupport); err != nil {
			return fmt.Errorf("scan ticket message: %w", err)
		}
		m.Timestamp = m.Timestamp.UTC()
		t := byID[ticketID]
		t.Messages = append(t.Messages, m)
	}
	return rows.Err()
}

func insertMessage(ctx context.Context, q querier, ticketID string, m domain.Message) error {
	_, err := q.Exec(ctx, `
		INSERT INTO ticket_messages (ticket_id, author, sent_at, message, is_support)
		VALUES ($1, $2, $3, $4, $5);`,
		ticketID, m.Author, m.Timestamp, m.Message, m.IsSupport)
	if err != nil {
		return fmt.Errorf("insert ticket message: %w", err)
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		t                domain.Ticket
		status, priority string
	)
	if err := row.Scan(&t.ID, &t.ClientID, &t.ClientName, &t.Subject, &status, &priority, &t.CreatedAt, &t.LastUpdated); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("scan ticket: %w", err)
	}
	t.Status = domain.TicketStatus(status)
	t.Priority = domain.TicketPriority(priority)
	t.CreatedAt = t.CreatedAt.UTC()
	t.LastUpdated = t.LastUpdated.UTC()
	return &t, nil
}
