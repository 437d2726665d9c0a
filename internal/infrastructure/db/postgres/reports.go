package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const reportColumns = `id, client_id, title, date, status, content`

type ReportRepository struct {
	s *Store
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	_, err := r.s.q(ctx).Exec(ctx, `INSERT INTO reports (`+reportColumns+`) VALUES ($1, $2, $3, $4, $5, $6);`,
		rep.ID, rep.ClientID, rep.Title, rep.Date, string(rep.Status), rep.Content)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Report, error) {
	var w where
	w.add("id = $%d", id)
	if clientID != "" {
		w.add("client_id = $%d", clientID)
	}
	return scanReport(r.s.q(ctx).QueryRow(ctx, `SELECT `+reportColumns+` FROM reports`+w.String()+`;`, w.args...))
}

func (r *ReportRepository) List(ctx context.Context, f ports.ReportFilter) ([]*domain.Report, error) {
	var w where
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	query := `SELECT ` + reportColumns + ` FROM reports` + w.String() + ` ORDER BY date DESC` + limitClause(f.Limit) + `;`
	rows, err := r.s.q(ctx).Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportRepository) MarkSent(ctx context.Context, id string) (*domain.Report, error) {
	const query = `
		UPDATE reports SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING ` + reportColumns + `;`
	rep, err := scanReport(r.s.q(ctx).QueryRow(ctx, query, id, string(domain.ReportSent), string(domain.ReportDraft)))
	if errors.Is(err, domain.ErrReportNotFound) {
		return r.FindByID(ctx, id, "")
	}
	return rep, err
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		rep    domain.Report
		status string
	)
	if err := row.Scan(&rep.ID, &rep.ClientID, &rep.Title, &rep.Date, &status, &rep.Content); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	rep.Status = domain.ReportStatus(status)
	rep.Date = rep.Date.UTC()
	return &rep, nil
}
