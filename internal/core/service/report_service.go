package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type ReportService struct {
	reports  ports.ReportRepository
	profiles ports.ProfileRepository
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.ReportService = (*ReportService)(nil)

func NewReportService(reports ports.ReportRepository, profiles ports.ProfileRepository, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		profiles: profiles,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a draft report for a client.
func (s *ReportService) Create(ctx context.Context, actor domain.Actor, in ports.CreateReportInput) (*domain.Report, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	title, content := strings.TrimSpace(in.Title), strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	if _, err := s.profiles.FindByID(ctx, in.ClientID); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	r := &domain.Report{
		ID:       newID(prefixReport),
		ClientID: in.ClientID,
		Title:    title,
		Date:     s.now(),
		Status:   domain.ReportDraft,
		Content:  content,
	}
	if err := s.reports.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

// Send publishes a draft to its client. Sending again changes nothing.
func (s *ReportService) Send(ctx context.Context, actor domain.Actor, id string) (*domain.Report, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	r, err := s.reports.MarkSent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("send report: %w", err)
	}
	s.log.Info().Str("report_id", id).Str("client_id", r.ClientID).Msg("report sent")
	return r, nil
}

// List returns reports visible to the actor; clients only see sent ones.
func (s *ReportService) List(ctx context.Context, actor domain.Actor, f ports.ReportFilter) ([]*domain.Report, error) {
	if !actor.IsAdmin() {
		f.ClientID = actor.ID
		f.Status = domain.ReportSent
	}
	f.Limit = clampLimit(f.Limit)
	return s.reports.List(ctx, f)
}

func (s *ReportService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Report, error) {
	r, err := s.reports.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, err
	}
	if !r.VisibleTo(actor) {
		return nil, domain.ErrReportNotFound
	}
	return r, nil
}
