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

type TicketService struct {
	repo ports.TicketRepository
	log  zerolog.Logger
	now  func() time.Time
}

var _ ports.TicketService = (*TicketService)(nil)

func NewTicketService(repo ports.TicketRepository, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create opens a ticket on behalf of a client with its first message.
func (s *TicketService) Create(ctx context.Context, actor domain.Actor, in ports.CreateTicketInput) (*domain.Ticket, error) {
	if actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, priority)
	}

	now := s.now()
	t := &domain.Ticket{
		ID:          newID(prefixTicket),
		ClientID:    actor.ID,
		ClientName:  actor.Name,
		Subject:     strings.TrimSpace(in.Subject),
		Status:      domain.TicketOpen,
		Priority:    priority,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := t.Append(s.message(actor, in.Message, now)); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	s.log.Info().Str("ticket_id", t.ID).Str("client_id", actor.ID).Msg("ticket opened")
	return t, nil
}

// Reply appends a message. Clients may reply to their own open tickets;
// admins may reply to any ticket in any status.
func (s *TicketService) Reply(ctx context.Context, actor domain.Actor, id, message string) (*domain.Ticket, error) {
	t, err := s.repo.FindByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, err
	}

	msg := s.message(actor, message, s.now())
	if err := t.Append(msg); err != nil {
		return nil, err
	}

	updated, err := s.repo.AppendMessage(ctx, id, msg, !msg.IsSupport)
	if err != nil {
		return nil, fmt.Errorf("reply to ticket: %w", err)
	}
	return updated, nil
}

// SetStatus moves a ticket between Open and Resolved. Admin only.
func (s *TicketService) SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	t, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	from := t.Status
	now := s.now()
	changed, err := t.SetStatus(status, now)
	if err != nil {
		return nil, fmt.Errorf("set ticket status: %w (from %s to %s)", err, from, status)
	}
	if !changed {
		return t, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, from, status, now)
	if err != nil {
		return nil, fmt.Errorf("set ticket status: %w", err)
	}
	s.log.Info().Str("ticket_id", id).Str("from", string(from)).Str("to", string(status)).Msg("ticket status changed")
	return updated, nil
}

func (s *TicketService) List(ctx context.Context, actor domain.Actor, f ports.TicketFilter) ([]*domain.Ticket, error) {
	if !actor.IsAdmin() {
		f.ClientID = actor.ID
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	f.Limit = clampLimit(f.Limit)
	tickets, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id, actor.Scope())
}

func (s *TicketService) message(actor domain.Actor, text string, at time.Time) domain.Message {
	m := domain.Message{
		Author:    actor.Name,
		Timestamp: at,
		Message:   strings.TrimSpace(text),
	}
	if actor.IsAdmin() {
		m.Author = domain.SupportAuthor
		m.IsSupport = true
	}
	return m
}
