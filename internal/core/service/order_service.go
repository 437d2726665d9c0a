package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const maxListLimit = 100

type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

var _ ports.OrderService = (*OrderService)(nil)

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// List returns orders visible to the actor. Clients are always scoped to
// their own orders regardless of the filter they pass.
func (s *OrderService) List(ctx context.Context, actor domain.Actor, f ports.OrderFilter) ([]*domain.Order, error) {
	if !actor.IsAdmin() {
		f.ClientID = actor.ID
	}
	f.Limit = clampLimit(f.Limit)
	orders, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id, actor.Scope())
}

// UpdateProgress sets progress (0-100) and the derived status. Admin only.
func (s *OrderService) UpdateProgress(ctx context.Context, actor domain.Actor, id string, progress int) (*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var next domain.Order
	if err := next.SetProgress(progress); err != nil {
		return nil, err
	}

	order, err := s.repo.UpdateProgress(ctx, id, next.Progress, next.Status)
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	s.log.Info().Str("order_id", id).Int("progress", progress).Str("status", string(order.Status)).Msg("order progress updated")
	return order, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
