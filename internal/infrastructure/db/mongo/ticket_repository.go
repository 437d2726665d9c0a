package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// TicketRepository stores tickets with their messages embedded.
type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if clientID != "" {
		filter["client_id"] = clientID
	}
	var t domain.Ticket
	if err := r.col.FindOne(ctx, filter).Decode(&t); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}

func ticketFilter(f ports.TicketFilter) bson.M {
	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

func (r *TicketRepository) List(ctx context.Context, f ports.TicketFilter) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, ticketFilter(f), sortedFind("last_updated", f.Limit))
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return decodeAll[domain.Ticket](ctx, cur)
}

func (r *TicketRepository) Count(ctx context.Context, f ports.TicketFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, ticketFilter(f))
}

// AppendMessage pushes the message and bumps last_updated in one update. The
// open-status guard is part of the filter.
func (r *TicketRepository) AppendMessage(ctx context.Context, id string, msg domain.Message, requireOpen bool) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if requireOpen {
		filter["status"] = string(domain.TicketOpen)
	}
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"last_updated": msg.Timestamp},
	}

	t, err := r.findAndUpdate(ctx, filter, update)
	if err == nil {
		return t, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("append ticket message: %w", err)
	}
	return nil, r.missOrConflict(ctx, id, domain.ErrTicketResolved)
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, at time.Time) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "last_updated": at}}

	t, err := r.findAndUpdate(ctx, filter, update)
	if err == nil {
		return t, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	return nil, r.missOrConflict(ctx, id, domain.ErrInvalidTransition)
}

func (r *TicketRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// missOrConflict explains a guarded update that matched nothing.
func (r *TicketRepository) missOrConflict(ctx context.Context, id string, conflict error) error {
	found, err := exists(ctx, r.col, id)
	if err != nil {
		return fmt.Errorf("find ticket: %w", err)
	}
	if !found {
		return domain.ErrTicketNotFound
	}
	return conflict
}
