package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id, clientID string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if clientID != "" {
		filter["client_id"] = clientID
	}
	var rep domain.Report
	if err := r.col.FindOne(ctx, filter).Decode(&rep); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &rep, nil
}

func (r *ReportRepository) List(ctx context.Context, f ports.ReportFilter) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	cur, err := r.col.Find(ctx, filter, sortedFind("date", f.Limit))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return decodeAll[domain.Report](ctx, cur)
}

// MarkSent only flips drafts, so a repeated send leaves the document alone.
func (r *ReportRepository) MarkSent(ctx context.Context, id string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.Report
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": string(domain.ReportDraft)},
		bson.M{"$set": bson.M{"status": string(domain.ReportSent)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rep)
	if err == nil {
		return &rep, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("send report: %w", err)
	}
	return r.FindByID(ctx, id, "")
}
