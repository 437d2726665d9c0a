package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/copebusiness/portal/internal/core/domain"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// Update sets only the patched fields; email, role and balance are never touched.
func (r *ProfileRepository) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.AvatarURL != nil {
		set["avatar_url"] = *patch.AvatarURL
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var p domain.Profile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) filter(role domain.Role) bson.M {
	if role == "" {
		return bson.M{}
	}
	return bson.M{"role": string(role)}
}

func (r *ProfileRepository) List(ctx context.Context, role domain.Role) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, r.filter(role), sortedFind("created_at", 0))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return decodeAll[domain.Profile](ctx, cur)
}

func (r *ProfileRepository) Count(ctx context.Context, role domain.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, r.filter(role))
}

// Debit decrements the balance only if it stays non-negative. The guard is
// part of the update filter, so concurrent debits cannot overdraw.
func (r *ProfileRepository) Debit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "wallet_balance": bson.M{"$gte": int64(amount)}}
	p, err := r.inc(ctx, filter, -amount)
	if err == nil {
		return p.WalletBalance, nil
	}
	if !isNoDocuments(err) {
		return 0, fmt.Errorf("debit wallet: %w", err)
	}

	found, err := exists(ctx, r.col, id)
	if err != nil {
		return 0, fmt.Errorf("debit wallet: %w", err)
	}
	if !found {
		return 0, domain.ErrProfileNotFound
	}
	return 0, domain.ErrInsufficientFunds
}

func (r *ProfileRepository) Credit(ctx context.Context, id string, amount domain.Money) (domain.Money, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p, err := r.inc(ctx, bson.M{"_id": id}, amount)
	if err != nil {
		if isNoDocuments(err) {
			return 0, domain.ErrProfileNotFound
		}
		return 0, fmt.Errorf("credit wallet: %w", err)
	}
	return p.WalletBalance, nil
}

func (r *ProfileRepository) inc(ctx context.Context, filter bson.M, delta domain.Money) (*domain.Profile, error) {
	var p domain.Profile
	err := r.col.FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"wallet_balance": int64(delta)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
