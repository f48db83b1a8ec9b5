package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velorahq/velora/internal/domain"
)

// CartRepo stores one document per owner token in the carts collection.
// Item-list writes replace the whole array in a single document update;
// that per-document atomicity is the only write serialization (two
// concurrent writers land as two successive writes, last one wins).
type CartRepo struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{collection: db.Collection("carts")}
}

func (r *CartRepo) FindByOwner(ctx context.Context, deviceIdentifier string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"device_identifier": deviceIdentifier}
	err := r.collection.FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (r *CartRepo) Create(ctx context.Context, c *domain.Cart) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *CartRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	filter := bson.M{"_id": cartID}
	update := bson.M{"$set": bson.M{
		"items":     items,
		"updatedAt": time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}

// EnsureIndexes enforces the one-cart-per-owner invariant.
func (r *CartRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "device_identifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
