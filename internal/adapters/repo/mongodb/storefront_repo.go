package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velorahq/velora/internal/domain"
)

const (
	storeCategoriesDocID = "storeCategories"
	pageHeroDocID        = "pageHero"
)

// StorefrontRepo keeps the two storefront singletons in the storefront
// collection (fixed document ids) and collections in their own collection.
// Singleton saves are full overwrites, not merges.
type StorefrontRepo struct {
	storefront  *mongo.Collection
	collections *mongo.Collection
}

func NewStorefrontRepo(db *mongo.Database) *StorefrontRepo {
	return &StorefrontRepo{
		storefront:  db.Collection("storefront"),
		collections: db.Collection("collections"),
	}
}

func (r *StorefrontRepo) GetCategories(ctx context.Context) (*domain.StoreCategories, error) {
	var sc domain.StoreCategories
	err := r.storefront.FindOne(ctx, bson.M{"_id": storeCategoriesDocID}).Decode(&sc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store categories: %w", err)
	}
	return &sc, nil
}

func (r *StorefrontRepo) SaveCategories(ctx context.Context, sc *domain.StoreCategories) error {
	return r.saveSingleton(ctx, storeCategoriesDocID, sc)
}

func (r *StorefrontRepo) GetPageHero(ctx context.Context) (*domain.PageHero, error) {
	var h domain.PageHero
	err := r.storefront.FindOne(ctx, bson.M{"_id": pageHeroDocID}).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page hero: %w", err)
	}
	return &h, nil
}

func (r *StorefrontRepo) SavePageHero(ctx context.Context, h *domain.PageHero) error {
	return r.saveSingleton(ctx, pageHeroDocID, h)
}

func (r *StorefrontRepo) saveSingleton(ctx context.Context, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.storefront.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("failed to save %s: %w", id, err)
	}
	return nil
}

func (r *StorefrontRepo) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "index", Value: 1}})
	cur, err := r.collections.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Collection
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode collections: %w", err)
	}
	return out, nil
}

func (r *StorefrontRepo) FindCollection(ctx context.Context, id string) (*domain.Collection, error) {
	var c domain.Collection
	err := r.collections.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &c, nil
}

func (r *StorefrontRepo) SaveCollection(ctx context.Context, c *domain.Collection) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collections.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, opts); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

func (r *StorefrontRepo) DeleteCollection(ctx context.Context, id string) error {
	result, err := r.collections.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StorefrontRepo) CountCollections(ctx context.Context) (int64, error) {
	n, err := r.collections.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}
	return n, nil
}
