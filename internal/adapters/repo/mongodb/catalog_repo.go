package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velorahq/velora/internal/domain"
)

// CatalogRepo serves the products and upsells collections. The Exists
// probes back the cart read-time validation, so they stay count-only.
type CatalogRepo struct {
	products *mongo.Collection
	upsells  *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database) *CatalogRepo {
	return &CatalogRepo{
		products: db.Collection("products"),
		upsells:  db.Collection("upsells"),
	}
}

func (r *CatalogRepo) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepo) ProductExists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.products, id)
}

func (r *CatalogRepo) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	filter := bson.M{}
	if len(f.IDs) > 0 {
		filter["_id"] = bson.M{"$in": f.IDs}
	}
	if f.Visibility != "" {
		filter["visibility"] = f.Visibility
	}
	if f.Query != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: f.Query, Options: "i"}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.PageSize > 0 {
		opts.SetLimit(int64(f.PageSize))
		if f.Page > 1 {
			opts.SetSkip(int64((f.Page - 1) * f.PageSize))
		}
	}

	cur, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) SaveProduct(ctx context.Context, p *domain.Product) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *CatalogRepo) FindUpsell(ctx context.Context, id string) (*domain.Upsell, error) {
	var u domain.Upsell
	err := r.upsells.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get upsell: %w", err)
	}
	return &u, nil
}

func (r *CatalogRepo) UpsellExists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.upsells, id)
}

func (r *CatalogRepo) ListUpsells(ctx context.Context) ([]domain.Upsell, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.upsells.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upsells: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Upsell
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode upsells: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) SaveUpsell(ctx context.Context, u *domain.Upsell) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.upsells.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts); err != nil {
		return fmt.Errorf("failed to save upsell: %w", err)
	}
	return nil
}

func exists(ctx context.Context, col *mongo.Collection, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	n, err := col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", col.Name(), err)
	}
	return n > 0, nil
}
