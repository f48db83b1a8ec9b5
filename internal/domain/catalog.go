package domain

import (
	"context"
	"time"
)

type ProductVisibility string

const (
	ProductPublished ProductVisibility = "PUBLISHED"
	ProductHidden    ProductVisibility = "HIDDEN"
	ProductDraft     ProductVisibility = "DRAFT"
)

type Product struct {
	ID         string            `bson:"_id,omitempty" json:"id"`
	Name       string            `bson:"name" json:"name"`
	Slug       string            `bson:"slug" json:"slug"`
	BasePrice  float64           `bson:"basePrice" json:"basePrice"`
	MainImage  string            `bson:"mainImage" json:"mainImage"`
	Images     []string          `bson:"images,omitempty" json:"images,omitempty"`
	Sizes      []string          `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors     []string          `bson:"colors,omitempty" json:"colors,omitempty"`
	Visibility ProductVisibility `bson:"visibility" json:"visibility"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// UpsellProduct is a member of an upsell bundle, denormalized for display.
type UpsellProduct struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	BasePrice float64 `bson:"basePrice" json:"basePrice"`
}

// Upsell is a bundled secondary offer attachable to a base product.
type Upsell struct {
	ID         string            `bson:"_id,omitempty" json:"id"`
	MainImage  string            `bson:"mainImage" json:"mainImage"`
	Price      float64           `bson:"price" json:"price"`
	Visibility ProductVisibility `bson:"visibility" json:"visibility"`
	Products   []UpsellProduct   `bson:"products" json:"products"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

type ProductFilter struct {
	IDs        []string
	Visibility ProductVisibility
	Query      string
	Page       int
	PageSize   int
}

// CatalogRepo owns product and upsell documents. Find methods return
// ErrNotFound; the Exists probes are the cart-validation fast path.
type CatalogRepo interface {
	FindProduct(ctx context.Context, id string) (*Product, error)
	ProductExists(ctx context.Context, id string) (bool, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]Product, error)
	SaveProduct(ctx context.Context, p *Product) error

	FindUpsell(ctx context.Context, id string) (*Upsell, error)
	UpsellExists(ctx context.Context, id string) (bool, error)
	ListUpsells(ctx context.Context) ([]Upsell, error)
	SaveUpsell(ctx context.Context, u *Upsell) error
}
