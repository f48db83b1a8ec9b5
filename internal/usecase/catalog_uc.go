package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velorahq/velora/internal/domain"
)

// CatalogUC manages products and upsells from the admin console.
type CatalogUC struct {
	Catalog domain.CatalogRepo
	Views   domain.ViewRefresher
}

type CreateProductInput struct {
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	BasePrice float64  `json:"basePrice"`
	MainImage string   `json:"mainImage"`
	Images    []string `json:"images,omitempty"`
	Sizes     []string `json:"sizes,omitempty"`
	Colors    []string `json:"colors,omitempty"`
}

// CreateProduct stores a new product as a draft; the admin publishes it
// separately once images and options are complete.
func (uc *CatalogUC) CreateProduct(ctx context.Context, in CreateProductInput) domain.ActionResult {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Error("Product name is required")
	}
	if in.BasePrice <= 0 {
		return domain.Error("Product price must be positive")
	}

	slug := in.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(in.Name), " ", "-"))
	}

	now := time.Now()
	p := &domain.Product{
		ID:         domain.GenerateID(),
		Name:       in.Name,
		Slug:       slug,
		BasePrice:  in.BasePrice,
		MainImage:  in.MainImage,
		Images:     in.Images,
		Sizes:      in.Sizes,
		Colors:     in.Colors,
		Visibility: domain.ProductDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Catalog.SaveProduct(ctx, p); err != nil {
		log.Error().Err(err).Msg("save product")
		return domain.Error("Failed to create product")
	}
	return domain.Success("Product created successfully")
}

func (uc *CatalogUC) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Catalog.FindProduct(ctx, id)
}

func (uc *CatalogUC) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Catalog.ListProducts(ctx, f)
}

// ExportProducts returns the whole catalog, unpaged, for the admin xlsx
// export.
func (uc *CatalogUC) ExportProducts(ctx context.Context) ([]domain.Product, error) {
	return uc.Catalog.ListProducts(ctx, domain.ProductFilter{})
}

func (uc *CatalogUC) GetUpsell(ctx context.Context, id string) (*domain.Upsell, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Catalog.FindUpsell(ctx, id)
}

type CreateUpsellInput struct {
	MainImage  string   `json:"mainImage"`
	ProductIDs []string `json:"productIds"`
}

// CreateUpsell bundles existing products into an upsell offer. Every member
// must resolve against the catalog; the bundle price is the sum of member
// base prices.
func (uc *CatalogUC) CreateUpsell(ctx context.Context, in CreateUpsellInput) domain.ActionResult {
	if len(in.ProductIDs) == 0 {
		return domain.Error("Upsell requires at least one product")
	}

	members := make([]domain.UpsellProduct, 0, len(in.ProductIDs))
	var price float64
	for _, id := range in.ProductIDs {
		p, err := uc.Catalog.FindProduct(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Error("Product " + id + " not found")
		}
		if err != nil {
			log.Error().Err(err).Str("product_id", id).Msg("find product")
			return domain.Error("Failed to create upsell")
		}
		members = append(members, domain.UpsellProduct{ID: p.ID, Name: p.Name, BasePrice: p.BasePrice})
		price += p.BasePrice
	}

	now := time.Now()
	u := &domain.Upsell{
		ID:         domain.GenerateID(),
		MainImage:  in.MainImage,
		Price:      price,
		Visibility: domain.ProductDraft,
		Products:   members,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Catalog.SaveUpsell(ctx, u); err != nil {
		log.Error().Err(err).Msg("save upsell")
		return domain.Error("Failed to create upsell")
	}
	return domain.Success("Upsell created successfully")
}

func (uc *CatalogUC) ListUpsells(ctx context.Context) ([]domain.Upsell, error) {
	return uc.Catalog.ListUpsells(ctx)
}
