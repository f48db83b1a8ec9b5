package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/velorahq/velora/internal/domain"
)

const pathStorefront = "/storefront"

// CategoryUC owns the storeCategories singleton.
type CategoryUC struct {
	Storefront domain.StorefrontRepo
	Views      domain.ViewRefresher
}

type UpdateCategoriesInput struct {
	ShowOnPublicSite bool              `json:"showOnPublicSite"`
	Categories       []domain.Category `json:"categories"`
}

// UpdateCategories validates and persists the storefront category list as a
// full overwrite of the singleton document. The category section may not be
// shown publicly while every category is hidden.
func (uc *CategoryUC) UpdateCategories(ctx context.Context, in UpdateCategoriesInput) domain.ActionResult {
	if in.Categories == nil {
		return domain.Error("Invalid categories data provided")
	}

	for _, c := range in.Categories {
		if c.Name == "" || c.Image == "" ||
			(c.Visibility != domain.VisibilityVisible && c.Visibility != domain.VisibilityHidden) {
			name := c.Name
			if name == "" {
				name = "unknown category"
			}
			return domain.Error("Invalid category data for " + name)
		}
	}

	if in.ShowOnPublicSite {
		allHidden := true
		for _, c := range in.Categories {
			if c.Visibility == domain.VisibilityVisible {
				allHidden = false
				break
			}
		}
		if allHidden {
			return domain.Error("Cannot show categories section when all categories are hidden")
		}
	}

	sorted := make([]domain.Category, len(in.Categories))
	copy(sorted, in.Categories)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	sc := &domain.StoreCategories{
		ShowOnPublicSite: in.ShowOnPublicSite,
		Categories:       sorted,
	}
	if err := uc.Storefront.SaveCategories(ctx, sc); err != nil {
		log.Error().Err(err).Msg("save categories")
		return domain.Error("Failed to update categories")
	}

	if uc.Views != nil {
		uc.Views.Refresh(ctx, pathStorefront)
	}
	return domain.Success("Categories updated successfully")
}

// GetStoreCategories returns the singleton, defaulting to a hidden empty
// section before the first save.
func (uc *CategoryUC) GetStoreCategories(ctx context.Context) (*domain.StoreCategories, error) {
	sc, err := uc.Storefront.GetCategories(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.StoreCategories{Categories: []domain.Category{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}
