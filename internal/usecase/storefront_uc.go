package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/velorahq/velora/internal/domain"
)

const campaignDateLayout = "2006-01-02"

// StorefrontUC owns the page hero singleton and the collection list shown
// on the admin storefront screen.
type StorefrontUC struct {
	Storefront domain.StorefrontRepo
	Views      domain.ViewRefresher
}

// GetPageHero returns the hero singleton, hidden and empty before the
// first save.
func (uc *StorefrontUC) GetPageHero(ctx context.Context) (*domain.PageHero, error) {
	h, err := uc.Storefront.GetPageHero(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.PageHero{Visibility: domain.VisibilityHidden}, nil
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// UpdatePageHero overwrites the hero singleton. The hero cannot be made
// visible while title, destination or either image is missing.
func (uc *StorefrontUC) UpdatePageHero(ctx context.Context, in domain.PageHero) domain.ActionResult {
	if in.Visibility != domain.VisibilityVisible && in.Visibility != domain.VisibilityHidden {
		return domain.Error("Invalid page hero data provided")
	}
	if in.Visibility == domain.VisibilityVisible &&
		(in.Title == "" || in.DestinationURL == "" || in.Images.Desktop == "" || in.Images.Mobile == "") {
		return domain.Error("Page hero can't be visible until title, destination and images are set")
	}

	if err := uc.Storefront.SavePageHero(ctx, &in); err != nil {
		log.Error().Err(err).Msg("save page hero")
		return domain.Error("Failed to update page hero")
	}

	if uc.Views != nil {
		uc.Views.Refresh(ctx, pathHome)
	}
	return domain.Success("Page hero updated successfully")
}

// ListCollections returns collections sorted by display index.
func (uc *StorefrontUC) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return uc.Storefront.ListCollections(ctx)
}

type CreateCollectionInput struct {
	Title            string                  `json:"title"`
	Slug             string                  `json:"slug"`
	CollectionType   domain.CollectionType   `json:"collectionType"`
	CampaignDuration domain.CampaignDuration `json:"campaignDuration"`
}

// CreateCollection appends a hidden collection at the end of the display
// order.
func (uc *StorefrontUC) CreateCollection(ctx context.Context, in CreateCollectionInput) domain.ActionResult {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Error("Collection title is required")
	}
	if in.CollectionType != domain.CollectionFeatured && in.CollectionType != domain.CollectionBanner {
		return domain.Error("Invalid collection type")
	}
	if res, ok := checkCampaign(in.CampaignDuration); !ok {
		return res
	}

	slug := in.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(in.Title), " ", "-"))
	}

	count, err := uc.Storefront.CountCollections(ctx)
	if err != nil {
		log.Error().Err(err).Msg("count collections")
		return domain.Error("Failed to create collection")
	}

	now := time.Now()
	c := &domain.Collection{
		ID:               uuid.New().String(),
		Index:            int(count) + 1,
		Title:            in.Title,
		Slug:             slug,
		CampaignDuration: in.CampaignDuration,
		Visibility:       domain.CollectionHidden,
		CollectionType:   in.CollectionType,
		ProductIDs:       []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.Storefront.SaveCollection(ctx, c); err != nil {
		log.Error().Err(err).Msg("save collection")
		return domain.Error("Failed to create collection")
	}

	if uc.Views != nil {
		uc.Views.Refresh(ctx, pathStorefront)
	}
	return domain.Success("Collection created successfully")
}

// UpdateCampaign replaces a collection's campaign window.
func (uc *StorefrontUC) UpdateCampaign(ctx context.Context, id string, d domain.CampaignDuration) domain.ActionResult {
	if res, ok := checkCampaign(d); !ok {
		return res
	}

	c, err := uc.Storefront.FindCollection(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Error("Collection not found")
	}
	if err != nil {
		log.Error().Err(err).Str("collection_id", id).Msg("find collection")
		return domain.Error("Failed to update collection")
	}

	c.CampaignDuration = d
	c.UpdatedAt = time.Now()
	if err := uc.Storefront.SaveCollection(ctx, c); err != nil {
		log.Error().Err(err).Str("collection_id", id).Msg("save collection")
		return domain.Error("Failed to update collection")
	}

	if uc.Views != nil {
		uc.Views.Refresh(ctx, pathStorefront)
	}
	return domain.Success("Campaign duration updated")
}

// DeleteCollection removes a collection from the storefront.
func (uc *StorefrontUC) DeleteCollection(ctx context.Context, id string) domain.ActionResult {
	if err := uc.Storefront.DeleteCollection(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Error("Collection not found")
		}
		log.Error().Err(err).Str("collection_id", id).Msg("delete collection")
		return domain.Error("Failed to delete collection")
	}

	if uc.Views != nil {
		uc.Views.Refresh(ctx, pathStorefront)
	}
	return domain.Success("Collection deleted")
}

func checkCampaign(d domain.CampaignDuration) (domain.ActionResult, bool) {
	start, err := time.Parse(campaignDateLayout, d.StartDate)
	if err != nil {
		return domain.Error("Invalid campaign start date"), false
	}
	end, err := time.Parse(campaignDateLayout, d.EndDate)
	if err != nil {
		return domain.Error("Invalid campaign end date"), false
	}
	if !start.Before(end) {
		return domain.Error("Start date must be before end date"), false
	}
	return domain.ActionResult{}, true
}
