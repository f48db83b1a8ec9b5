package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorahq/velora/internal/domain"
)

func TestGetPageHeroDefaultsHidden(t *testing.T) {
	uc := &StorefrontUC{Storefront: newMockStorefrontRepo()}

	h, err := uc.GetPageHero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityHidden, h.Visibility)
	assert.Empty(t, h.Title)
}

func TestUpdatePageHeroVisibleRequiresContent(t *testing.T) {
	repo := newMockStorefrontRepo()
	uc := &StorefrontUC{Storefront: repo}

	res := uc.UpdatePageHero(context.Background(), domain.PageHero{
		Visibility: domain.VisibilityVisible,
		Title:      "Summer drop",
	})
	assert.Equal(t, domain.AlertError, res.Type)
	assert.Equal(t, "Page hero can't be visible until title, destination and images are set", res.Message)
	assert.Nil(t, repo.hero)

	res = uc.UpdatePageHero(context.Background(), domain.PageHero{
		Visibility:     domain.VisibilityVisible,
		Title:          "Summer drop",
		DestinationURL: "/shop/summer",
		Images:         domain.HeroImages{Desktop: "/img/hero-d.webp", Mobile: "/img/hero-m.webp"},
	})
	assert.Equal(t, domain.AlertSuccess, res.Type)
	assert.Equal(t, "Page hero updated successfully", res.Message)
	require.NotNil(t, repo.hero)
	assert.Equal(t, "Summer drop", repo.hero.Title)
}

func TestUpdatePageHeroHiddenAllowsPartialContent(t *testing.T) {
	repo := newMockStorefrontRepo()
	uc := &StorefrontUC{Storefront: repo}

	res := uc.UpdatePageHero(context.Background(), domain.PageHero{Visibility: domain.VisibilityHidden})
	assert.Equal(t, domain.AlertSuccess, res.Type)
}

func TestUpdatePageHeroInvalidVisibility(t *testing.T) {
	uc := &StorefrontUC{Storefront: newMockStorefrontRepo()}

	res := uc.UpdatePageHero(context.Background(), domain.PageHero{Visibility: "SHOWN"})
	assert.Equal(t, domain.AlertError, res.Type)
	assert.Equal(t, "Invalid page hero data provided", res.Message)
}

func TestCreateCollection(t *testing.T) {
	repo := newMockStorefrontRepo()
	views := &recordingRefresher{}
	uc := &StorefrontUC{Storefront: repo, Views: views}

	res := uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:            "Summer Drop",
		CollectionType:   domain.CollectionFeatured,
		CampaignDuration: domain.CampaignDuration{StartDate: "2026-06-01", EndDate: "2026-08-31"},
	})
	require.Equal(t, domain.AlertSuccess, res.Type)

	list, err := uc.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	c := list[0]
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, "summer-drop", c.Slug)
	assert.Equal(t, domain.CollectionHidden, c.Visibility, "new collections start hidden")
	assert.NotNil(t, c.ProductIDs)
	assert.Empty(t, c.ProductIDs)
	assert.Contains(t, views.seen(), "/storefront")

	res = uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:            "Winter Drop",
		CollectionType:   domain.CollectionBanner,
		CampaignDuration: domain.CampaignDuration{StartDate: "2026-12-01", EndDate: "2027-02-28"},
	})
	require.Equal(t, domain.AlertSuccess, res.Type)

	list, _ = uc.ListCollections(context.Background())
	assert.Len(t, list, 2)
}

func TestCreateCollectionValidation(t *testing.T) {
	uc := &StorefrontUC{Storefront: newMockStorefrontRepo()}

	res := uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:          "  ",
		CollectionType: domain.CollectionFeatured,
	})
	assert.Equal(t, domain.AlertError, res.Type)

	res = uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:            "Drop",
		CollectionType:   "CAROUSEL",
		CampaignDuration: domain.CampaignDuration{StartDate: "2026-06-01", EndDate: "2026-08-31"},
	})
	assert.Equal(t, domain.AlertError, res.Type)
	assert.Equal(t, "Invalid collection type", res.Message)
}

func TestCampaignDateValidation(t *testing.T) {
	repo := newMockStorefrontRepo()
	uc := &StorefrontUC{Storefront: repo}

	base := CreateCollectionInput{Title: "Drop", CollectionType: domain.CollectionFeatured}

	in := base
	in.CampaignDuration = domain.CampaignDuration{StartDate: "June 1", EndDate: "2026-08-31"}
	res := uc.CreateCollection(context.Background(), in)
	assert.Equal(t, "Invalid campaign start date", res.Message)

	in = base
	in.CampaignDuration = domain.CampaignDuration{StartDate: "2026-06-01", EndDate: ""}
	res = uc.CreateCollection(context.Background(), in)
	assert.Equal(t, "Invalid campaign end date", res.Message)

	in = base
	in.CampaignDuration = domain.CampaignDuration{StartDate: "2026-08-31", EndDate: "2026-06-01"}
	res = uc.CreateCollection(context.Background(), in)
	assert.Equal(t, "Start date must be before end date", res.Message)

	in = base
	in.CampaignDuration = domain.CampaignDuration{StartDate: "2026-06-01", EndDate: "2026-06-01"}
	res = uc.CreateCollection(context.Background(), in)
	assert.Equal(t, "Start date must be before end date", res.Message)
}

func TestUpdateCampaign(t *testing.T) {
	repo := newMockStorefrontRepo()
	uc := &StorefrontUC{Storefront: repo}

	_ = uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:            "Drop",
		CollectionType:   domain.CollectionFeatured,
		CampaignDuration: domain.CampaignDuration{StartDate: "2026-06-01", EndDate: "2026-08-31"},
	})
	list, _ := uc.ListCollections(context.Background())
	require.Len(t, list, 1)

	res := uc.UpdateCampaign(context.Background(), list[0].ID, domain.CampaignDuration{StartDate: "2026-07-01", EndDate: "2026-09-30"})
	assert.Equal(t, domain.AlertSuccess, res.Type)

	updated, err := repo.FindCollection(context.Background(), list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", updated.CampaignDuration.StartDate)

	res = uc.UpdateCampaign(context.Background(), "missing", domain.CampaignDuration{StartDate: "2026-07-01", EndDate: "2026-09-30"})
	assert.Equal(t, domain.AlertError, res.Type)
	assert.Equal(t, "Collection not found", res.Message)
}

func TestDeleteCollection(t *testing.T) {
	repo := newMockStorefrontRepo()
	uc := &StorefrontUC{Storefront: repo}

	_ = uc.CreateCollection(context.Background(), CreateCollectionInput{
		Title:            "Drop",
		CollectionType:   domain.CollectionFeatured,
		CampaignDuration: domain.CampaignDuration{StartDate: "2026-06-01", EndDate: "2026-08-31"},
	})
	list, _ := uc.ListCollections(context.Background())
	require.Len(t, list, 1)

	res := uc.DeleteCollection(context.Background(), list[0].ID)
	assert.Equal(t, domain.AlertSuccess, res.Type)

	list, _ = uc.ListCollections(context.Background())
	assert.Empty(t, list)

	res = uc.DeleteCollection(context.Background(), "missing")
	assert.Equal(t, domain.AlertError, res.Type)
	assert.Equal(t, "Collection not found", res.Message)
}
