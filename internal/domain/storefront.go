package domain

import (
	"context"
	"time"
)

type Visibility string

const (
	VisibilityVisible Visibility = "VISIBLE"
	VisibilityHidden  Visibility = "HIDDEN"
)

// Category is one entry of the storefront category strip.
type Category struct {
	Index      int        `bson:"index" json:"index"`
	Name       string     `bson:"name" json:"name"`
	Image      string     `bson:"image" json:"image"`
	Visibility Visibility `bson:"visibility" json:"visibility"`
}

// StoreCategories is the singleton document behind the category section.
// Categories are persisted sorted by Index ascending.
type StoreCategories struct {
	ShowOnPublicSite bool       `bson:"showOnPublicSite" json:"showOnPublicSite"`
	Categories       []Category `bson:"categories" json:"categories"`
}

// HeroImages holds the per-breakpoint hero artwork.
type HeroImages struct {
	Desktop string `bson:"desktop" json:"desktop"`
	Mobile  string `bson:"mobile" json:"mobile"`
}

// PageHero is the singleton document behind the storefront hero banner.
type PageHero struct {
	Images         HeroImages `bson:"images" json:"images"`
	Title          string     `bson:"title" json:"title"`
	DestinationURL string     `bson:"destinationUrl" json:"destinationUrl"`
	Visibility     Visibility `bson:"visibility" json:"visibility"`
}

type CollectionVisibility string

const (
	CollectionPublished CollectionVisibility = "PUBLISHED"
	CollectionHidden    CollectionVisibility = "HIDDEN"
)

type CollectionType string

const (
	CollectionFeatured CollectionType = "FEATURED"
	CollectionBanner   CollectionType = "BANNER"
)

// CampaignDuration bounds the window a collection is promoted in, dates
// formatted as 2006-01-02.
type CampaignDuration struct {
	StartDate string `bson:"startDate" json:"startDate"`
	EndDate   string `bson:"endDate" json:"endDate"`
}

type Collection struct {
	ID               string               `bson:"_id,omitempty" json:"id"`
	Index            int                  `bson:"index" json:"index"`
	Title            string               `bson:"title" json:"title"`
	Slug             string               `bson:"slug" json:"slug"`
	CampaignDuration CampaignDuration     `bson:"campaignDuration" json:"campaignDuration"`
	Visibility       CollectionVisibility `bson:"visibility" json:"visibility"`
	CollectionType   CollectionType       `bson:"collectionType" json:"collectionType"`
	ProductIDs       []string             `bson:"products" json:"products"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// StorefrontRepo owns the storefront singletons and the collection list.
// Singleton reads return ErrNotFound until the document is first written.
type StorefrontRepo interface {
	GetCategories(ctx context.Context) (*StoreCategories, error)
	SaveCategories(ctx context.Context, sc *StoreCategories) error

	GetPageHero(ctx context.Context) (*PageHero, error)
	SavePageHero(ctx context.Context, h *PageHero) error

	ListCollections(ctx context.Context) ([]Collection, error)
	FindCollection(ctx context.Context, id string) (*Collection, error)
	SaveCollection(ctx context.Context, c *Collection) error
	DeleteCollection(ctx context.Context, id string) error
	CountCollections(ctx context.Context) (int64, error)
}

// ViewRefresher invalidates cached storefront views after a mutation.
// Implementations must never fail the calling action; errors stay inside.
type ViewRefresher interface {
	Refresh(ctx context.Context, paths ...string)
}
