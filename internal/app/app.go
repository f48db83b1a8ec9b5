package app

import (
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/velorahq/velora/internal/adapters/cache"
	"github.com/velorahq/velora/internal/adapters/httpserver"
	"github.com/velorahq/velora/internal/adapters/repo/mongodb"
	"github.com/velorahq/velora/internal/usecase"
	"github.com/velorahq/velora/internal/viewstate"
)

type App struct {
	DB           *mongo.Database
	CartUC       *usecase.CartUC
	CategoryUC   *usecase.CategoryUC
	StorefrontUC *usecase.StorefrontUC
	CatalogUC    *usecase.CatalogUC
	Overlays     *viewstate.Store
	OAuthConfig  *oauth2.Config
}

// NewApp wires repositories, use cases and the optional view cache. A nil
// redis client is fine: view invalidation degrades to a no-op.
func NewApp(db *mongo.Database, rdb *redis.Client) (*App, error) {
	cartRepo := mongodb.NewCartRepo(db)
	catalogRepo := mongodb.NewCatalogRepo(db)
	storefrontRepo := mongodb.NewStorefrontRepo(db)

	views := cache.NewViewCache(rdb)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app := &App{
		DB:          db,
		Overlays:    viewstate.New(),
		OAuthConfig: oauthCfg,
	}
	app.CartUC = &usecase.CartUC{Carts: cartRepo, Catalog: catalogRepo, Views: views}
	app.CategoryUC = &usecase.CategoryUC{Storefront: storefrontRepo, Views: views}
	app.StorefrontUC = &usecase.StorefrontUC{Storefront: storefrontRepo, Views: views}
	app.CatalogUC = &usecase.CatalogUC{Catalog: catalogRepo, Views: views}

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CartUC, a.CategoryUC, a.StorefrontUC, a.CatalogUC, a.Overlays, a.OAuthConfig)
}
