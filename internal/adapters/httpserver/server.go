package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/velorahq/velora/internal/domain"
	"github.com/velorahq/velora/internal/usecase"
	"github.com/velorahq/velora/internal/viewstate"
)

const (
	deviceCookieName   = "device_identifier"
	deviceCookieMaxAge = 30 * 24 * 60 * 60
)

type Server struct {
	mux        *http.ServeMux
	cart       *usecase.CartUC
	categories *usecase.CategoryUC
	storefront *usecase.StorefrontUC
	catalog    *usecase.CatalogUC
	overlays   *viewstate.Store
	oauthCfg   *oauth2.Config

	adminAllowed map[string]struct{}
}

func New(cart *usecase.CartUC, categories *usecase.CategoryUC, storefront *usecase.StorefrontUC, catalog *usecase.CatalogUC, overlays *viewstate.Store, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		cart:       cart,
		categories: categories,
		storefront: storefront,
		catalog:    catalog,
		overlays:   overlays,
		oauthCfg:   oauthCfg,
	}

	allowed := map[string]struct{}{}
	if raw := os.Getenv("ADMIN_ALLOWED_EMAILS"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				allowed[e] = struct{}{}
			}
		}
	}
	s.adminAllowed = allowed

	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	s.mux.HandleFunc("/api/cart", s.handleCartGet)
	s.mux.HandleFunc("/api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/categories", s.handleCategoriesGet)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)

	s.mux.HandleFunc("/admin/categories", s.handleAdminCategories)
	s.mux.HandleFunc("/admin/page-hero", s.handleAdminPageHero)
	s.mux.HandleFunc("/admin/collections", s.handleAdminCollections)
	s.mux.HandleFunc("/admin/collections/", s.handleAdminCollectionByID)
	s.mux.HandleFunc("/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/admin/products/", s.handleAdminProductByID)
	s.mux.HandleFunc("/admin/upsells", s.handleAdminUpsells)
	s.mux.HandleFunc("/admin/upsells/", s.handleAdminUpsellByID)
	s.mux.HandleFunc("/admin/export/products.xlsx", s.handleExportProducts)
	s.mux.HandleFunc("/admin/ui/overlays", s.handleOverlays)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- cart ---

func deviceIdentifier(r *http.Request) string {
	c, err := r.Cookie(deviceCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func setDeviceIdentifier(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   deviceCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	cart, err := s.cart.GetCart(r.Context(), deviceIdentifier(r))
	if err != nil {
		http.Error(w, "cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var in domain.AddToCartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusOK, domain.Error("Invalid cart item data provided"))
		return
	}

	res, token := s.cart.AddToCart(r.Context(), deviceIdentifier(r), in)
	if token != "" {
		setDeviceIdentifier(w, token)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var in domain.RemoveFromCartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusOK, domain.Error("Invalid cart item data provided"))
		return
	}
	writeJSON(w, http.StatusOK, s.cart.RemoveFromCart(r.Context(), deviceIdentifier(r), in))
}

// --- storefront reads ---

func (s *Server) handleCategoriesGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	sc, err := s.categories.GetStoreCategories(r.Context())
	if err != nil {
		http.Error(w, "categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// --- admin ---

func (s *Server) handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		sc, err := s.categories.GetStoreCategories(r.Context())
		if err != nil {
			http.Error(w, "categories", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	case http.MethodPost:
		var in usecase.UpdateCategoriesInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid categories data provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.categories.UpdateCategories(r.Context(), in))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminPageHero(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h, err := s.storefront.GetPageHero(r.Context())
		if err != nil {
			http.Error(w, "page hero", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, h)
	case http.MethodPost:
		var in domain.PageHero
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid page hero data provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.storefront.UpdatePageHero(r.Context(), in))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminCollections(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.storefront.ListCollections(r.Context())
		if err != nil {
			http.Error(w, "collections", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in usecase.CreateCollectionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid collection data provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.storefront.CreateCollection(r.Context(), in))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminCollectionByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/admin/collections/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in domain.CampaignDuration
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid campaign duration provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.storefront.UpdateCampaign(r.Context(), id, in))
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, s.storefront.DeleteCollection(r.Context(), id))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		qv := r.URL.Query()
		page, _ := strconv.Atoi(qv.Get("page"))
		if page < 1 {
			page = 1
		}
		list, err := s.catalog.ListProducts(r.Context(), domain.ProductFilter{
			Query: qv.Get("q"),
			Page:  page,
		})
		if err != nil {
			http.Error(w, "products", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in usecase.CreateProductInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid product data provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.catalog.CreateProduct(r.Context(), in))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminUpsells(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.catalog.ListUpsells(r.Context())
		if err != nil {
			http.Error(w, "upsells", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in usecase.CreateUpsellInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusOK, domain.Error("Invalid upsell data provided"))
			return
		}
		writeJSON(w, http.StatusOK, s.catalog.CreateUpsell(r.Context(), in))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminProductByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	p, err := s.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAdminUpsellByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/admin/upsells/")
	u, err := s.catalog.GetUpsell(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "upsell", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleOverlays(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.overlays.Snapshot())
	case http.MethodPost:
		var in struct {
			Page    string `json:"page"`
			Overlay string `json:"overlay"`
			Visible bool   `json:"visible"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Page == "" || in.Overlay == "" {
			http.Error(w, "overlay", http.StatusBadRequest)
			return
		}
		if in.Visible {
			s.overlays.Show(in.Page, in.Overlay)
		} else {
			s.overlays.Hide(in.Page, in.Overlay)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"visible": in.Visible})
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
