package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/velorahq/velora/internal/domain"
)

const (
	msgItemAdded     = "Item added to cart"
	msgItemInCart    = "Item already in cart"
	msgItemRemoved   = "Item removed from cart"
	msgCartNotFound  = "Cart not found"
	msgReloadAndTry  = "Please reload the page and try again"
	pathHome         = "/"
	pathProductPages = "/product"
	pathCart         = "/cart"
)

// CartUC implements the shopping-cart actions. Writes rely on the document
// store's per-document atomicity; the read-decide-write window is not
// locked, so two concurrent adds for one owner can both pass the duplicate
// check and land as two successive writes (last write wins on items).
type CartUC struct {
	Carts   domain.CartRepo
	Catalog domain.CatalogRepo
	Views   domain.ViewRefresher

	sfg singleflight.Group
}

// AddToCart appends an item to the shopper's cart, creating cart and owner
// token on first use. The second return is the newly issued owner token,
// empty when the existing identity was kept.
func (uc *CartUC) AddToCart(ctx context.Context, ownerToken string, in domain.AddToCartInput) (domain.ActionResult, string) {
	if err := in.Validate(); err != nil {
		return domain.Error("Invalid cart item: " + err.Error()), ""
	}

	if ownerToken == "" {
		return uc.createCart(ctx, in)
	}

	cart, err := uc.Carts.FindByOwner(ctx, ownerToken)
	if errors.Is(err, domain.ErrCartNotFound) {
		// stale cookie with no matching document: start over with a
		// fresh identity, same as the no-cookie path
		return uc.createCart(ctx, in)
	}
	if err != nil {
		log.Error().Err(err).Msg("cart lookup")
		return domain.Error(msgReloadAndTry), ""
	}

	candidate := in.Item(len(cart.Items) + 1)
	if cart.Contains(candidate) {
		return domain.Error(msgItemInCart), ""
	}

	items := append(cart.Items, candidate)
	if err := uc.Carts.ReplaceItems(ctx, cart.ID, items); err != nil {
		log.Error().Err(err).Str("cart_id", cart.ID).Msg("cart update")
		return domain.Error(msgReloadAndTry), ""
	}

	uc.refresh(ctx, pathHome, pathProductPages)
	return domain.Success(msgItemAdded), ""
}

func (uc *CartUC) createCart(ctx context.Context, in domain.AddToCartInput) (domain.ActionResult, string) {
	token := domain.NewOwnerToken()
	cart := &domain.Cart{
		ID:               domain.GenerateID(),
		DeviceIdentifier: token,
		Items:            []domain.CartItem{in.Item(1)},
	}
	if err := uc.Carts.Create(ctx, cart); err != nil {
		log.Error().Err(err).Msg("cart create")
		return domain.Error(msgReloadAndTry), ""
	}

	uc.refresh(ctx, pathHome, pathProductPages)
	return domain.Success(msgItemAdded), token
}

// RemoveFromCart drops product lines by variantId and upsell lines by
// baseUpsellId. Removing a key that is not present is a no-op success.
func (uc *CartUC) RemoveFromCart(ctx context.Context, ownerToken string, in domain.RemoveFromCartInput) domain.ActionResult {
	if err := in.Validate(); err != nil {
		return domain.Error("Invalid cart item: " + err.Error())
	}
	if ownerToken == "" {
		return domain.Error(msgCartNotFound)
	}

	cart, err := uc.Carts.FindByOwner(ctx, ownerToken)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.Error(msgCartNotFound)
	}
	if err != nil {
		log.Error().Err(err).Msg("cart lookup")
		return domain.Error(msgReloadAndTry)
	}

	kept := make([]domain.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if in.Type == domain.ItemProduct && it.Type == domain.ItemProduct && it.VariantID == in.ID {
			continue
		}
		if in.Type == domain.ItemUpsell && it.Type == domain.ItemUpsell && it.BaseUpsellID == in.ID {
			continue
		}
		kept = append(kept, it)
	}
	kept, _ = domain.Reindex(kept)

	if err := uc.Carts.ReplaceItems(ctx, cart.ID, kept); err != nil {
		log.Error().Err(err).Str("cart_id", cart.ID).Msg("cart update")
		return domain.Error(msgReloadAndTry)
	}

	uc.refresh(ctx, pathCart)
	return domain.Success(msgItemRemoved)
}

// GetCart is the read path. It soft-fails to nil on missing identity, empty
// query result or any lookup error. Every read cross-checks the stored
// items against the live catalog, drops dangling references and renumbers
// the rest; the rewrite is best-effort and the validated in-memory list is
// returned even when persisting it failed. Re-validation of an already
// clean cart performs no write.
func (uc *CartUC) GetCart(ctx context.Context, ownerToken string) (*domain.Cart, error) {
	if ownerToken == "" {
		return nil, nil
	}

	v, err, _ := uc.sfg.Do(ownerToken, func() (interface{}, error) {
		cart, err := uc.Carts.FindByOwner(ctx, ownerToken)
		if err != nil {
			if !errors.Is(err, domain.ErrCartNotFound) {
				log.Error().Err(err).Msg("cart fetch")
			}
			return (*domain.Cart)(nil), nil
		}

		valid, err := uc.validItems(ctx, cart.Items)
		if err != nil {
			log.Error().Err(err).Str("cart_id", cart.ID).Msg("cart validation")
			return (*domain.Cart)(nil), nil
		}

		if len(valid) != len(cart.Items) {
			valid, _ = domain.Reindex(valid)
			if err := uc.Carts.ReplaceItems(ctx, cart.ID, valid); err != nil {
				// a future read re-attempts the same cleanup
				log.Warn().Err(err).Str("cart_id", cart.ID).Msg("cart cleanup not persisted")
			} else {
				uc.refresh(ctx, pathCart)
			}
		}

		cart.Items = valid
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (uc *CartUC) validItems(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	valid := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		var (
			ok  bool
			err error
		)
		switch it.Type {
		case domain.ItemProduct:
			ok, err = uc.Catalog.ProductExists(ctx, it.BaseProductID)
		case domain.ItemUpsell:
			ok, err = uc.Catalog.UpsellExists(ctx, it.BaseUpsellID)
		}
		if err != nil {
			return nil, err
		}
		if ok {
			valid = append(valid, it)
		}
	}
	return valid, nil
}

func (uc *CartUC) refresh(ctx context.Context, paths ...string) {
	if uc.Views != nil {
		uc.Views.Refresh(ctx, paths...)
	}
}
