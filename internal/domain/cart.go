package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrCartNotFound = errors.New("cart not found")
)

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemUpsell  ItemType = "upsell"
)

// SelectedProduct is one positional product choice inside an upsell item.
type SelectedProduct struct {
	ID    string `bson:"id" json:"id"`
	Size  string `bson:"size" json:"size"`
	Color string `bson:"color" json:"color"`
}

// CartItem is polymorphic over ItemType. Product items carry
// BaseProductID/Size/Color, upsell items carry BaseUpsellID/Products.
// VariantID distinguishes line items within one cart; Index is the 1-based
// display position.
type CartItem struct {
	Type          ItemType          `bson:"type" json:"type"`
	BaseProductID string            `bson:"baseProductId,omitempty" json:"baseProductId,omitempty"`
	Size          string            `bson:"size,omitempty" json:"size,omitempty"`
	Color         string            `bson:"color,omitempty" json:"color,omitempty"`
	BaseUpsellID  string            `bson:"baseUpsellId,omitempty" json:"baseUpsellId,omitempty"`
	Products      []SelectedProduct `bson:"products,omitempty" json:"products,omitempty"`
	VariantID     string            `bson:"variantId" json:"variantId"`
	Index         int               `bson:"index" json:"index"`
}

type Cart struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	DeviceIdentifier string     `bson:"device_identifier" json:"device_identifier"`
	Items            []CartItem `bson:"items" json:"items"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Contains reports whether the cart already holds a duplicate of candidate.
// Product items are duplicates when baseProductId, size and color all match.
// Upsell items are duplicates when baseUpsellId matches and every positional
// product matches size and color.
func (c *Cart) Contains(candidate CartItem) bool {
	if c == nil {
		return false
	}
	for _, it := range c.Items {
		if it.Type != candidate.Type {
			continue
		}
		switch candidate.Type {
		case ItemProduct:
			if it.BaseProductID == candidate.BaseProductID &&
				it.Size == candidate.Size &&
				it.Color == candidate.Color {
				return true
			}
		case ItemUpsell:
			if it.BaseUpsellID == candidate.BaseUpsellID &&
				sameSelections(it.Products, candidate.Products) {
				return true
			}
		}
	}
	return false
}

func sameSelections(a, b []SelectedProduct) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Size != b[i].Size || a[i].Color != b[i].Color {
			return false
		}
	}
	return true
}

// Reindex renumbers items to a contiguous 1-based sequence, preserving
// order. The second return reports whether any index changed.
func Reindex(items []CartItem) ([]CartItem, bool) {
	changed := false
	out := make([]CartItem, len(items))
	for i, it := range items {
		if it.Index != i+1 {
			it.Index = i + 1
			changed = true
		}
		out[i] = it
	}
	return out, changed
}

// CartRepo owns cart documents. Lookup by owner token returns
// ErrCartNotFound when no document matches.
type CartRepo interface {
	FindByOwner(ctx context.Context, deviceIdentifier string) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	ReplaceItems(ctx context.Context, cartID string, items []CartItem) error
}

// AddToCartInput is the sum-typed add-to-cart payload. Exactly one of the
// product or upsell variants must be populated, selected by Type.
type AddToCartInput struct {
	Type          ItemType          `json:"type"`
	BaseProductID string            `json:"baseProductId,omitempty"`
	Size          string            `json:"size,omitempty"`
	Color         string            `json:"color,omitempty"`
	BaseUpsellID  string            `json:"baseUpsellId,omitempty"`
	Products      []SelectedProduct `json:"products,omitempty"`
}

// Validate rejects anything that does not match one of the two item shapes
// before it reaches the business rules.
func (in AddToCartInput) Validate() error {
	switch in.Type {
	case ItemProduct:
		if in.BaseProductID == "" {
			return errors.New("product item requires baseProductId")
		}
	case ItemUpsell:
		if in.BaseUpsellID == "" {
			return errors.New("upsell item requires baseUpsellId")
		}
		if len(in.Products) == 0 {
			return errors.New("upsell item requires products")
		}
		for _, p := range in.Products {
			if p.ID == "" {
				return errors.New("upsell item products require ids")
			}
		}
	default:
		return errors.New("unknown item type")
	}
	return nil
}

// Item builds the cart line item for this input at the given display index.
func (in AddToCartInput) Item(index int) CartItem {
	it := CartItem{
		Type:      in.Type,
		VariantID: GenerateID(),
		Index:     index,
	}
	if in.Type == ItemProduct {
		it.BaseProductID = in.BaseProductID
		it.Size = in.Size
		it.Color = in.Color
	} else {
		it.BaseUpsellID = in.BaseUpsellID
		it.Products = in.Products
	}
	return it
}

// RemoveFromCartInput identifies the line to drop: product lines by
// variantId, upsell lines by baseUpsellId.
type RemoveFromCartInput struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`
}

func (in RemoveFromCartInput) Validate() error {
	if in.Type != ItemProduct && in.Type != ItemUpsell {
		return errors.New("unknown item type")
	}
	if in.ID == "" {
		return errors.New("id is required")
	}
	return nil
}
