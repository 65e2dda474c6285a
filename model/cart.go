package model

import "github.com/greengarden/greenery/constant"

// CartItemKey identifies one cart entry. Listing ids are only unique within
// their partition, so the key carries both.
type CartItemKey struct {
	Category constant.Category `json:"category"`
	ID       uint64            `json:"id"`
}

// CartLine pairs an item with its accumulated quantity and the unit price
// captured when the item was first added.
type CartLine struct {
	Category  constant.Category `json:"category"`
	ItemID    uint64            `json:"item_id"`
	Name      string            `json:"name"`
	UnitPrice float64           `json:"unit_price"`
	Quantity  int               `json:"quantity"`
}

type CartResponse struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartItemRequest addresses a listing for add/decrement/remove
type CartItemRequest struct {
	Category  string `json:"category" validate:"required"`
	ListingID uint64 `json:"listing_id" validate:"required"`
}
