package model

// SelectedVariation is the snapshot of a product variation chosen when
// an item was added to the cart. Stock and price are the variation's
// own overrides; nil means the product values applied.
type SelectedVariation struct {
	ID          uint     `json:"id"`
	AttributeID uint     `json:"attribute_id"`
	Value       string   `json:"value"`
	Stock       *int     `json:"stock,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// LineItem is one cart entry: all units of a single product held as one
// purchasable quantity. Name, price and image are snapshots taken at
// add time and are not re-synced from the catalog. Stock is the
// effective purchase ceiling computed at add time; it is advisory, the
// store never enforces quantity <= stock.
type LineItem struct {
	ProductID  uint                `json:"product_id"`
	Name       string              `json:"name"`
	Price      float64             `json:"price"`
	Stock      int                 `json:"stock"`
	Quantity   int                 `json:"quantity"`
	Image      string              `json:"image,omitempty"`
	IsPreorder bool                `json:"is_preorder"`
	Variations []SelectedVariation `json:"variations,omitempty"`
}
