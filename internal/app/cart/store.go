package cart

import (
	"strconv"
	"sync"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/pkg/logger"
)

// DefaultTabletBreakpoint is the viewport width (logical pixels) at or
// above which adding an item opens the cart drawer. Below it the drawer
// stays closed and the client opens it explicitly.
const DefaultTabletBreakpoint = 768

// ViewportFunc reports the current viewport width of the consumer the
// store serves. Injected so the store stays testable without a display
// surface.
type ViewportFunc func() int

type Option func(*Store)

// WithViewport sets the viewport width source.
func WithViewport(fn ViewportFunc) Option {
	return func(s *Store) {
		s.viewport = fn
	}
}

// WithBreakpoint overrides the tablet breakpoint.
func WithBreakpoint(px int) Option {
	return func(s *Store) {
		s.breakpoint = px
	}
}

// Store is the authoritative shopping cart for one guest: a line-item
// map keyed by the string form of the product ID, plus the drawer
// visibility flag. Every mutation is written through to the persister;
// the in-memory map is always the value a read-after-write sees.
//
// Mutations never fail. Missing targets and below-minimum quantities
// are silent no-ops, and persister write failures are logged without
// rollback.
type Store struct {
	mu         sync.RWMutex
	items      map[string]model.LineItem
	isOpen     bool
	persister  Persister
	viewport   ViewportFunc
	breakpoint int
}

// NewStore rehydrates a store from its persisted record. The drawer
// always starts closed; only cart contents survive a reload.
func NewStore(persister Persister, opts ...Option) (*Store, error) {
	state, err := persister.Load()
	if err != nil {
		return nil, err
	}

	s := &Store{
		items:      state.Cart,
		persister:  persister,
		viewport:   func() int { return 0 },
		breakpoint: DefaultTabletBreakpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddToCart inserts a line item for the product, or merges into the
// existing one by accumulating quantity. The stored stock ceiling is
// recomputed from this call's variation selection and overwrites the
// previous value even on merge; the variation snapshots themselves are
// fixed by the first add. The drawer flag is unconditionally reset from
// the viewport width on every add.
func (s *Store) AddToCart(product *model.Product, quantity int, variations []model.SelectedVariation) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(product.ID)

	newQuantity := quantity
	itemVariations := cloneVariations(variations)
	if existing, ok := s.items[key]; ok {
		newQuantity = existing.Quantity + quantity
		itemVariations = existing.Variations
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	s.items[key] = model.LineItem{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.SalePrice,
		Stock:      effectiveStock(product, variations),
		Quantity:   newQuantity,
		Image:      image,
		IsPreorder: product.IsPreorder,
		Variations: itemVariations,
	}

	s.isOpen = s.viewport() >= s.breakpoint

	s.persist()
}

// RemoveFromCart deletes the line item for the product. Removing an
// absent product is a no-op.
func (s *Store) RemoveFromCart(productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(productID)
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	s.persist()
}

// UpdateQuantity replaces the quantity of an existing line item. A
// quantity below 1 or a product not in the cart leaves the cart
// untouched; all other line-item fields are preserved.
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(productID)
	item, ok := s.items[key]
	if !ok {
		return
	}
	item.Quantity = quantity
	s.items[key] = item
	s.persist()
}

// ClearCart empties the cart. The drawer flag is left as is.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]model.LineItem)
	s.persist()
}

// SetIsOpen sets the drawer visibility directly.
func (s *Store) SetIsOpen(isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = isOpen
}

// IsOpen reports the drawer visibility.
func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

// Total returns the sum of price times quantity over all line items.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count returns the total unit count across all line items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the cart map. Callers must not feed changes
// back by mutating the result; all changes flow through store
// operations.
func (s *Store) Items() map[string]model.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[string]model.LineItem, len(s.items))
	for key, item := range s.items {
		item.Variations = cloneVariations(item.Variations)
		items[key] = item
	}
	return items
}

// persist writes the full cart record through. Callers hold the lock.
// Write failures are logged and otherwise ignored.
func (s *Store) persist() {
	if err := s.persister.Save(&State{Cart: s.items}); err != nil {
		logger.Error("Failed to persist cart record", err, map[string]interface{}{
			"items": len(s.items),
		})
	}
}

func itemKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// effectiveStock is the purchase ceiling for a line: the minimum stock
// across the product and each selected variation, where a variation
// without its own stock value falls back to the product's stock.
func effectiveStock(product *model.Product, variations []model.SelectedVariation) int {
	stock := product.StockQuantity
	for _, v := range variations {
		variationStock := product.StockQuantity
		if v.Stock != nil {
			variationStock = *v.Stock
		}
		if variationStock < stock {
			stock = variationStock
		}
	}
	return stock
}

func cloneVariations(variations []model.SelectedVariation) []model.SelectedVariation {
	if variations == nil {
		return nil
	}
	cloned := make([]model.SelectedVariation, len(variations))
	copy(cloned, variations)
	return cloned
}
