package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type PlaceOrderInput struct {
	SessionID       string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
}

// CheckoutService turns a cart snapshot into a placed order. Clearing
// the cart afterwards is the caller's confirmation step, so a failed
// order leaves the cart intact.
type CheckoutService interface {
	PlaceOrder(input PlaceOrderInput, items map[string]model.LineItem) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	GetOrderHistory(sessionID string, ids []uint) ([]model.Order, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewCheckoutService(orderRepo repository.OrderRepository, db *gorm.DB) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		db:        db,
	}
}

func (s *checkoutService) PlaceOrder(input PlaceOrderInput, items map[string]model.LineItem) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"session_id": input.SessionID,
		"lines":      len(items),
	})

	if len(items) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"session_id": input.SessionID,
		})
		return nil, ErrEmptyCart
	}

	// Map iteration order is random; keep order items stable by key.
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	order := &model.Order{
		OrderNumber:     newOrderNumber(),
		SessionID:       input.SessionID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		Status:          model.OrderStatusPending,
	}

	for _, key := range keys {
		item := items[key]
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Price:            item.Price,
			Quantity:         item.Quantity,
			Image:            item.Image,
			IsPreorder:       item.IsPreorder,
			VariationSummary: variationSummary(item.Variations),
		})
		order.TotalAmount += item.Price * float64(item.Quantity)
		order.ItemCount += item.Quantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		logger.Error("Failed to place order", err, map[string]interface{}{
			"session_id": input.SessionID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
	})
	return order, nil
}

func (s *checkoutService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetOrderHistory returns the orders a guest can see: the ones the
// history token names plus any placed under the current session. The
// union covers a guest whose session cookie rotated (token survives)
// and one whose token was lost (session still matches), newest first.
func (s *checkoutService) GetOrderHistory(sessionID string, ids []uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	bySession, err := s.orderRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(orders))
	for _, o := range orders {
		seen[o.ID] = true
	}
	for _, o := range bySession {
		if !seen[o.ID] {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("PW-%s", strings.ToUpper(uuid.NewString()[:8]))
}

func variationSummary(variations []model.SelectedVariation) string {
	if len(variations) == 0 {
		return ""
	}
	values := make([]string, 0, len(variations))
	for _, v := range variations {
		values = append(values, v.Value)
	}
	return strings.Join(values, " / ")
}
