package service

import (
	"strings"
	"testing"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutServiceTest(t *testing.T) CheckoutService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(testDB)
	return NewCheckoutService(orderRepo, testDB)
}

func sampleCartItems() map[string]model.LineItem {
	return map[string]model.LineItem{
		"1": {
			ProductID: 1,
			Name:      "Oversized Tee",
			Price:     25000,
			Quantity:  2,
			Variations: []model.SelectedVariation{
				{ID: 11, AttributeID: 1, Value: "L"},
				{ID: 21, AttributeID: 2, Value: "Black"},
			},
		},
		"2": {
			ProductID:  2,
			Name:       "Wireless Earbuds",
			Price:      89000,
			Quantity:   1,
			IsPreorder: true,
		},
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	checkoutService := setupCheckoutServiceTest(t)

	input := PlaceOrderInput{
		SessionID:       "session-1",
		CustomerName:    "Gildong Hong",
		CustomerPhone:   "010-1234-5678",
		ShippingAddress: "123 Teheran-ro, Seoul",
	}

	order, err := checkoutService.PlaceOrder(input, sampleCartItems())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "PW-"))
	assert.Equal(t, "session-1", order.SessionID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2*25000+89000.0, order.TotalAmount)
	assert.Equal(t, 3, order.ItemCount)

	// Items are ordered by cart key, so the tee comes first.
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "Oversized Tee", order.OrderItems[0].Name)
	assert.Equal(t, "L / Black", order.OrderItems[0].VariationSummary)
	assert.Equal(t, "Wireless Earbuds", order.OrderItems[1].Name)
	assert.Empty(t, order.OrderItems[1].VariationSummary)
	assert.True(t, order.OrderItems[1].IsPreorder)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	checkoutService := setupCheckoutServiceTest(t)

	_, err := checkoutService.PlaceOrder(PlaceOrderInput{SessionID: "session-1"}, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = checkoutService.PlaceOrder(PlaceOrderInput{SessionID: "session-1"}, map[string]model.LineItem{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutService_GetOrder(t *testing.T) {
	checkoutService := setupCheckoutServiceTest(t)

	placed, err := checkoutService.PlaceOrder(PlaceOrderInput{
		SessionID:    "session-1",
		CustomerName: "Gildong Hong",
	}, sampleCartItems())
	require.NoError(t, err)

	order, err := checkoutService.GetOrder(placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, order.OrderNumber)
	assert.Len(t, order.OrderItems, 2)

	_, err = checkoutService.GetOrder(9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutService_GetOrderHistory(t *testing.T) {
	checkoutService := setupCheckoutServiceTest(t)

	first, err := checkoutService.PlaceOrder(PlaceOrderInput{SessionID: "session-1"}, sampleCartItems())
	require.NoError(t, err)
	second, err := checkoutService.PlaceOrder(PlaceOrderInput{SessionID: "session-2"}, sampleCartItems())
	require.NoError(t, err)

	t.Run("Token IDs across sessions", func(t *testing.T) {
		orders, err := checkoutService.GetOrderHistory("session-3", []uint{first.ID, second.ID})
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("No token falls back to session orders", func(t *testing.T) {
		orders, err := checkoutService.GetOrderHistory("session-1", nil)
		assert.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("Token and session union deduplicates", func(t *testing.T) {
		orders, err := checkoutService.GetOrderHistory("session-1", []uint{first.ID, second.ID})
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("Nothing to see", func(t *testing.T) {
		orders, err := checkoutService.GetOrderHistory("session-3", nil)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Unknown token IDs are absent from the result", func(t *testing.T) {
		orders, err := checkoutService.GetOrderHistory("session-3", []uint{first.ID, 9999})
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}
