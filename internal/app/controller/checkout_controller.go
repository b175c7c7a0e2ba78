package controller

import (
	"net/http"
	"strconv"

	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/paikari/paikariworld-backend/config"
	"github.com/paikari/paikariworld-backend/internal/app/cart"
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/service"
	"github.com/paikari/paikariworld-backend/internal/errors"
	"github.com/paikari/paikariworld-backend/internal/middleware"
	"github.com/paikari/paikariworld-backend/internal/websocket"
	"github.com/paikari/paikariworld-backend/pkg/util"
)

// OrderHistoryCookieName carries the JWT listing a guest's order IDs,
// so order history survives session cookie rotation.
const OrderHistoryCookieName = "paikari_orders"

type CheckoutController struct {
	checkoutService service.CheckoutService
	manager         *cart.Manager
	hub             *websocket.Hub
	guestConfig     config.GuestConfig
}

func NewCheckoutController(checkoutService service.CheckoutService, manager *cart.Manager, hub *websocket.Hub, guestConfig config.GuestConfig) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		manager:         manager,
		hub:             hub,
		guestConfig:     guestConfig,
	}
}

type PlaceOrderRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// PlaceOrder turns the guest's cart into an order and empties the cart
// POST /api/v1/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		errors.RespondWithError(c, http.StatusInternalServerError, errors.SessionMissing, "Guest session unavailable")
		return
	}

	store, err := ctrl.manager.Get(sessionID)
	if err != nil {
		log.Error("Failed to load cart store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.CartUnavailable, "Cart is temporarily unavailable")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationRequired, "Name, phone and shipping address are required")
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(service.PlaceOrderInput{
		SessionID:       sessionID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
	}, store.Items())
	if err != nil {
		if stderrors.Is(err, service.ErrEmptyCart) {
			errors.BadRequest(c, errors.OrderEmptyCart, "Cart is empty")
			return
		}
		log.Error("Failed to place order", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "Failed to place order")
		return
	}

	prior, _ := c.Cookie(OrderHistoryCookieName)
	token, err := util.AppendOrderToToken(prior, order.ID, ctrl.guestConfig.OrderTokenSecret, ctrl.guestConfig.OrderTokenExpiry)
	if err != nil {
		// The order exists either way; the guest just loses the
		// history link for it.
		log.Error("Failed to issue order history token", err, map[string]interface{}{
			"order_id": order.ID,
		})
	} else {
		c.SetCookie(OrderHistoryCookieName, token, int(ctrl.guestConfig.OrderTokenExpiry.Seconds()), "/", "", false, true)
	}

	store.ClearCart()
	if ctrl.hub != nil && ctrl.hub.IsSessionOnline(sessionID) {
		payload := cartPayload(store)
		payload["type"] = "cart"
		ctrl.hub.BroadcastToSession(sessionID, payload)
	}

	log.Info("Order placed", map[string]interface{}{
		"session_id":   sessionID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders returns the guest's order history: orders named by the
// history token plus orders placed under the current session
// GET /api/v1/orders
func (ctrl *CheckoutController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		errors.RespondWithError(c, http.StatusInternalServerError, errors.SessionMissing, "Guest session unavailable")
		return
	}

	orders, err := ctrl.checkoutService.GetOrderHistory(sessionID, ctrl.historyIDs(c))
	if err != nil {
		log.Error("Failed to load order history", err, nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalDatabaseError, "Failed to load order history")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID returns one order, if the guest's history token names it
// or it was placed under the current session
// GET /api/v1/orders/:id
func (ctrl *CheckoutController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.checkoutService.GetOrder(uint(id))
	if err != nil {
		if stderrors.Is(err, service.ErrOrderNotFound) {
			errors.NotFound(c, errors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"order_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	// Orders outside the guest's token and session read as absent, not
	// forbidden.
	sessionID, _ := middleware.GetSessionID(c)
	if order.SessionID != sessionID && !containsOrderID(ctrl.historyIDs(c), uint(id)) {
		errors.NotFound(c, errors.OrderNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// historyIDs parses the guest's order-history cookie. A missing,
// expired or tampered token reads as an empty history.
func (ctrl *CheckoutController) historyIDs(c *gin.Context) []uint {
	token, err := c.Cookie(OrderHistoryCookieName)
	if err != nil || token == "" {
		return nil
	}
	ids, err := util.ParseOrderHistoryToken(token, ctrl.guestConfig.OrderTokenSecret)
	if err != nil {
		return nil
	}
	return ids
}

func containsOrderID(ids []uint, orderID uint) bool {
	for _, id := range ids {
		if id == orderID {
			return true
		}
	}
	return false
}
