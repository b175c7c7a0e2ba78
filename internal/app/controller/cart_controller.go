package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	stderrors "errors"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/paikari/paikariworld-backend/internal/app/cart"
	"github.com/paikari/paikariworld-backend/internal/app/service"
	"github.com/paikari/paikariworld-backend/internal/errors"
	"github.com/paikari/paikariworld-backend/internal/middleware"
	"github.com/paikari/paikariworld-backend/internal/websocket"
)

type CartController struct {
	manager        *cart.Manager
	catalogService service.CatalogService
	hub            *websocket.Hub
}

func NewCartController(manager *cart.Manager, catalogService service.CatalogService, hub *websocket.Hub) *CartController {
	return &CartController{
		manager:        manager,
		catalogService: catalogService,
		hub:            hub,
	}
}

type AddToCartRequest struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"omitempty,gt=0"`
	VariationIDs []uint `json:"variation_ids"`
}

// UpdateQuantityRequest carries the replacement quantity. Values below
// one (and an absent field) are delivered to the store, which treats
// them as a no-op.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type DrawerRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// storeFor resolves the guest's cart store and feeds it the viewport
// width the client reported on this request.
func (ctrl *CartController) storeFor(c *gin.Context) (*cart.Store, string, bool) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		log.Warn("Cart request without session", nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.SessionMissing, "Guest session unavailable")
		return nil, "", false
	}

	store, err := ctrl.manager.Get(sessionID)
	if err != nil {
		log.Error("Failed to load cart store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.CartUnavailable, "Cart is temporarily unavailable")
		return nil, "", false
	}

	if width, ok := middleware.GetViewportWidth(c); ok {
		ctrl.manager.SetViewportWidth(sessionID, width)
	}

	return store, sessionID, true
}

func cartPayload(store *cart.Store) gin.H {
	return gin.H{
		"cart":    store.Items(),
		"count":   store.Count(),
		"total":   store.Total(),
		"is_open": store.IsOpen(),
	}
}

// notify pushes the fresh cart snapshot to the session's subscribers.
// Sessions with no open subscription skip the marshal and broadcast.
func (ctrl *CartController) notify(sessionID string, store *cart.Store) {
	if ctrl.hub == nil || !ctrl.hub.IsSessionOnline(sessionID) {
		return
	}
	payload := cartPayload(store)
	payload["type"] = "cart"
	ctrl.hub.BroadcastToSession(sessionID, payload)
}

// GetCart returns the guest's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartPayload(store))
}

// AddToCart adds a product (with its selected variations) to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, variations, err := ctrl.catalogService.ResolveSelection(req.ProductID, req.VariationIDs)
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		if stderrors.Is(err, service.ErrInvalidVariation) {
			errors.BadRequest(c, errors.ProductInvalidVariation, "Invalid product variation")
			return
		}
		log.Error("Failed to resolve product selection", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}

	store.AddToCart(product, req.Quantity, variations)
	ctrl.notify(sessionID, store)

	log.Info("Item added to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	c.JSON(http.StatusCreated, cartPayload(store))
}

// UpdateQuantity replaces the quantity of a cart line. Quantities below
// one and unknown products leave the cart untouched; the response is
// simply the current cart.
// PUT /api/v1/cart/:product_id
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quantity request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store.UpdateQuantity(productID, req.Quantity)
	ctrl.notify(sessionID, store)

	c.JSON(http.StatusOK, cartPayload(store))
}

// RemoveFromCart deletes a cart line; removing an absent product is a
// no-op.
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	store.RemoveFromCart(productID)
	ctrl.notify(sessionID, store)

	c.JSON(http.StatusOK, cartPayload(store))
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	store.ClearCart()
	ctrl.notify(sessionID, store)

	c.JSON(http.StatusOK, cartPayload(store))
}

// SetDrawer opens or closes the cart drawer explicitly
// PUT /api/v1/cart/drawer
func (ctrl *CartController) SetDrawer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req DrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid drawer request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store.SetIsOpen(*req.IsOpen)
	ctrl.notify(sessionID, store)

	c.JSON(http.StatusOK, cartPayload(store))
}

// Subscribe upgrades to a WebSocket pushing cart snapshots after every
// mutation, so every open tab renders the same cart.
// GET /api/v1/cart/ws
func (ctrl *CartController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, sessionID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade cart subscription", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	client := &websocket.Client{
		Hub:       ctrl.hub,
		Conn:      &websocket.Conn{Conn: conn},
		SessionID: sessionID,
		Send:      make(chan []byte, 16),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	// Push the current snapshot straight to this connection so a fresh
	// tab renders immediately, before the hub registration lands.
	payload := cartPayload(store)
	payload["type"] = "cart"
	if data, err := json.Marshal(payload); err == nil {
		client.Send <- data
	}
}

func parseProductID(c *gin.Context) (uint, bool) {
	idStr := c.Param("product_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}
