package handlers

import (
	"net/http"

	"servify/models"
	"servify/services/cart"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the session cart. The cart session is the
// authenticated user ID, or the X-Guest-Session header for guests.
type CartHandler struct {
	Service cart.CartService
}

func NewCartHandler(service cart.CartService) *CartHandler {
	return &CartHandler{Service: service}
}

func cartSessionID(c *gin.Context) string {
	if userID := currentUserID(c); userID != "" {
		return userID
	}
	return c.GetHeader("X-Guest-Session")
}

// GetCart returns the cart with its computed total.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := cartSessionID(c)
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing cart session", "")
		return
	}
	record, err := h.Service.Get(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": record, "total": record.Total()})
}

// AddItem adds or merges a cart line.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := cartSessionID(c)
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing cart session", "")
		return
	}
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, err := h.Service.AddItem(c.Request.Context(), sessionID, item)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to add to cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": record, "total": record.Total()})
}

// UpdateQuantity changes one line's quantity.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID := cartSessionID(c)
	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, err := h.Service.UpdateQuantity(c.Request.Context(), sessionID, c.Param("itemID"), input.Quantity)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": record, "total": record.Total()})
}

// RemoveItem drops one line from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := cartSessionID(c)
	record, err := h.Service.RemoveItem(c.Request.Context(), sessionID, c.Param("itemID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": record, "total": record.Total()})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.Service.Clear(c.Request.Context(), cartSessionID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear cart", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
