package handlers

import (
	"net/http"

	"servify/services/offering"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// OfferingHandler serves provider offering management and admin moderation.
type OfferingHandler struct {
	Service offering.OfferingService
}

func NewOfferingHandler(service offering.OfferingService) *OfferingHandler {
	return &OfferingHandler{Service: service}
}

func currentUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	userID, _ := id.(string)
	return userID
}

// CreateOffering creates a pending offering for the authenticated provider.
func (h *OfferingHandler) CreateOffering(c *gin.Context) {
	var input offering.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, err := h.Service.Create(currentUserID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create service", err.Error())
		return
	}
	c.JSON(http.StatusCreated, record)
}

// UpdateOffering edits an offering; price changes re-validate the band.
func (h *OfferingHandler) UpdateOffering(c *gin.Context) {
	var input offering.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, err := h.Service.Update(currentUserID(c), c.Param("id"), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update service", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteOffering removes an offering owned by the authenticated provider.
func (h *OfferingHandler) DeleteOffering(c *gin.Context) {
	if err := h.Service.Delete(currentUserID(c), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to delete service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListMyOfferings returns the authenticated provider's offerings.
func (h *OfferingHandler) ListMyOfferings(c *gin.Context) {
	offerings, err := h.Service.GetByProvider(currentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// SetOfferingActive toggles listing visibility for an approved offering.
func (h *OfferingHandler) SetOfferingActive(c *gin.Context) {
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Service.SetActive(currentUserID(c), c.Param("id"), input.IsActive); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// PendingOfferings returns the admin moderation queue.
func (h *OfferingHandler) PendingOfferings(c *gin.Context) {
	offerings, err := h.Service.PendingQueue()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load pending services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// ModerateOffering approves or rejects a pending offering.
func (h *OfferingHandler) ModerateOffering(c *gin.Context) {
	var input struct {
		Action string `json:"action" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	var err error
	switch input.Action {
	case "approve":
		err = h.Service.Approve(c.Param("id"), input.Notes)
	case "reject":
		err = h.Service.Reject(c.Param("id"), input.Notes)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "action must be approve or reject")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to moderate service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Action + "d"})
}
