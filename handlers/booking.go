package handlers

import (
	"errors"
	"net/http"

	"servify/models"
	"servify/services/booking"
	"servify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives the slot-hold checkout workflow over HTTP.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// InitiateSession starts a booking session and returns candidate slots.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		OfferingID string `json:"offeringId" binding:"required"`
		Date       string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	session, slots, err := h.Service.InitiateSession(currentUserID(c), input.OfferingID, input.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"slots":     slots,
	})
}

// SelectSlot places a hold on a slot and starts the countdown.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		SlotID string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	view, err := h.Service.SelectSlot(sessionID, input.SlotID)
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found or expired", "")
	case errors.Is(err, booking.ErrSlotHeld):
		utils.JSONError(c, http.StatusConflict, "Slot is held by another customer", "")
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "Slot is no longer available", "")
	case err != nil:
		utils.JSONError(c, http.StatusBadRequest, "Failed to select slot", err.Error())
	default:
		c.JSON(http.StatusOK, view)
	}
}

// HoldStatus reports the running countdown for the session.
func (h *BookingHandler) HoldStatus(c *gin.Context) {
	view, err := h.Service.HoldStatus(c.Param("sessionID"))
	if errors.Is(err, booking.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Booking session not found or expired", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read hold status", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// Confirm finalizes the held slot into a booking and returns the payment
// redirect URL.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Customer models.Customer `json:"customer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	record, redirectURL, err := h.Service.Confirm(sessionID, input.Customer)
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found or expired", "")
	case errors.Is(err, booking.ErrNoActiveHold):
		utils.JSONError(c, http.StatusConflict, "Slot hold has expired, please select a slot again", "")
	case err != nil && record != nil:
		// Booking draft exists but the payment session failed; surface both.
		h.Logger.Error("checkout handoff failed", zap.String("booking", record.ID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to create payment session", err.Error())
	case err != nil:
		utils.JSONError(c, http.StatusBadRequest, "Failed to confirm booking", err.Error())
	default:
		c.JSON(http.StatusOK, gin.H{
			"booking":     record,
			"redirectUrl": redirectURL,
		})
	}
}

// Cancel discards the session and any running hold.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Service.Cancel(c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
