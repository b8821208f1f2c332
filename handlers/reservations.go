package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adminedificios/backend/internal/booking"
)

func (h *API) listCommonAreas(c *gin.Context) {
	building, _, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	list, err := h.Areas.ListActive(c.Request.Context(), building.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *API) listReservations(c *gin.Context) {
	list, err := h.Booking.ListForArea(c.Request.Context(), c.Param("areaID"), today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *API) createReservation(c *gin.Context) {
	var req struct {
		CommonAreaID string `json:"common_area_id" binding:"required"`
		Date         string `json:"date" binding:"required"`
		StartTime    string `json:"start_time" binding:"required"`
		EndTime      string `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	res, err := h.Booking.CheckAndReserve(c.Request.Context(), req.CommonAreaID, resident.ID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		var conflict *booking.ConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{"error": "slot conflict", "conflicting_reservation_id": conflict.ReservationID})
		case errors.Is(err, booking.ErrAreaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrOutOfHours), errors.Is(err, booking.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created successfully", "reservation": res})
}

func (h *API) cancelReservation(c *gin.Context) {
	err := h.Booking.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}
