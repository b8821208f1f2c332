package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adminedificios/backend/internal/incidents"
	"github.com/adminedificios/backend/internal/models"
)

func (h *API) residentDashboard(c *gin.Context) {
	building, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	view, err := h.Dashboard.Build(c.Request.Context(), building.ID, resident.ID, today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *API) listPayments(c *gin.Context) {
	_, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	list, err := h.Payments.List(c.Request.Context(), resident.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *API) listIncidents(c *gin.Context) {
	building, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	list, err := h.Incidents.List(c.Request.Context(), building.ID, resident.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *API) createIncident(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Priority    string   `json:"priority" binding:"required"`
		Images      []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	building, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	inc, err := h.Incidents.Report(c.Request.Context(), building.ID, resident.ID,
		req.Title, req.Description, req.Category, models.Priority(req.Priority), req.Images)
	if err != nil {
		if errors.Is(err, incidents.ErrInvalidPriority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Incident reported successfully", "incident": inc})
}
