package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adminedificios/backend/internal/voting"
)

func (h *API) listVotings(c *gin.Context) {
	building, _, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	list, err := h.Voting.ListActive(c.Request.Context(), building.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *API) votingResults(c *gin.Context) {
	counts, total, err := h.Voting.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, voting.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": counts, "total_votes": total})
}

func (h *API) castVote(c *gin.Context) {
	var req struct {
		VotingID string `json:"voting_id" binding:"required"`
		Option   string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, resident, ok := h.resolveTenant(c)
	if !ok {
		return
	}
	_, err := h.Voting.CastVote(c.Request.Context(), req.VotingID, resident.ID, req.Option)
	if err != nil {
		switch {
		case errors.Is(err, voting.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, voting.ErrAlreadyVoted), errors.Is(err, voting.ErrInvalidOption), errors.Is(err, voting.ErrNotActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully"})
}
