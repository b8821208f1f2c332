package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adminedificios/backend/internal/areas"
	"github.com/adminedificios/backend/internal/booking"
	"github.com/adminedificios/backend/internal/dashboard"
	"github.com/adminedificios/backend/internal/incidents"
	"github.com/adminedificios/backend/internal/models"
	"github.com/adminedificios/backend/internal/payments"
	"github.com/adminedificios/backend/internal/seed"
	"github.com/adminedificios/backend/internal/tenant"
	"github.com/adminedificios/backend/internal/voting"
)

// API bundles the domain services behind the /api route group. All handlers
// receive already-resolved tenant identity from the resolver; business errors
// are mapped to HTTP statuses here and nowhere else.
type API struct {
	Areas     *areas.Service
	Booking   *booking.Service
	Voting    *voting.Service
	Dashboard *dashboard.Service
	Payments  *payments.Service
	Incidents *incidents.Service
	Tenant    *tenant.Resolver
	Seeder    *seed.Seeder
}

func (h *API) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/", h.root)
	api.GET("/init-demo", h.initDemo)
	api.GET("/resident/dashboard", h.residentDashboard)
	api.GET("/common-areas", h.listCommonAreas)
	api.GET("/reservations/:areaID", h.listReservations)
	api.POST("/reservations", h.createReservation)
	api.POST("/reservations/:id/cancel", h.cancelReservation)
	api.GET("/payments", h.listPayments)
	api.GET("/votings", h.listVotings)
	api.GET("/votings/:id/results", h.votingResults)
	api.POST("/vote", h.castVote)
	api.GET("/incidents", h.listIncidents)
	api.POST("/incidents", h.createIncident)
}

func (h *API) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AdminEdificios Pro API"})
}

func (h *API) initDemo(c *gin.Context) {
	if err := h.Seeder.Init(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data initialized successfully"})
}

// resolveTenant loads the caller's building and resident or writes a 404.
func (h *API) resolveTenant(c *gin.Context) (*models.Building, *models.Resident, bool) {
	building, resident, err := h.Tenant.Resolve(c.Request.Context())
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenant) {
			c.JSON(http.StatusNotFound, gin.H{"error": "demo building not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, nil, false
	}
	return building, resident, true
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
