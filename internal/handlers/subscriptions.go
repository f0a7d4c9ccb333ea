package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

type SubscriptionPlanStore interface {
	CreateSubscriptionPlan(name, description string, priceCents int64, playbackPolicy string) (*models.SubscriptionPlan, error)
	ListSubscriptionPlans() ([]models.SubscriptionPlan, error)
	DeleteSubscriptionPlan(id uuid.UUID) error
}

type SubscriptionsHandler struct {
	db SubscriptionPlanStore
}

func NewSubscriptionsHandler(db SubscriptionPlanStore) *SubscriptionsHandler {
	return &SubscriptionsHandler{db: db}
}

func planResponse(p models.SubscriptionPlan) models.SubscriptionPlanResponse {
	resp := models.SubscriptionPlanResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		PriceCents:     p.PriceCents,
		PlaybackPolicy: p.PlaybackPolicy,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	return resp
}

// CreatePlan godoc
// @Summary     Create a subscription plan
// @Description Plans carry the playback policy applied to asset requests made for videos at that tier, "public" or "signed".
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateSubscriptionPlanRequest true "Plan definition"
// @Success     200 {object} models.SubscriptionPlanResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/subscription-plans [post]
func (h *SubscriptionsHandler) CreatePlan(c *gin.Context) {
	var req models.CreateSubscriptionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	policy := req.PlaybackPolicy
	if policy == "" {
		policy = "public"
	}
	if policy != "public" && policy != "signed" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid playback policy",
			Message: "playback_policy must be public or signed",
		})
		return
	}

	plan, err := h.db.CreateSubscriptionPlan(req.Name, req.Description, req.PriceCents, policy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create subscription plan", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, planResponse(*plan))
}

// ListPlans godoc
// @Summary     List subscription plans
// @Tags        subscriptions
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.SubscriptionPlanResponse
// @Router      /admin/subscription-plans [get]
func (h *SubscriptionsHandler) ListPlans(c *gin.Context) {
	plans, err := h.db.ListSubscriptionPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list subscription plans", Message: err.Error()})
		return
	}

	out := make([]models.SubscriptionPlanResponse, len(plans))
	for i, p := range plans {
		out[i] = planResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

// DeletePlan godoc
// @Summary     Delete a subscription plan
// @Tags        subscriptions
// @Produce     json
// @Security    Bearer
// @Param       plan_id path string true "Plan ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/subscription-plans/{plan_id} [delete]
func (h *SubscriptionsHandler) DeletePlan(c *gin.Context) {
	planID, ok := pathUUID(c, "plan_id")
	if !ok {
		return
	}

	if err := h.db.DeleteSubscriptionPlan(planID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "subscription plan not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscription plan deleted successfully"})
}
