package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

// BrowseStore is the read-only slice of the database the consumer app uses.
type BrowseStore interface {
	ListClasses(includeInactive bool) ([]models.Class, error)
	GetClass(classID uuid.UUID) (*models.Class, error)
	ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error)
	ListRecipes(mealType string, includeInactive bool) ([]models.Recipe, error)
	ListAllergies() ([]models.Allergy, error)
	ListDietaryPreferences() ([]models.DietaryPreference, error)
	ListInstructors() ([]models.Instructor, error)
	ListSubscriptionPlans() ([]models.SubscriptionPlan, error)
}

// BrowseHandler serves the consumer catalog. Everything here is
// active-content only; administration goes through the admin routes.
type BrowseHandler struct {
	db BrowseStore
}

func NewBrowseHandler(db BrowseStore) *BrowseHandler {
	return &BrowseHandler{db: db}
}

// ListClasses godoc
// @Summary     Browse active classes
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ClassListResponse
// @Router      /classes [get]
func (h *BrowseHandler) ListClasses(c *gin.Context) {
	classes, err := h.db.ListClasses(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list classes", Message: err.Error()})
		return
	}

	out := make([]models.ClassResponse, len(classes))
	for i, cl := range classes {
		out[i] = classResponse(cl, nil)
	}
	c.JSON(http.StatusOK, models.ClassListResponse{Classes: out})
}

// GetClass godoc
// @Summary     Get an active class with its ordered videos
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Success     200 {object} models.ClassResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /classes/{class_id} [get]
func (h *BrowseHandler) GetClass(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	class, err := h.db.GetClass(classID)
	if err != nil || !class.IsActive {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "class not found"})
		return
	}

	videos, err := h.db.ListClassVideos(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list class videos", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, classResponse(*class, videos))
}

// ListRecipes godoc
// @Summary     Browse active recipes
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Param       meal_type query string false "Filter by meal type"
// @Success     200 {object} models.RecipeListResponse
// @Router      /recipes [get]
func (h *BrowseHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.db.ListRecipes(c.Query("meal_type"), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list recipes", Message: err.Error()})
		return
	}

	out := make([]models.RecipeResponse, len(recipes))
	for i, r := range recipes {
		out[i] = recipeResponse(r)
	}
	c.JSON(http.StatusOK, models.RecipeListResponse{Recipes: out})
}

// ListAllergies godoc
// @Summary     Browse active allergies in admin-curated order
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderableListResponse
// @Router      /allergies [get]
func (h *BrowseHandler) ListAllergies(c *gin.Context) {
	rows, err := h.db.ListAllergies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list allergies", Message: err.Error()})
		return
	}

	var items []models.OrderableItemResponse
	for _, a := range rows {
		if a.IsActive {
			items = append(items, allergyItem(a))
		}
	}
	c.JSON(http.StatusOK, models.OrderableListResponse{Items: items})
}

// ListDietaryPreferences godoc
// @Summary     Browse active dietary preferences in admin-curated order
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderableListResponse
// @Router      /dietary-preferences [get]
func (h *BrowseHandler) ListDietaryPreferences(c *gin.Context) {
	rows, err := h.db.ListDietaryPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list dietary preferences", Message: err.Error()})
		return
	}

	var items []models.OrderableItemResponse
	for _, p := range rows {
		if p.IsActive {
			items = append(items, preferenceItem(p))
		}
	}
	c.JSON(http.StatusOK, models.OrderableListResponse{Items: items})
}

// ListInstructors godoc
// @Summary     Browse active instructors
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.InstructorResponse
// @Router      /instructors [get]
func (h *BrowseHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.db.ListInstructors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list instructors", Message: err.Error()})
		return
	}

	var out []models.InstructorResponse
	for _, i := range instructors {
		if i.IsActive {
			out = append(out, instructorResponse(i))
		}
	}
	c.JSON(http.StatusOK, out)
}

// ListSubscriptionPlans godoc
// @Summary     Browse active subscription plans
// @Tags        browse
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.SubscriptionPlanResponse
// @Router      /subscription-plans [get]
func (h *BrowseHandler) ListSubscriptionPlans(c *gin.Context) {
	plans, err := h.db.ListSubscriptionPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list subscription plans", Message: err.Error()})
		return
	}

	var out []models.SubscriptionPlanResponse
	for _, p := range plans {
		if p.IsActive {
			out = append(out, planResponse(p))
		}
	}
	c.JSON(http.StatusOK, out)
}
