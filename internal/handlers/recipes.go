package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

type RecipeStore interface {
	CreateRecipe(req models.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(recipeID uuid.UUID) (*models.Recipe, error)
	ListRecipes(mealType string, includeInactive bool) ([]models.Recipe, error)
	UpdateRecipe(recipeID uuid.UUID, req models.UpdateRecipeRequest) (*models.Recipe, error)
	UpdateRecipeImage(recipeID uuid.UUID, imagePath, imageURL string) error
	DeleteRecipe(recipeID uuid.UUID) error
}

// RecipeImageStore uploads recipe photos to blob storage.
type RecipeImageStore interface {
	UploadImage(kind, entityID, filename, contentType string, data []byte) (string, string, error)
}

type RecipesHandler struct {
	db     RecipeStore
	images RecipeImageStore
}

func NewRecipesHandler(db RecipeStore, images RecipeImageStore) *RecipesHandler {
	return &RecipesHandler{db: db, images: images}
}

func recipeResponse(r models.Recipe) models.RecipeResponse {
	resp := models.RecipeResponse{
		ID:        r.ID.String(),
		Title:     r.Title,
		MealType:  r.MealType,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Description.Valid {
		resp.Description = r.Description.String
	}
	if r.CaloriesMin.Valid {
		n := int(r.CaloriesMin.Int64)
		resp.CaloriesMin = &n
	}
	if r.CaloriesMax.Valid {
		n := int(r.CaloriesMax.Int64)
		resp.CaloriesMax = &n
	}
	if r.PrepMinutes.Valid {
		n := int(r.PrepMinutes.Int64)
		resp.PrepMinutes = &n
	}
	if r.ImageURL.Valid {
		resp.ImageURL = r.ImageURL.String
	}
	return resp
}

// validCalorieRange rejects negative bounds and a minimum exceeding the
// maximum. Either bound may be absent.
func validCalorieRange(min, max *int) bool {
	if min != nil && *min < 0 {
		return false
	}
	if max != nil && *max < 0 {
		return false
	}
	if min == nil || max == nil {
		return true
	}
	return *min <= *max
}

// CreateRecipe godoc
// @Summary     Create a recipe
// @Tags        recipes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateRecipeRequest true "Recipe definition"
// @Success     200 {object} models.RecipeResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/recipes [post]
func (h *RecipesHandler) CreateRecipe(c *gin.Context) {
	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	if !validCalorieRange(req.CaloriesMin, req.CaloriesMax) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid calorie range",
			Message: "calorie bounds must be non-negative and calories_min must not exceed calories_max",
		})
		return
	}

	recipe, err := h.db.CreateRecipe(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create recipe", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipeResponse(*recipe))
}

// ListRecipes godoc
// @Summary     List recipes
// @Tags        recipes
// @Produce     json
// @Security    Bearer
// @Param       meal_type query string false "Filter by meal type"
// @Param       include_inactive query bool false "Include inactive recipes"
// @Success     200 {object} models.RecipeListResponse
// @Router      /admin/recipes [get]
func (h *RecipesHandler) ListRecipes(c *gin.Context) {
	mealType := c.Query("meal_type")
	includeInactive := c.Query("include_inactive") == "true"

	recipes, err := h.db.ListRecipes(mealType, includeInactive)
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

// GetRecipe godoc
// @Summary     Get a recipe
// @Tags        recipes
// @Produce     json
// @Security    Bearer
// @Param       recipe_id path string true "Recipe ID (UUID)"
// @Success     200 {object} models.RecipeResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/recipes/{recipe_id} [get]
func (h *RecipesHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	recipe, err := h.db.GetRecipe(recipeID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "recipe not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipeResponse(*recipe))
}

// UpdateRecipe godoc
// @Summary     Update a recipe
// @Description Partial update. The calorie range is validated against the merged row, so lowering calories_max below the stored calories_min is rejected.
// @Tags        recipes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       recipe_id path string true "Recipe ID (UUID)"
// @Param       request body models.UpdateRecipeRequest true "Fields to update"
// @Success     200 {object} models.RecipeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/recipes/{recipe_id} [patch]
func (h *RecipesHandler) UpdateRecipe(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	var req models.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	existing, err := h.db.GetRecipe(recipeID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "recipe not found", Message: err.Error()})
		return
	}

	// Merge the request over the stored bounds before validating.
	min := req.CaloriesMin
	if min == nil && existing.CaloriesMin.Valid {
		n := int(existing.CaloriesMin.Int64)
		min = &n
	}
	max := req.CaloriesMax
	if max == nil && existing.CaloriesMax.Valid {
		n := int(existing.CaloriesMax.Int64)
		max = &n
	}
	if !validCalorieRange(min, max) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid calorie range",
			Message: "calorie bounds must be non-negative and calories_min must not exceed calories_max",
		})
		return
	}

	recipe, err := h.db.UpdateRecipe(recipeID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update recipe", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipeResponse(*recipe))
}

// UploadImage godoc
// @Summary     Upload a recipe photo
// @Tags        recipes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       recipe_id path string true "Recipe ID (UUID)"
// @Param       request body models.UploadImageRequest true "Base64-encoded image"
// @Success     200 {object} models.RecipeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/recipes/{recipe_id}/image [post]
func (h *RecipesHandler) UploadImage(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	var req models.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	if _, err := h.db.GetRecipe(recipeID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "recipe not found", Message: err.Error()})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image encoding", Message: err.Error()})
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	path, url, err := h.images.UploadImage("recipes", recipeID.String(), "photo"+imageExtension(contentType), contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to upload image", Message: err.Error()})
		return
	}

	if err := h.db.UpdateRecipeImage(recipeID, path, url); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save image reference", Message: err.Error()})
		return
	}

	recipe, err := h.db.GetRecipe(recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to reload recipe", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipeResponse(*recipe))
}

// DeleteRecipe godoc
// @Summary     Delete a recipe
// @Tags        recipes
// @Produce     json
// @Security    Bearer
// @Param       recipe_id path string true "Recipe ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/recipes/{recipe_id} [delete]
func (h *RecipesHandler) DeleteRecipe(c *gin.Context) {
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.db.DeleteRecipe(recipeID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "recipe not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully"})
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
