package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/handlers"
	"infinite-flow-backend/internal/models"
)

type fakeRecipeStore struct {
	recipes     map[uuid.UUID]*models.Recipe
	createCalls int
	updateCalls int
}

func newFakeRecipeStore() *fakeRecipeStore {
	return &fakeRecipeStore{recipes: make(map[uuid.UUID]*models.Recipe)}
}

func (f *fakeRecipeStore) CreateRecipe(req models.CreateRecipeRequest) (*models.Recipe, error) {
	f.createCalls++
	r := &models.Recipe{ID: uuid.New(), Title: req.Title, MealType: req.MealType, IsActive: true}
	if req.CaloriesMin != nil {
		r.CaloriesMin = sql.NullInt64{Int64: int64(*req.CaloriesMin), Valid: true}
	}
	if req.CaloriesMax != nil {
		r.CaloriesMax = sql.NullInt64{Int64: int64(*req.CaloriesMax), Valid: true}
	}
	f.recipes[r.ID] = r
	return r, nil
}

func (f *fakeRecipeStore) GetRecipe(recipeID uuid.UUID) (*models.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeRecipeStore) ListRecipes(mealType string, includeInactive bool) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range f.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRecipeStore) UpdateRecipe(recipeID uuid.UUID, req models.UpdateRecipeRequest) (*models.Recipe, error) {
	f.updateCalls++
	r := f.recipes[recipeID]
	if req.CaloriesMin != nil {
		r.CaloriesMin = sql.NullInt64{Int64: int64(*req.CaloriesMin), Valid: true}
	}
	if req.CaloriesMax != nil {
		r.CaloriesMax = sql.NullInt64{Int64: int64(*req.CaloriesMax), Valid: true}
	}
	return r, nil
}

func (f *fakeRecipeStore) UpdateRecipeImage(recipeID uuid.UUID, imagePath, imageURL string) error {
	return nil
}

func (f *fakeRecipeStore) DeleteRecipe(recipeID uuid.UUID) error {
	delete(f.recipes, recipeID)
	return nil
}

type noopImageStore struct{}

func (noopImageStore) UploadImage(kind, entityID, filename, contentType string, data []byte) (string, string, error) {
	return kind + "/" + entityID + "/" + filename, "https://storage.example.com/x", nil
}

func recipesRouter(store *fakeRecipeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewRecipesHandler(store, noopImageStore{})
	router := gin.New()
	router.POST("/recipes", h.CreateRecipe)
	router.PATCH("/recipes/:recipe_id", h.UpdateRecipe)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRecipe_InvertedCalorieRangeRejected(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min, max := 500, 300
	w := postJSON(t, router, "POST", "/recipes", models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
		CaloriesMax: &max,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.createCalls, "an invalid range must be rejected before any write")
}

func TestCreateRecipe_NegativeCalorieBoundsRejected(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min, max := -500, -300
	w := postJSON(t, router, "POST", "/recipes", models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
		CaloriesMax: &max,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateRecipe_NegativeOpenEndedBoundRejected(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min := -1
	w := postJSON(t, router, "POST", "/recipes", models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateRecipe_ValidCalorieRange(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min, max := 300, 500
	w := postJSON(t, router, "POST", "/recipes", models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
		CaloriesMax: &max,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.createCalls)
}

func TestCreateRecipe_OpenEndedRangeAllowed(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min := 300
	w := postJSON(t, router, "POST", "/recipes", models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateRecipe_ValidatesMergedRange(t *testing.T) {
	store := newFakeRecipeStore()
	router := recipesRouter(store)

	min, max := 300, 500
	recipe, err := store.CreateRecipe(models.CreateRecipeRequest{
		Title:       "Overnight Oats",
		MealType:    "breakfast",
		CaloriesMin: &min,
		CaloriesMax: &max,
	})
	require.NoError(t, err)

	// Lowering only the max below the stored min must fail.
	newMax := 200
	w := postJSON(t, router, "PATCH", "/recipes/"+recipe.ID.String(), models.UpdateRecipeRequest{
		CaloriesMax: &newMax,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.updateCalls)

	// Lowering both bounds together is fine.
	newMin := 100
	w = postJSON(t, router, "PATCH", "/recipes/"+recipe.ID.String(), models.UpdateRecipeRequest{
		CaloriesMin: &newMin,
		CaloriesMax: &newMax,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.updateCalls)
}
