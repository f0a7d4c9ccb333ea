package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

const recipeColumns = `id, title, description, meal_type, calories_min, calories_max,
		prep_minutes, image_path, image_url, is_active, created_at, updated_at`

func scanRecipe(row interface{ Scan(...any) error }) (*models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.MealType, &r.CaloriesMin, &r.CaloriesMax,
		&r.PrepMinutes, &r.ImagePath, &r.ImageURL, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DatabaseClient) CreateRecipe(req models.CreateRecipeRequest) (*models.Recipe, error) {
	row := d.db.QueryRow(`
		INSERT INTO recipes (title, description, meal_type, calories_min, calories_max, prep_minutes)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING `+recipeColumns+`
	`, req.Title, req.Description, req.MealType, req.CaloriesMin, req.CaloriesMax, req.PrepMinutes)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return r, nil
}

func (d *DatabaseClient) GetRecipe(recipeID uuid.UUID) (*models.Recipe, error) {
	row := d.db.QueryRow(`
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id = $1
	`, recipeID)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, nil
}

// ListRecipes filters by meal type when mealType is non-empty. Inactive
// recipes are only visible to admin callers.
func (d *DatabaseClient) ListRecipes(mealType string, includeInactive bool) ([]models.Recipe, error) {
	rows, err := d.db.Query(`
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE (is_active = TRUE OR $2)
		  AND ($1 = '' OR meal_type = $1)
		ORDER BY created_at DESC
	`, mealType, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}

	return recipes, rows.Err()
}

func (d *DatabaseClient) UpdateRecipe(recipeID uuid.UUID, req models.UpdateRecipeRequest) (*models.Recipe, error) {
	row := d.db.QueryRow(`
		UPDATE recipes
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    meal_type = COALESCE($3, meal_type),
		    calories_min = COALESCE($4, calories_min),
		    calories_max = COALESCE($5, calories_max),
		    prep_minutes = COALESCE($6, prep_minutes),
		    is_active = COALESCE($7, is_active),
		    updated_at = NOW()
		WHERE id = $8
		RETURNING `+recipeColumns+`
	`, req.Title, req.Description, req.MealType, req.CaloriesMin, req.CaloriesMax, req.PrepMinutes, req.IsActive, recipeID)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return r, nil
}

func (d *DatabaseClient) UpdateRecipeImage(recipeID uuid.UUID, imagePath, imageURL string) error {
	_, err := d.db.Exec(`
		UPDATE recipes
		SET image_path = $1, image_url = $2, updated_at = NOW()
		WHERE id = $3
	`, imagePath, imageURL, recipeID)
	return err
}

func (d *DatabaseClient) DeleteRecipe(recipeID uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM recipes WHERE id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
