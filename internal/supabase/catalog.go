package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

// The two orderable lookup tables share one row shape and one set of
// queries; the table name is always one of these constants, never caller
// input.
const (
	tableAllergies          = "allergies"
	tableDietaryPreferences = "dietary_preferences"
)

type orderableRow struct {
	ID          uuid.UUID
	Name        string
	OrderNumber sql.NullInt64
	IsActive    bool
}

func (d *DatabaseClient) createOrderable(table, name string) (*orderableRow, error) {
	var r orderableRow
	err := d.db.QueryRow(`
		INSERT INTO `+table+` (name)
		VALUES ($1)
		RETURNING id, name, order_number, is_active
	`, name).Scan(&r.ID, &r.Name, &r.OrderNumber, &r.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s row: %w", table, err)
	}
	return &r, nil
}

func (d *DatabaseClient) listOrderable(table string) ([]orderableRow, error) {
	rows, err := d.db.Query(`
		SELECT id, name, order_number, is_active
		FROM ` + table + `
		ORDER BY order_number ASC NULLS LAST, LOWER(name) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var out []orderableRow
	for rows.Next() {
		var r orderableRow
		if err := rows.Scan(&r.ID, &r.Name, &r.OrderNumber, &r.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DatabaseClient) updateOrderable(table string, id uuid.UUID, name *string, isActive *bool) (*orderableRow, error) {
	var r orderableRow
	err := d.db.QueryRow(`
		UPDATE `+table+`
		SET name = COALESCE($1, name),
		    is_active = COALESCE($2, is_active),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, order_number, is_active
	`, name, isActive, id).Scan(&r.ID, &r.Name, &r.OrderNumber, &r.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s row: %w", table, err)
	}
	return &r, nil
}

func (d *DatabaseClient) deleteOrderable(table string, id uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s row: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// updateOrderableOrders rewrites order_number row by row; not atomic across
// the batch.
func (d *DatabaseClient) updateOrderableOrders(table string, orders map[uuid.UUID]int) error {
	for id, orderNumber := range orders {
		_, err := d.db.Exec(`
			UPDATE `+table+`
			SET order_number = $1, updated_at = NOW()
			WHERE id = $2
		`, orderNumber, id)
		if err != nil {
			return fmt.Errorf("failed to update order_number for %s: %w", id, err)
		}
	}
	return nil
}

func orderableToAllergy(r orderableRow) models.Allergy {
	return models.Allergy{ID: r.ID, Name: r.Name, OrderNumber: r.OrderNumber, IsActive: r.IsActive}
}

func orderableToPreference(r orderableRow) models.DietaryPreference {
	return models.DietaryPreference{ID: r.ID, Name: r.Name, OrderNumber: r.OrderNumber, IsActive: r.IsActive}
}

func (d *DatabaseClient) CreateAllergy(name string) (*models.Allergy, error) {
	r, err := d.createOrderable(tableAllergies, name)
	if err != nil {
		return nil, err
	}
	a := orderableToAllergy(*r)
	return &a, nil
}

func (d *DatabaseClient) ListAllergies() ([]models.Allergy, error) {
	rows, err := d.listOrderable(tableAllergies)
	if err != nil {
		return nil, err
	}
	out := make([]models.Allergy, len(rows))
	for i, r := range rows {
		out[i] = orderableToAllergy(r)
	}
	return out, nil
}

func (d *DatabaseClient) UpdateAllergy(id uuid.UUID, name *string, isActive *bool) (*models.Allergy, error) {
	r, err := d.updateOrderable(tableAllergies, id, name, isActive)
	if err != nil {
		return nil, err
	}
	a := orderableToAllergy(*r)
	return &a, nil
}

func (d *DatabaseClient) DeleteAllergy(id uuid.UUID) error {
	return d.deleteOrderable(tableAllergies, id)
}

func (d *DatabaseClient) UpdateAllergyOrders(orders map[uuid.UUID]int) error {
	return d.updateOrderableOrders(tableAllergies, orders)
}

func (d *DatabaseClient) CreateDietaryPreference(name string) (*models.DietaryPreference, error) {
	r, err := d.createOrderable(tableDietaryPreferences, name)
	if err != nil {
		return nil, err
	}
	p := orderableToPreference(*r)
	return &p, nil
}

func (d *DatabaseClient) ListDietaryPreferences() ([]models.DietaryPreference, error) {
	rows, err := d.listOrderable(tableDietaryPreferences)
	if err != nil {
		return nil, err
	}
	out := make([]models.DietaryPreference, len(rows))
	for i, r := range rows {
		out[i] = orderableToPreference(r)
	}
	return out, nil
}

func (d *DatabaseClient) UpdateDietaryPreference(id uuid.UUID, name *string, isActive *bool) (*models.DietaryPreference, error) {
	r, err := d.updateOrderable(tableDietaryPreferences, id, name, isActive)
	if err != nil {
		return nil, err
	}
	p := orderableToPreference(*r)
	return &p, nil
}

func (d *DatabaseClient) DeleteDietaryPreference(id uuid.UUID) error {
	return d.deleteOrderable(tableDietaryPreferences, id)
}

func (d *DatabaseClient) UpdateDietaryPreferenceOrders(orders map[uuid.UUID]int) error {
	return d.updateOrderableOrders(tableDietaryPreferences, orders)
}

func (d *DatabaseClient) CreateEquipment(name, description string) (*models.Equipment, error) {
	var e models.Equipment
	err := d.db.QueryRow(`
		INSERT INTO equipment (name, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, description, is_active, created_at, updated_at
	`, name, description).Scan(&e.ID, &e.Name, &e.Description, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return &e, nil
}

func (d *DatabaseClient) ListEquipment() ([]models.Equipment, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, is_active, created_at, updated_at
		FROM equipment
		ORDER BY LOWER(name) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var out []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DatabaseClient) DeleteEquipment(id uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) CreateInstructor(name, bio string) (*models.Instructor, error) {
	var i models.Instructor
	err := d.db.QueryRow(`
		INSERT INTO instructors (name, bio)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, bio, photo_path, photo_url, is_active, created_at, updated_at
	`, name, bio).Scan(&i.ID, &i.Name, &i.Bio, &i.PhotoPath, &i.PhotoURL, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}
	return &i, nil
}

func (d *DatabaseClient) ListInstructors() ([]models.Instructor, error) {
	rows, err := d.db.Query(`
		SELECT id, name, bio, photo_path, photo_url, is_active, created_at, updated_at
		FROM instructors
		ORDER BY LOWER(name) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	defer rows.Close()

	var out []models.Instructor
	for rows.Next() {
		var i models.Instructor
		if err := rows.Scan(&i.ID, &i.Name, &i.Bio, &i.PhotoPath, &i.PhotoURL, &i.IsActive, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (d *DatabaseClient) UpdateInstructorPhoto(id uuid.UUID, photoPath, photoURL string) error {
	_, err := d.db.Exec(`
		UPDATE instructors
		SET photo_path = $1, photo_url = $2, updated_at = NOW()
		WHERE id = $3
	`, photoPath, photoURL, id)
	return err
}

func (d *DatabaseClient) DeleteInstructor(id uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) CreateSubscriptionPlan(name, description string, priceCents int64, playbackPolicy string) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := d.db.QueryRow(`
		INSERT INTO subscription_plans (name, description, price_cents, playback_policy)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id, name, description, price_cents, playback_policy, is_active, created_at, updated_at
	`, name, description, priceCents, playbackPolicy).Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.PlaybackPolicy, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription plan: %w", err)
	}
	return &p, nil
}

func (d *DatabaseClient) ListSubscriptionPlans() ([]models.SubscriptionPlan, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, price_cents, playback_policy, is_active, created_at, updated_at
		FROM subscription_plans
		ORDER BY price_cents ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription plans: %w", err)
	}
	defer rows.Close()

	var out []models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.PlaybackPolicy, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DatabaseClient) DeleteSubscriptionPlan(id uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
