package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"infinite-flow-backend/internal/models"
)

const profileColumns = `user_id, display_name, goal, level, units, height_cm, weight_kg,
		allergy_ids, preference_ids, onboarded, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	var allergyIDs, preferenceIDs []string
	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.Goal, &p.Level, &p.Units, &p.HeightCm, &p.WeightKg,
		pq.Array(&allergyIDs), pq.Array(&preferenceIDs), &p.Onboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, s := range allergyIDs {
		if id, err := uuid.Parse(s); err == nil {
			p.AllergyIDs = append(p.AllergyIDs, id)
		}
	}
	for _, s := range preferenceIDs {
		if id, err := uuid.Parse(s); err == nil {
			p.PreferenceIDs = append(p.PreferenceIDs, id)
		}
	}
	return &p, nil
}

// GetOrCreateProfile returns the user's profile, creating an empty row on
// first sight of the user id.
func (d *DatabaseClient) GetOrCreateProfile(userID uuid.UUID) (*models.Profile, error) {
	row := d.db.QueryRow(`
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+profileColumns+`
	`, userID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) UpdateProfile(userID uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error) {
	var allergyIDs, preferenceIDs interface{}
	if req.AllergyIDs != nil {
		allergyIDs = pq.Array(req.AllergyIDs)
	}
	if req.PreferenceIDs != nil {
		preferenceIDs = pq.Array(req.PreferenceIDs)
	}

	row := d.db.QueryRow(`
		UPDATE profiles
		SET display_name = COALESCE($1, display_name),
		    goal = COALESCE($2, goal),
		    level = COALESCE($3, level),
		    units = COALESCE($4, units),
		    height_cm = COALESCE($5, height_cm),
		    weight_kg = COALESCE($6, weight_kg),
		    allergy_ids = COALESCE($7, allergy_ids),
		    preference_ids = COALESCE($8, preference_ids),
		    onboarded = COALESCE($9, onboarded),
		    updated_at = NOW()
		WHERE user_id = $10
		RETURNING `+profileColumns+`
	`, req.DisplayName, req.Goal, req.Level, req.Units, req.HeightCm, req.WeightKg,
		allergyIDs, preferenceIDs, req.Onboarded, userID)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) RecordProgress(userID, classID uuid.UUID, videoID string) (*models.WorkoutProgress, error) {
	var w models.WorkoutProgress
	err := d.db.QueryRow(`
		INSERT INTO workout_progress (user_id, class_id, video_id)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, user_id, class_id, video_id, completed_at
	`, userID, classID, videoID).Scan(&w.ID, &w.UserID, &w.ClassID, &w.VideoID, &w.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}
	return &w, nil
}

func (d *DatabaseClient) ListProgress(userID uuid.UUID) ([]models.WorkoutProgress, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, class_id, video_id, completed_at
		FROM workout_progress
		WHERE user_id = $1
		ORDER BY completed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var out []models.WorkoutProgress
	for rows.Next() {
		var w models.WorkoutProgress
		if err := rows.Scan(&w.ID, &w.UserID, &w.ClassID, &w.VideoID, &w.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress entry: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
