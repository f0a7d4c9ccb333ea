package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

const classColumns = `id, title, description, level, badge_path, badge_url, is_active, created_at, updated_at`

func scanClass(row interface{ Scan(...any) error }) (*models.Class, error) {
	var c models.Class
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Level, &c.BadgePath, &c.BadgeURL,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *DatabaseClient) CreateClass(title, description, level string) (*models.Class, error) {
	row := d.db.QueryRow(`
		INSERT INTO classes (title, description, level)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING `+classColumns+`
	`, title, description, level)
	c, err := scanClass(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return c, nil
}

func (d *DatabaseClient) GetClass(classID uuid.UUID) (*models.Class, error) {
	row := d.db.QueryRow(`
		SELECT `+classColumns+`
		FROM classes
		WHERE id = $1
	`, classID)
	c, err := scanClass(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return c, nil
}

func (d *DatabaseClient) ListClasses(includeInactive bool) ([]models.Class, error) {
	rows, err := d.db.Query(`
		SELECT `+classColumns+`
		FROM classes
		WHERE is_active = TRUE OR $1
		ORDER BY created_at DESC
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, *c)
	}

	return classes, rows.Err()
}

func (d *DatabaseClient) UpdateClass(classID uuid.UUID, req models.UpdateClassRequest) (*models.Class, error) {
	row := d.db.QueryRow(`
		UPDATE classes
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    level = COALESCE($3, level),
		    is_active = COALESCE($4, is_active),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING `+classColumns+`
	`, req.Title, req.Description, req.Level, req.IsActive, classID)
	c, err := scanClass(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	return c, nil
}

func (d *DatabaseClient) UpdateClassBadge(classID uuid.UUID, badgePath, badgeURL string) error {
	_, err := d.db.Exec(`
		UPDATE classes
		SET badge_path = $1, badge_url = $2, updated_at = NOW()
		WHERE id = $3
	`, badgePath, badgeURL, classID)
	return err
}

func (d *DatabaseClient) DeleteClass(classID uuid.UUID) error {
	res, err := d.db.Exec(`
		DELETE FROM classes
		WHERE id = $1
	`, classID)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AttachVideoToClass appends a video at the end of the class's sequence.
func (d *DatabaseClient) AttachVideoToClass(classID, videoID uuid.UUID, description string) (*models.ClassVideo, error) {
	var cv models.ClassVideo
	err := d.db.QueryRow(`
		INSERT INTO class_videos (class_id, video_id, sort_order, description)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM class_videos WHERE class_id = $1),
			NULLIF($3, ''))
		RETURNING id, class_id, video_id, sort_order, description, created_at, updated_at
	`, classID, videoID, description).Scan(
		&cv.ID, &cv.ClassID, &cv.VideoID, &cv.SortOrder, &cv.Description, &cv.CreatedAt, &cv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to attach video to class: %w", err)
	}
	return &cv, nil
}

// ListClassVideos returns the associations for one class joined with the
// video title, in canonical order (sort order asc, unsorted last, title
// tie-break).
func (d *DatabaseClient) ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error) {
	rows, err := d.db.Query(`
		SELECT cv.id, cv.class_id, cv.video_id, cv.sort_order, cv.description,
		       v.title, cv.created_at, cv.updated_at
		FROM class_videos cv
		JOIN videos v ON v.id = cv.video_id
		WHERE cv.class_id = $1 AND v.is_deleted = FALSE
		ORDER BY cv.sort_order ASC NULLS LAST, LOWER(v.title) ASC
	`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list class videos: %w", err)
	}
	defer rows.Close()

	var out []models.ClassVideo
	for rows.Next() {
		var cv models.ClassVideo
		err := rows.Scan(
			&cv.ID, &cv.ClassID, &cv.VideoID, &cv.SortOrder, &cv.Description,
			&cv.VideoTitle, &cv.CreatedAt, &cv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class video: %w", err)
		}
		out = append(out, cv)
	}

	return out, rows.Err()
}

// UpdateClassVideoOrders rewrites sort_order for every association in the
// class. Rows are updated one by one; the batch is not atomic, which is why
// reorder callers resynchronize from the store on failure.
func (d *DatabaseClient) UpdateClassVideoOrders(classID uuid.UUID, orders map[uuid.UUID]int) error {
	for id, sortOrder := range orders {
		_, err := d.db.Exec(`
			UPDATE class_videos
			SET sort_order = $1, updated_at = NOW()
			WHERE id = $2 AND class_id = $3
		`, sortOrder, id, classID)
		if err != nil {
			return fmt.Errorf("failed to update sort order for %s: %w", id, err)
		}
	}
	return nil
}

func (d *DatabaseClient) DetachVideoFromClass(classID, videoID uuid.UUID) error {
	res, err := d.db.Exec(`
		DELETE FROM class_videos
		WHERE class_id = $1 AND video_id = $2
	`, classID, videoID)
	if err != nil {
		return fmt.Errorf("failed to detach video from class: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
