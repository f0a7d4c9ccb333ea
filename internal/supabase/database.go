package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"infinite-flow-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

const videoColumns = `id, title, description, mux_upload_id, mux_asset_id, mux_playback_id,
		playback_policy, duration_seconds, status, is_active, is_deleted, deleted_at, created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.MuxUploadID, &v.MuxAssetID, &v.MuxPlaybackID,
		&v.PlaybackPolicy, &v.DurationSeconds, &v.Status, &v.IsActive, &v.IsDeleted,
		&v.DeletedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DatabaseClient) CreateVideo(title, description, uploadID, playbackPolicy string, status models.VideoStatus) (*models.Video, error) {
	row := d.db.QueryRow(`
		INSERT INTO videos (title, description, mux_upload_id, playback_policy, status)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING `+videoColumns+`
	`, title, description, uploadID, playbackPolicy, status)
	v, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return v, nil
}

func (d *DatabaseClient) GetVideo(videoID uuid.UUID) (*models.Video, error) {
	row := d.db.QueryRow(`
		SELECT `+videoColumns+`
		FROM videos
		WHERE id = $1 AND is_deleted = FALSE
	`, videoID)
	v, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return v, nil
}

func (d *DatabaseClient) GetVideoByUploadID(uploadID string) (*models.Video, error) {
	row := d.db.QueryRow(`
		SELECT `+videoColumns+`
		FROM videos
		WHERE mux_upload_id = $1 AND is_deleted = FALSE
	`, uploadID)
	v, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get video by upload id: %w", err)
	}
	return v, nil
}

func (d *DatabaseClient) ListVideos(includeInactive bool) ([]models.Video, error) {
	rows, err := d.db.Query(`
		SELECT `+videoColumns+`
		FROM videos
		WHERE is_deleted = FALSE AND (is_active = TRUE OR $1)
		ORDER BY created_at DESC
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, *v)
	}

	return videos, rows.Err()
}

func (d *DatabaseClient) UpdateVideo(videoID uuid.UUID, req models.UpdateVideoRequest) (*models.Video, error) {
	row := d.db.QueryRow(`
		UPDATE videos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    is_active = COALESCE($3, is_active),
		    updated_at = NOW()
		WHERE id = $4 AND is_deleted = FALSE
		RETURNING `+videoColumns+`
	`, req.Title, req.Description, req.IsActive, videoID)
	v, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return v, nil
}

func (d *DatabaseClient) UpdateVideoStatus(videoID uuid.UUID, status models.VideoStatus) error {
	_, err := d.db.Exec(`
		UPDATE videos
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, videoID)
	return err
}

func (d *DatabaseClient) SetVideoAssetID(videoID uuid.UUID, assetID string) error {
	_, err := d.db.Exec(`
		UPDATE videos
		SET mux_asset_id = $1, updated_at = NOW()
		WHERE id = $2
	`, assetID, videoID)
	return err
}

// StampVideoReady records the processed asset onto the video row: asset id,
// the selected playback variant, and duration, in one write.
func (d *DatabaseClient) StampVideoReady(videoID uuid.UUID, assetID, playbackID, policy string, durationSeconds float64) error {
	_, err := d.db.Exec(`
		UPDATE videos
		SET mux_asset_id = $1,
		    mux_playback_id = NULLIF($2, ''),
		    playback_policy = NULLIF($3, ''),
		    duration_seconds = $4,
		    status = $5,
		    updated_at = NOW()
		WHERE id = $6
	`, assetID, playbackID, policy, durationSeconds, models.VideoStatusReady, videoID)
	return err
}

func (d *DatabaseClient) MarkVideoFailed(videoID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE videos
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, models.VideoStatusFailed, videoID)
	return err
}

// SoftDeleteVideo hides a video without removing the row; the hosted asset
// and any class associations stay queryable for audit.
func (d *DatabaseClient) SoftDeleteVideo(videoID uuid.UUID) error {
	res, err := d.db.Exec(`
		UPDATE videos
		SET is_deleted = TRUE, deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`, videoID)
	if err != nil {
		return fmt.Errorf("failed to soft delete video: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
