package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// VideoStatus follows the lifecycle of the hosted asset. Transitions are
// observed from the video platform, never driven locally.
type VideoStatus string

const (
	VideoStatusDraft      VideoStatus = "draft"
	VideoStatusUploading  VideoStatus = "uploading"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"
)

type Video struct {
	ID              uuid.UUID
	Title           string
	Description     sql.NullString
	MuxUploadID     sql.NullString
	MuxAssetID      sql.NullString
	MuxPlaybackID   sql.NullString
	PlaybackPolicy  sql.NullString
	DurationSeconds sql.NullFloat64
	Status          VideoStatus
	IsActive        bool
	IsDeleted       bool
	DeletedAt       sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
