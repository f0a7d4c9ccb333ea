package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID          uuid.UUID
	Title       string
	Description sql.NullString
	Level       sql.NullString
	BadgePath   sql.NullString
	BadgeURL    sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClassVideo attaches a video to a class. SortOrder values are kept dense
// and zero-based within one class by the reorder flow. Description, when
// set, overrides the video's own description for this class only.
type ClassVideo struct {
	ID          uuid.UUID
	ClassID     uuid.UUID
	VideoID     uuid.UUID
	SortOrder   sql.NullInt64
	Description sql.NullString
	VideoTitle  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
