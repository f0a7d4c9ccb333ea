package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Profile holds the consumer onboarding answers. UserID comes from the JWT
// sub claim, so a profile row is created lazily on first write.
type Profile struct {
	UserID        uuid.UUID
	DisplayName   sql.NullString
	Goal          sql.NullString
	Level         sql.NullString
	Units         sql.NullString
	HeightCm      sql.NullFloat64
	WeightKg      sql.NullFloat64
	AllergyIDs    []uuid.UUID
	PreferenceIDs []uuid.UUID
	Onboarded     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type WorkoutProgress struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ClassID     uuid.UUID
	VideoID     sql.NullString
	CompletedAt time.Time
}
