package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Allergy and DietaryPreference are the two admin-orderable lookup tables.
// OrderNumber is nullable; rows without one sort last, tie-broken by name.

type Allergy struct {
	ID          uuid.UUID
	Name        string
	OrderNumber sql.NullInt64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DietaryPreference struct {
	ID          uuid.UUID
	Name        string
	OrderNumber sql.NullInt64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Equipment struct {
	ID          uuid.UUID
	Name        string
	Description sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Instructor struct {
	ID        uuid.UUID
	Name      string
	Bio       sql.NullString
	PhotoPath sql.NullString
	PhotoURL  sql.NullString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionPlan carries the playback policy used when stamping assets for
// videos available at this tier: "public" plays unauthenticated, "signed"
// requires a signed URL.
type SubscriptionPlan struct {
	ID             uuid.UUID
	Name           string
	Description    sql.NullString
	PriceCents     int64
	PlaybackPolicy string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
