package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID
	Title       string
	Description sql.NullString
	MealType    string
	CaloriesMin sql.NullInt64
	CaloriesMax sql.NullInt64
	PrepMinutes sql.NullInt64
	ImagePath   sql.NullString
	ImageURL    sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
