package models

import "time"

type VideoResponse struct {
	ID              string   `json:"video_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Status          string   `json:"status"`
	MuxUploadID     string   `json:"mux_upload_id,omitempty"`
	MuxAssetID      string   `json:"mux_asset_id,omitempty"`
	MuxPlaybackID   string   `json:"mux_playback_id,omitempty"`
	PlaybackPolicy  string   `json:"playback_policy,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// VideoUploadResponse returns the short-lived direct-upload URL; file bytes
// go straight from the admin's browser to the video platform.
type VideoUploadResponse struct {
	Video     VideoResponse `json:"video"`
	UploadID  string        `json:"upload_id"`
	UploadURL string        `json:"upload_url"`
}

type ClassResponse struct {
	ID          string               `json:"class_id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Level       string               `json:"level,omitempty"`
	BadgeURL    string               `json:"badge_url,omitempty"`
	IsActive    bool                 `json:"is_active"`
	Videos      []ClassVideoResponse `json:"videos,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type ClassListResponse struct {
	Classes []ClassResponse `json:"classes"`
}

type ClassVideoResponse struct {
	ID          string `json:"id"`
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty"`
}

type RecipeResponse struct {
	ID          string    `json:"recipe_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MealType    string    `json:"meal_type"`
	CaloriesMin *int      `json:"calories_min,omitempty"`
	CaloriesMax *int      `json:"calories_max,omitempty"`
	PrepMinutes *int      `json:"prep_minutes,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

// OrderableItemResponse is the shared row shape for the two orderable lookup
// tables. Reorder endpoints respond with the authoritative ordered list.
type OrderableItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OrderNumber *int   `json:"order_number,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type OrderableListResponse struct {
	Items []OrderableItemResponse `json:"items"`
}

// ReorderedItemResponse is the authoritative ordered row returned by the
// reorder endpoints, dense zero-based order included.
type ReorderedItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OrderNumber *int   `json:"order_number"`
}

type ReorderListResponse struct {
	Items []ReorderedItemResponse `json:"items"`
}

type NamedItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type InstructorResponse struct {
	ID        string    `json:"instructor_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionPlanResponse struct {
	ID             string    `json:"plan_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PriceCents     int64     `json:"price_cents"`
	PlaybackPolicy string    `json:"playback_policy"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type ProfileResponse struct {
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name,omitempty"`
	Goal          string    `json:"goal,omitempty"`
	Level         string    `json:"level,omitempty"`
	Units         string    `json:"units,omitempty"`
	HeightCm      *float64  `json:"height_cm,omitempty"`
	WeightKg      *float64  `json:"weight_kg,omitempty"`
	AllergyIDs    []string  `json:"allergy_ids,omitempty"`
	PreferenceIDs []string  `json:"preference_ids,omitempty"`
	Onboarded     bool      `json:"onboarded"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProgressEntryResponse struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	VideoID     string    `json:"video_id,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

type ProgressListResponse struct {
	Entries []ProgressEntryResponse `json:"entries"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
