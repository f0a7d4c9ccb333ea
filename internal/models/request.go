package models

type CreateVideoUploadRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	// PlaybackPolicy is "public" or "signed"; defaults to "public".
	PlaybackPolicy string `json:"playback_policy,omitempty"`
}

type CreateVideoFromURLRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description,omitempty"`
	SourceURL      string `json:"source_url" binding:"required"`
	PlaybackPolicy string `json:"playback_policy,omitempty"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateClassRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description,omitempty"`
	Level       string   `json:"level,omitempty"`
	// BadgeImage is the base64-encoded badge uploaded to storage after the
	// class row is created.
	BadgeImage       string             `json:"badge_image,omitempty"`
	BadgeContentType string             `json:"badge_content_type,omitempty"`
	Videos           []AttachVideoInput `json:"videos,omitempty"`
}

type AttachVideoInput struct {
	VideoID     string `json:"video_id" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateClassRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Level       *string `json:"level,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateRecipeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	MealType    string `json:"meal_type" binding:"required"`
	CaloriesMin *int   `json:"calories_min,omitempty"`
	CaloriesMax *int   `json:"calories_max,omitempty"`
	PrepMinutes *int   `json:"prep_minutes,omitempty"`
}

type UpdateRecipeRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	MealType    *string `json:"meal_type,omitempty"`
	CaloriesMin *int    `json:"calories_min,omitempty"`
	CaloriesMax *int    `json:"calories_max,omitempty"`
	PrepMinutes *int    `json:"prep_minutes,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateInstructorRequest struct {
	Name string `json:"name" binding:"required"`
	Bio  string `json:"bio,omitempty"`
}

type CreateSubscriptionPlanRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description,omitempty"`
	PriceCents     int64  `json:"price_cents"`
	PlaybackPolicy string `json:"playback_policy,omitempty"`
}

type CreateNamedItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// UploadImageRequest carries a base64-encoded image for entities whose
// pictures live in blob storage (recipe photos, instructor headshots).
type UploadImageRequest struct {
	Image       string `json:"image" binding:"required"`
	ContentType string `json:"content_type,omitempty"`
}

type UpdateOrderableRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ReorderRequest names the moved item alongside its indices so a stale or
// filtered client view is rejected instead of silently reordering the wrong
// row.
type ReorderRequest struct {
	ItemID    string `json:"item_id" binding:"required"`
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
}

type UpdateProfileRequest struct {
	DisplayName   *string  `json:"display_name,omitempty"`
	Goal          *string  `json:"goal,omitempty"`
	Level         *string  `json:"level,omitempty"`
	Units         *string  `json:"units,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	AllergyIDs    []string `json:"allergy_ids,omitempty"`
	PreferenceIDs []string `json:"preference_ids,omitempty"`
	Onboarded     *bool    `json:"onboarded,omitempty"`
}

type RecordProgressRequest struct {
	ClassID string `json:"class_id" binding:"required"`
	VideoID string `json:"video_id,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
