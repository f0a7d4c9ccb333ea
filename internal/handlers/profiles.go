package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

type ProfileStore interface {
	GetOrCreateProfile(userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(userID uuid.UUID, req models.UpdateProfileRequest) (*models.Profile, error)
	RecordProgress(userID, classID uuid.UUID, videoID string) (*models.WorkoutProgress, error)
	ListProgress(userID uuid.UUID) ([]models.WorkoutProgress, error)
}

type ProfilesHandler struct {
	db ProfileStore
}

func NewProfilesHandler(db ProfileStore) *ProfilesHandler {
	return &ProfilesHandler{db: db}
}

func profileResponse(p models.Profile) models.ProfileResponse {
	resp := models.ProfileResponse{
		UserID:    p.UserID.String(),
		Onboarded: p.Onboarded,
		UpdatedAt: p.UpdatedAt,
	}
	if p.DisplayName.Valid {
		resp.DisplayName = p.DisplayName.String
	}
	if p.Goal.Valid {
		resp.Goal = p.Goal.String
	}
	if p.Level.Valid {
		resp.Level = p.Level.String
	}
	if p.Units.Valid {
		resp.Units = p.Units.String
	}
	if p.HeightCm.Valid {
		resp.HeightCm = &p.HeightCm.Float64
	}
	if p.WeightKg.Valid {
		resp.WeightKg = &p.WeightKg.Float64
	}
	for _, id := range p.AllergyIDs {
		resp.AllergyIDs = append(resp.AllergyIDs, id.String())
	}
	for _, id := range p.PreferenceIDs {
		resp.PreferenceIDs = append(resp.PreferenceIDs, id.String())
	}
	return resp
}

// GetProfile godoc
// @Summary     Get the caller's profile
// @Description Creates an empty profile on first call for the authenticated user.
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /me/profile [get]
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.db.GetOrCreateProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load profile", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profileResponse(*profile))
}

// UpdateProfile godoc
// @Summary     Update the caller's profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateProfileRequest true "Fields to update"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /me/profile [patch]
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	for _, raw := range append(req.AllergyIDs, req.PreferenceIDs...) {
		if _, err := uuid.Parse(raw); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id in request", Message: raw})
			return
		}
	}

	// Ensure the row exists before the partial update.
	if _, err := h.db.GetOrCreateProfile(userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load profile", Message: err.Error()})
		return
	}

	profile, err := h.db.UpdateProfile(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update profile", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profileResponse(*profile))
}

// RecordProgress godoc
// @Summary     Record a completed workout
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.RecordProgressRequest true "Completed class and optional video"
// @Success     200 {object} models.ProgressEntryResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /me/progress [post]
func (h *ProfilesHandler) RecordProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid class id"})
		return
	}
	if req.VideoID != "" {
		if _, err := uuid.Parse(req.VideoID); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid video id"})
			return
		}
	}

	entry, err := h.db.RecordProgress(userID, classID, req.VideoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record progress", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, progressResponse(*entry))
}

// ListProgress godoc
// @Summary     List the caller's workout history
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProgressListResponse
// @Router      /me/progress [get]
func (h *ProfilesHandler) ListProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.db.ListProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list progress", Message: err.Error()})
		return
	}

	out := make([]models.ProgressEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = progressResponse(e)
	}
	c.JSON(http.StatusOK, models.ProgressListResponse{Entries: out})
}

func progressResponse(w models.WorkoutProgress) models.ProgressEntryResponse {
	resp := models.ProgressEntryResponse{
		ID:          w.ID.String(),
		ClassID:     w.ClassID.String(),
		CompletedAt: w.CompletedAt,
	}
	if w.VideoID.Valid {
		resp.VideoID = w.VideoID.String
	}
	return resp
}
