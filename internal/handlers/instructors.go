package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

type InstructorStore interface {
	CreateInstructor(name, bio string) (*models.Instructor, error)
	ListInstructors() ([]models.Instructor, error)
	UpdateInstructorPhoto(id uuid.UUID, photoPath, photoURL string) error
	DeleteInstructor(id uuid.UUID) error
}

type InstructorsHandler struct {
	db     InstructorStore
	images RecipeImageStore
}

func NewInstructorsHandler(db InstructorStore, images RecipeImageStore) *InstructorsHandler {
	return &InstructorsHandler{db: db, images: images}
}

func instructorResponse(i models.Instructor) models.InstructorResponse {
	resp := models.InstructorResponse{
		ID:        i.ID.String(),
		Name:      i.Name,
		IsActive:  i.IsActive,
		CreatedAt: i.CreatedAt,
	}
	if i.Bio.Valid {
		resp.Bio = i.Bio.String
	}
	if i.PhotoURL.Valid {
		resp.PhotoURL = i.PhotoURL.String
	}
	return resp
}

// CreateInstructor godoc
// @Summary     Create an instructor
// @Tags        instructors
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateInstructorRequest true "Instructor definition"
// @Success     200 {object} models.InstructorResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/instructors [post]
func (h *InstructorsHandler) CreateInstructor(c *gin.Context) {
	var req models.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	instructor, err := h.db.CreateInstructor(req.Name, req.Bio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create instructor", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, instructorResponse(*instructor))
}

// ListInstructors godoc
// @Summary     List instructors
// @Tags        instructors
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.InstructorResponse
// @Router      /admin/instructors [get]
func (h *InstructorsHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.db.ListInstructors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list instructors", Message: err.Error()})
		return
	}

	out := make([]models.InstructorResponse, len(instructors))
	for i, ins := range instructors {
		out[i] = instructorResponse(ins)
	}
	c.JSON(http.StatusOK, out)
}

// UploadPhoto godoc
// @Summary     Upload an instructor headshot
// @Tags        instructors
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       instructor_id path string true "Instructor ID (UUID)"
// @Param       request body models.UploadImageRequest true "Base64-encoded image"
// @Success     200 {object} map[string]string "photo_url"
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/instructors/{instructor_id}/photo [post]
func (h *InstructorsHandler) UploadPhoto(c *gin.Context) {
	instructorID, ok := pathUUID(c, "instructor_id")
	if !ok {
		return
	}

	var req models.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image encoding", Message: err.Error()})
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	path, url, err := h.images.UploadImage("instructors", instructorID.String(), "photo"+imageExtension(contentType), contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to upload photo", Message: err.Error()})
		return
	}

	if err := h.db.UpdateInstructorPhoto(instructorID, path, url); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save photo reference", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// DeleteInstructor godoc
// @Summary     Delete an instructor
// @Tags        instructors
// @Produce     json
// @Security    Bearer
// @Param       instructor_id path string true "Instructor ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/instructors/{instructor_id} [delete]
func (h *InstructorsHandler) DeleteInstructor(c *gin.Context) {
	instructorID, ok := pathUUID(c, "instructor_id")
	if !ok {
		return
	}

	if err := h.db.DeleteInstructor(instructorID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "instructor not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "instructor deleted successfully"})
}
