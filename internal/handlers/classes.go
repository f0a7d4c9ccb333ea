package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/apperr"
	"infinite-flow-backend/internal/models"
	"infinite-flow-backend/internal/ordering"
	"infinite-flow-backend/internal/services"
)

// ClassQueryStore is the slice of the database client the class endpoints
// use directly; creation goes through the class service saga.
type ClassQueryStore interface {
	GetClass(classID uuid.UUID) (*models.Class, error)
	ListClasses(includeInactive bool) ([]models.Class, error)
	UpdateClass(classID uuid.UUID, req models.UpdateClassRequest) (*models.Class, error)
	DeleteClass(classID uuid.UUID) error
	ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error)
	AttachVideoToClass(classID, videoID uuid.UUID, description string) (*models.ClassVideo, error)
	DetachVideoFromClass(classID, videoID uuid.UUID) error
	UpdateClassVideoOrders(classID uuid.UUID, orders map[uuid.UUID]int) error
}

type ClassesHandler struct {
	service *services.ClassService
	db      ClassQueryStore

	mu     sync.Mutex
	scopes map[uuid.UUID]*ordering.List
}

func NewClassesHandler(service *services.ClassService, db ClassQueryStore) *ClassesHandler {
	return &ClassesHandler{
		service: service,
		db:      db,
		scopes:  make(map[uuid.UUID]*ordering.List),
	}
}

// classVideoScope adapts one class's video associations to the reorder
// component. The display name used for tie-breaks is the video title.
type classVideoScope struct {
	db      ClassQueryStore
	classID uuid.UUID
}

func (s classVideoScope) ListItems(ctx context.Context) ([]ordering.Item, error) {
	rows, err := s.db.ListClassVideos(s.classID)
	if err != nil {
		return nil, err
	}
	items := make([]ordering.Item, len(rows))
	for i, cv := range rows {
		items[i] = ordering.Item{ID: cv.ID.String(), Name: cv.VideoTitle}
		if cv.SortOrder.Valid {
			order := int(cv.SortOrder.Int64)
			items[i].OrderNumber = &order
		}
	}
	return items, nil
}

func (s classVideoScope) UpdateOrder(ctx context.Context, updates []ordering.Update) error {
	orders := make(map[uuid.UUID]int, len(updates))
	for _, u := range updates {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return err
		}
		orders[id] = u.OrderNumber
	}
	return s.db.UpdateClassVideoOrders(s.classID, orders)
}

// scopeFor returns the one reorder component per class, so the in-flight
// guard is shared by every admin touching that class.
func (h *ClassesHandler) scopeFor(classID uuid.UUID) *ordering.List {
	h.mu.Lock()
	defer h.mu.Unlock()
	list, ok := h.scopes[classID]
	if !ok {
		list = ordering.NewList(classVideoScope{db: h.db, classID: classID})
		h.scopes[classID] = list
	}
	return list
}

func classResponse(c models.Class, videos []models.ClassVideo) models.ClassResponse {
	resp := models.ClassResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Description.Valid {
		resp.Description = c.Description.String
	}
	if c.Level.Valid {
		resp.Level = c.Level.String
	}
	if c.BadgeURL.Valid {
		resp.BadgeURL = c.BadgeURL.String
	}
	for _, cv := range videos {
		resp.Videos = append(resp.Videos, classVideoResponse(cv))
	}
	return resp
}

func classVideoResponse(cv models.ClassVideo) models.ClassVideoResponse {
	out := models.ClassVideoResponse{
		ID:      cv.ID.String(),
		VideoID: cv.VideoID.String(),
		Title:   cv.VideoTitle,
	}
	// Per-class description override wins over the video's own description.
	if cv.Description.Valid {
		out.Description = cv.Description.String
	}
	if cv.SortOrder.Valid {
		order := int(cv.SortOrder.Int64)
		out.SortOrder = &order
	}
	return out
}

// CreateClass godoc
// @Summary     Create a class
// @Description Creates a class, uploads its badge image to storage, and attaches the listed videos, as a best-effort multi-step workflow.
// @Tags        classes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateClassRequest true "Class definition"
// @Success     200 {object} models.ClassResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/classes [post]
func (h *ClassesHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	class, videos, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to create class", err)
		return
	}

	c.JSON(http.StatusOK, classResponse(*class, videos))
}

// ListClasses godoc
// @Summary     List classes
// @Tags        classes
// @Produce     json
// @Security    Bearer
// @Param       include_inactive query bool false "Include inactive classes"
// @Success     200 {object} models.ClassListResponse
// @Router      /admin/classes [get]
func (h *ClassesHandler) ListClasses(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	classes, err := h.db.ListClasses(includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list classes", Message: err.Error()})
		return
	}

	out := make([]models.ClassResponse, len(classes))
	for i, cl := range classes {
		out[i] = classResponse(cl, nil)
	}
	c.JSON(http.StatusOK, models.ClassListResponse{Classes: out})
}

// GetClass godoc
// @Summary     Get a class with its videos
// @Tags        classes
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Success     200 {object} models.ClassResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id} [get]
func (h *ClassesHandler) GetClass(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	class, err := h.db.GetClass(classID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "class not found", Message: err.Error()})
		return
	}

	videos, err := h.db.ListClassVideos(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list class videos", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, classResponse(*class, videos))
}

// UpdateClass godoc
// @Summary     Update a class
// @Tags        classes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Param       request body models.UpdateClassRequest true "Fields to update"
// @Success     200 {object} models.ClassResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id} [patch]
func (h *ClassesHandler) UpdateClass(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	class, err := h.db.UpdateClass(classID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "class not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, classResponse(*class, nil))
}

// DeleteClass godoc
// @Summary     Delete a class
// @Tags        classes
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id} [delete]
func (h *ClassesHandler) DeleteClass(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	if err := h.db.DeleteClass(classID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "class not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// AttachVideo godoc
// @Summary     Attach a video to a class
// @Description Appends the video at the end of the class's sequence, with an optional per-class description override.
// @Tags        classes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Param       request body models.AttachVideoInput true "Video to attach"
// @Success     200 {object} models.ClassVideoResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id}/videos [post]
func (h *ClassesHandler) AttachVideo(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	var req models.AttachVideoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid video id"})
		return
	}

	cv, err := h.db.AttachVideoToClass(classID, videoID, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to attach video", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, classVideoResponse(*cv))
}

// DetachVideo godoc
// @Summary     Detach a video from a class
// @Tags        classes
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Param       video_id path string true "Video ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id}/videos/{video_id} [delete]
func (h *ClassesHandler) DetachVideo(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "video_id")
	if !ok {
		return
	}

	if err := h.db.DetachVideoFromClass(classID, videoID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "video not attached to class", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video detached successfully"})
}

// ReorderVideos godoc
// @Summary     Reorder the videos of a class
// @Description Moves the named association within the class and rewrites sort_order as a dense zero-based sequence for every association. The response carries the authoritative order; on a write failure the order is refetched from the store.
// @Tags        classes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       class_id path string true "Class ID (UUID)"
// @Param       request body models.ReorderRequest true "Item and indices"
// @Success     200 {object} models.ReorderListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/classes/{class_id}/videos/order [put]
func (h *ClassesHandler) ReorderVideos(c *gin.Context) {
	classID, ok := pathUUID(c, "class_id")
	if !ok {
		return
	}

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	items, err := h.scopeFor(classID).Reorder(c.Request.Context(), req.ItemID, req.FromIndex, req.ToIndex)
	respondReorder(c, items, err)
}

// respondReorder renders a reorder result for any scope. When the write
// failed partway, the refetched store state rides along with the error so
// the caller can resynchronize.
func respondReorder(c *gin.Context, items []ordering.Item, err error) {
	if err != nil {
		body := gin.H{"error": "failed to reorder", "message": err.Error()}
		if len(items) > 0 {
			body["items"] = reorderedItems(items)
		}
		c.JSON(apperr.HTTPStatus(err), body)
		return
	}
	c.JSON(http.StatusOK, models.ReorderListResponse{Items: reorderedItems(items)})
}

func reorderedItems(items []ordering.Item) []models.ReorderedItemResponse {
	out := make([]models.ReorderedItemResponse, len(items))
	for i, it := range items {
		out[i] = models.ReorderedItemResponse{ID: it.ID, Name: it.Name, OrderNumber: it.OrderNumber}
	}
	return out
}
