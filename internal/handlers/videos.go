package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
	"infinite-flow-backend/internal/services"
)

// VideoQueryStore is the read/update slice of the database client used by
// the video endpoints; intake goes through the video service.
type VideoQueryStore interface {
	GetVideo(videoID uuid.UUID) (*models.Video, error)
	GetVideoByUploadID(uploadID string) (*models.Video, error)
	ListVideos(includeInactive bool) ([]models.Video, error)
	UpdateVideo(videoID uuid.UUID, req models.UpdateVideoRequest) (*models.Video, error)
	SoftDeleteVideo(videoID uuid.UUID) error
}

type VideosHandler struct {
	service *services.VideoService
	db      VideoQueryStore
}

func NewVideosHandler(service *services.VideoService, db VideoQueryStore) *VideosHandler {
	return &VideosHandler{
		service: service,
		db:      db,
	}
}

func videoResponse(v models.Video) models.VideoResponse {
	resp := models.VideoResponse{
		ID:        v.ID.String(),
		Title:     v.Title,
		Status:    string(v.Status),
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.Description.Valid {
		resp.Description = v.Description.String
	}
	if v.MuxUploadID.Valid {
		resp.MuxUploadID = v.MuxUploadID.String
	}
	if v.MuxAssetID.Valid {
		resp.MuxAssetID = v.MuxAssetID.String
	}
	if v.MuxPlaybackID.Valid {
		resp.MuxPlaybackID = v.MuxPlaybackID.String
	}
	if v.PlaybackPolicy.Valid {
		resp.PlaybackPolicy = v.PlaybackPolicy.String
	}
	if v.DurationSeconds.Valid {
		d := v.DurationSeconds.Float64
		resp.DurationSeconds = &d
	}
	return resp
}

// CreateUpload godoc
// @Summary     Create a direct upload
// @Description Creates a new video record and a short-lived direct-upload URL at the video platform. The browser uploads file bytes straight to that URL; a background watcher stamps the asset onto the record once processing finishes.
// @Tags        videos
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateVideoUploadRequest true "Video title and playback policy"
// @Success     200 {object} models.VideoUploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/videos/uploads [post]
func (h *VideosHandler) CreateUpload(c *gin.Context) {
	var req models.CreateVideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	video, upload, err := h.service.CreateDirectUpload(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to create upload", err)
		return
	}

	c.JSON(http.StatusOK, models.VideoUploadResponse{
		Video:     videoResponse(*video),
		UploadID:  upload.ID,
		UploadURL: upload.URL,
	})
}

// CreateFromURL godoc
// @Summary     Import a video from a remote URL
// @Tags        videos
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateVideoFromURLRequest true "Video title and source URL"
// @Success     200 {object} models.VideoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/videos [post]
func (h *VideosHandler) CreateFromURL(c *gin.Context) {
	var req models.CreateVideoFromURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	u, err := url.ParseRequestURI(req.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "source_url must be a valid http(s) URL"})
		return
	}

	video, err := h.service.CreateFromURL(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to import video", err)
		return
	}

	c.JSON(http.StatusOK, videoResponse(*video))
}

// ListVideos godoc
// @Summary     List videos
// @Tags        videos
// @Produce     json
// @Security    Bearer
// @Param       include_inactive query bool false "Include inactive videos"
// @Success     200 {object} models.VideoListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/videos [get]
func (h *VideosHandler) ListVideos(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	videos, err := h.db.ListVideos(includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list videos", Message: err.Error()})
		return
	}

	out := make([]models.VideoResponse, len(videos))
	for i, v := range videos {
		out[i] = videoResponse(v)
	}
	c.JSON(http.StatusOK, models.VideoListResponse{Videos: out})
}

// GetVideo godoc
// @Summary     Get video details
// @Tags        videos
// @Produce     json
// @Security    Bearer
// @Param       video_id path string true "Video ID (UUID)"
// @Success     200 {object} models.VideoResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/videos/{video_id} [get]
func (h *VideosHandler) GetVideo(c *gin.Context) {
	videoID, ok := pathUUID(c, "video_id")
	if !ok {
		return
	}

	video, err := h.db.GetVideo(videoID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "video not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, videoResponse(*video))
}

// GetVideoByUpload godoc
// @Summary     Look up a video by its upload id
// @Description Resolves the upload id handed out at upload creation to the video record, so a client that only holds the upload id can follow processing.
// @Tags        videos
// @Produce     json
// @Security    Bearer
// @Param       upload_id path string true "Direct upload ID"
// @Success     200 {object} models.VideoResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/uploads/{upload_id} [get]
func (h *VideosHandler) GetVideoByUpload(c *gin.Context) {
	video, err := h.db.GetVideoByUploadID(c.Param("upload_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "video not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, videoResponse(*video))
}

// UpdateVideo godoc
// @Summary     Update a video
// @Tags        videos
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       video_id path string true "Video ID (UUID)"
// @Param       request body models.UpdateVideoRequest true "Fields to update"
// @Success     200 {object} models.VideoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/videos/{video_id} [patch]
func (h *VideosHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := pathUUID(c, "video_id")
	if !ok {
		return
	}

	var req models.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	video, err := h.db.UpdateVideo(videoID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "video not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, videoResponse(*video))
}

// DeleteVideo godoc
// @Summary     Soft-delete a video
// @Description Hides the video behind the deleted flag and timestamp. The hosted asset is kept.
// @Tags        videos
// @Produce     json
// @Security    Bearer
// @Param       video_id path string true "Video ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/videos/{video_id} [delete]
func (h *VideosHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := pathUUID(c, "video_id")
	if !ok {
		return
	}

	if err := h.db.SoftDeleteVideo(videoID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "video not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video deleted successfully"})
}
