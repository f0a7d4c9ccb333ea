package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/handlers"
	"infinite-flow-backend/internal/models"
)

type fakeVideoQueryStore struct {
	videos map[uuid.UUID]*models.Video
}

func newFakeVideoQueryStore() *fakeVideoQueryStore {
	return &fakeVideoQueryStore{videos: make(map[uuid.UUID]*models.Video)}
}

func (f *fakeVideoQueryStore) GetVideo(videoID uuid.UUID) (*models.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func (f *fakeVideoQueryStore) GetVideoByUploadID(uploadID string) (*models.Video, error) {
	for _, v := range f.videos {
		if v.MuxUploadID.Valid && v.MuxUploadID.String == uploadID {
			return v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeVideoQueryStore) ListVideos(includeInactive bool) ([]models.Video, error) {
	var out []models.Video
	for _, v := range f.videos {
		if v.IsActive || includeInactive {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoQueryStore) UpdateVideo(videoID uuid.UUID, req models.UpdateVideoRequest) (*models.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if req.Title != nil {
		v.Title = *req.Title
	}
	return v, nil
}

func (f *fakeVideoQueryStore) SoftDeleteVideo(videoID uuid.UUID) error {
	if _, ok := f.videos[videoID]; !ok {
		return sql.ErrNoRows
	}
	delete(f.videos, videoID)
	return nil
}

func videosRouter(store *fakeVideoQueryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewVideosHandler(nil, store)
	router := gin.New()
	router.GET("/videos/:video_id", h.GetVideo)
	router.GET("/uploads/:upload_id", h.GetVideoByUpload)
	return router
}

func TestGetVideoByUpload_ResolvesUploadID(t *testing.T) {
	store := newFakeVideoQueryStore()
	video := &models.Video{
		ID:          uuid.New(),
		Title:       "Morning Flow",
		MuxUploadID: sql.NullString{String: "upload-42", Valid: true},
		Status:      models.VideoStatusProcessing,
		IsActive:    true,
	}
	store.videos[video.ID] = video
	router := videosRouter(store)

	req, _ := http.NewRequest(http.MethodGet, "/uploads/upload-42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.VideoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, video.ID.String(), resp.ID)
	assert.Equal(t, "upload-42", resp.MuxUploadID)
	assert.Equal(t, string(models.VideoStatusProcessing), resp.Status)
}

func TestGetVideoByUpload_UnknownUploadIs404(t *testing.T) {
	router := videosRouter(newFakeVideoQueryStore())

	req, _ := http.NewRequest(http.MethodGet, "/uploads/upload-missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
