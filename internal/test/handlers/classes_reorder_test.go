package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/handlers"
	"infinite-flow-backend/internal/models"
)

type fakeClassStore struct {
	classID    uuid.UUID
	videos     []models.ClassVideo
	orderCalls int
}

func (f *fakeClassStore) GetClass(classID uuid.UUID) (*models.Class, error) {
	return &models.Class{ID: classID, Title: "Morning Flow", IsActive: true}, nil
}

func (f *fakeClassStore) ListClasses(includeInactive bool) ([]models.Class, error) {
	return nil, nil
}

func (f *fakeClassStore) UpdateClass(classID uuid.UUID, req models.UpdateClassRequest) (*models.Class, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeClassStore) DeleteClass(classID uuid.UUID) error { return nil }

func (f *fakeClassStore) ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error) {
	out := make([]models.ClassVideo, len(f.videos))
	copy(out, f.videos)
	return out, nil
}

func (f *fakeClassStore) AttachVideoToClass(classID, videoID uuid.UUID, description string) (*models.ClassVideo, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeClassStore) DetachVideoFromClass(classID, videoID uuid.UUID) error { return nil }

func (f *fakeClassStore) UpdateClassVideoOrders(classID uuid.UUID, orders map[uuid.UUID]int) error {
	f.orderCalls++
	for i := range f.videos {
		if n, ok := orders[f.videos[i].ID]; ok {
			f.videos[i].SortOrder = sql.NullInt64{Int64: int64(n), Valid: true}
		}
	}
	return nil
}

func classVideo(title string, order int) models.ClassVideo {
	return models.ClassVideo{
		ID:         uuid.New(),
		VideoID:    uuid.New(),
		VideoTitle: title,
		SortOrder:  sql.NullInt64{Int64: int64(order), Valid: true},
	}
}

func reorderRouter(store *fakeClassStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewClassesHandler(nil, store)
	router := gin.New()
	router.PUT("/classes/:class_id/videos/order", h.ReorderVideos)
	return router
}

func TestReorderVideos_MovesAndRenumbers(t *testing.T) {
	store := &fakeClassStore{
		classID: uuid.New(),
		videos: []models.ClassVideo{
			classVideo("Warm Up", 0),
			classVideo("Main Set", 1),
			classVideo("Cool Down", 2),
		},
	}
	router := reorderRouter(store)

	w := postJSON(t, router, "PUT", "/classes/"+store.classID.String()+"/videos/order", models.ReorderRequest{
		ItemID:    store.videos[2].ID.String(),
		FromIndex: 2,
		ToIndex:   0,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, store.orderCalls)

	var resp models.ReorderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Cool Down", resp.Items[0].Name)
	assert.Equal(t, "Warm Up", resp.Items[1].Name)
	assert.Equal(t, "Main Set", resp.Items[2].Name)
	for i, item := range resp.Items {
		require.NotNil(t, item.OrderNumber)
		assert.Equal(t, i, *item.OrderNumber)
	}
}

func TestReorderVideos_StaleViewRejected(t *testing.T) {
	store := &fakeClassStore{
		classID: uuid.New(),
		videos: []models.ClassVideo{
			classVideo("Warm Up", 0),
			classVideo("Main Set", 1),
		},
	}
	router := reorderRouter(store)

	// The client names the item at index 1 but claims it sits at index 0.
	w := postJSON(t, router, "PUT", "/classes/"+store.classID.String()+"/videos/order", models.ReorderRequest{
		ItemID:    store.videos[1].ID.String(),
		FromIndex: 0,
		ToIndex:   1,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, store.orderCalls)
}

func TestReorderVideos_IndexOutOfRange(t *testing.T) {
	store := &fakeClassStore{
		classID: uuid.New(),
		videos:  []models.ClassVideo{classVideo("Warm Up", 0)},
	}
	router := reorderRouter(store)

	w := postJSON(t, router, "PUT", "/classes/"+store.classID.String()+"/videos/order", models.ReorderRequest{
		ItemID:    store.videos[0].ID.String(),
		FromIndex: 0,
		ToIndex:   4,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.orderCalls)
}
