package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/models"
	"infinite-flow-backend/internal/services"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeClassStore struct {
	classes    map[uuid.UUID]*models.Class
	attached   []models.ClassVideo
	deleted    []uuid.UUID
	badgeURL   string
	failCreate error
	failAttach error
	failBadge  error
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: make(map[uuid.UUID]*models.Class)}
}

func (f *fakeClassStore) CreateClass(title, description, level string) (*models.Class, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	class := &models.Class{ID: uuid.New(), Title: title, IsActive: true}
	f.classes[class.ID] = class
	return class, nil
}

func (f *fakeClassStore) DeleteClass(classID uuid.UUID) error {
	f.deleted = append(f.deleted, classID)
	delete(f.classes, classID)
	return nil
}

func (f *fakeClassStore) UpdateClassBadge(classID uuid.UUID, badgePath, badgeURL string) error {
	if f.failBadge != nil {
		return f.failBadge
	}
	f.badgeURL = badgeURL
	return nil
}

func (f *fakeClassStore) AttachVideoToClass(classID, videoID uuid.UUID, description string) (*models.ClassVideo, error) {
	if f.failAttach != nil {
		return nil, f.failAttach
	}
	cv := models.ClassVideo{ID: uuid.New(), ClassID: classID, VideoID: videoID}
	f.attached = append(f.attached, cv)
	return &cv, nil
}

func (f *fakeClassStore) ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error) {
	return f.attached, nil
}

type fakeBadgeStore struct {
	uploads int
	fail    error
}

func (f *fakeBadgeStore) UploadImage(kind, entityID, filename, contentType string, data []byte) (string, string, error) {
	if f.fail != nil {
		return "", "", f.fail
	}
	f.uploads++
	path := kind + "/" + entityID + "/" + filename
	return path, "https://storage.example.com/" + path, nil
}

func pngBadge() string {
	return base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func TestCreateClass_AllStepsSucceed(t *testing.T) {
	store := newFakeClassStore()
	badges := &fakeBadgeStore{}
	svc := services.NewClassService(store, badges, services.PolicyContinue, quietLog())

	videoID := uuid.New()
	class, videos, err := svc.CreateClass(context.Background(), models.CreateClassRequest{
		Title:      "Morning Flow",
		BadgeImage: pngBadge(),
		Videos:     []models.AttachVideoInput{{VideoID: videoID.String()}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Morning Flow", class.Title)
	assert.Equal(t, 1, badges.uploads)
	assert.NotEmpty(t, store.badgeURL)
	require.Len(t, videos, 1)
	assert.Equal(t, videoID, videos[0].VideoID)
}

func TestCreateClass_ContinuesWithoutBadge(t *testing.T) {
	store := newFakeClassStore()
	badges := &fakeBadgeStore{fail: errors.New("bucket unavailable")}
	svc := services.NewClassService(store, badges, services.PolicyContinue, quietLog())

	class, _, err := svc.CreateClass(context.Background(), models.CreateClassRequest{
		Title:      "Morning Flow",
		BadgeImage: pngBadge(),
	})

	require.NoError(t, err, "a class without its badge is valid, just incomplete")
	assert.NotNil(t, class)
	assert.Empty(t, store.badgeURL)
	assert.Empty(t, store.deleted)
}

func TestCreateClass_ContinuesPastFailedAttach(t *testing.T) {
	store := newFakeClassStore()
	store.failAttach = errors.New("video not found")
	svc := services.NewClassService(store, &fakeBadgeStore{}, services.PolicyContinue, quietLog())

	class, videos, err := svc.CreateClass(context.Background(), models.CreateClassRequest{
		Title:  "Morning Flow",
		Videos: []models.AttachVideoInput{{VideoID: uuid.NewString()}},
	})

	require.NoError(t, err)
	assert.NotNil(t, class)
	assert.Empty(t, videos)
}

func TestCreateClass_RollbackDeletesClass(t *testing.T) {
	store := newFakeClassStore()
	badges := &fakeBadgeStore{fail: errors.New("bucket unavailable")}
	svc := services.NewClassService(store, badges, services.PolicyRollback, quietLog())

	_, _, err := svc.CreateClass(context.Background(), models.CreateClassRequest{
		Title:      "Morning Flow",
		BadgeImage: pngBadge(),
	})

	require.Error(t, err)
	assert.Len(t, store.deleted, 1, "under rollback the class row is compensated away")
	assert.Empty(t, store.classes)
}

func TestCreateClass_RequiredStepFailure(t *testing.T) {
	store := newFakeClassStore()
	store.failCreate = errors.New("connection refused")
	svc := services.NewClassService(store, &fakeBadgeStore{}, services.PolicyContinue, quietLog())

	_, _, err := svc.CreateClass(context.Background(), models.CreateClassRequest{Title: "Morning Flow"})

	require.Error(t, err)
}

func TestCreateClass_InvalidVideoID(t *testing.T) {
	store := newFakeClassStore()
	svc := services.NewClassService(store, &fakeBadgeStore{}, services.PolicyContinue, quietLog())

	_, _, err := svc.CreateClass(context.Background(), models.CreateClassRequest{
		Title:  "Morning Flow",
		Videos: []models.AttachVideoInput{{VideoID: "not-a-uuid"}},
	})

	require.Error(t, err)
}

func TestSaga_RollbackRunsInReverseOrder(t *testing.T) {
	saga := services.NewSaga(services.PolicyRollback, quietLog())
	ctx := context.Background()

	var undone []string
	require.NoError(t, saga.Required(ctx, "step one",
		func(context.Context) error { return nil },
		func(context.Context) error { undone = append(undone, "one"); return nil },
	))
	require.NoError(t, saga.Required(ctx, "step two",
		func(context.Context) error { return nil },
		func(context.Context) error { undone = append(undone, "two"); return nil },
	))

	err := saga.BestEffort(ctx, "step three", func(context.Context) error {
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, []string{"two", "one"}, undone)
}

func TestSaga_ContinueSkipsCompensations(t *testing.T) {
	saga := services.NewSaga(services.PolicyContinue, quietLog())
	ctx := context.Background()

	compensated := false
	require.NoError(t, saga.Required(ctx, "step one",
		func(context.Context) error { return nil },
		func(context.Context) error { compensated = true; return nil },
	))

	err := saga.BestEffort(ctx, "step two", func(context.Context) error {
		return errors.New("boom")
	})

	require.NoError(t, err)
	assert.False(t, compensated)
}
