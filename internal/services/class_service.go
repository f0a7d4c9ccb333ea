package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"infinite-flow-backend/internal/apperr"
	"infinite-flow-backend/internal/models"
)

// ClassStore is the slice of the database client the class workflow needs.
type ClassStore interface {
	CreateClass(title, description, level string) (*models.Class, error)
	DeleteClass(classID uuid.UUID) error
	UpdateClassBadge(classID uuid.UUID, badgePath, badgeURL string) error
	AttachVideoToClass(classID, videoID uuid.UUID, description string) (*models.ClassVideo, error)
	ListClassVideos(classID uuid.UUID) ([]models.ClassVideo, error)
}

// BadgeStore uploads class badge images to blob storage.
type BadgeStore interface {
	UploadImage(kind, entityID, filename, contentType string, data []byte) (string, string, error)
}

// ClassService composes a class from its parts: the class row, an optional
// badge image in blob storage, and the attached videos. The steps run as a
// saga with the platform's partial-failure policy.
type ClassService struct {
	db     ClassStore
	badges BadgeStore
	policy PartialFailurePolicy
	log    logrus.FieldLogger
}

func NewClassService(db ClassStore, badges BadgeStore, policy PartialFailurePolicy, log logrus.FieldLogger) *ClassService {
	return &ClassService{
		db:     db,
		badges: badges,
		policy: policy,
		log:    log,
	}
}

// CreateClass creates the class row, then best-effort uploads the badge and
// attaches the requested videos in the given order. Under PolicyContinue a
// failed secondary step leaves the class valid but incomplete.
func (s *ClassService) CreateClass(ctx context.Context, req models.CreateClassRequest) (*models.Class, []models.ClassVideo, error) {
	saga := NewSaga(s.policy, s.log)

	var class *models.Class
	err := saga.Required(ctx, "create class",
		func(ctx context.Context) error {
			var err error
			class, err = s.db.CreateClass(req.Title, req.Description, req.Level)
			return err
		},
		func(ctx context.Context) error {
			return s.db.DeleteClass(class.ID)
		},
	)
	if err != nil {
		return nil, nil, err
	}

	if req.BadgeImage != "" {
		if err := saga.BestEffort(ctx, "upload class badge", func(ctx context.Context) error {
			return s.uploadBadge(class, req.BadgeImage, req.BadgeContentType)
		}); err != nil {
			return nil, nil, err
		}
	}

	for _, attach := range req.Videos {
		attach := attach
		videoID, perr := uuid.Parse(attach.VideoID)
		if perr != nil {
			return nil, nil, apperr.Validationf("invalid video id: %s", attach.VideoID)
		}
		if err := saga.BestEffort(ctx, fmt.Sprintf("attach video %s", attach.VideoID), func(ctx context.Context) error {
			_, aerr := s.db.AttachVideoToClass(class.ID, videoID, attach.Description)
			return aerr
		}); err != nil {
			return nil, nil, err
		}
	}

	videos, err := s.db.ListClassVideos(class.ID)
	if err != nil {
		s.log.WithError(err).WithField("class_id", class.ID).Warn("failed to load attached videos after create")
		videos = nil
	}

	return class, videos, nil
}

func (s *ClassService) uploadBadge(class *models.Class, badgeImage, contentType string) error {
	data, err := base64.StdEncoding.DecodeString(badgeImage)
	if err != nil {
		return fmt.Errorf("badge image is not valid base64: %w", err)
	}
	if contentType == "" {
		contentType = "image/png"
	}

	filename := "badge" + extensionFor(contentType)
	path, url, err := s.badges.UploadImage("classes", class.ID.String(), filename, contentType, data)
	if err != nil {
		return err
	}
	return s.db.UpdateClassBadge(class.ID, path, url)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
