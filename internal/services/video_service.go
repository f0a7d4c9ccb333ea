package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"infinite-flow-backend/internal/apperr"
	"infinite-flow-backend/internal/models"
	"infinite-flow-backend/internal/mux"
	"infinite-flow-backend/internal/poller"
	"infinite-flow-backend/internal/supabase"
)

// VideoStore is the slice of the database client the video workflow needs.
type VideoStore interface {
	CreateVideo(title, description, uploadID, playbackPolicy string, status models.VideoStatus) (*models.Video, error)
	SetVideoAssetID(videoID uuid.UUID, assetID string) error
	UpdateVideoStatus(videoID uuid.UUID, status models.VideoStatus) error
	StampVideoReady(videoID uuid.UUID, assetID, playbackID, policy string, durationSeconds float64) error
	MarkVideoFailed(videoID uuid.UUID) error
}

// MediaClient is the slice of the hosted video platform the workflow needs.
type MediaClient interface {
	CreateDirectUpload(ctx context.Context, playbackPolicy, corsOrigin string) (*mux.UploadOut, error)
	GetUpload(ctx context.Context, uploadID string) (*mux.UploadOut, error)
	CreateAsset(ctx context.Context, sourceURL, playbackPolicy string) (*mux.AssetOut, error)
	GetAsset(ctx context.Context, assetID string) (*mux.AssetOut, error)
	RetryWithBackoff(fn func() error, maxRetries int) error
}

// VideoService owns video intake: it creates uploads or remote-URL assets at
// the video platform, inserts the draft row, and runs one poll chain per
// submission until the asset is ready or the attempt budget runs out. All
// chains stop when the service closes.
type VideoService struct {
	media    MediaClient
	db       VideoStore
	realtime *supabase.RealtimeClient
	poll     *poller.Poller
	origin   string
	log      logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewVideoService(media MediaClient, db VideoStore, realtime *supabase.RealtimeClient, poll *poller.Poller, corsOrigin string, log logrus.FieldLogger) *VideoService {
	ctx, cancel := context.WithCancel(context.Background())
	return &VideoService{
		media:    media,
		db:       db,
		realtime: realtime,
		poll:     poll,
		origin:   corsOrigin,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Close cancels every running poll chain and waits for them to stop.
func (s *VideoService) Close() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every running poll chain has finished on its own,
// without cancelling them.
func (s *VideoService) Wait() {
	s.wg.Wait()
}

func normalizePolicy(policy string) (string, error) {
	switch policy {
	case "":
		return "public", nil
	case "public", "signed":
		return policy, nil
	default:
		return "", apperr.Validationf("playback_policy must be public or signed, got %q", policy)
	}
}

// CreateDirectUpload issues a direct-upload URL at the platform, records the
// draft video row, and starts a poll chain resolving upload to ready asset.
func (s *VideoService) CreateDirectUpload(ctx context.Context, req models.CreateVideoUploadRequest) (*models.Video, *mux.UploadOut, error) {
	policy, err := normalizePolicy(req.PlaybackPolicy)
	if err != nil {
		return nil, nil, err
	}

	var upload *mux.UploadOut
	err = s.media.RetryWithBackoff(func() error {
		var uerr error
		upload, uerr = s.media.CreateDirectUpload(ctx, policy, s.origin)
		return uerr
	}, 3)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindExternal, "failed to create direct upload", err)
	}

	video, err := s.db.CreateVideo(req.Title, req.Description, upload.ID, policy, models.VideoStatusUploading)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindExternal, "failed to create video record", err)
	}

	_ = s.realtime.PublishVideoEvent(video.ID, "upload_submitted", supabase.UploadSubmittedPayload(video.ID, upload.ID))

	s.watch(video.ID, s.uploadCheck(video.ID, upload.ID))
	return video, upload, nil
}

// CreateFromURL ingests a remote video URL as an asset and starts the same
// poll chain against the asset.
func (s *VideoService) CreateFromURL(ctx context.Context, req models.CreateVideoFromURLRequest) (*models.Video, error) {
	policy, err := normalizePolicy(req.PlaybackPolicy)
	if err != nil {
		return nil, err
	}

	var asset *mux.AssetOut
	err = s.media.RetryWithBackoff(func() error {
		var aerr error
		asset, aerr = s.media.CreateAsset(ctx, req.SourceURL, policy)
		return aerr
	}, 3)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "failed to create asset from url", err)
	}

	video, err := s.db.CreateVideo(req.Title, req.Description, "", policy, models.VideoStatusProcessing)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "failed to create video record", err)
	}

	s.watch(video.ID, s.assetCheck(asset.ID))
	return video, nil
}

// uploadCheck resolves upload -> asset id -> asset status. The asset id is
// cached in the closure; the row is updated once when the upload resolves
// (asset id plus the uploading -> processing transition) and then left alone
// until the ready transition.
func (s *VideoService) uploadCheck(videoID uuid.UUID, uploadID string) poller.CheckFunc {
	var assetID string
	return func(ctx context.Context) (poller.AssetStatus, error) {
		if assetID == "" {
			upload, err := s.media.GetUpload(ctx, uploadID)
			if err != nil {
				return poller.AssetStatus{}, err
			}
			if upload.AssetID == "" {
				return poller.AssetStatus{}, nil
			}
			assetID = upload.AssetID
			if err := s.db.SetVideoAssetID(videoID, assetID); err != nil {
				s.log.WithError(err).WithField("video_id", videoID).Warn("failed to record asset id on video")
			}
			if err := s.db.UpdateVideoStatus(videoID, models.VideoStatusProcessing); err != nil {
				s.log.WithError(err).WithField("video_id", videoID).Warn("failed to move video to processing")
			}
		}
		return s.checkAsset(ctx, assetID)
	}
}

func (s *VideoService) assetCheck(assetID string) poller.CheckFunc {
	return func(ctx context.Context) (poller.AssetStatus, error) {
		return s.checkAsset(ctx, assetID)
	}
}

func (s *VideoService) checkAsset(ctx context.Context, assetID string) (poller.AssetStatus, error) {
	asset, err := s.media.GetAsset(ctx, assetID)
	if err != nil {
		return poller.AssetStatus{}, err
	}

	status := poller.AssetStatus{
		AssetID:         asset.ID,
		Ready:           asset.Status == "ready",
		Errored:         asset.Status == "errored",
		DurationSeconds: asset.Duration,
	}
	for _, p := range asset.PlaybackIDs {
		status.PlaybackIDs = append(status.PlaybackIDs, poller.PlaybackID{ID: p.ID, Policy: p.Policy})
	}
	return status, nil
}

func (s *VideoService) watch(videoID uuid.UUID, check poller.CheckFunc) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		onReady := func(ctx context.Context, status poller.AssetStatus, playback *poller.PlaybackID) error {
			playbackID, policy := "", ""
			if playback != nil {
				playbackID, policy = playback.ID, playback.Policy
			}
			return s.db.StampVideoReady(videoID, status.AssetID, playbackID, policy, status.DurationSeconds)
		}

		outcome, err := s.poll.Poll(s.ctx, check, onReady)
		log := s.log.WithField("video_id", videoID)
		switch {
		case errors.Is(err, context.Canceled):
			log.Debug("poll chain cancelled on shutdown")
		case err != nil:
			log.WithError(err).Error("failed to stamp ready asset onto video")
		case outcome.Failed:
			log.Warn("asset processing failed at the video platform")
			if derr := s.db.MarkVideoFailed(videoID); derr != nil {
				log.WithError(derr).Error("failed to mark video failed")
			}
			_ = s.realtime.PublishVideoEvent(videoID, "processing_failed", supabase.ProcessingFailedPayload(videoID, "asset errored"))
		case outcome.Ready:
			playbackID := ""
			if outcome.Playback != nil {
				playbackID = outcome.Playback.ID
			}
			log.WithField("attempts", outcome.Attempts).Info("video ready")
			_ = s.realtime.PublishVideoEvent(videoID, "ready", supabase.ReadyPayload(videoID, outcome.AssetID, playbackID))
		default:
			// Attempt budget exhausted or a transient query error: the asset
			// will show up later, the row stays in processing.
			log.WithField("attempts", outcome.Attempts).Info("video still processing after poll budget")
			_ = s.realtime.PublishVideoEvent(videoID, "still_processing", supabase.StillProcessingPayload(videoID, outcome.Attempts))
		}
	}()
}
