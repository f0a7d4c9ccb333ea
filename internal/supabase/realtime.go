package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient publishes video-processing lifecycle events. Database
// updates already trigger Realtime change feeds; these helpers exist for
// explicit event payloads on the video channels.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row updates on the
	// videos table drive the change feed that admin dashboards subscribe to.
	return nil
}

func (r *RealtimeClient) PublishVideoEvent(videoID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("video:%s", videoID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func UploadSubmittedPayload(videoID uuid.UUID, uploadID string) map[string]interface{} {
	return map[string]interface{}{
		"video_id":  videoID.String(),
		"status":    "uploading",
		"upload_id": uploadID,
	}
}

func ProcessingPayload(videoID uuid.UUID, attempt int) map[string]interface{} {
	return map[string]interface{}{
		"video_id": videoID.String(),
		"status":   "processing",
		"attempt":  attempt,
	}
}

func ReadyPayload(videoID uuid.UUID, assetID, playbackID string) map[string]interface{} {
	return map[string]interface{}{
		"video_id":    videoID.String(),
		"status":      "ready",
		"asset_id":    assetID,
		"playback_id": playbackID,
	}
}

func StillProcessingPayload(videoID uuid.UUID, attempts int) map[string]interface{} {
	return map[string]interface{}{
		"video_id": videoID.String(),
		"status":   "processing",
		"attempts": attempts,
		"note":     "asset not ready yet, it will appear once processing finishes",
	}
}

func ProcessingFailedPayload(videoID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"video_id": videoID.String(),
		"status":   "failed",
		"error":    errorMsg,
	}
}
