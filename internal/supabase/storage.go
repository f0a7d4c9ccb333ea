package supabase

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// EnsureBucket creates the media bucket if it does not exist yet, public-read
// with image-only content and a 5 MB object cap.
func (s *StorageClient) EnsureBucket() error {
	buckets, err := s.client.ListBuckets()
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}
	for _, b := range buckets {
		if b.Id == s.bucket {
			return nil
		}
	}

	public := true
	fileSizeLimit := "5MB"
	allowed := []string{"image/png", "image/jpeg", "image/webp"}
	_, err = s.client.CreateBucket(s.bucket, storage.BucketOptions{
		Public:           public,
		FileSizeLimit:    fileSizeLimit,
		AllowedMimeTypes: allowed,
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// UploadImage stores an entity image under a stable path and returns the
// storage path and its public URL.
func (s *StorageClient) UploadImage(kind, entityID, filename, contentType string, data []byte) (string, string, error) {
	storagePath := fmt.Sprintf("%s/%s/%s", kind, entityID, filename)

	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// DeleteEntityFiles removes everything stored for one entity.
func (s *StorageClient) DeleteEntityFiles(kind, entityID string) error {
	prefix := fmt.Sprintf("%s/%s/", kind, entityID)

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		_, err = s.client.RemoveFile(s.bucket, filePaths)
		if err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}
