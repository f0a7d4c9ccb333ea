package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-flow-backend/internal/supabase"
)

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "test-key", "class-media")
	require.NoError(t, err)

	classID := uuid.New()
	url := client.GetPublicURL("classes/" + classID.String() + "/badge.png")

	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/class-media/classes/"+classID.String()+"/badge.png",
		url)
}

func TestStorageClient_PublicURLLayout(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co", "test-key", "class-media")
	require.NoError(t, err)

	url := client.GetPublicURL("recipes/abc/photo.jpg")
	assert.Contains(t, url, "co/storage/v1/object/public/")
}
