package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAudio(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:3000")
	conversationId := uuid.NewString()

	url, err := store.SaveAudio(context.Background(), conversationId, []byte{0x1a, 0x45, 0xdf})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:3000/uploads/audio-uploads/"+conversationId+"/"))
	assert.True(t, strings.HasSuffix(url, ".webm"))

	// The blob is on disk under the conversation directory.
	entries, err := os.ReadDir(filepath.Join(root, "audio-uploads", conversationId))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(root, "audio-uploads", conversationId, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1a, 0x45, 0xdf}, data)
}

func TestSaveAudio_SeparatesConversations(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:3000")

	urlA, err := store.SaveAudio(context.Background(), "conv-a", []byte{1})
	require.NoError(t, err)
	urlB, err := store.SaveAudio(context.Background(), "conv-b", []byte{2})
	require.NoError(t, err)

	assert.Contains(t, urlA, "/conv-a/")
	assert.Contains(t, urlB, "/conv-b/")
}
