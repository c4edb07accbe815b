package storage

import "context"

// BlobStore persists opaque audio blobs and returns a publicly readable URL.
// The URL must be obtained synchronously on save so the artifact survives a
// later transcription failure.
type BlobStore interface {
	SaveAudio(ctx context.Context, conversationId string, data []byte) (publicURL string, err error)
}
