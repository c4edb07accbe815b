package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const audioBucket = "audio-uploads"

// LocalStore writes blobs under an uploads directory that the HTTP server
// exposes as static files at /uploads.
type LocalStore struct {
	Root    string // e.g. "./uploads"
	BaseURL string // e.g. "http://localhost:3000"
}

func NewLocalStore(root, baseURL string) *LocalStore {
	if root == "" {
		root = "./uploads"
	}
	return &LocalStore{
		Root:    root,
		BaseURL: baseURL,
	}
}

// SaveAudio stores one blob as audio-uploads/<conversation_id>/<unix-ms>.webm.
func (s *LocalStore) SaveAudio(ctx context.Context, conversationId string, data []byte) (string, error) {
	fileName := fmt.Sprintf("%d.webm", time.Now().UnixMilli())
	dir := filepath.Join(s.Root, audioBucket, conversationId)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/uploads/%s/%s/%s", s.BaseURL, audioBucket, conversationId, fileName)
	return url, nil
}
