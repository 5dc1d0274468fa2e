package objectstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

// Store persists uploaded blobs and hands back a public URL. Upload is
// content-addressed so re-uploading identical bytes is harmless.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MemoryStore keeps blobs in process memory. Stands in for a blob
// storage SDK; the URL shape matches what the public site expects.
type MemoryStore struct {
	BaseURL string

	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		blobs:   make(map[string][]byte),
	}
}

func (s *MemoryStore) Upload(_ context.Context, data []byte, contentType string) (string, error) {
	ext, ok := extensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedContentType
	}
	if len(data) == 0 {
		return "", errors.New("empty upload")
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:16]) + ext

	s.mu.Lock()
	s.blobs[key] = append([]byte(nil), data...)
	s.mu.Unlock()

	return s.BaseURL + "/media/" + key, nil
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), blob...), true
}
