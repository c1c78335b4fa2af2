package storage

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// StubStore is the fallback used when no storage backend is configured. It
// discards payloads but still resolves stable URLs, which keeps local
// development working without a bucket.
type StubStore struct {
	BaseURL string
	logger  *zap.Logger
}

var _ ObjectStore = (*StubStore)(nil)

func NewStubStore(baseURL string, logger *zap.Logger) *StubStore {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubStore{BaseURL: baseURL, logger: logger}
}

func (s *StubStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return err
	}
	s.logger.Info("stub storage discarded attachment",
		zap.String("key", key), zap.Int64("bytes", n))
	return nil
}

func (s *StubStore) PublicURL(key string) string {
	return s.BaseURL + "/" + key
}
