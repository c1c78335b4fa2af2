package storage

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var unsafeChars = regexp.MustCompile(`[^\w.-]`)

// Uploader copies attachment payloads into the object store under a per-user
// namespace.
type Uploader struct {
	store  ObjectStore
	logger *zap.Logger
}

func NewUploader(store ObjectStore, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{store: store, logger: logger}
}

// UploadAll stores each file and returns the public URLs of the ones that
// succeeded, in input order. Files upload concurrently; a failed file is
// logged and skipped, it never aborts the rest of the batch or the request.
func (u *Uploader) UploadAll(ctx context.Context, userID string, files []*multipart.FileHeader) []string {
	if len(files) == 0 {
		return nil
	}

	results := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			name := unsafeChars.ReplaceAllString(filepath.Base(fh.Filename), "_")
			key := userID + "/" + uuid.NewString() + "_" + name

			f, err := fh.Open()
			if err != nil {
				u.logger.Warn("could not open attachment",
					zap.String("file", fh.Filename), zap.Error(err))
				return nil
			}
			defer f.Close()

			contentType := fh.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			if err := u.store.Put(ctx, key, contentType, f); err != nil {
				u.logger.Warn("attachment upload failed",
					zap.String("file", fh.Filename), zap.Error(err))
				return nil
			}
			results[i] = u.store.PublicURL(key)
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, len(files))
	for _, url := range results {
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
