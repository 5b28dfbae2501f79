package usecase

import (
	"context"
	"mime/multipart"

	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/media"

	"github.com/pkg/errors"
)

// MediaService uploads request files to object storage and removes assets
// that are no longer referenced.
type MediaService interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
	UploadVideo(ctx context.Context, fh *multipart.FileHeader) (*media.Asset, error)
	DeleteRemote(url string)
}

var _ MediaService = (*media.Coordinator)(nil)

// storeError maps repository sentinels onto client-facing errors. resource
// names the thing that was looked up, e.g. "video".
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistent.ErrNotFound):
		return apperror.NotFound(resource + " not found")
	case errors.Is(err, persistent.ErrConflict):
		return apperror.Conflict(resource + " already exists")
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
