package domain

import (
	"context"
	"io"
)

// UploadImageRequest carries an image body to store plus the id of the
// block that asked for it.
type UploadImageRequest struct {
	BlockID     string
	Filename    string
	ContentType string
	Body        io.Reader
}

type UploadService interface {
	UploadImage(ctx context.Context, req UploadImageRequest) (*UploadResult, error)
}
