package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	"github.com/donorflow/donorflow/internal/domain"
	"github.com/donorflow/donorflow/pkg/logger"
)

// maxImageSize caps uploads at 5 MB, matching the file manager's own
// limit so oversized files fail fast.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

type UploadService struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     logger.Logger
}

func NewUploadService(endpoint string, apiKey string, logger logger.Logger) *UploadService {
	return &UploadService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// UploadImage forwards the image to the file manager and returns its
// public URL. The result carries the block id captured when the upload
// started, not whatever is selected by the time it finishes.
func (s *UploadService) UploadImage(ctx context.Context, req domain.UploadImageRequest) (*domain.UploadResult, error) {
	if req.BlockID == "" {
		return nil, &domain.ErrUploadFailed{Reason: "block id is required"}
	}
	if !allowedImageTypes[req.ContentType] {
		return nil, &domain.ErrUploadFailed{Reason: fmt.Sprintf("unsupported content type: %s", req.ContentType)}
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload body: %w", err)
	}
	if len(body) > maxImageSize {
		return nil, &domain.ErrUploadFailed{Reason: "image exceeds 5MB limit"}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(req.Filename)))
	header.Set("Content-Type", req.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(body); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.WithField("block_id", req.BlockID).Error(fmt.Sprintf("File manager request failed: %v", err))
		return nil, &domain.ErrUploadFailed{Reason: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file manager response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.WithFields(map[string]interface{}{
			"block_id": req.BlockID,
			"status":   resp.StatusCode,
		}).Error("File manager rejected upload")
		return nil, &domain.ErrUploadFailed{Reason: fmt.Sprintf("file manager returned status %d", resp.StatusCode)}
	}

	url := gjson.GetBytes(respBody, "url").String()
	if url == "" {
		return nil, &domain.ErrUploadFailed{Reason: "file manager response has no url"}
	}

	return &domain.UploadResult{BlockID: req.BlockID, URL: url}, nil
}
