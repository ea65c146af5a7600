package http

import (
	"net/http"

	"github.com/donorflow/donorflow/internal/domain"
	"github.com/donorflow/donorflow/internal/http/middleware"
	"github.com/donorflow/donorflow/pkg/logger"
)

type UploadHandler struct {
	service domain.UploadService
	logger  logger.Logger
	secret  string
}

func NewUploadHandler(service domain.UploadService, secret string, logger logger.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger,
		secret:  secret,
	}
}

func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.secret)
	requireAuth := authMiddleware.RequireAuth()

	mux.Handle("/api/uploads.image", requireAuth(http.HandlerFunc(h.handleImage)))
}

func (h *UploadHandler) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		WriteJSONError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	blockID := r.FormValue("blockId")
	if blockID == "" {
		WriteJSONError(w, "blockId is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.service.UploadImage(r.Context(), domain.UploadImageRequest{
		BlockID:     blockID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if failed, ok := err.(*domain.ErrUploadFailed); ok {
			WriteJSONError(w, failed.Error(), http.StatusBadGateway)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to upload image")
		WriteJSONError(w, "Failed to upload image", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
