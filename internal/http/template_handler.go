package http

import (
	"encoding/json"
	"net/http"

	"github.com/donorflow/donorflow/internal/domain"
	"github.com/donorflow/donorflow/internal/http/middleware"
	"github.com/donorflow/donorflow/pkg/logger"
)

type TemplateHandler struct {
	service domain.TemplateService
	logger  logger.Logger
	secret  string
}

func NewTemplateHandler(service domain.TemplateService, secret string, logger logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		logger:  logger,
		secret:  secret,
	}
}

func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.secret)
	requireAuth := authMiddleware.RequireAuth()

	// RPC-style endpoints with dot notation
	mux.Handle("/api/templates.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/templates.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/templates.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/templates.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/templates.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/templates.compile", requireAuth(http.HandlerFunc(h.handleCompile)))
	mux.Handle("/api/templates.sendTest", requireAuth(http.HandlerFunc(h.handleSendTest)))
}

func (h *TemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListTemplatesRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	templates, err := h.service.ListTemplates(r.Context(), req.Category)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list templates")
		WriteJSONError(w, "Failed to list templates", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.GetTemplateByID(r.Context(), req.ID)
	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get template")
		WriteJSONError(w, "Failed to get template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreateTemplate(r.Context(), template); err != nil {
		if _, ok := err.(*domain.ErrTemplateExists); ok {
			WriteJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create template")
		WriteJSONError(w, "Failed to create template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateTemplate(r.Context(), template); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to update template")
		WriteJSONError(w, "Failed to update template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), req.ID); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete template")
		WriteJSONError(w, "Failed to delete template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *TemplateHandler) handleCompile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CompileTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CompileTemplate(r.Context(), req)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TemplateHandler) handleSendTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SendTestTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SendTestTemplate(r.Context(), req); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to send test email")
		WriteJSONError(w, "Failed to send test email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
