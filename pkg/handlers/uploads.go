package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/services"
)

// multipartFormOverhead is headroom over the file size cap for field
// boundaries and headers when parsing multipart bodies.
const multipartFormOverhead = 1 << 20

// UploadHandler handles document upload HTTP requests.
type UploadHandler struct {
	uploadService services.UploadService
	maxSize       int64
	logger        *zap.Logger
}

// NewUploadHandler creates a new upload handler. maxSize is the per-file
// byte cap, used to bound multipart parsing.
func NewUploadHandler(uploadService services.UploadService, maxSize int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxSize:       maxSize,
		logger:        logger,
	}
}

// RegisterRoutes registers the upload handler's routes on the given mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/upload", authMiddleware.RequireAuth(h.Upload))
	mux.HandleFunc("POST /api/upload/multiple", authMiddleware.RequireAuth(h.UploadMultiple))
	mux.HandleFunc("DELETE /api/upload/{filename}", authMiddleware.RequireAuth(h.Delete))
}

// Upload handles POST /api/upload. The file travels in the "document"
// multipart field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	if !h.parseMultipart(w, r, h.maxSize+multipartFormOverhead) {
		return
	}

	_, header, err := r.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = WriteError(w, http.StatusBadRequest, "no file uploaded")
		} else {
			err = WriteError(w, http.StatusBadRequest, "invalid file upload")
		}
		if err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	document, err := h.uploadService.Save(ident, header)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusCreated, document); err != nil {
		h.logger.Error("Failed to encode document", zap.Error(err))
	}
}

// UploadMultiple handles POST /api/upload/multiple. Files travel in the
// "documents" multipart field.
func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	if !h.parseMultipart(w, r, h.maxSize*services.MaxUploadBatch+multipartFormOverhead) {
		return
	}

	files := r.MultipartForm.File["documents"]
	documents, err := h.uploadService.SaveAll(ident, files)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteList(w, http.StatusCreated, documents, len(documents)); err != nil {
		h.logger.Error("Failed to encode documents", zap.Error(err))
	}
}

// parseMultipart caps the request body at limit and parses the multipart
// form. ParseMultipartForm's argument only bounds in-memory buffering,
// parts beyond it spool to temp files, so the body reader itself must be
// limited before any bytes are consumed. Writes the error envelope and
// returns false on failure.
func (h *UploadHandler) parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		msg := "invalid multipart request"
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			msg = "request body too large"
		}
		if err := WriteError(w, http.StatusBadRequest, msg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return false
	}
	return true
}

// Delete handles DELETE /api/upload/{filename}.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	filename := r.PathValue("filename")
	if err := h.uploadService.Delete(ident, filename); err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, struct{}{}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
