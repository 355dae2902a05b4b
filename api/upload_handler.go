package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type mediaUploader interface {
	UploadAll(ctx context.Context, files []services.UploadFile, onProgress func(float64)) ([]services.UploadedFile, error)
}

type uploadHandler struct {
	responder      Responder
	logger         zerolog.Logger
	uploader       mediaUploader
	store          storage.Store
	maxUploadBytes int64
}

func newUploadHandler(uploader mediaUploader, store storage.Store, maxUploadBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		uploader:       uploader,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

type uploadResponse struct {
	Success bool                    `json:"success"`
	Files   []services.UploadedFile `json:"files"`
}

// uploadFiles stores every "file" part in the blob store, one after another
// @Summary Upload media
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "File to upload (repeatable)"
// @Success 200 {object} uploadResponse "Stored files"
// @Failure 400 {object} ErrorResponse "Bad Request - No files"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Failure 503 {object} ErrorResponse "Blob store not configured"
// @Router /api/uploads [post]
func (h uploadHandler) uploadFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := services.FilesFromMultipart(r.MultipartForm.File["file"])
		if len(files) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file", "At least one file is required"))
			return
		}

		uploaded, err := h.uploader.UploadAll(r.Context(), files, func(progress float64) {
			h.logger.Debug().Float64("progress", progress).Msg("upload progress")
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, uploadResponse{Success: true, Files: uploaded})
	}
}

// deleteFile removes one blob by its public URL
// @Summary Delete media
// @Tags Uploads
// @Param url query string true "Public URL returned by the upload"
// @Success 200 {object} successResponse "Deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - URL not held by the blob store"
// @Router /api/uploads [delete]
func (h uploadHandler) deleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := strings.TrimSpace(r.URL.Query().Get("url"))
		if url == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("url", "URL is required"))
			return
		}
		if err := h.store.Delete(r.Context(), url); err != nil {
			if errs.IsForeignBlobError(err) {
				err = errs.NewInvalidFieldError("url", "not held by the configured blob store")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}
