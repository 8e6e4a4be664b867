package web

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"carspect/internal/catalog"
	"carspect/internal/inspect"
	"carspect/internal/service"
)

const maxImageSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded images.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	categoryID := catalog.ID(r.PathValue("category"))
	itemName := r.PathValue("item")

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to read file")
		s.logger.Error("read upload failed", "inspection_id", id, "error", err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unsupported image format")
		return
	}

	insp, key, err := s.service.AttachImage(r.Context(), id, categoryID, itemName, mimeType, bytes.NewReader(imageData))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "inspection not found")
		case errors.Is(err, inspect.ErrUnknownCategory):
			s.writeError(w, http.StatusUnprocessableEntity, "unknown category")
		case errors.Is(err, inspect.ErrUnknownItem):
			s.writeError(w, http.StatusUnprocessableEntity, "item not in category")
		default:
			s.writeError(w, http.StatusInternalServerError, "failed to attach image")
			s.logger.Error("attach image failed", "inspection_id", id, "error", err)
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"storageKey": key,
		"inspection": insp,
	})
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	categoryID := catalog.ID(r.PathValue("category"))
	itemName := r.PathValue("item")
	key := r.PathValue("key")

	insp, err := s.service.RemoveImage(r.Context(), id, categoryID, itemName, key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "image not found")
		case errors.Is(err, inspect.ErrUnknownCategory), errors.Is(err, inspect.ErrUnknownItem):
			s.writeError(w, http.StatusUnprocessableEntity, "unknown category or item")
		default:
			s.writeError(w, http.StatusInternalServerError, "failed to remove image")
			s.logger.Error("remove image failed", "inspection_id", id, "error", err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, insp)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	reader, mimeType, err := s.service.GetImage(r.Context(), r.PathValue("key"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "image reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write image failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
