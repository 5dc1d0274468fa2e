package httpserver

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"showcase/internal/platform/objectstore"
)

const maxUploadBytes = 8 << 20

type uploadData struct {
	URL string `json:"url"`
}

type uploadResponse struct {
	Status    string     `json:"status"`
	Data      uploadData `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type uploadErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type uploadErrorEnvelope struct {
	Status    string          `json:"status"`
	Error     uploadErrorBody `json:"error"`
	Timestamp string          `json:"timestamp"`
}

func writeUploadError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, uploadErrorEnvelope{
		Status: "error",
		Error: uploadErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !hasBearerToken(r) {
		writeUploadError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeUploadError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeUploadError(w, http.StatusBadRequest, "INVALID_UPLOAD", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeUploadError(w, http.StatusBadRequest, "INVALID_UPLOAD", "could not read upload body")
		return
	}
	if len(data) > maxUploadBytes {
		writeUploadError(w, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "upload exceeds the size limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := s.modules.Uploads.Upload(r.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, objectstore.ErrUnsupportedContentType) {
			writeUploadError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", err.Error())
			return
		}
		writeUploadError(w, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Status:    "success",
		Data:      uploadData{URL: url},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleServeMedia(w http.ResponseWriter, r *http.Request) {
	if s.modules.Media == nil {
		http.NotFound(w, r)
		return
	}
	key := r.PathValue("key")
	blob, ok := s.modules.Media.Get(key)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".jpg", ".jpeg":
		w.Header().Set("Content-Type", "image/jpeg")
	case ".webp":
		w.Header().Set("Content-Type", "image/webp")
	case ".gif":
		w.Header().Set("Content-Type", "image/gif")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}
