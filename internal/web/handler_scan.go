package web

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/snapchef/snapchef/internal/domain"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for captured photos.
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

type scanResponse struct {
	ID              int64     `json:"id"`
	Phase           string    `json:"phase"`
	IngredientCount int       `json:"ingredientCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toScanResponse(scan *domain.Scan) scanResponse {
	return scanResponse{
		ID:              scan.ID,
		Phase:           scan.Phase,
		IngredientCount: scan.IngredientCount,
		CreatedAt:       scan.CreatedAt,
	}
}

func (s *Server) handleCaptureScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer closeWithLog(file, "capture file", s.logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		s.logger.Error("read capture failed", "error", err)
		return
	}

	mimeType, ok := allowedImageMIME(imageData)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported image format")
		return
	}

	scan, err := s.scans.Capture(r.Context(), imageData, mimeType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process photo")
		s.logger.Error("capture failed", "error", err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, toScanResponse(scan))
}

func (s *Server) handleScanState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.pipeline.Snapshot())
}

// handleScanEvents streams pipeline state over SSE. Each event carries the
// full state as JSON; the stream stays open until the client disconnects.
func (s *Server) handleScanEvents(w http.ResponseWriter, r *http.Request) {
	states, cancel := s.pipeline.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, canFlush := w.(http.Flusher)

	enc := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if err := enc.Encode(state); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n")); err != nil {
				return
			}
			if canFlush {
				flusher.Flush()
			}
		}
	}
}

func (s *Server) handleResetScan(w http.ResponseWriter, r *http.Request) {
	s.pipeline.Reset()
	s.writeJSON(w, http.StatusOK, s.pipeline.Snapshot())
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := parseLimit(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	scans, err := s.scans.ListScans(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scans")
		s.logger.Error("list scans failed", "error", err)
		return
	}

	out := make([]scanResponse, 0, len(scans))
	for _, scan := range scans {
		out = append(out, toScanResponse(scan))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetScanPhoto(w http.ResponseWriter, r *http.Request) {
	scanID, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid scan id")
		return
	}

	scan, err := s.scans.GetScan(r.Context(), scanID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get scan")
		s.logger.Error("get scan for photo failed", "scan_id", scanID, "error", err)
		return
	}
	if scan == nil {
		http.NotFound(w, r)
		return
	}

	reader, mimeType, err := s.photoStore.Get(r.Context(), scan.StorageKey)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "scan_id", scanID, "error", err)
	}
}
