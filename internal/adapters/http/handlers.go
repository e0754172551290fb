package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/input"
)

// uploadFieldName is the multipart form field carrying uploaded files.
const uploadFieldName = "files"

// handleUploadBoundaries ingests a batch of boundary archives.
func (s *Server) handleUploadBoundaries(w http.ResponseWriter, r *http.Request) {
	files, ok := s.readUploads(w, r)
	if !ok {
		return
	}

	report, err := s.ingestor.AddBoundaries(r.Context(), files)
	if err != nil {
		s.handleIngestError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleUploadTracks ingests a batch of track files.
func (s *Server) handleUploadTracks(w http.ResponseWriter, r *http.Request) {
	files, ok := s.readUploads(w, r)
	if !ok {
		return
	}

	report, err := s.ingestor.AddTracks(r.Context(), files)
	if err != nil {
		s.handleIngestError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleUploadPhotos ingests a batch of photos.
func (s *Server) handleUploadPhotos(w http.ResponseWriter, r *http.Request) {
	files, ok := s.readUploads(w, r)
	if !ok {
		return
	}

	report, err := s.ingestor.AddPhotos(r.Context(), files)
	if err != nil {
		s.handleIngestError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleState returns the full map state as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot(r.Context())

	boundaries := make([]map[string]interface{}, len(snap.Boundaries))
	for i, ov := range snap.Boundaries {
		boundaries[i] = s.formatOverlay(ov)
	}

	tracks := make([]map[string]interface{}, len(snap.Tracks))
	for i, ov := range snap.Tracks {
		tracks[i] = s.formatOverlay(ov)
	}

	photos := make([]map[string]interface{}, len(snap.Photos))
	for i := range snap.Photos {
		photos[i] = s.formatPhoto(&snap.Photos[i])
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"viewport": map[string]interface{}{
			"center": map[string]float64{
				"lon": snap.Viewport.Center.Lon,
				"lat": snap.Viewport.Center.Lat,
			},
			"default": snap.Viewport.IsDefault(),
		},
		"boundaries": boundaries,
		"tracks":     tracks,
		"photos":     photos,
	})
}

// handleClear resets all overlay collections and releases photo images.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.ingestor.Clear(r.Context()); err != nil {
		s.logger.Error("clear failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to clear map state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePhotoImage serves the stored image bytes for a photo marker.
// Markers are addressed by their own ID; the image store handle stays
// server-side.
func (s *Server) handlePhotoImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	photoID := vars["photoId"]

	imageRef := ""
	for _, m := range s.state.Snapshot(r.Context()).Photos {
		if m.ID == photoID {
			imageRef = m.ImageRef
			break
		}
	}
	if imageRef == "" {
		s.writeError(w, http.StatusNotFound, "Photo not found")
		return
	}

	obj, err := s.images.Get(r.Context(), imageRef)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			s.writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		s.logger.Error("failed to load photo image", "id", photoID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load photo image")
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(obj.Data)
}

// handleHealth returns detailed health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	details := s.health.GetHealthDetails(r.Context())

	status := http.StatusOK
	if !details.Healthy {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status":     boolToStatus(details.Healthy),
		"ready":      details.Ready,
		"boundaries": details.Boundaries,
		"tracks":     details.Tracks,
		"photos":     details.Photos,
		"components": details.Components,
	})
}

// handleLiveness returns liveness status.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsHealthy(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
}

// handleReadiness returns readiness status.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsReady(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}

// readUploads parses the multipart request into upload files. On failure it
// writes the error response and returns ok=false.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]input.UploadFile, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.ingest.MaxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return nil, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[uploadFieldName]
	if len(headers) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("No files in %q form field", uploadFieldName))
		return nil, false
	}
	if len(headers) > s.ingest.MaxBatchFiles {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Too many files in batch (max %d)", s.ingest.MaxBatchFiles))
		return nil, false
	}

	files := make([]input.UploadFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to open %q", h.Filename))
			return nil, false
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read %q", h.Filename))
			return nil, false
		}

		files = append(files, input.UploadFile{Name: h.Filename, Data: data})
	}

	return files, true
}

// formatOverlay formats an overlay for JSON output.
func (s *Server) formatOverlay(ov *domain.Overlay) map[string]interface{} {
	return map[string]interface{}{
		"id":            ov.ID,
		"name":          ov.Name,
		"kind":          ov.Kind,
		"feature_count": ov.FeatureCount(),
		"loaded_at":     ov.LoadedAt,
		"collection":    ov.Collection,
	}
}

// formatPhoto formats a photo marker for JSON output.
func (s *Server) formatPhoto(m *domain.PhotoMarker) map[string]interface{} {
	photo := map[string]interface{}{
		"id":           m.ID,
		"name":         m.Name,
		"lon":          m.Coordinate.Lon,
		"lat":          m.Coordinate.Lat,
		"content_type": m.ContentType,
		"image_url":    "/api/v1/photos/" + m.ID + "/image",
	}
	if !m.TakenAt.IsZero() {
		photo["taken_at"] = m.TakenAt
	}
	return photo
}

// handleIngestError maps ingestion errors to HTTP responses.
func (s *Server) handleIngestError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		s.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.logger.Error("ingest error", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Ingestion failed")
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func boolToStatus(b bool) string {
	if b {
		return "ok"
	}
	return "unhealthy"
}
