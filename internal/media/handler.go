// Package media handles audio asset upload and serving.
package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/soundmark/soundmark/backend-go/internal/db/dbgen"
	"github.com/soundmark/soundmark/backend-go/internal/typeid"
)

const maxUploadSize = 200 << 20 // 200MB

// UploadResponse is returned from the upload endpoint.
type UploadResponse struct {
	ID         string  `json:"id"`
	URL        string  `json:"url"`
	Name       string  `json:"name"`
	SampleRate int     `json:"sampleRate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration"`
}

// Handler serves audio upload and retrieval endpoints.
type Handler struct {
	dir     string
	queries *dbgen.Queries
}

// NewHandler creates a media handler that stores files in dir and
// records metadata through queries.
func NewHandler(dir string, queries *dbgen.Queries) *Handler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create media dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, queries: queries}
}

// Upload handles POST /media/upload (multipart form with "file" field).
// Only WAV is accepted; the header is probed for sample rate, channel
// count and duration, which the frontend needs to size the timeline.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (max 200MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	info, err := ProbeWAV(file)
	if err != nil {
		if errors.Is(err, ErrNotWAV) {
			http.Error(w, "only WAV uploads are supported", http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		slog.Error("rewind upload", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	assetID := typeid.NewAssetID()
	filename := assetID + ".wav"
	filePath := filepath.Join(h.dir, filename)

	out, err := os.Create(filePath)
	if err != nil {
		slog.Error("create media file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		slog.Error("write media file", "error", err)
		os.Remove(filePath)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	_, err = h.queries.CreateAsset(r.Context(), dbgen.CreateAssetParams{
		ID:         assetID,
		Filename:   header.Filename,
		SampleRate: int32(info.SampleRate),
		Channels:   int32(info.Channels),
		Duration:   info.Duration,
		SizeBytes:  size,
	})
	if err != nil {
		slog.Error("record asset", "error", err)
		os.Remove(filePath)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := UploadResponse{
		ID:         assetID,
		URL:        fmt.Sprintf("/media/%s", filename),
		Name:       header.Filename,
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
		Duration:   info.Duration,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Serve returns an http.Handler that serves stored audio files with
// caching headers. Asset ids are unique, so files are immutable.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/media/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Path returns the on-disk location of a stored asset.
func (h *Handler) Path(assetID string) string {
	return filepath.Join(h.dir, assetID+".wav")
}

// Delete removes an asset file from disk.
func (h *Handler) Delete(assetID string) error {
	if err := os.Remove(h.Path(assetID)); err != nil {
		return fmt.Errorf("remove asset %s: %w", assetID, err)
	}
	return nil
}
