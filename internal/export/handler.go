// Package export cuts segment clips out of stored audio with ffmpeg.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const maxClipDuration = 600 // seconds

type Handler struct {
	ffmpegPath string
	mediaDir   string
}

func NewHandler(ffmpegPath, mediaDir string) *Handler {
	return &Handler{ffmpegPath: ffmpegPath, mediaDir: mediaDir}
}

type clipRequest struct {
	AssetID   string  `json:"assetId"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Format    string  `json:"format"`
	Name      string  `json:"name"`
}

// ExportClip handles POST /export/clip: cut [startTime, endTime] out of
// a stored asset and stream it back in the requested format.
func (h *Handler) ExportClip(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req clipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Format != "wav" && req.Format != "mp3" && req.Format != "ogg" {
		http.Error(w, "invalid format: must be wav, mp3, or ogg", http.StatusBadRequest)
		return
	}

	duration := req.EndTime - req.StartTime
	if req.StartTime < 0 || duration <= 0 || duration > maxClipDuration {
		http.Error(w, "invalid time range", http.StatusBadRequest)
		return
	}

	// Asset ids name files directly; refuse anything path-like.
	if req.AssetID == "" || strings.ContainsAny(req.AssetID, "/\\.") {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	inputPath := filepath.Join(h.mediaDir, req.AssetID+".wav")
	if _, err := os.Stat(inputPath); err != nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	name := req.Name
	if name == "" {
		name = "clip"
	}
	name = sanitizeName(name)

	tempDir, err := os.MkdirTemp("", "soundmark-export-*")
	if err != nil {
		slog.Error("create temp dir", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tempDir)

	outputFile := filepath.Join(tempDir, "clip."+req.Format)
	contentType := map[string]string{
		"wav": "audio/wav",
		"mp3": "audio/mpeg",
		"ogg": "audio/ogg",
	}[req.Format]

	args := []string{
		"-ss", formatSeconds(req.StartTime),
		"-t", formatSeconds(duration),
		"-i", inputPath,
	}
	switch req.Format {
	case "wav":
		args = append(args, "-c:a", "pcm_s16le")
	case "mp3":
		args = append(args, "-c:a", "libmp3lame", "-q:a", "2")
	case "ogg":
		args = append(args, "-c:a", "libvorbis", "-q:a", "5")
	}
	args = append(args, outputFile)

	slog.Info("export started", "asset", req.AssetID, "format", req.Format, "duration", duration)

	if err := h.runFfmpeg(r, args...); err != nil {
		slog.Error("ffmpeg failed", "error", err)
		http.Error(w, fmt.Sprintf("encoding failed: %v", err), http.StatusInternalServerError)
		return
	}

	outFile, err := os.Open(outputFile)
	if err != nil {
		slog.Error("open output file", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer outFile.Close()

	stat, err := outFile.Stat()
	if err != nil {
		slog.Error("stat output file", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, req.Format))
	w.Header().Set("Content-Length", strconv.FormatInt(stat.Size(), 10))
	io.Copy(w, outFile)

	slog.Info("export complete", "format", req.Format, "size", stat.Size())
}

func (h *Handler) runFfmpeg(r *http.Request, args ...string) error {
	// Prepend -y to overwrite output without prompting
	fullArgs := append([]string{"-y"}, args...)
	cmd := exec.CommandContext(r.Context(), h.ffmpegPath, fullArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %s", err, stderr.String())
	}
	return nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
