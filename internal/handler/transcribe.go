package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAudioUploadSize = 10 << 20 // 10 MB

// allowedAudioExt is the accepted upload extensions for transcription,
// matching what the transcription API ingests.
var allowedAudioExt = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
	".ogg":  true,
}

// Transcribe handles POST /transcribe
//
// Expects a multipart form with an "audio" file field and an optional
// "lang" field (default "tl"). The upload is staged on disk for the
// transcription call and removed afterwards.
//
// Response 200: {"status": "ok", "text": "..."}
func (h *Handler) Transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioUploadSize)

	file, err := c.FormFile("audio")
	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", "audio must not exceed 10 MB")
			return
		}
		respondError(c, http.StatusBadRequest, "invalid_body", "missing or invalid 'audio' field")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAudioExt[ext] {
		respondError(c, http.StatusBadRequest, "unsupported_format", "audio format not supported")
		return
	}

	lang := c.PostForm("lang")
	if lang == "" {
		lang = "tl"
	}

	// Stage under a generated name; the client's filename never touches
	// the filesystem.
	dst := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.log.WithError(err).Error("saving audio upload")
		respondError(c, http.StatusInternalServerError, "upload_error", "failed to store upload")
		return
	}
	defer os.Remove(dst)

	text, err := h.ai.Transcribe(c.Request.Context(), dst, lang)
	if err != nil {
		h.aiError(c, "transcribe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "text": text})
}
