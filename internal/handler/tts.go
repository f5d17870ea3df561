package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeusluffy10/tara-ai/internal/speech"
	"github.com/zeusluffy10/tara-ai/internal/ttsjob"
)

// TTS handles GET /tts?text=&voice=&lang=&style=
//
// Synchronous synthesis: the MP3 bytes come back in the response body.
// Filipino text is rewritten to Tagalog and styled before synthesis.
func (h *Handler) TTS(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		respondError(c, http.StatusBadRequest, "missing_parameter", "text query parameter is required")
		return
	}

	finalText := speech.PrepareText(text, c.Query("lang"), c.Query("style"))
	finalVoice := speech.NormalizeVoice(c.Query("voice"))

	audio, err := h.ai.Synthesize(c.Request.Context(), finalText, finalVoice)
	if err != nil {
		h.aiError(c, "tts", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Disposition", `inline; filename=tts.mp3`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

type ttsJobRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
	Lang  string `json:"lang"`
	Style string `json:"style"`
}

// CreateTTSJob handles POST /tts
//
// Response 202: {"job_id": "...", "status": "queued"}. Synthesis runs
// in the background; poll /tts/status/{job_id}.
func (h *Handler) CreateTTSJob(c *gin.Context) {
	var req ttsJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "text is required")
		return
	}

	jobID, err := h.jobs.Submit(req.Text, req.Voice, req.Lang, req.Style)
	if err != nil {
		if errors.Is(err, ttsjob.ErrEmptyText) {
			respondError(c, http.StatusBadRequest, "invalid_body", "text is required")
			return
		}
		h.log.WithError(err).Error("job submission failed")
		respondError(c, http.StatusInternalServerError, "job_error", "failed to create job")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID, "status": ttsjob.StatusQueued})
}

// TTSJobStatus handles GET /tts/status/:job_id
func (h *Handler) TTSJobStatus(c *gin.Context) {
	meta, err := h.jobs.Status(c.Param("job_id"))
	if err != nil {
		if errors.Is(err, ttsjob.ErrNotFound) {
			respondError(c, http.StatusNotFound, "job_not_found", "job not found")
			return
		}
		h.log.WithError(err).Error("job status lookup failed")
		respondError(c, http.StatusInternalServerError, "job_error", "failed to read job status")
		return
	}
	c.JSON(http.StatusOK, meta)
}

// TTSJobResult handles GET /tts/result/:job_id
//
// A finished job streams its MP3. A job still in flight answers 202
// with the current metadata. A done job whose artifact is gone is a
// consistency violation and is reported as such, not as a 404.
func (h *Handler) TTSJobResult(c *gin.Context) {
	audio, meta, err := h.jobs.Result(c.Param("job_id"))
	switch {
	case errors.Is(err, ttsjob.ErrNotFound):
		respondError(c, http.StatusNotFound, "job_not_found", "job not found")
		return
	case errors.Is(err, ttsjob.ErrArtifactMissing):
		h.log.WithField("job_id", meta.JobID).Error("done job has no artifact")
		respondError(c, http.StatusInternalServerError, "artifact_missing", "job completed but audio is missing")
		return
	case err != nil:
		h.log.WithError(err).Error("job result lookup failed")
		respondError(c, http.StatusInternalServerError, "job_error", "failed to read job result")
		return
	}

	if meta.Status != ttsjob.StatusDone {
		c.JSON(http.StatusAccepted, meta)
		return
	}

	c.Header("Content-Disposition", `inline; filename=`+meta.JobID+`.mp3`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
