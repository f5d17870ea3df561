package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zeusluffy10/tara-ai/internal/speech"
	"github.com/zeusluffy10/tara-ai/internal/textutil"
)

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask handles POST /ask: a freeform question answered by the assistant.
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "question is required")
		return
	}

	answer, err := h.ai.Complete(c.Request.Context(), req.Question)
	if err != nil {
		h.aiError(c, "ask", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

type simplifyStep struct {
	Instruction      string `json:"instruction"`
	HTMLInstructions string `json:"html_instructions"`
}

type simplifyRequest struct {
	Steps   []simplifyStep `json:"steps"`
	RawText string         `json:"raw_text"`
}

// Simplify handles POST /simplify: raw navigation steps in, short
// spoken Tagalog/Taglish lines out.
//
// The body carries either "steps" (instruction objects, HTML tolerated)
// or "raw_text". Response 200:
//
//	{"status": "ok", "simple": ["..."], "raw_reply": "..."}
func (h *Handler) Simplify(c *gin.Context) {
	var req simplifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}

	rawText := buildSimplifyInput(req)
	if rawText == "" {
		respondError(c, http.StatusBadRequest, "invalid_body", "provide either 'steps' or 'raw_text' in the payload")
		return
	}

	answer, err := h.ai.Complete(c.Request.Context(), simplifyPrompt(rawText))
	if err != nil {
		h.aiError(c, "simplify", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"simple":    splitSimpleLines(answer),
		"raw_reply": answer,
	})
}

func buildSimplifyInput(req simplifyRequest) string {
	if len(req.Steps) == 0 {
		return strings.TrimSpace(req.RawText)
	}
	lines := make([]string, 0, len(req.Steps))
	for i, s := range req.Steps {
		instr := s.Instruction
		if instr == "" {
			instr = s.HTMLInstructions
		}
		instr = textutil.CleanInstruction(instr)
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, instr))
	}
	return strings.Join(lines, "\n")
}

func simplifyPrompt(rawText string) string {
	return "Convert the following map/navigation instructions into a short list of simple Tagalog/Taglish steps " +
		"that an elderly person can follow.\n" +
		"- Keep each step short (<= 12 words)\n" +
		"- Use landmarks and simple cues (e.g., 'tatlong poste', 'may tindahan sa kaliwa')\n" +
		"- Use polite, calm tone\n" +
		"- Output each step on a new line, in Tagalog or Taglish only.\n\n" +
		"Input instructions:\n" + rawText + "\n\n" +
		"Respond with the simplified steps only (no extra explanation)."
}

// splitSimpleLines turns the model reply into one step per element.
// An empty line-split falls back to splitting on sentence punctuation.
func splitSimpleLines(answer string) []string {
	var lines []string
	for _, ln := range strings.Split(answer, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) > 0 {
		return lines
	}
	for _, s := range strings.Split(strings.ReplaceAll(answer, "•", "."), ".") {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func (h *Handler) aiError(c *gin.Context, op string, err error) {
	if errors.Is(err, speech.ErrMissingCredentials) {
		respondError(c, http.StatusServiceUnavailable, "missing_credentials", "AI provider is not configured")
		return
	}
	h.log.WithError(err).WithField("op", op).Error("AI call failed")
	respondError(c, http.StatusBadGateway, "ai_error", "AI provider call failed")
}
