// Package speech wraps the OpenAI audio and chat APIs behind the three
// calls the assistant needs: text completion for instruction
// simplification, speech synthesis, and audio transcription.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingCredentials is returned when no API key was configured.
	ErrMissingCredentials = errors.New("speech: OPENAI_API_KEY is not configured")

	// ErrEmptyText is returned before any network call when the input
	// text is empty.
	ErrEmptyText = errors.New("speech: text is empty")
)

// completionsAPI is the slice of the OpenAI client the Service uses.
// Tests substitute a fake.
type completionsAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

const simplifySystemPrompt = "You are TARA AI, a friendly Filipino voice assistant for elderly users. " +
	"Answer briefly, politely, and in simple Tagalog or Taglish."

// Service issues completion, synthesis, and transcription calls. A nil
// api means no credential was configured; every call then fails with
// ErrMissingCredentials without touching the network.
type Service struct {
	api completionsAPI
	log logrus.FieldLogger
}

// NewService creates a Service backed by the OpenAI API. apiKey may be
// empty; the Service is then constructed in a degraded state where every
// call reports missing credentials.
func NewService(apiKey string, log logrus.FieldLogger) *Service {
	if apiKey == "" {
		return &Service{log: log}
	}
	return &Service{api: openai.NewClient(apiKey), log: log}
}

// newServiceWithAPI is the test constructor.
func newServiceWithAPI(api completionsAPI, log logrus.FieldLogger) *Service {
	return &Service{api: api, log: log}
}

// HasCredentials reports whether an API key was configured.
func (s *Service) HasCredentials() bool { return s.api != nil }

// Complete sends prompt to the chat model and returns the assistant's
// reply text.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	if s.api == nil {
		return "", ErrMissingCredentials
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyText
	}

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: simplifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("speech: completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Synthesize renders text as MP3 audio with the given voice. The voice
// must already be normalized; see NormalizeVoice.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if s.api == nil {
		return nil, ErrMissingCredentials
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech: synthesis: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("speech: reading synthesis response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("speech: synthesis returned no audio")
	}
	return audio, nil
}

// Transcribe converts uploaded audio to text. filePath points at the
// saved upload; language biases recognition ("tl" for Tagalog).
func (s *Service) Transcribe(ctx context.Context, filePath, language string) (string, error) {
	if s.api == nil {
		return "", ErrMissingCredentials
	}

	resp, err := s.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("speech: transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
