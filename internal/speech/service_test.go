package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// fakeAPI serves canned OpenAI responses and records requests.
type fakeAPI struct {
	chatResp   openai.ChatCompletionResponse
	chatErr    error
	chatReq    *openai.ChatCompletionRequest
	speechBody string
	speechErr  error
	speechReq  *openai.CreateSpeechRequest
	audioResp  openai.AudioResponse
	audioErr   error
	audioReq   *openai.AudioRequest
}

func (f *fakeAPI) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.chatReq = &req
	return f.chatResp, f.chatErr
}

func (f *fakeAPI) CreateSpeech(_ context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	f.speechReq = &req
	if f.speechErr != nil {
		return openai.RawResponse{}, f.speechErr
	}
	return openai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader(f.speechBody))}, nil
}

func (f *fakeAPI) CreateTranscription(_ context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.audioReq = &req
	return f.audioResp, f.audioErr
}

func silentLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func chatReply(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestComplete(t *testing.T) {
	f := &fakeAPI{chatResp: chatReply("  Kumaliwa sa kanto.\n")}
	s := newServiceWithAPI(f, silentLog())

	got, err := s.Complete(context.Background(), "paano pumunta sa palengke")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Kumaliwa sa kanto." {
		t.Errorf("reply = %q, want trimmed model text", got)
	}
	if f.chatReq.Model != openai.GPT4oMini {
		t.Errorf("model = %q, want %q", f.chatReq.Model, openai.GPT4oMini)
	}
	if len(f.chatReq.Messages) != 2 || f.chatReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("messages = %+v, want system prompt then user prompt", f.chatReq.Messages)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	s := newServiceWithAPI(&fakeAPI{}, silentLog())
	if _, err := s.Complete(context.Background(), "tanong"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestComplete_EmptyPromptRejectedLocally(t *testing.T) {
	f := &fakeAPI{chatResp: chatReply("x")}
	s := newServiceWithAPI(f, silentLog())
	if _, err := s.Complete(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
	if f.chatReq != nil {
		t.Error("API called for empty prompt")
	}
}

func TestSynthesize(t *testing.T) {
	f := &fakeAPI{speechBody: "mp3-bytes"}
	s := newServiceWithAPI(f, silentLog())

	audio, err := s.Synthesize(context.Background(), "Kumanan po kayo.", "nova")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
	if f.speechReq.Model != openai.TTSModel1 {
		t.Errorf("model = %q, want %q", f.speechReq.Model, openai.TTSModel1)
	}
	if f.speechReq.Voice != openai.VoiceNova {
		t.Errorf("voice = %q, want nova", f.speechReq.Voice)
	}
	if f.speechReq.ResponseFormat != openai.SpeechResponseFormatMp3 {
		t.Errorf("format = %q, want mp3", f.speechReq.ResponseFormat)
	}
}

func TestSynthesize_EmptyAudioIsError(t *testing.T) {
	s := newServiceWithAPI(&fakeAPI{speechBody: ""}, silentLog())
	if _, err := s.Synthesize(context.Background(), "text", "nova"); err == nil {
		t.Fatal("expected error for empty audio body")
	}
}

func TestSynthesize_APIErrorWrapped(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}
	s := newServiceWithAPI(&fakeAPI{speechErr: apiErr}, silentLog())

	_, err := s.Synthesize(context.Background(), "text", "nova")
	var got *openai.APIError
	if !errors.As(err, &got) {
		t.Fatalf("err = %v, want wrapped *openai.APIError", err)
	}
}

func TestTranscribe(t *testing.T) {
	f := &fakeAPI{audioResp: openai.AudioResponse{Text: " Saan ang palengke? "}}
	s := newServiceWithAPI(f, silentLog())

	got, err := s.Transcribe(context.Background(), "/tmp/upload.m4a", "tl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Saan ang palengke?" {
		t.Errorf("text = %q", got)
	}
	if f.audioReq.Model != openai.Whisper1 || f.audioReq.Language != "tl" {
		t.Errorf("request = %+v", f.audioReq)
	}
	if f.audioReq.FilePath != "/tmp/upload.m4a" {
		t.Errorf("file path = %q", f.audioReq.FilePath)
	}
}

func TestDegradedServiceReportsMissingCredentials(t *testing.T) {
	s := NewService("", silentLog())
	if s.HasCredentials() {
		t.Fatal("expected degraded service")
	}
	if _, err := s.Complete(context.Background(), "x"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Complete err = %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "x", "nova"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Synthesize err = %v", err)
	}
	if _, err := s.Transcribe(context.Background(), "f", "tl"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Transcribe err = %v", err)
	}
}

func TestNormalizeVoice(t *testing.T) {
	cases := map[string]string{
		"":        "nova",
		"female":  "nova",
		"WOMAN":   "nova",
		"girl":    "nova",
		"male":    "alloy",
		"Boy":     "alloy",
		"man":     "alloy",
		"shimmer": "shimmer",
	}
	for in, want := range cases {
		if got := NormalizeVoice(in); got != want {
			t.Errorf("NormalizeVoice(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestApplyStyle(t *testing.T) {
	if got := ApplyStyle("Tumawid nang mabilis", StyleWarning); got != "Babala. Tumawid nang mabilis." {
		t.Errorf("warning style = %q", got)
	}
	if got := ApplyStyle("  Dahan-dahan lang  ", StyleCalm); got != "Dahan-dahan lang" {
		t.Errorf("calm style = %q", got)
	}
	if got := ApplyStyle("text", "excited"); got != "text" {
		t.Errorf("unknown style = %q, want passthrough", got)
	}
}

func TestNormalizeLang(t *testing.T) {
	for _, in := range []string{"", "fil", "tl", "Tagalog", "fil-PH", "TL-PH"} {
		if got := NormalizeLang(in); got != "fil" {
			t.Errorf("NormalizeLang(%q) = %q, want fil", in, got)
		}
	}
	for _, in := range []string{"en", "EN-us", "en-PH"} {
		if got := NormalizeLang(in); got != "en" {
			t.Errorf("NormalizeLang(%q) = %q, want en", in, got)
		}
	}
	if !IsFilipino("tl") || IsFilipino("en") {
		t.Error("IsFilipino misclassified")
	}
}
