package ttsjob

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zeusluffy10/tara-ai/internal/speech"
)

// ErrEmptyText is returned by Submit before anything is persisted.
var ErrEmptyText = errors.New("ttsjob: text is required")

// synthesisTimeout bounds a single background synthesis call. There is
// no caller left to cancel it, so the clock is the only backstop.
const synthesisTimeout = 2 * time.Minute

// Synthesizer renders text to audio. *speech.Service satisfies it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// jobStore is the persistence dependency of the Service. *Store
// satisfies it; tests substitute fault-injecting wrappers.
type jobStore interface {
	WriteMeta(meta Metadata) error
	ReadMeta(jobID string) (Metadata, error)
	WriteArtifact(jobID string, audio []byte) (int64, error)
	ReadArtifact(jobID string) ([]byte, error)
}

// Option configures a Service.
type Option func(*Service)

// withAfterProcess registers a hook that fires when a background job
// finishes, success or failure. Tests use it to wait without polling.
func withAfterProcess(fn func(jobID string)) Option {
	return func(s *Service) { s.afterProcess = fn }
}

// withStore replaces the persistence layer. Test hook only.
func withStore(st jobStore) Option {
	return func(s *Service) { s.store = st }
}

// Service owns the submit/status/result lifecycle. Submission returns
// before synthesis starts; one goroutine per job carries the work to a
// terminal state. Jobs never contend with each other, and a synthesis
// failure is recorded in metadata rather than surfaced to the
// submitting caller.
type Service struct {
	store jobStore
	synth Synthesizer
	log   logrus.FieldLogger

	wg           sync.WaitGroup
	afterProcess func(jobID string)
}

// NewService creates a job service over the given store and
// synthesizer.
func NewService(store *Store, synth Synthesizer, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{store: store, synth: synth, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the text, persists a queued record, and schedules
// background synthesis. It returns the new job id immediately.
func (s *Service) Submit(text, voice, lang, style string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if lang == "" {
		lang = "fil"
	}
	if style == "" {
		style = speech.StyleCalm
	}

	jobID := uuid.NewString()
	meta := Metadata{
		JobID:  jobID,
		Status: StatusQueued,
		Voice:  voice,
		Lang:   lang,
		Style:  style,
	}
	if err := s.store.WriteMeta(meta); err != nil {
		return "", err
	}

	s.wg.Add(1)
	go s.process(meta, text)

	return jobID, nil
}

// Status returns a job's current metadata, or ErrNotFound.
func (s *Service) Status(jobID string) (Metadata, error) {
	return s.store.ReadMeta(jobID)
}

// Result returns the rendered audio for a completed job. For a job
// that has not reached a terminal success state it returns the current
// metadata with nil audio, so the caller can answer "still working".
// A done job whose artifact is missing fails with ErrArtifactMissing.
func (s *Service) Result(jobID string) ([]byte, Metadata, error) {
	meta, err := s.store.ReadMeta(jobID)
	if err != nil {
		return nil, Metadata{}, err
	}
	if meta.Status != StatusDone {
		return nil, meta, nil
	}
	audio, err := s.store.ReadArtifact(jobID)
	if err != nil {
		return nil, meta, err
	}
	return audio, meta, nil
}

// Wait blocks until all in-flight jobs reach a terminal state. Called
// on shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) process(meta Metadata, text string) {
	defer s.wg.Done()
	defer func() {
		if s.afterProcess != nil {
			s.afterProcess(meta.JobID)
		}
	}()

	log := s.log.WithField("job_id", meta.JobID)

	// A job that cannot record "processing" must not sit in "queued"
	// forever; mark it failed so the poller sees a terminal state.
	meta.Status = StatusProcessing
	if err := s.store.WriteMeta(meta); err != nil {
		s.fail(meta, log, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
	defer cancel()

	finalText := speech.PrepareText(text, meta.Lang, meta.Style)
	finalVoice := speech.NormalizeVoice(meta.Voice)

	audio, err := s.synth.Synthesize(ctx, finalText, finalVoice)
	if err != nil {
		s.fail(meta, log, err)
		return
	}

	size, err := s.store.WriteArtifact(meta.JobID, audio)
	if err != nil {
		s.fail(meta, log, err)
		return
	}

	meta.Status = StatusDone
	meta.Size = size
	if err := s.store.WriteMeta(meta); err != nil {
		s.fail(meta, log, err)
		return
	}
	log.WithField("size", size).Info("ttsjob: job completed")
}

func (s *Service) fail(meta Metadata, log logrus.FieldLogger, cause error) {
	log.WithError(cause).Error("ttsjob: job failed")
	meta.Status = StatusError
	meta.Error = cause.Error()
	if err := s.store.WriteMeta(meta); err != nil {
		log.WithError(err).Error("ttsjob: persisting error state")
	}
}
