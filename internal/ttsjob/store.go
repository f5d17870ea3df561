// Package ttsjob runs speech synthesis as background jobs: submit
// returns immediately with an opaque id, the audio is rendered off the
// request path, and callers poll for status and fetch the artifact.
package ttsjob

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Job states. A job only ever moves forward: queued, processing, then
// done or error.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusError      = "error"
)

var (
	// ErrNotFound is returned for an unknown job id.
	ErrNotFound = errors.New("ttsjob: job not found")

	// ErrArtifactMissing is returned when metadata reports done but the
	// audio file is absent. This is a consistency violation, reported
	// distinctly from an unknown job.
	ErrArtifactMissing = errors.New("ttsjob: audio artifact missing for completed job")

	// ErrInvalidJobID is returned for ids that could escape the jobs
	// directory.
	ErrInvalidJobID = errors.New("ttsjob: invalid job id")
)

// Metadata is one job's persisted record. It lives in
// {job_id}.meta.json next to the {job_id}.mp3 artifact.
type Metadata struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Voice  string `json:"voice,omitempty"`
	Lang   string `json:"lang"`
	Style  string `json:"style"`
	Error  string `json:"error,omitempty"`
	Size   int64  `json:"size,omitempty"`
}

// Store persists job metadata and audio artifacts as flat files in a
// single directory. Each write goes to a temp file in the same
// directory and is renamed into place, so readers never observe a torn
// record.
type Store struct {
	dir string
}

// NewStore creates the jobs directory if needed and returns a Store
// over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ttsjob: creating jobs dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func validJobID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && id != "." && id != ".." && !strings.Contains(id, "..")
}

func (s *Store) metaPath(jobID string) string {
	return filepath.Join(s.dir, jobID+".meta.json")
}

func (s *Store) artifactPath(jobID string) string {
	return filepath.Join(s.dir, jobID+".mp3")
}

// WriteMeta persists the job's metadata record atomically.
func (s *Store) WriteMeta(meta Metadata) error {
	if !validJobID(meta.JobID) {
		return ErrInvalidJobID
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("ttsjob: encoding metadata: %w", err)
	}
	return s.writeAtomic(s.metaPath(meta.JobID), data)
}

// ReadMeta loads a job's metadata, or ErrNotFound.
func (s *Store) ReadMeta(jobID string) (Metadata, error) {
	if !validJobID(jobID) {
		return Metadata{}, ErrNotFound
	}
	data, err := os.ReadFile(s.metaPath(jobID))
	if errors.Is(err, os.ErrNotExist) {
		return Metadata{}, ErrNotFound
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("ttsjob: reading metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("ttsjob: decoding metadata: %w", err)
	}
	return meta, nil
}

// WriteArtifact persists the rendered audio atomically and returns its
// byte size.
func (s *Store) WriteArtifact(jobID string, audio []byte) (int64, error) {
	if !validJobID(jobID) {
		return 0, ErrInvalidJobID
	}
	if err := s.writeAtomic(s.artifactPath(jobID), audio); err != nil {
		return 0, err
	}
	return int64(len(audio)), nil
}

// ReadArtifact loads the rendered audio for a completed job. A missing
// file is reported as ErrArtifactMissing; callers decide whether that
// is fatal based on the job's status.
func (s *Store) ReadArtifact(jobID string) ([]byte, error) {
	if !validJobID(jobID) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.artifactPath(jobID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrArtifactMissing
	}
	if err != nil {
		return nil, fmt.Errorf("ttsjob: reading artifact: %w", err)
	}
	return data, nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("ttsjob: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("ttsjob: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ttsjob: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ttsjob: renaming into place: %w", err)
	}
	return nil
}
