package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/komsit37/margins/pkg/margins/types"
)

// FileStore keeps every analysis in a single JSON document, rewritten atomically
// on each change.
type FileStore struct {
	path string
	// maxBytes caps the encoded document size; 0 disables the cap.
	maxBytes int64
	logger   *slog.Logger

	mu sync.Mutex
}

type fileDocument struct {
	Analyses []types.MarginAnalysis `json:"analyses"`
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string, maxBytes int64, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:     path,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "file_store")),
	}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) List(ctx context.Context) ([]types.MarginAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(doc.Analyses)
	return doc.Analyses, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*types.MarginAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Analyses, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &doc.Analyses[i], nil
}

func (s *FileStore) Create(ctx context.Context, a types.MarginAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if indexOf(doc.Analyses, a.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrExists, a.ID)
	}
	doc.Analyses = append(doc.Analyses, a)
	if err := s.write(ctx, doc); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "analysis saved",
		slog.String("id", a.ID),
		slog.Int("products", len(a.Products)))
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(doc.Analyses, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	doc.Analyses = append(doc.Analyses[:i], doc.Analyses[i+1:]...)
	if err := s.write(ctx, doc); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "analysis deleted", slog.String("id", id))
	return nil
}

func (s *FileStore) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(doc.Analyses, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	patch.apply(&doc.Analyses[i])
	return s.write(ctx, doc)
}

func (s *FileStore) read() (fileDocument, error) {
	var doc fileDocument
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read store %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse store %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) write(ctx context.Context, doc fileDocument) error {
	if doc.Analyses == nil {
		doc.Analyses = []types.MarginAnalysis{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		s.logger.WarnContext(ctx, "store size limit reached",
			slog.Int("size", len(data)),
			slog.Int64("limit", s.maxBytes))
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrQuota, len(data), s.maxBytes)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".margins-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func indexOf(list []types.MarginAnalysis, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
