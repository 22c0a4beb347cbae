package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// FileStore keeps the collection as a JSON array in a single file.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store backed by the file at path. The file does not
// have to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Load reads the collection. A missing file is an empty collection. The file
// may be edited by hand, so scheduling fields that break the item invariants
// are repaired.
func (s *FileStore) Load(_ context.Context) ([]entities.ReviewItem, error) {
	items, err := ReadItemsFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entities.ReviewItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range items {
		items[i].Normalize(now)
	}

	return items, nil
}

// Save overwrites the file. The collection is written to a temporary file in
// the same directory and renamed over the old one.
func (s *FileStore) Save(_ context.Context, items []entities.ReviewItem) error {
	if items == nil {
		items = []entities.ReviewItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal review items: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}

	return nil
}

// ReadItemsFile decodes a JSON array of review items from path. It is used
// for both the store file and seed or import files.
func ReadItemsFile(path string) ([]entities.ReviewItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []entities.ReviewItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if items == nil {
		items = []entities.ReviewItem{}
	}

	return items, nil
}
