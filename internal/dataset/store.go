// Package dataset loads, persists, and transcodes the supplier dataset.
// The dataset is a flat ordered collection: each stage reads it fully,
// mutates records in place, and writes it back whole.
package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/intit/supplier-enrich/internal/model"
)

// Store reads and writes the full record collection.
type Store interface {
	Load(ctx context.Context) ([]model.Record, error)
	Save(ctx context.Context, records []model.Record) error
}

// FileStore persists the dataset as a JSON array on disk. Save goes
// through a temp file and rename, so a crash mid-write never leaves a
// truncated dataset behind.
type FileStore struct {
	Path string
}

// NewFileStore creates a store for the given JSON file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the whole dataset into memory.
func (s *FileStore) Load(ctx context.Context) ([]model.Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read file")
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "dataset: decode records")
	}
	return records, nil
}

// Save writes the whole dataset back, preserving record order.
func (s *FileStore) Save(ctx context.Context, records []model.Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return eris.Wrap(err, "dataset: encode records")
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return eris.Wrap(err, "dataset: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrap(err, "dataset: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "dataset: close temp file")
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "dataset: rename temp file")
	}
	return nil
}
