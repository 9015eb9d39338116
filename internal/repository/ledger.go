// Package repository
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"moneytracker/internal/model"
)

// File persists the whole ledger as a single JSON document. Every Save
// rewrites the document in full; there is no incremental diffing.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{
		path: path,
	}
}

// Load reads the persisted ledger. A missing file is a fresh start and yields
// an empty ledger. Unreadable or malformed content is an error: the caller
// must refuse to run rather than silently discard history.
func (f *File) Load() (model.Ledger, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(model.Ledger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository.File couldn't read %s: %w", f.path, err)
	}

	var ledger model.Ledger
	if err = json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("repository.File couldn't unmarshal %s: %w", f.path, err)
	}
	if ledger == nil {
		ledger = make(model.Ledger)
	}
	return ledger, nil
}

// Save overwrites the persisted ledger. The document is written to a temp
// file in the same directory and renamed over the target, so a crash halfway
// through never leaves a truncated ledger behind.
func (f *File) Save(ledger model.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("repository.File couldn't marshal ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("repository.File couldn't create temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		closeAndRemove(tmp)
		return fmt.Errorf("repository.File couldn't write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		removeTemp(tmp.Name())
		return fmt.Errorf("repository.File couldn't close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		removeTemp(tmp.Name())
		return fmt.Errorf("repository.File couldn't rename temp file over %s: %w", f.path, err)
	}
	return nil
}

func closeAndRemove(tmp *os.File) {
	if err := tmp.Close(); err != nil {
		logrus.Errorf("repository.File couldn't close temp file %s: %v", tmp.Name(), err)
	}
	removeTemp(tmp.Name())
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		logrus.Errorf("repository.File couldn't remove temp file %s: %v", name, err)
	}
}
