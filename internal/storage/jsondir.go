package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Dir stores each key as <key>.json inside a directory. Human-readable
// and portable; no locking beyond a single process.
type Dir struct {
	path string
}

var _ Backend = (*Dir)(nil)

func OpenDir(path string) (*Dir, error) {
	if path == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key+".json")
}

func (d *Dir) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(d.file(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Put writes through a temp file so a crash never leaves half a document.
func (d *Dir) Put(key string, value []byte) error {
	tmp := d.file(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, d.file(key)); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (d *Dir) Delete(key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Dir) Close() error { return nil }

// Memory is an in-process backend (backend = "memory"); nothing survives exit.
type Memory struct {
	data map[string][]byte
}

var _ Backend = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }
