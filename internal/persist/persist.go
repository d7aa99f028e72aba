package persist

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"halil/internal/storage"
	"halil/internal/todo"
)

// Keys of the two persisted collections.
const (
	TodosKey   = "todos"
	FoldersKey = "folders"
)

// KV persists todos and folders as JSON documents in a key-value backend.
// Every failure is logged and absorbed: reads fall back to empty (or the
// seed folders) and report it, writes are skipped.
type KV struct {
	backend storage.Backend
	log     zerolog.Logger
}

var _ todo.Persister = (*KV)(nil)

func New(b storage.Backend, log zerolog.Logger) *KV {
	return &KV{backend: b, log: log}
}

// LoadTodos returns the stored todos. ok is false when the stored
// document could not be read or decoded.
func (k *KV) LoadTodos() (todos []todo.Todo, ok bool) {
	found, err := k.load(TodosKey, &todos)
	if err != nil {
		return []todo.Todo{}, false
	}
	if !found || todos == nil {
		return []todo.Todo{}, true
	}
	return todos, true
}

func (k *KV) SaveTodos(todos []todo.Todo) {
	if todos == nil {
		todos = []todo.Todo{}
	}
	k.save(TodosKey, todos)
}

// LoadFolders returns the stored folders. When nothing is stored yet the
// seed folders are written and returned. When the stored document is
// unreadable the seeds are returned with ok false and nothing is written.
func (k *KV) LoadFolders() (folders []todo.Folder, ok bool) {
	found, err := k.load(FoldersKey, &folders)
	switch {
	case err != nil:
		return todo.SeedFolders(), false
	case !found || folders == nil:
		folders = todo.SeedFolders()
		k.save(FoldersKey, folders)
		k.log.Info().Int("count", len(folders)).Msg("seeded default folders")
	}
	return folders, true
}

func (k *KV) SaveFolders(folders []todo.Folder) {
	if folders == nil {
		folders = []todo.Folder{}
	}
	k.save(FoldersKey, folders)
}

// Clear removes both collections.
func (k *KV) Clear() {
	for _, key := range []string{TodosKey, FoldersKey} {
		if err := k.backend.Delete(key); err != nil {
			k.log.Error().
				Err(err).
				Str("key", key).
				Msg("failed to clear key")
		}
	}
}

// load decodes key into v. A missing key is not an error; a read or
// decode failure is logged and returned.
func (k *KV) load(key string, v any) (bool, error) {
	bs, err := k.backend.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		k.log.Error().
			Err(err).
			Str("key", key).
			Msg("failed to read")
		return false, err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		k.log.Error().
			Err(err).
			Str("key", key).
			Msg("failed to decode, ignoring stored data")
		return false, err
	}
	return true, nil
}

func (k *KV) save(key string, v any) {
	bs, err := json.Marshal(v)
	if err != nil {
		k.log.Error().
			Err(err).
			Str("key", key).
			Msg("failed to encode")
		return
	}
	if err := k.backend.Put(key, bs); err != nil {
		k.log.Error().
			Err(err).
			Str("key", key).
			Msg("failed to write")
		return
	}
	k.log.Debug().
		Str("key", key).
		Int("bytes", len(bs)).
		Msg("saved")
}
