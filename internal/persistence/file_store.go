package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/telemetry/tracing"
)

// FileStore keeps every key as raw JSON inside a single document on disk,
// rewritten synchronously on each Save/Remove. Writes are fire-and-forget:
// a failed flush is logged, never surfaced, and the in-memory copy stays
// authoritative for this process.
type FileStore struct {
	filePath string
	values   map[string]json.RawMessage
	mutex    sync.RWMutex
}

func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		return nil, errors.New("store file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	fs := &FileStore{
		filePath: filePath,
		values:   make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debugf("file store: no data at [%s], starting empty", filePath)
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	default:
		if err := json.Unmarshal(data, &fs.values); err != nil {
			log.Errorf("file store: corrupt store file [%s], starting empty: %s", filePath, err)
			fs.values = make(map[string]json.RawMessage)
		}
	}

	return fs, nil
}

func (fs *FileStore) Load(key string, out any) bool {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	raw, ok := fs.values[key]
	if !ok {
		return false
	}
	return unmarshal(key, raw, out)
}

func (fs *FileStore) Save(key string, v any) {
	raw, ok := marshal(key, v)
	if !ok {
		return
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.values[key] = raw
	if err := fs.flush(); err != nil {
		log.Errorf("file store: save [%s]: %s", key, err)
	}
}

func (fs *FileStore) Remove(key string) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	delete(fs.values, key)
	if err := fs.flush(); err != nil {
		log.Errorf("file store: remove [%s]: %s", key, err)
	}
}

// Flush rewrites the whole document on disk.
func (fs *FileStore) Flush(ctx context.Context) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "filestore.flush")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return fs.flush()
}

// flush rewrites the whole document. Callers hold the write lock.
func (fs *FileStore) flush() error {
	data, err := json.Marshal(fs.values)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmpPath := fs.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, fs.filePath); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}
