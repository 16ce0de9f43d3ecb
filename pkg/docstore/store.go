package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/gofrs/flock"
)

// Store is the persistence boundary. Implementations hide how the document
// is locked and serialized; callers only ever see whole documents.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Mutate(ctx context.Context, fn func(doc *Document) error) error
}

// FileStore keeps the document as one pretty-printed JSON file guarded by a
// cross-process advisory lock. Writes go through a temp file and rename so a
// crashed writer never leaves a torn document behind.
type FileStore struct {
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// NewFileStore prepares the data directory and the lock handle.
func NewFileStore(cfg config.StoreConfig) (*FileStore, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	if cfg.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(cfg.DataDir, cfg.FileName)
	timeout := cfg.LockTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FileStore{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: timeout,
	}, nil
}

// Load reads the document under the file lock. A missing file yields an
// empty document rather than an error.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.read()
}

// Save writes the document under the file lock.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "document is required")
	}
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(doc)
}

// Mutate runs read-modify-write as one critical section. Within a single
// process this is the only safe way to update the document; concurrent
// Save calls still follow last-write-wins semantics.
func (s *FileStore) Mutate(ctx context.Context, fn func(doc *Document) error) error {
	if fn == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "mutation func is required")
	}
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *FileStore) acquire(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire store lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store lock unavailable")
	}
	return func() {
		_ = s.lock.Unlock()
	}, nil
}

func (s *FileStore) read() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read store file")
	}

	doc := NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode store file")
	}
	if err := Normalize(doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "normalize store file")
	}
	return doc, nil
}

func (s *FileStore) write(doc *Document) error {
	if err := Normalize(doc); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "normalize document")
	}
	doc.Meta.UpdatedAt = NowISO(time.Now())

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode document")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace store file")
	}
	return nil
}
