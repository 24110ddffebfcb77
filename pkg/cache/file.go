package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/google/uuid"
)

// FileStore keeps the snapshot in a single file. It assumes a single
// writer; concurrent processes sharing the file are not coordinated.
type FileStore struct {
	fs    types.FS
	path  string
	codec Codec
}

// NewFileStore creates a store at path, choosing the codec from its extension
func NewFileStore(fs types.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path, codec: CodecFor(path)}
}

// Path returns the snapshot location
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store. A snapshot that cannot be decoded is an error,
// never silently discarded.
func (s *FileStore) Load() (map[string]string, error) {
	logger := logging.GetLogger("cache")

	if _, err := s.fs.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", s.path).Msg("No cache snapshot")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access cache %s", s.path)
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read cache %s", s.path)
	}

	values, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCacheCorrupt, "cache %s is not a valid snapshot", s.path).
			WithDetail("path", s.path)
	}

	logger.Debug().Str("path", s.path).Int("entries", len(values)).Msg("Loaded cache snapshot")
	return values, nil
}

// Save implements Store. The snapshot is written to a temporary sibling
// and renamed into place.
func (s *FileStore) Save(values map[string]string) error {
	data, err := s.codec.Encode(values)
	if err != nil {
		return errors.Wrap(err, errors.ErrCacheWrite, "cannot encode cache snapshot")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrCacheWrite, "cannot create cache directory for %s", s.path)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCacheWrite, "cannot write cache %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrCacheWrite, "cannot replace cache %s", s.path)
	}

	logger := logging.GetLogger("cache")
	logger.Trace().Str("path", s.path).Int("entries", len(values)).Msg("Saved cache snapshot")
	return nil
}
