package cache

import (
	"path/filepath"
	"testing"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() map[string]string {
	return map[string]string{
		"TEMPLATE_VAR_project_name":      "blinky",
		"TEMPLATE_VAR_short_description": "",
		"TEMPLATE_VAR_author":            "John Doe <john@doe.net>",
		"TEMPLATE_VAR_year":              "2026",
	}
}

func TestCodecFor(t *testing.T) {
	assert.IsType(t, JSONCodec{}, CodecFor("/tmp/app_template_cache.json"))
	assert.IsType(t, JSONCodec{}, CodecFor("/tmp/cache"))
	assert.IsType(t, TOMLCodec{}, CodecFor("/tmp/cache.toml"))
	assert.IsType(t, YAMLCodec{}, CodecFor("/tmp/cache.yaml"))
	assert.IsType(t, YAMLCodec{}, CodecFor("/tmp/cache.YML"))
}

func TestCodecsPreserveStringsExactly(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, TOMLCodec{}, YAMLCodec{}} {
		data, err := codec.Encode(sampleSnapshot())
		require.NoError(t, err)

		got, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(), got, "%T", codec)
	}
}

func TestFileStoreMissingSnapshotIsNil(t *testing.T) {
	store := NewFileStore(filesystem.NewMemoryFS(), "/tmp/app_template_cache.json")

	values, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, values)
}

func TestFileStoreEmptySnapshotIsNotNil(t *testing.T) {
	for _, name := range []string{"cache.json", "cache.toml", "cache.yaml"} {
		t.Run(name, func(t *testing.T) {
			store := NewFileStore(filesystem.NewMemoryFS(), filepath.Join("/tmp", name))
			require.NoError(t, store.Save(map[string]string{}))

			values, err := store.Load()
			require.NoError(t, err)
			assert.NotNil(t, values)
			assert.Empty(t, values)
		})
	}
}

func TestFileStoreSaveThenLoad(t *testing.T) {
	for _, name := range []string{"cache.json", "cache.toml", "cache.yaml"} {
		t.Run(name, func(t *testing.T) {
			fs := filesystem.NewMemoryFS()
			path := filepath.Join("/state", "nested", name)
			store := NewFileStore(fs, path)

			require.NoError(t, store.Save(sampleSnapshot()))

			values, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, sampleSnapshot(), values)

			// no temporary files are left next to the snapshot
			entries, err := fs.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1)
			assert.Equal(t, name, entries[0].Name())
		})
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := NewFileStore(filesystem.NewMemoryFS(), "/tmp/cache.json")

	require.NoError(t, store.Save(map[string]string{"TEMPLATE_VAR_a": "1", "TEMPLATE_VAR_b": "2"}))
	require.NoError(t, store.Save(map[string]string{"TEMPLATE_VAR_a": "3"}))

	values, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TEMPLATE_VAR_a": "3"}, values)
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"truncated json", "/tmp/cache.json", `{"TEMPLATE_VAR_a": "x"`},
		{"empty json", "/tmp/cache.json", ``},
		{"non string value", "/tmp/cache.json", `{"TEMPLATE_VAR_a": 1}`},
		{"json list", "/tmp/cache.json", `["a"]`},
		{"bad toml", "/tmp/cache.toml", "TEMPLATE_VAR_a = "},
		{"yaml list", "/tmp/cache.yaml", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMemoryFS()
			require.NoError(t, fs.WriteFile(tt.path, []byte(tt.content), 0644))

			_, err := NewFileStore(fs, tt.path).Load()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrCacheCorrupt), "got %v", err)
		})
	}
}

func TestFileStoreReadsLegacyJSON(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	legacy := `{"TEMPLATE_VAR_project_name": "blinky", "TEMPLATE_VAR_year": "2024"}`
	require.NoError(t, fs.WriteFile("/tmp/app_template_cache.json", []byte(legacy), 0644))

	values, err := NewFileStore(fs, "/tmp/app_template_cache.json").Load()
	require.NoError(t, err)
	assert.Equal(t, "blinky", values["TEMPLATE_VAR_project_name"])
	assert.Equal(t, "2024", values["TEMPLATE_VAR_year"])
}

func TestMemoryStore(t *testing.T) {
	empty, err := NewMemoryStore(nil).Load()
	require.NoError(t, err)
	assert.Nil(t, empty)

	seed := map[string]string{"TEMPLATE_VAR_a": "1"}
	store := NewMemoryStore(seed)
	seed["TEMPLATE_VAR_a"] = "changed"

	values, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1", values["TEMPLATE_VAR_a"])

	require.NoError(t, store.Save(map[string]string{"TEMPLATE_VAR_b": "2"}))
	assert.Equal(t, 1, store.Saves)

	values, _ = store.Load()
	assert.Equal(t, map[string]string{"TEMPLATE_VAR_b": "2"}, values)

	var _ Store = store
	var _ Store = &FileStore{}
}
