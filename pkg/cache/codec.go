package cache

import (
	"encoding/json"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Codec converts a snapshot to and from its on-disk encoding
type Codec interface {
	Encode(values map[string]string) ([]byte, error)
	Decode(data []byte) (map[string]string, error)
}

// CodecFor picks a codec from the file extension. JSON is the default so
// caches written by earlier tooling at the same location stay readable.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLCodec{}
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// JSONCodec encodes a snapshot as a flat JSON object
type JSONCodec struct{}

func (JSONCodec) Encode(values map[string]string) ([]byte, error) {
	return json.Marshal(values)
}

func (JSONCodec) Decode(data []byte) (map[string]string, error) {
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

// TOMLCodec encodes a snapshot as top-level TOML keys
type TOMLCodec struct{}

func (TOMLCodec) Encode(values map[string]string) ([]byte, error) {
	return toml.Marshal(values)
}

func (TOMLCodec) Decode(data []byte) (map[string]string, error) {
	var values map[string]string
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

// YAMLCodec encodes a snapshot as a YAML mapping
type YAMLCodec struct{}

func (YAMLCodec) Encode(values map[string]string) ([]byte, error) {
	return yaml.Marshal(values)
}

func (YAMLCodec) Decode(data []byte) (map[string]string, error) {
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

func orEmpty(values map[string]string) map[string]string {
	if values == nil {
		return map[string]string{}
	}
	return values
}
