// Package configfile decodes the YAML/JSON registry files used by the feed.
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when no decoder accepts the file contents.
var ErrUnknownFormat = errors.New("format not recognized (expected YAML or JSON)")

type decoder func([]byte, any) error

// decoderFor picks decoders by extension. Files without a known extension
// are tried as YAML first, then JSON.
func decoderFor(ext string) []decoder {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return []decoder{yaml.Unmarshal}
	case ".json":
		return []decoder{json.Unmarshal}
	default:
		return []decoder{yaml.Unmarshal, json.Unmarshal}
	}
}

// Load reads path and decodes it into a T. kind names the file in errors.
func Load[T any](path, kind string) (T, error) {
	var zero T
	path = strings.TrimSpace(path)
	if path == "" {
		return zero, fmt.Errorf("%s file path is empty", kind)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read %s file: %w", kind, err)
	}
	return Decode[T](raw, filepath.Ext(path), kind)
}

// Decode parses raw using the decoder implied by ext.
func Decode[T any](raw []byte, ext, kind string) (T, error) {
	for _, dec := range decoderFor(ext) {
		var out T
		if err := dec(raw, &out); err == nil {
			return out, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s file: %w", kind, ErrUnknownFormat)
}
