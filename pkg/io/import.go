package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

// ReadConfig decodes a configuration document from r.
//
// Slots absent from the document keep their default value. ReadConfig
// returns an INVALID_CONFIG error for malformed input or non-string values,
// INVALID_SLOT for unknown keys, and INVALID_VARIANT for values outside the
// catalog. ReadConfig does not close r.
func ReadConfig(r io.Reader, format Format) (avatar.Config, error) {
	values, err := decodeValues(r, format)
	if err != nil {
		return avatar.Config{}, err
	}
	return avatar.Default().Apply(values)
}

// ReadConfigStrict is like [ReadConfig] but requires the document to name
// every slot. A partial document is an INVALID_CONFIG error listing the
// missing slots.
func ReadConfigStrict(r io.Reader, format Format) (avatar.Config, error) {
	values, err := decodeValues(r, format)
	if err != nil {
		return avatar.Config{}, err
	}
	cfg, err := avatar.Config{}.Apply(values)
	if err != nil {
		return avatar.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return avatar.Config{}, err
	}
	return cfg, nil
}

func decodeValues(r io.Reader, format Format) (map[string]string, error) {
	doc := map[string]any{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", format)
	}

	if inner, ok := doc["avatar"].(map[string]any); ok {
		doc = inner
	}

	values := make(map[string]string, len(doc))
	for k, v := range doc {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: want a string, got %T", k, v)
		}
		values[k] = s
	}
	return values, nil
}

// ImportConfig reads the configuration file at path, choosing the decoder
// from its extension.
func ImportConfig(path string) (avatar.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return avatar.Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return avatar.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return avatar.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadConfig(f, format)
}
