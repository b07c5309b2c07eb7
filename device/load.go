package device

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/jsonc"
	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is the syntax of a configuration file.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	default:
		return "", errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Detail("unknown configuration format for %q (want .yaml, .yml, .json or .jsonc)", path).
			Build()
	}
}

// LoadConfiguration reads a configuration file. The file names the device
// with a "type" key; every other key overrides the device defaults.
func LoadConfiguration(path string) (Configuration, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "reading "+path)
	}

	c, err := ParseConfiguration(data, format)
	if err != nil {
		return nil, err
	}
	Logger().Info("configuration loaded",
		zap.String("path", path),
		zap.Stringer("device", c.Type()),
	)
	return c, nil
}

// ParseConfiguration parses a configuration document in the given format.
func ParseConfiguration(data []byte, format Format) (Configuration, error) {
	raw, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}

	name, ok := raw["type"].(string)
	if !ok {
		return nil, errors.New(errors.PhaseConfig, errors.KindFieldMissing).
			Path("type").
			Detail("configuration must name its device type as a string").
			Build()
	}
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}
	delete(raw, "type")

	return configurationFromOverrides(t, raw)
}

func parseDocument(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parsing YAML configuration")
		}
	case FormatJSON, FormatJSONC:
		if format == FormatJSONC {
			data = jsonc.ToJSON(data)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parsing JSON configuration")
		}
	default:
		return nil, errors.Unsupported(errors.PhaseConfig, "configuration format "+string(format))
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// configurationFromOverrides lays overrides over t's defaults and runs the
// result through the codec, which coerces loosely typed numbers, resolves
// enum names and rejects unknown fields.
func configurationFromOverrides(t Type, overrides map[string]any) (Configuration, error) {
	e, err := lookup(t)
	if err != nil {
		return nil, err
	}

	merged := mergeTree(e.defaults().Value(), overrides)
	data, err := transcoder.Encode(merged, e.descriptor)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Cause(err).
			Detail("invalid %s configuration", t).
			Build()
	}
	return DeserializeConfiguration(t, data)
}

// mergeTree overlays src onto dst. Nested maps merge key by key, anything
// else replaces the default.
func mergeTree(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if base, ok := dst[k].(map[string]any); ok {
				dst[k] = mergeTree(base, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}
