package main

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
	formatCBOR outputFormat = "cbor"
)

// annotate rewrites a decoded value into plain maps, slices and scalars
// that every output format can carry. Enum indices become member names,
// 128-bit integers become decimal strings and byte arrays become hex.
func annotate(v any, t *transcoder.Type) any {
	if t == nil {
		return v
	}
	switch t.Kind {
	case transcoder.KindU128:
		if u, ok := v.(transcoder.Uint128); ok {
			return u.String()
		}
	case transcoder.KindS128:
		if i, ok := v.(transcoder.Int128); ok {
			return i.String()
		}
	case transcoder.KindUnit:
		return nil
	case transcoder.KindChar:
		if r, ok := v.(rune); ok {
			return string(r)
		}
	case transcoder.KindBytes:
		if b, ok := v.([]byte); ok {
			return hex.EncodeToString(b)
		}
	case transcoder.KindSequence:
		if items, ok := v.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = annotate(item, t.Elem)
			}
			return out
		}
	case transcoder.KindTuple:
		if items, ok := v.([]any); ok && len(items) == len(t.Items) {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = annotate(item, t.Items[i])
			}
			return out
		}
	case transcoder.KindOption:
		switch o := v.(type) {
		case nil:
			return nil
		case transcoder.Optional:
			return annotate(o.Value, t.Elem)
		default:
			return annotate(v, t.Elem)
		}
	case transcoder.KindMap:
		if entries, ok := v.([]transcoder.MapEntry); ok {
			out := make([]any, len(entries))
			for i, e := range entries {
				out[i] = map[string]any{
					"key":   annotate(e.Key, t.Key),
					"value": annotate(e.Value, t.Value),
				}
			}
			return out
		}
	case transcoder.KindEnum:
		if i, ok := v.(uint32); ok && int(i) < len(t.Members) {
			return t.Members[i]
		}
	case transcoder.KindVariant:
		if m, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for name, payload := range m {
				if idx := t.CaseIndex(name); idx >= 0 {
					out[name] = annotate(payload, t.Cases[idx].Type)
				} else {
					out[name] = payload
				}
			}
			return out
		}
	case transcoder.KindRecord:
		if m, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(t.Fields))
			for _, f := range t.Fields {
				out[f.Name] = annotate(m[f.Name], f.Type)
			}
			return out
		}
	}
	return v
}

func render(doc any, format outputFormat) ([]byte, error) {
	switch format {
	case formatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidValue, err, "rendering JSON")
		}
		return append(out, '\n'), nil
	case formatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidValue, err, "rendering YAML")
		}
		return out, nil
	case formatCBOR:
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, err
		}
		out, err := mode.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidValue, err, "rendering CBOR")
		}
		return out, nil
	default:
		return nil, errors.Unsupported(errors.PhaseConfig, "output format "+string(format))
	}
}
