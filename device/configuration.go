package device

import (
	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
	"go.uber.org/zap"
)

// Configuration is a device chip configuration ready to send to the driver.
type Configuration interface {
	Type() Type
	Value() map[string]any
	Serialize() ([]byte, error)
}

var (
	_ Configuration = (*Evk4Configuration)(nil)
	_ Configuration = (*Evk3HdConfiguration)(nil)
)

type entry struct {
	descriptor *transcoder.Type
	defaults   func() Configuration
	fromValue  func(any) (Configuration, error)
	properties Properties
}

var registry = [...]entry{
	TypeEvk3Hd: {
		descriptor: Evk3HdConfigurationType,
		defaults:   func() Configuration { return DefaultEvk3HdConfiguration() },
		fromValue: func(v any) (Configuration, error) {
			return Evk3HdConfigurationFromValue(v)
		},
		properties: DefaultEvk3HdProperties(),
	},
	TypeEvk4: {
		descriptor: Evk4ConfigurationType,
		defaults:   func() Configuration { return DefaultEvk4Configuration() },
		fromValue: func(v any) (Configuration, error) {
			return Evk4ConfigurationFromValue(v)
		},
		properties: DefaultEvk4Properties(),
	},
}

// TaggedConfigurationType carries a configuration of any device, selected
// by the registry index.
var TaggedConfigurationType = taggedType()

func taggedType() *transcoder.Type {
	cases := make([]transcoder.Case, len(registry))
	for i, e := range registry {
		cases[i] = transcoder.C(Type(i).String(), e.descriptor)
	}
	return transcoder.Variant("TaggedConfiguration", cases...)
}

func lookup(t Type) (entry, error) {
	if !t.Valid() {
		return entry{}, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Value(uint32(t)).
			Detail("unknown device type %d", uint32(t)).
			Build()
	}
	return registry[t], nil
}

// ConfigurationTypeFor returns the configuration descriptor of t.
func ConfigurationTypeFor(t Type) (*transcoder.Type, error) {
	e, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return e.descriptor, nil
}

func DefaultConfigurationFor(t Type) (Configuration, error) {
	e, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return e.defaults(), nil
}

func PropertiesFor(t Type) (Properties, error) {
	e, err := lookup(t)
	if err != nil {
		return Properties{}, err
	}
	return e.properties, nil
}

// ConfigurationFromValue converts a value tree of t's configuration
// descriptor to its Go struct.
func ConfigurationFromValue(t Type, v any) (Configuration, error) {
	e, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return e.fromValue(v)
}

// DeserializeConfiguration decodes a configuration of device t. The data
// must hold exactly one configuration.
func DeserializeConfiguration(t Type, data []byte, opts ...transcoder.CodecOption) (Configuration, error) {
	e, err := lookup(t)
	if err != nil {
		return nil, err
	}
	v, err := transcoder.DecodeExact(data, e.descriptor, opts...)
	if err != nil {
		Logger().Debug("configuration decode failed",
			zap.Stringer("device", t),
			zap.Int("size", len(data)),
			zap.Error(err),
		)
		return nil, err
	}
	return e.fromValue(v)
}

// SerializeTagged encodes c prefixed with its device index.
func SerializeTagged(c Configuration) ([]byte, error) {
	if c == nil {
		return nil, errors.NilPointer(errors.PhaseEncode, nil, "configuration")
	}
	value := transcoder.VariantValue{Index: uint32(c.Type()), Value: c.Value()}
	return transcoder.Encode(value, TaggedConfigurationType)
}

// DeserializeTagged decodes a configuration written by SerializeTagged.
func DeserializeTagged(data []byte, opts ...transcoder.CodecOption) (Configuration, error) {
	v, err := transcoder.DecodeExact(data, TaggedConfigurationType, opts...)
	if err != nil {
		return nil, err
	}
	for name, payload := range v.(map[string]any) {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		return ConfigurationFromValue(t, payload)
	}
	return nil, errors.InvalidInput(errors.PhaseDecode, "empty tagged configuration")
}
