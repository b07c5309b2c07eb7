package device

import (
	"github.com/wippyai/bincode/errors"
)

// Type identifies a supported device model.
type Type uint32

const (
	TypeEvk3Hd Type = iota
	TypeEvk4
)

var typeNames = [...]string{
	TypeEvk3Hd: "prophesee_evk3_hd",
	TypeEvk4:   "prophesee_evk4",
}

var displayNames = [...]string{
	TypeEvk3Hd: "Prophesee EVK3 HD",
	TypeEvk4:   "Prophesee EVK4",
}

// Types lists every device in registry order.
func Types() []Type {
	return []Type{TypeEvk3Hd, TypeEvk4}
}

func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return typeNames[t]
}

// DisplayName returns the product name reported by the driver.
func (t Type) DisplayName() string {
	if !t.Valid() {
		return "unknown"
	}
	return displayNames[t]
}

// ParseType accepts the registry name ("prophesee_evk4"), the short model
// name ("evk4") or the display name.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		switch s {
		case t.String(), t.DisplayName(), shortName(t):
			return t, nil
		}
	}
	return 0, errors.NotFound(errors.PhaseConfig, "device type", s)
}

func shortName(t Type) string {
	const prefix = "prophesee_"
	return t.String()[len(prefix):]
}

// Speed is the negotiated USB link speed.
type Speed uint8

const (
	SpeedUnknown Speed = iota
	SpeedLow
	SpeedFull
	SpeedHigh
	SpeedSuper
	SpeedSuperPlus
)

func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "USB 1.0 Low Speed (1.5 Mb/s)"
	case SpeedFull:
		return "USB 1.1 Full Speed (12 Mb/s)"
	case SpeedHigh:
		return "USB 2.0 High Speed (480 Mb/s)"
	case SpeedSuper:
		return "USB 3.0 SuperSpeed (5.0 Gb/s)"
	case SpeedSuperPlus:
		return "USB 3.1 SuperSpeed+ (10.0 Gb/s)"
	default:
		return "USB Unknown speed"
	}
}

// ParseSpeed maps a driver speed string back to a Speed. Unrecognized
// strings give SpeedUnknown.
func ParseSpeed(s string) Speed {
	for sp := SpeedLow; sp <= SpeedSuperPlus; sp++ {
		if sp.String() == s {
			return sp
		}
	}
	return SpeedUnknown
}
