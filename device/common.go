package device

import (
	"github.com/wippyai/bincode/transcoder"
)

// RateLimiter caps the number of events the sensor emits per reference
// period.
type RateLimiter struct {
	ReferencePeriodUs      uint16
	MaximumEventsPerPeriod uint32
}

var RateLimiterType = transcoder.Record("RateLimiter",
	transcoder.F("reference_period_us", transcoder.U16),
	transcoder.F("maximum_events_per_period", transcoder.U32),
)

func (l RateLimiter) Value() map[string]any {
	return map[string]any{
		"reference_period_us":       l.ReferencePeriodUs,
		"maximum_events_per_period": l.MaximumEventsPerPeriod,
	}
}

// rateLimiterValue maps nil to an absent option.
func rateLimiterValue(l *RateLimiter) any {
	if l == nil {
		return nil
	}
	return l.Value()
}

func rateLimiterFromValue(r *treeReader, m map[string]any, path []string) *RateLimiter {
	v, ok := r.field(m, "rate_limiter", path)
	if !ok || v == nil {
		return nil
	}
	path = joinPath(path, "rate_limiter")
	rm := r.record(v, path)
	l := &RateLimiter{
		ReferencePeriodUs:      read[uint16](r, rm, "reference_period_us", path),
		MaximumEventsPerPeriod: read[uint32](r, rm, "maximum_events_per_period", path),
	}
	if r.err != nil {
		return nil
	}
	return l
}

// UsbConfiguration tunes the driver's USB transfer ring.
type UsbConfiguration struct {
	BufferSize        uint64
	RingSize          uint64
	TransferQueueSize uint64
	AllowDma          bool
}

var UsbConfigurationType = transcoder.Record("UsbConfiguration",
	transcoder.F("buffer_size", transcoder.U64),
	transcoder.F("ring_size", transcoder.U64),
	transcoder.F("transfer_queue_size", transcoder.U64),
	transcoder.F("allow_dma", transcoder.Bool),
)

// DefaultUsbConfiguration is shared by every supported device.
func DefaultUsbConfiguration() UsbConfiguration {
	return UsbConfiguration{
		BufferSize:        131072,
		RingSize:          4096,
		TransferQueueSize: 32,
		AllowDma:          false,
	}
}

func (u UsbConfiguration) Value() map[string]any {
	return map[string]any{
		"buffer_size":         u.BufferSize,
		"ring_size":           u.RingSize,
		"transfer_queue_size": u.TransferQueueSize,
		"allow_dma":           u.AllowDma,
	}
}

func (u UsbConfiguration) Serialize() ([]byte, error) {
	return transcoder.Encode(u.Value(), UsbConfigurationType)
}

func UsbConfigurationFromValue(v any) (UsbConfiguration, error) {
	var r treeReader
	m := r.record(v, nil)
	u := UsbConfiguration{
		BufferSize:        read[uint64](&r, m, "buffer_size", nil),
		RingSize:          read[uint64](&r, m, "ring_size", nil),
		TransferQueueSize: read[uint64](&r, m, "transfer_queue_size", nil),
		AllowDma:          read[bool](&r, m, "allow_dma", nil),
	}
	return u, r.err
}

// Properties are the fixed sensor characteristics of a device model.
type Properties struct {
	Width  uint16
	Height uint16
}

var PropertiesType = transcoder.Record("Properties",
	transcoder.F("width", transcoder.U16),
	transcoder.F("height", transcoder.U16),
)

func (p Properties) Value() map[string]any {
	return map[string]any{"width": p.Width, "height": p.Height}
}
