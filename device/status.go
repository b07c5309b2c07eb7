package device

import (
	"github.com/wippyai/bincode/transcoder"
)

// RingStatus describes the driver's USB ring at the time a packet was
// received.
type RingStatus struct {
	CurrentT        *uint64
	OverflowIndices []uint64
	// SystemTime is seconds since the UNIX epoch when the USB packet
	// arrived.
	SystemTime    float64
	Backlog       uint64
	RawPackets    uint64
	ClutchEngaged bool
}

// Status accompanies every packet handed to the consumer.
type Status struct {
	// Ring is nil when no data arrived before the iterator timeout.
	Ring *RingStatus
	// SystemTime is seconds since the UNIX epoch when the packet was
	// consumed. It is never smaller than Ring.SystemTime.
	SystemTime float64
}

var (
	RingStatusType = transcoder.Record("RingStatus",
		transcoder.F("system_time", transcoder.F64),
		transcoder.F("backlog", transcoder.U64),
		transcoder.F("raw_packets", transcoder.U64),
		transcoder.F("clutch_engaged", transcoder.Bool),
		transcoder.F("current_t", transcoder.Option(transcoder.U64)),
		transcoder.F("overflow_indices", transcoder.Option(transcoder.Sequence(transcoder.U64))),
	)

	StatusType = transcoder.Record("Status",
		transcoder.F("system_time", transcoder.F64),
		transcoder.F("ring", transcoder.Option(RingStatusType)),
	)
)

// Delay is the software latency between packet arrival and consumption.
// ok is false when the status has no ring.
func (s Status) Delay() (delay float64, ok bool) {
	if s.Ring == nil {
		return 0, false
	}
	return s.SystemTime - s.Ring.SystemTime, true
}

func (s Status) Value() map[string]any {
	var ring any
	if s.Ring != nil {
		ring = s.Ring.Value()
	}
	return map[string]any{"system_time": s.SystemTime, "ring": ring}
}

func (s Status) Serialize() ([]byte, error) {
	return transcoder.Encode(s.Value(), StatusType)
}

func (r *RingStatus) Value() map[string]any {
	var currentT, overflow any
	if r.CurrentT != nil {
		currentT = *r.CurrentT
	}
	if r.OverflowIndices != nil {
		overflow = wordsValue(r.OverflowIndices)
	}
	return map[string]any{
		"system_time":      r.SystemTime,
		"backlog":          r.Backlog,
		"raw_packets":      r.RawPackets,
		"clutch_engaged":   r.ClutchEngaged,
		"current_t":        currentT,
		"overflow_indices": overflow,
	}
}

// DecodeStatus reads one Status from the front of data and returns the
// rest.
func DecodeStatus(data []byte, opts ...transcoder.CodecOption) (Status, []byte, error) {
	v, rest, err := transcoder.Decode(data, StatusType, opts...)
	if err != nil {
		return Status{}, data, err
	}
	s, err := StatusFromValue(v)
	if err != nil {
		return Status{}, data, err
	}
	return s, rest, nil
}

func StatusFromValue(v any) (Status, error) {
	var r treeReader
	m := r.record(v, nil)

	s := Status{SystemTime: read[float64](&r, m, "system_time", nil)}
	if ring, ok := r.field(m, "ring", nil); ok && ring != nil {
		s.Ring = ringStatusFromValue(&r, ring, []string{"ring"})
	}
	return s, r.err
}

func ringStatusFromValue(r *treeReader, v any, path []string) *RingStatus {
	m := r.record(v, path)
	rs := &RingStatus{
		SystemTime:    read[float64](r, m, "system_time", path),
		Backlog:       read[uint64](r, m, "backlog", path),
		RawPackets:    read[uint64](r, m, "raw_packets", path),
		ClutchEngaged: read[bool](r, m, "clutch_engaged", path),
	}
	if t, ok := r.field(m, "current_t", path); ok && t != nil {
		if ct, isU64 := t.(uint64); isU64 {
			rs.CurrentT = &ct
		} else {
			r.fail(typeMismatch(joinPath(path, "current_t"), t, "uint64"))
		}
	}
	if o, ok := r.field(m, "overflow_indices", path); ok && o != nil {
		items, _ := o.([]any)
		rs.OverflowIndices = make([]uint64, len(items))
		r.words(m, "overflow_indices", path, rs.OverflowIndices)
	}
	if r.err != nil {
		return nil
	}
	return rs
}
