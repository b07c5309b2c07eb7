package transcoder

import (
	"github.com/wippyai/bincode/transcoder/internal/layout"
)

var sizes = layout.NewCalculator()

// FixedSize reports the encoded size of t when every value of t encodes
// to the same number of bytes.
func FixedSize(t *Type) (int, bool) {
	info := sizes.Calculate(t)
	return info.Size, info.Fixed
}
