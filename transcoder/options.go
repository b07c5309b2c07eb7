package transcoder

// CodecOption configures a single encode or decode call.
type CodecOption func(*options)

type options struct {
	maxDepth     int
	depthLimited bool
}

// WithMaxDepth bounds how many containers and records may be nested.
// A negative n removes the bound.
func WithMaxDepth(n int) CodecOption {
	return func(o *options) {
		o.maxDepth = n
		o.depthLimited = n >= 0
	}
}

func buildOptions(opts []CodecOption) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
