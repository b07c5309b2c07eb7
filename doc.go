// Package bincode is a schema-driven codec for the canonical little-endian
// bincode format used by the native event-camera driver.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	bincode/             Root package with Marshal, Unmarshal and the Valuer interface
//	├── transcoder/      Type descriptors, Encoder, Decoder, depth limit, WIT compiler
//	├── device/          Device configuration and status records, config files
//	├── errors/          Structured error types with phase, kind, path and offset
//	└── cmd/bincode/     Command line tool to encode, decode and inspect records
//
// # Quick Start
//
// Describe a value and encode it:
//
//	point := transcoder.Record("Point",
//	    transcoder.F("x", transcoder.S32),
//	    transcoder.F("y", transcoder.S32),
//	)
//
//	data, err := bincode.Marshal(map[string]any{"x": 1, "y": -2}, point)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := bincode.Unmarshal(data, point)
//	fmt.Println(v) // map[x:1 y:-2]
//
// # Device Records
//
// The device package ships descriptors and defaults for every supported
// camera:
//
//	cfg := device.DefaultEvk4Configuration()
//	cfg.Clock = device.ClockExternal
//	data, err := cfg.Serialize()
//
// # Thread Safety
//
// Descriptors and the package-level functions are safe for concurrent use.
// transcoder.Encoder and transcoder.Decoder keep a cursor and should be used
// by a single goroutine.
package bincode
