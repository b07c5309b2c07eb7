package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/bincode/device"
	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
)

const usage = `Usage: bincode [--verbose] [--max-depth n] <command> [flags]

Commands:
  encode   serialize a device configuration file (or the defaults)
  decode   decode a serialized record and print it
  inspect  decode a record and print it as annotated YAML (-I for a TUI)
  schema   print the descriptor and fingerprint of a device configuration
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globals struct {
	opts    []transcoder.CodecOption
	verbose bool
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		g        globals
		maxDepth int
	)
	flags := pflag.NewFlagSet("bincode", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.IntVar(&maxDepth, "max-depth", -1, "container nesting limit (negative disables it)")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	g.opts = append(g.opts, transcoder.WithMaxDepth(maxDepth))

	log, err := newLogger(g.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	transcoder.SetLogger(log.Named("transcoder"))
	device.SetLogger(log.Named("device"))

	rest := flags.Args()
	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.InvalidInput(errors.PhaseConfig, "missing command")
	}

	switch rest[0] {
	case "encode":
		return runEncode(rest[1:], stdout)
	case "decode":
		return runDecode(g, rest[1:], stdin, stdout)
	case "inspect":
		return runInspect(g, rest[1:], stdin, stdout)
	case "schema":
		return runSchema(rest[1:], stdout)
	default:
		return errors.NotFound(errors.PhaseConfig, "command", rest[0])
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func runEncode(args []string, stdout io.Writer) error {
	var (
		deviceName, configPath, outPath string
		asHex, tagged                   bool
	)
	flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	flags.StringVarP(&deviceName, "device", "d", "evk4", "device whose defaults are encoded when --config is absent")
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (.yaml, .yml, .json, .jsonc)")
	flags.StringVarP(&outPath, "out", "o", "", "write the bytes to this file instead of stdout")
	flags.BoolVar(&asHex, "hex", false, "print hex instead of raw bytes")
	flags.BoolVar(&tagged, "tagged", false, "prefix the configuration with its device index")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var (
		c   device.Configuration
		err error
	)
	if configPath != "" {
		c, err = device.LoadConfiguration(configPath)
	} else {
		var t device.Type
		if t, err = device.ParseType(deviceName); err == nil {
			c, err = device.DefaultConfigurationFor(t)
		}
	}
	if err != nil {
		return err
	}

	var data []byte
	if tagged {
		data, err = device.SerializeTagged(c)
	} else {
		data, err = c.Serialize()
	}
	if err != nil {
		return err
	}

	if asHex {
		data = []byte(hex.EncodeToString(data) + "\n")
	}
	if outPath != "" {
		return os.WriteFile(outPath, data, 0o644)
	}
	_, err = stdout.Write(data)
	return err
}

// input carries the flags shared by commands that read serialized bytes.
type input struct {
	deviceName string
	record     string
	path       string
	hexInput   string
}

func (in *input) register(flags *pflag.FlagSet) {
	flags.StringVarP(&in.deviceName, "device", "d", "evk4", "device the record belongs to")
	flags.StringVarP(&in.record, "record", "r", "configuration", "record kind: configuration, tagged, status, usb or properties")
	flags.StringVarP(&in.path, "in", "i", "", "read bytes from this file (default stdin)")
	flags.StringVar(&in.hexInput, "hex-input", "", "read bytes from this hex string")
}

func (in *input) descriptor() (*transcoder.Type, error) {
	switch in.record {
	case "configuration":
		t, err := device.ParseType(in.deviceName)
		if err != nil {
			return nil, err
		}
		return device.ConfigurationTypeFor(t)
	case "tagged":
		return device.TaggedConfigurationType, nil
	case "status":
		return device.StatusType, nil
	case "usb":
		return device.UsbConfigurationType, nil
	case "properties":
		return device.PropertiesType, nil
	default:
		return nil, errors.NotFound(errors.PhaseConfig, "record kind", in.record)
	}
}

func (in *input) read(stdin io.Reader) ([]byte, error) {
	switch {
	case in.hexInput != "":
		data, err := hex.DecodeString(strings.TrimSpace(in.hexInput))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parsing --hex-input")
		}
		return data, nil
	case in.path != "":
		data, err := os.ReadFile(in.path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "reading "+in.path)
		}
		return data, nil
	default:
		return io.ReadAll(stdin)
	}
}

func (in *input) decode(g globals, stdin io.Reader) (any, *transcoder.Type, error) {
	t, err := in.descriptor()
	if err != nil {
		return nil, nil, err
	}
	data, err := in.read(stdin)
	if err != nil {
		return nil, nil, err
	}
	v, err := transcoder.DecodeExact(data, t, g.opts...)
	if err != nil {
		return nil, nil, err
	}
	return v, t, nil
}

func runDecode(g globals, args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		in     input
		format string
	)
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	in.register(flags)
	flags.StringVarP(&format, "format", "f", "json", "output format: json, yaml or cbor")
	if err := flags.Parse(args); err != nil {
		return err
	}

	v, t, err := in.decode(g, stdin)
	if err != nil {
		return err
	}
	out, err := render(annotate(v, t), outputFormat(format))
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func runInspect(g globals, args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		in          input
		interactive bool
	)
	flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	in.register(flags)
	flags.BoolVarP(&interactive, "interactive", "I", false, "browse the decoded record in a terminal UI")
	if err := flags.Parse(args); err != nil {
		return err
	}

	v, t, err := in.decode(g, stdin)
	if err != nil {
		return err
	}
	doc := annotate(v, t)
	if interactive {
		return runInteractive(t, doc)
	}

	out, err := render(doc, formatYAML)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, t.Name, transcoder.FingerprintOf(t).Short())
	_, err = stdout.Write(out)
	return err
}

func runSchema(args []string, stdout io.Writer) error {
	var (
		deviceName string
		tagged     bool
	)
	flags := pflag.NewFlagSet("schema", pflag.ContinueOnError)
	flags.StringVarP(&deviceName, "device", "d", "evk4", "device to describe")
	flags.BoolVar(&tagged, "tagged", false, "describe the tagged configuration instead")
	if err := flags.Parse(args); err != nil {
		return err
	}

	dev, err := device.ParseType(deviceName)
	if err != nil {
		return err
	}
	t := device.TaggedConfigurationType
	if !tagged {
		if t, err = device.ConfigurationTypeFor(dev); err != nil {
			return err
		}
	}
	props, err := device.PropertiesFor(dev)
	if err != nil {
		return err
	}

	fp := transcoder.FingerprintOf(t)
	fmt.Fprintf(stdout, "device:      %s (%s)\n", dev.DisplayName(), dev)
	fmt.Fprintf(stdout, "sensor:      %dx%d\n", props.Width, props.Height)
	if size, fixed := transcoder.FixedSize(t); fixed {
		fmt.Fprintf(stdout, "size:        %d bytes\n", size)
	}
	fmt.Fprintf(stdout, "fingerprint: %s\n", fp)
	fmt.Fprintf(stdout, "short:       %s\n", fp.Short())
	fmt.Fprintf(stdout, "descriptor:  %s\n", t)
	return nil
}
