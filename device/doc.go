// Package device describes the configuration and status records exchanged
// with the native event-camera driver.
//
// Each supported camera has a Go configuration struct, a transcoder
// descriptor with the exact field order the driver expects, and the
// factory defaults:
//
//	cfg := device.DefaultEvk4Configuration()
//	cfg.Biases.DiffOn = 0x70
//	data, err := cfg.Serialize()
//
// Configurations can also be loaded from YAML or JSONC files. Fields left
// out of the file keep their defaults:
//
//	# evk4.yaml
//	type: prophesee_evk4
//	biases:
//	  diff_on: 0x70
//	clock: external
//
// The driver answers with Status records, read with DecodeStatus.
//
// # Registry
//
// Devices are indexed in a fixed order: prophesee_evk3_hd is 0 and
// prophesee_evk4 is 1. TaggedConfigurationType is the variant of all
// configuration records in that order and is used when the device is
// not known up front.
package device
