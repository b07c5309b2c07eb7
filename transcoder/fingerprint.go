package transcoder

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies a descriptor by the BLAKE3 keyed hash of its
// canonical signature. Two peers whose fingerprints match agree on the
// wire layout.
type Fingerprint [32]byte

// schemaDomainKey is the ASCII domain name, zero-padded to 32 bytes.
var schemaDomainKey = [32]byte{
	'b', 'i', 'n', 'c', 'o', 'd', 'e', '.', 's', 'c', 'h', 'e', 'm', 'a', 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// FingerprintOf hashes t.String(). Names of records, enums and variants
// take part in the hash.
func FingerprintOf(t *Type) Fingerprint {
	hasher, err := blake3.NewKeyed(schemaDomainKey[:])
	if err != nil {
		panic("transcoder: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(t.String()))

	var fp Fingerprint
	copy(fp[:], hasher.Sum(nil))
	return fp
}

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 8 bytes in hex, enough for display.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:8])
}
