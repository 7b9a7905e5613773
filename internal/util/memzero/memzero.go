package memzero

import "crypto/subtle"

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

// Zero32 overwrites a fixed-size 32-byte secret, the layout used by the
// session key and mask token types.
func Zero32(b *[32]byte) {
	Zero(b[:])
}
