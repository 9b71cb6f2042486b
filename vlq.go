// This package decodes Standard MIDI Files (SMF, usually with a ".mid"
// extension) into tracks of time-stamped MIDI events. The smf_tool directory
// contains a command-line interface for inspecting files with it.
package libsmf

import (
	"fmt"
)

// Decodes a MIDI-format variable-length quantity from the start of data.
// Returns the value and the number of bytes it occupied. Each byte carries 7
// bits of the value, most significant group first, and every byte but the
// last has its top bit set. Returns a TruncatedInput error if data ends before
// a byte with a clear top bit is found; no byte past len(data) is read.
func decodeVLQ(data []byte) (uint64, int, error) {
	toReturn := uint64(0)
	for i, b := range data {
		toReturn = (toReturn << 7) | uint64(b&0x7f)
		if (b & 0x80) == 0 {
			return toReturn, i + 1, nil
		}
	}
	return 0, 0, TruncatedInput
}

// Reads a MIDI-format variable int from the start of data, returning its
// value and encoded size. The offset in a returned *Error is relative to the
// start of data.
func ReadVariableInt(data []byte) (uint64, int, error) {
	v, n, e := decodeVLQ(data)
	if e != nil {
		return 0, 0, newError(TruncatedInput, len(data),
			fmt.Sprintf("variable-length int runs past %d available bytes",
				len(data)))
	}
	return v, n, nil
}
