package libsmf

// This file contains the rules for determining how many bytes a MIDI message
// occupies, given its status byte.

import (
	"fmt"
)

// Returns true if b has its top bit set, marking it as a status byte.
func isStatusByte(b byte) bool {
	return (b & 0x80) != 0
}

// Returns true if b is the status byte of a system realtime message. These
// messages are a single byte and may appear anywhere, even in the middle of
// another message.
func isRealtimeByte(b byte) bool {
	return (b >= 0xf8) && (b <= 0xfe)
}

// Returns the total length, including the status byte, of the message
// starting with the given status byte. The next slice must contain the bytes
// following the status byte, and base must be their offset in the file, for
// error reporting. The returned AnomalyKind is 0 unless the message was
// unusual but acceptable.
func messageLength(status byte, next []byte, base int) (int, AnomalyKind,
	error) {
	if !isStatusByte(status) {
		return 0, 0, &Error{
			Kind:     MissingStatus,
			Offset:   base,
			Track:    -1,
			Expected: "status byte",
			Found:    fmt.Sprintf("0x%02x", status),
		}
	}
	if status == 0xf0 {
		return sysExLength(next, base)
	}
	if status == 0xf7 {
		return 1, LoneEndOfSysEx, nil
	}
	n, e := fixedMessageLength(status, next, base)
	if e != nil {
		return 0, 0, e
	}
	if len(next) < (n - 1) {
		return 0, 0, &Error{
			Kind:     TruncatedInput,
			Offset:   base + len(next),
			Track:    -1,
			Expected: fmt.Sprintf("%d-byte message", n),
			Found:    fmt.Sprintf("%d bytes", len(next)+1),
		}
	}
	return n, 0, nil
}

// Returns the length of messages other than SysEx, which are either of a
// fixed size or, for meta-events, carry their size in their first bytes.
func fixedMessageLength(status byte, next []byte, base int) (int, error) {
	// Meta-events are 0xff, then a type byte, then a length byte. Only a
	// single length byte is looked at here, so meta-events with more than
	// 127 bytes of data aren't sized correctly.
	if status == 0xff {
		if len(next) < 2 {
			return 0, newError(TruncatedInput, base+len(next),
				"end of data in meta-event header")
		}
		return int(next[1]) + 3, nil
	}

	if (status & 0xf0) == 0xf0 {
		switch status {
		case 0xf2: // Song position pointer
			return 3, nil
		case 0xf1, 0xf3: // MTC quarter frame, song select
			return 2, nil
		case 0xf6, 0xf8, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe:
			return 1, nil
		}
		return 0, &Error{
			Kind:   UnknownStatus,
			Offset: base - 1,
			Track:  -1,
			Detail: fmt.Sprintf("unknown 0xfx-type status byte 0x%02x",
				status),
		}
	}

	switch status & 0xf0 {
	case 0x80, 0x90, 0xa0, 0xb0, 0xe0:
		return 3, nil
	case 0xc0, 0xd0:
		return 2, nil
	}
	return 0, newError(UnknownStatus, base-1,
		fmt.Sprintf("unknown status byte 0x%02x", status))
}

// Like messageLength, but only for system exclusive messages. The message is
// terminated by the first status byte that isn't a realtime byte; the
// terminator is included in the length. Realtime bytes are skipped over and
// not counted, since they aren't part of the message.
func sysExLength(next []byte, base int) (int, AnomalyKind, error) {
	length := 1
	for _, b := range next {
		if isRealtimeByte(b) {
			continue
		}
		length++
		if !isStatusByte(b) {
			continue
		}
		if b != 0xf7 {
			return length, SysExBadTerminator, nil
		}
		return length, 0, nil
	}
	return 0, 0, newError(TruncatedInput, base+len(next),
		"end of data in system exclusive message")
}

// Returns the total length, in bytes, of the MIDI message with the given
// status byte, including the status byte itself. The next slice holds the
// bytes following the status byte, which some messages need in order to
// determine their length. Returns a TruncatedInput error if next is too short
// to determine the length, or an UnknownStatus error for status bytes that
// don't start any known message. Offsets in a returned *Error are relative to
// the start of next.
func MessageLength(status byte, next []byte) (int, error) {
	n, _, e := messageLength(status, next, 0)
	return n, e
}
