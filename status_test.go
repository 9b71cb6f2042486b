package libsmf

import (
	"errors"
	"testing"
)

func TestChannelMessageLength(t *testing.T) {
	for s := 0x80; s <= 0xef; s++ {
		status := byte(s)
		expected := 3
		if ((status & 0xf0) == 0xc0) || ((status & 0xf0) == 0xd0) {
			expected = 2
		}
		lookahead := []byte{0x3c, 0x40, 0x12}
		for i := 0; i < 2; i++ {
			n, e := MessageLength(status, lookahead)
			if e != nil {
				t.Logf("Failed getting length for status 0x%02x: %s\n",
					status, e)
				t.FailNow()
			}
			if n != expected {
				t.Logf("Got length %d for status 0x%02x, expected %d\n", n,
					status, expected)
				t.FailNow()
			}
		}
		_, e := MessageLength(status, lookahead[:expected-2])
		if !errors.Is(e, TruncatedInput) {
			t.Logf("Expected TruncatedInput for short 0x%02x message, got "+
				"%v\n", status, e)
			t.FailNow()
		}
	}
}

func TestSystemMessageLength(t *testing.T) {
	expected := map[byte]int{
		0xf1: 2,
		0xf2: 3,
		0xf3: 2,
		0xf6: 1,
		0xf7: 1,
		0xf8: 1,
		0xf9: 1,
		0xfa: 1,
		0xfb: 1,
		0xfc: 1,
		0xfd: 1,
		0xfe: 1,
	}
	lookahead := []byte{0x01, 0x02}
	for status, length := range expected {
		n, e := MessageLength(status, lookahead)
		if e != nil {
			t.Logf("Failed getting length for status 0x%02x: %s\n", status, e)
			t.FailNow()
		}
		if n != length {
			t.Logf("Got length %d for status 0x%02x, expected %d\n", n,
				status, length)
			t.FailNow()
		}
		if length == 1 {
			continue
		}
		_, e = MessageLength(status, lookahead[:length-2])
		if !errors.Is(e, TruncatedInput) {
			t.Logf("Expected TruncatedInput for short 0x%02x message, got "+
				"%v\n", status, e)
			t.FailNow()
		}
	}
	_, anomaly, _ := messageLength(0xf7, nil, 0)
	if anomaly != LoneEndOfSysEx {
		t.Logf("Didn't get anomaly for lone 0xf7, got %s\n", anomaly)
		t.FailNow()
	}
	for _, status := range []byte{0xf4, 0xf5} {
		_, e := MessageLength(status, lookahead)
		if !errors.Is(e, UnknownStatus) {
			t.Logf("Expected UnknownStatus for 0x%02x, got %v\n", status, e)
			t.FailNow()
		}
	}
	_, e := MessageLength(0x40, lookahead)
	if !errors.Is(e, MissingStatus) {
		t.Logf("Expected MissingStatus for data byte, got %v\n", e)
		t.FailNow()
	}
}

func TestMetaEventLength(t *testing.T) {
	// Set tempo: ff 51 03 07 a1 20
	n, e := MessageLength(0xff, []byte{0x51, 0x03, 0x07, 0xa1, 0x20})
	if (e != nil) || (n != 6) {
		t.Logf("Bad set tempo length: %d, %v\n", n, e)
		t.FailNow()
	}
	// End of track: ff 2f 00
	n, e = MessageLength(0xff, []byte{0x2f, 0x00})
	if (e != nil) || (n != 3) {
		t.Logf("Bad end of track length: %d, %v\n", n, e)
		t.FailNow()
	}
	shortLookaheads := [][]byte{
		nil,
		{0x2f},
		{0x51, 0x03, 0x07, 0xa1},
	}
	for _, l := range shortLookaheads {
		_, e = MessageLength(0xff, l)
		if !errors.Is(e, TruncatedInput) {
			t.Logf("Expected TruncatedInput for meta-event % x, got %v\n", l,
				e)
			t.FailNow()
		}
	}
}

// The meta-event length is read as a single raw byte. A length that needs a
// multi-byte variable-length int is misread as its first byte's value.
func TestMetaEventLengthIsOneByte(t *testing.T) {
	lookahead := append([]byte{0x01, 0x81, 0x48}, make([]byte, 200)...)
	n, e := MessageLength(0xff, lookahead)
	if e != nil {
		t.Logf("Failed getting length of long meta-event: %s\n", e)
		t.FailNow()
	}
	if n != 0x81+3 {
		t.Logf("Expected the raw length byte to be used, got length %d\n", n)
		t.FailNow()
	}
}

func TestSysExLength(t *testing.T) {
	n, e := MessageLength(0xf0, []byte{0x7e, 0x7f, 0x09, 0x01, 0xf7, 0x00})
	if (e != nil) || (n != 6) {
		t.Logf("Bad sysex length: %d, %v\n", n, e)
		t.FailNow()
	}
	// Realtime bytes don't terminate or count towards the message.
	n, e = MessageLength(0xf0, []byte{0x7e, 0xf8, 0x01, 0xf7})
	if (e != nil) || (n != 4) {
		t.Logf("Bad length for sysex with realtime byte: %d, %v\n", n, e)
		t.FailNow()
	}
	n, anomaly, e := messageLength(0xf0, []byte{0x7e, 0x01, 0x90}, 0)
	if (e != nil) || (n != 4) || (anomaly != SysExBadTerminator) {
		t.Logf("Bad result for sysex ending in 0x90: %d, %s, %v\n", n,
			anomaly, e)
		t.FailNow()
	}
	_, e = MessageLength(0xf0, []byte{0x7e, 0x7f, 0x09})
	if !errors.Is(e, TruncatedInput) {
		t.Logf("Expected TruncatedInput for unterminated sysex, got %v\n", e)
		t.FailNow()
	}
}
