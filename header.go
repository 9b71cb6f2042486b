package libsmf

// This file contains the code for parsing the MThd chunk at the start of an
// SMF file.

import (
	"encoding/binary"
	"fmt"
)

// This corresponds to the division field of the MThd chunk.
type TimeDivision uint16

// Returns the number of ticks per quarter note, or 0 if the time division
// doesn't specify a number of ticks per quarter note.
func (d TimeDivision) TicksPerQuarterNote() uint16 {
	if (d & 0x8000) != 0 {
		return 0
	}
	return uint16(d)
}

// Returns the SMPTE frames per second followed by the number of ticks per
// frame. Returns 0, 0 if the division specifies ticks per quarter note
// instead.
func (d TimeDivision) SMPTETimeCode() (uint8, uint8) {
	if (d & 0x8000) == 0 {
		return 0, 0
	}
	// The frames per second is stored as a negative 8-bit integer.
	fps := uint8(-int8(d >> 8))
	ticksPerFrame := uint8(d & 0xff)
	return fps, ticksPerFrame
}

func (d TimeDivision) String() string {
	qnTicks := d.TicksPerQuarterNote()
	if (d & 0x8000) == 0 {
		return fmt.Sprintf("%d ticks per quarter note", qnTicks)
	}
	fps, ticksPerFrame := d.SMPTETimeCode()
	return fmt.Sprintf("%d frames per second, %d ticks per frame", fps,
		ticksPerFrame)
}

// Holds the values from a file's MThd chunk.
type Header struct {
	// 0 for a single-track file, 1 for several simultaneous tracks. Format 2
	// files aren't supported.
	Format uint16
	// The number of tracks the header declares. The number of tracks actually
	// decoded may be lower.
	TrackCount uint16
	// Always specifies ticks per quarter note in a decoded file.
	Division TimeDivision
}

// Returns the number of ticks per quarter note.
func (h *Header) PPQN() uint16 {
	return h.Division.TicksPerQuarterNote()
}

func (h *Header) String() string {
	var kind string
	switch h.Format {
	case 0:
		kind = "single track"
	case 1:
		kind = "several simultaneous tracks"
	case 2:
		kind = "several independent tracks"
	default:
		kind = "invalid format"
	}
	return fmt.Sprintf("Format %d (%s), with %d track(s), %s", h.Format,
		kind, h.TrackCount, h.Division)
}

// The MThd chunk's fixed content size.
const headerDataSize = 6

// Parses the MThd chunk, which must be the first chunk read from r. Returns
// anomalies if the header is acceptable but odd.
func parseHeader(r *chunkReader) (*Header, []Anomaly, error) {
	buf := r.buf
	if len(buf) < headerDataSize {
		return nil, nil, &Error{
			Kind:     TooShort,
			Offset:   0,
			Track:    -1,
			Detail:   "file is too short to be a MIDI file",
			Expected: fmt.Sprintf("at least %d bytes", headerDataSize),
			Found:    fmt.Sprintf("%d bytes", len(buf)),
		}
	}
	if string(buf[0:4]) != "MThd" {
		return nil, nil, &Error{
			Kind:     BadSignature,
			Offset:   0,
			Track:    -1,
			Detail:   "MThd signature not found",
			Expected: `"MThd"`,
			Found:    fmt.Sprintf("%q", string(buf[0:4])),
		}
	}
	// The length field is checked before framing the chunk, so a bad length
	// that also runs past the end of the file is still a BadHeaderLength.
	if len(buf) >= chunkHeaderSize {
		length := binary.BigEndian.Uint32(buf[4:8])
		if length != headerDataSize {
			return nil, nil, &Error{
				Kind:     BadHeaderLength,
				Offset:   4,
				Track:    -1,
				Expected: fmt.Sprintf("%d", headerDataSize),
				Found:    fmt.Sprintf("%d", length),
			}
		}
	}
	c, e := r.nextChunk()
	if e != nil {
		return nil, nil, newError(TooShort, 0, "MThd chunk is truncated")
	}
	h := &Header{
		Format:     binary.BigEndian.Uint16(c.Data[0:2]),
		TrackCount: binary.BigEndian.Uint16(c.Data[2:4]),
		Division:   TimeDivision(binary.BigEndian.Uint16(c.Data[4:6])),
	}
	if h.Format > 2 {
		return nil, nil, &Error{
			Kind:     BadFormat,
			Offset:   c.dataOffset(),
			Track:    -1,
			Expected: "0, 1 or 2",
			Found:    fmt.Sprintf("%d", h.Format),
		}
	}
	if h.Format == 2 {
		return nil, nil, &Error{
			Kind:   UnsupportedFormat,
			Offset: c.dataOffset(),
			Track:  -1,
			Detail: "format 2 files are not supported",
		}
	}
	if h.TrackCount == 0 {
		return nil, nil, &Error{
			Kind:     BadTrackCount,
			Offset:   c.dataOffset() + 2,
			Track:    -1,
			Expected: "more than 0 tracks",
			Found:    "0",
		}
	}
	if h.PPQN() == 0 {
		return nil, nil, &Error{
			Kind:     UnsupportedTiming,
			Offset:   c.dataOffset() + 4,
			Track:    -1,
			Detail:   "only ticks-per-quarter-note division is supported",
			Expected: "ticks per quarter note",
			Found:    h.Division.String(),
		}
	}
	var anomalies []Anomaly
	if (h.Format == 0) && (h.TrackCount != 1) {
		anomalies = append(anomalies, Anomaly{
			Kind:   SingleTrackCount,
			Track:  -1,
			Offset: c.dataOffset() + 2,
			Detail: fmt.Sprintf("format 0 file declares %d tracks",
				h.TrackCount),
		})
	}
	return h, anomalies, nil
}
