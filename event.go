package libsmf

// This file contains the Event type and the code that extracts a single event
// from a track's data.

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Holds a single decoded MIDI message, meta-event or SysEx message.
type Event struct {
	// The time of the event in ticks, relative to the start of its track.
	Time uint64
	// The bytes of the message. Data[0] is always the status byte, even if
	// the file omitted it using running status. Meta-events keep their type
	// and length bytes, so Data is 0xff, type, length, then the payload.
	Data []byte
}

// Returns the event's status byte.
func (e *Event) Status() byte {
	return e.Data[0]
}

func (e *Event) IsMeta() bool {
	return e.Data[0] == 0xff
}

// Returns the meta-event type byte, or false if this isn't a meta-event.
func (e *Event) MetaType() (byte, bool) {
	if !e.IsMeta() || (len(e.Data) < 2) {
		return 0, false
	}
	return e.Data[1], true
}

func (e *Event) IsEndOfTrack() bool {
	t, ok := e.MetaType()
	return ok && (t == 0x2f)
}

func (e *Event) IsSysEx() bool {
	return e.Data[0] == 0xf0
}

// Returns true if this is a one-byte system realtime message.
func (e *Event) IsRealtime() bool {
	return isRealtimeByte(e.Data[0])
}

// Returns the channel (0-15) of a channel voice or mode message, or false if
// the event isn't a channel message.
func (e *Event) Channel() (uint8, bool) {
	if (e.Data[0] & 0xf0) == 0xf0 {
		return 0, false
	}
	return e.Data[0] & 0xf, true
}

// Returns the event's bytes as a gomidi SMF message, giving access to its
// typed accessors such as GetNoteOn or GetMetaTempo.
func (e *Event) Message() smf.Message {
	return smf.Message(e.Data)
}

// Returns the text carried by a text-type meta-event (types 0x01 through
// 0x0f: text, copyright, track name and so on). Unlike the length used to
// frame the event, the text length is decoded here as a proper
// variable-length int. The text is cut short if the event's data ends early.
func (e *Event) Text() (string, bool) {
	t, ok := e.MetaType()
	if !ok || (t < 0x01) || (t > 0x0f) || (len(e.Data) < 3) {
		return "", false
	}
	length, n, err := decodeVLQ(e.Data[2:])
	if err != nil {
		return "", false
	}
	text := e.Data[2+n:]
	if uint64(len(text)) > length {
		text = text[:length]
	}
	return string(text), true
}

func (e *Event) String() string {
	return fmt.Sprintf("Time %d: %s", e.Time, e.Message())
}

// Holds the result of extracting a single event from track data.
type extraction struct {
	// The event's complete message, starting with its status byte.
	payload []byte
	// Realtime bytes that were interleaved with the message, in the order
	// they appeared.
	realtime []byte
	// The number of bytes consumed from the input, including any realtime
	// bytes.
	consumed int
	// The running status to use for the next event.
	status byte
	// Nonzero if the message was irregular but acceptable.
	anomaly AnomalyKind
}

// Extracts the message at the start of data. The time delta must already
// have been consumed. The runningStatus is the status of the previous message
// in the track, or 0 if there wasn't one. The base argument is the offset of
// data within the file, used for errors.
func extractEvent(data []byte, base int, runningStatus byte) (*extraction,
	error) {
	if len(data) == 0 {
		return nil, newError(TruncatedInput, base,
			"end of data at start of event")
	}
	c := 0
	status := data[0]
	if isStatusByte(status) {
		c++
	} else {
		// Use the running status if the first byte is not a status byte.
		if !isStatusByte(runningStatus) {
			return nil, &Error{
				Kind:     MissingStatus,
				Offset:   base,
				Track:    -1,
				Expected: "status byte or running status",
				Found:    fmt.Sprintf("data byte 0x%02x", status),
			}
		}
		status = runningStatus
	}
	length, anomaly, e := messageLength(status, data[c:], base+c)
	if e != nil {
		return nil, e
	}
	toReturn := &extraction{
		payload: make([]byte, length),
		status:  status,
		anomaly: anomaly,
	}
	toReturn.payload[0] = status
	// Meta-event payloads aren't MIDI wire data, so any byte values in them
	// are kept as they are.
	splice := status != 0xff
	i := 1
	for i < length {
		if c >= len(data) {
			return nil, &Error{
				Kind:     TruncatedInput,
				Offset:   base + c,
				Track:    -1,
				Expected: fmt.Sprintf("%d-byte message", length),
				Found:    fmt.Sprintf("%d bytes", i),
			}
		}
		b := data[c]
		c++
		// Realtime messages may occur anywhere, even in the middle of another
		// message, without being part of it.
		if splice && isRealtimeByte(b) {
			toReturn.realtime = append(toReturn.realtime, b)
			continue
		}
		toReturn.payload[i] = b
		i++
	}
	toReturn.consumed = c
	// Realtime messages never change the running status.
	if isRealtimeByte(status) {
		toReturn.status = runningStatus
	}
	return toReturn, nil
}
