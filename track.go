package libsmf

// This file contains the code for decoding a single MTrk chunk.

import (
	"fmt"
)

// Holds the content of a single MIDI track chunk.
type Track struct {
	// The position of the track's chunk among the tracks declared by the
	// header, starting at 0. Skipped tracks still use up an index.
	Index int
	// The track's events, in the order they appear. The End-Of-Track
	// meta-event isn't included.
	Events []Event
	// The time of the End-Of-Track meta-event, or of the last event if the
	// track didn't have one.
	EndTime uint64
	// False if the track's data ran out before an End-Of-Track meta-event.
	Terminated bool
}

// Returns the text of the track's first sequence/track name meta-event.
func (t *Track) Name() (string, bool) {
	for i := range t.Events {
		mt, ok := t.Events[i].MetaType()
		if !ok || (mt != 0x03) {
			continue
		}
		return t.Events[i].Text()
	}
	return "", false
}

// Sets the track index in err if it's an *Error.
func withTrack(err error, index int) error {
	if e, ok := err.(*Error); ok {
		e.Track = index
	}
	return err
}

// Verifies that a decoded message's length matches the length its status byte
// calls for. A mismatch can only happen if the decoder itself is broken, since
// the same rules were used to size the message in the first place.
func checkEvent(data []byte, offset int) error {
	n, _, e := messageLength(data[0], data[1:], 0)
	if (e == nil) && (n == len(data)) {
		return nil
	}
	return &Error{
		Kind:     Internal,
		Offset:   offset,
		Track:    -1,
		Detail:   fmt.Sprintf("decoded message % x is malformed", data),
		Expected: fmt.Sprintf("%d bytes", n),
		Found:    fmt.Sprintf("%d bytes", len(data)),
	}
}

// Parses and returns the track chunk that is next in r. The index is the
// track's position among the declared tracks. The chunk is consumed from r
// even if its content can't be parsed, as long as the chunk itself fits in
// the file.
func parseTrack(r *chunkReader, index int) (*Track, []Anomaly, error) {
	c, e := r.nextChunk()
	if e != nil {
		return nil, nil, withTrack(e, index)
	}
	if string(c.ID[:]) != "MTrk" {
		return nil, nil, &Error{
			Kind:     BadTrackSignature,
			Offset:   c.Offset,
			Track:    index,
			Detail:   fmt.Sprintf("ignoring %s", c),
			Expected: `"MTrk"`,
			Found:    fmt.Sprintf("%q", string(c.ID[:])),
		}
	}
	t := &Track{
		Index: index,
		// We'll guess that each event takes about 3 bytes.
		Events: make([]Event, 0, len(c.Data)/3),
	}
	var anomalies []Anomaly
	data := c.Data
	base := c.dataOffset()
	pos := 0
	var currentTime uint64
	var runningStatus byte
	for {
		if pos >= len(data) {
			anomalies = append(anomalies, Anomaly{
				Kind:   MissingEndOfTrack,
				Track:  index,
				Offset: base + pos,
				Detail: fmt.Sprintf("track ended after %d events without "+
					"an End-Of-Track event", len(t.Events)),
			})
			t.EndTime = currentTime
			return t, anomalies, nil
		}
		delta, n, e := decodeVLQ(data[pos:])
		if e != nil {
			return nil, anomalies, &Error{
				Kind:   TruncatedInput,
				Offset: base + len(data),
				Track:  index,
				Detail: fmt.Sprintf("failed reading time delta for event %d",
					len(t.Events)),
			}
		}
		pos += n
		// Replace the time delta with the time since the start of the track.
		currentTime += delta
		x, e := extractEvent(data[pos:], base+pos, runningStatus)
		if e != nil {
			return nil, anomalies, withTrack(e, index)
		}
		if x.anomaly != 0 {
			anomalies = append(anomalies, Anomaly{
				Kind:   x.anomaly,
				Track:  index,
				Offset: base + pos,
			})
		}
		e = checkEvent(x.payload, base+pos)
		if e != nil {
			return nil, anomalies, withTrack(e, index)
		}
		pos += x.consumed
		runningStatus = x.status
		for _, b := range x.realtime {
			t.Events = append(t.Events, Event{
				Time: currentTime,
				Data: []byte{b},
			})
		}
		event := Event{
			Time: currentTime,
			Data: x.payload,
		}
		if event.IsEndOfTrack() {
			t.EndTime = currentTime
			t.Terminated = true
			break
		}
		t.Events = append(t.Events, event)
	}
	if pos < len(data) {
		anomalies = append(anomalies, Anomaly{
			Kind:   TrailingTrackData,
			Track:  index,
			Offset: base + pos,
			Detail: fmt.Sprintf("ignoring %d bytes after End-Of-Track",
				len(data)-pos),
		})
	}
	return t, anomalies, nil
}
