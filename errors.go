package libsmf

// This file contains the error and anomaly types reported by the decoder.

import (
	"fmt"
)

// Identifies the reason decoding failed. ErrorKind values implement the
// error interface, so they can be used as targets for errors.Is.
type ErrorKind int

const (
	// The buffer is too small to contain an MThd chunk.
	TooShort ErrorKind = iota + 1
	// The buffer doesn't start with "MThd".
	BadSignature
	// The MThd chunk's length field isn't 6.
	BadHeaderLength
	// The header's format field isn't 0, 1 or 2.
	BadFormat
	// The header declares a format-2 file.
	UnsupportedFormat
	// The header declares zero tracks.
	BadTrackCount
	// The header uses SMPTE (frames per second) time division.
	UnsupportedTiming
	// A chunk's declared length runs past the end of the buffer.
	EndOfBuffer
	// A track chunk doesn't start with "MTrk".
	BadTrackSignature
	// An event or number runs past the end of the available data.
	TruncatedInput
	// A data byte appeared where a status byte was required and no running
	// status was available.
	MissingStatus
	// A status byte that doesn't correspond to any known message.
	UnknownStatus
	// The decoder failed one of its own consistency checks.
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case TooShort:
		return "too short"
	case BadSignature:
		return "bad signature"
	case BadHeaderLength:
		return "bad header length"
	case BadFormat:
		return "bad format"
	case UnsupportedFormat:
		return "unsupported format"
	case BadTrackCount:
		return "bad track count"
	case UnsupportedTiming:
		return "unsupported timing"
	case EndOfBuffer:
		return "end of buffer"
	case BadTrackSignature:
		return "bad track signature"
	case TruncatedInput:
		return "truncated input"
	case MissingStatus:
		return "missing status"
	case UnknownStatus:
		return "unknown status"
	case Internal:
		return "internal error"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Returns true if the error only invalidates the track it occurred in, and
// decoding may continue with the next track.
func (k ErrorKind) TrackLevel() bool {
	switch k {
	case EndOfBuffer, BadTrackSignature, TruncatedInput, MissingStatus,
		UnknownStatus, Internal:
		return true
	}
	return false
}

// Holds an error produced while decoding, along with where it happened.
type Error struct {
	Kind ErrorKind
	// The absolute offset into the file's data where the problem was found.
	Offset int
	// The index of the track being decoded, or -1 if the error occurred
	// outside of a track.
	Track int
	// Optional descriptions of what the decoder wanted and what it got
	// instead.
	Expected string
	Found    string
	// Additional detail, may be empty.
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("SMF error (%s) at offset %d", e.Kind, e.Offset)
	if e.Track >= 0 {
		msg = fmt.Sprintf("SMF error (%s) in track %d at offset %d", e.Kind,
			e.Track, e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if (e.Expected != "") || (e.Found != "") {
		msg += fmt.Sprintf(" (expected %s, found %s)", e.Expected, e.Found)
	}
	return msg
}

// Allows errors.Is(err, SomeErrorKind) to match.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Returns an *Error that isn't associated with a track.
func newError(kind ErrorKind, offset int, detail string) *Error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Track:  -1,
		Detail: detail,
	}
}

// Identifies something unusual in the file that doesn't prevent decoding.
type AnomalyKind int

const (
	// A SysEx message ended with a status byte other than 0xf7.
	SysExBadTerminator AnomalyKind = iota + 1
	// A 0xf7 status byte appeared without a preceding 0xf0.
	LoneEndOfSysEx
	// A format-0 file declared a track count other than 1.
	SingleTrackCount
	// Fewer tracks decoded successfully than the header declared.
	TrackCountMismatch
	// A track's data ended without an End-Of-Track meta-event.
	MissingEndOfTrack
	// A track chunk contained bytes after its End-Of-Track meta-event.
	TrailingTrackData
	// A track failed to decode and was left out of the result.
	SkippedTrack
)

func (k AnomalyKind) String() string {
	switch k {
	case SysExBadTerminator:
		return "sysex terminated by non-0xf7 byte"
	case LoneEndOfSysEx:
		return "0xf7 without matching 0xf0"
	case SingleTrackCount:
		return "format 0 file with track count other than 1"
	case TrackCountMismatch:
		return "track count mismatch"
	case MissingEndOfTrack:
		return "missing end of track"
	case TrailingTrackData:
		return "data after end of track"
	case SkippedTrack:
		return "skipped track"
	}
	return fmt.Sprintf("unknown anomaly %d", int(k))
}

// Records a tolerated irregularity found while decoding.
type Anomaly struct {
	Kind AnomalyKind
	// The index of the track the anomaly was found in, or -1 for file-level
	// anomalies.
	Track int
	// The absolute offset of the anomaly in the file data.
	Offset int
	Detail string
}

func (a Anomaly) String() string {
	loc := fmt.Sprintf("offset %d", a.Offset)
	if a.Track >= 0 {
		loc = fmt.Sprintf("track %d, offset %d", a.Track, a.Offset)
	}
	if a.Detail == "" {
		return fmt.Sprintf("SMF warning (%s) at %s", a.Kind, loc)
	}
	return fmt.Sprintf("SMF warning (%s) at %s: %s", a.Kind, loc, a.Detail)
}
