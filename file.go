package libsmf

// This file contains the top-level code for decoding an entire SMF file.

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Records what happened to one of the tracks declared by a file's header.
type TrackOutcome struct {
	// The track's position among the declared tracks.
	Index int
	// The decoded track, or nil if decoding it failed.
	Track *Track
	// The reason the track was skipped, or nil if it decoded successfully.
	Err error
}

// Holds an entire decoded MIDI file.
type File struct {
	Header Header
	// The tracks that were decoded successfully, in file order. This may be
	// shorter than Header.TrackCount.
	Tracks []*Track
	// One entry per track declared by the header, in order.
	Outcomes []TrackOutcome
	// Irregularities that didn't stop decoding.
	Anomalies []Anomaly
}

// Returns the outcomes of the tracks that failed to decode.
func (f *File) Failed() []TrackOutcome {
	return lo.Filter(f.Outcomes, func(o TrackOutcome, _ int) bool {
		return o.Err != nil
	})
}

// Returns the number of anomalies of the given kind.
func (f *File) AnomalyCount(kind AnomalyKind) int {
	return lo.CountBy(f.Anomalies, func(a Anomaly) bool {
		return a.Kind == kind
	})
}

// Returns the total number of events in all decoded tracks.
func (f *File) EventCount() int {
	return lo.SumBy(f.Tracks, func(t *Track) int {
		return len(t.Events)
	})
}

func (f *File) addAnomalies(o *options, anomalies ...Anomaly) {
	for _, a := range anomalies {
		o.warn(a)
	}
	f.Anomalies = append(f.Anomalies, anomalies...)
}

// Returns true if err only invalidates the track it occurred in.
func isTrackLevel(err error) bool {
	var kind ErrorKind
	return errors.As(err, &kind) && kind.TrackLevel()
}

// Decodes the SMF file held in data. Errors in the header are fatal, and no
// File is returned. A track that fails to decode is skipped and recorded in
// the returned File's Outcomes, unless WithStrict is used or the error isn't
// limited to the track.
func Decode(data []byte, opts ...Option) (*File, error) {
	o := newOptions(opts)
	r := newChunkReader(data)
	h, anomalies, e := parseHeader(r)
	if e != nil {
		o.log.WithError(e).Error("Failed parsing SMF header")
		return nil, e
	}
	o.log.Debugf("SMF header contents: %s", h)
	f := &File{
		Header:   *h,
		Tracks:   make([]*Track, 0, h.TrackCount),
		Outcomes: make([]TrackOutcome, 0, h.TrackCount),
	}
	f.addAnomalies(o, anomalies...)
	for i := 0; i < int(h.TrackCount); i++ {
		t, anomalies, e := parseTrack(r, i)
		f.addAnomalies(o, anomalies...)
		f.Outcomes = append(f.Outcomes, TrackOutcome{
			Index: i,
			Track: t,
			Err:   e,
		})
		if e == nil {
			o.log.WithFields(logrus.Fields{
				"track":  i,
				"events": len(t.Events),
			}).Debug("Decoded track")
			f.Tracks = append(f.Tracks, t)
			continue
		}
		if o.strict || !isTrackLevel(e) {
			return nil, errors.Wrapf(e, "Failed parsing SMF track %d", i)
		}
		o.log.WithField("track", i).WithError(e).Error(
			"Skipping unparseable track")
		offset := 0
		var de *Error
		if errors.As(e, &de) {
			offset = de.Offset
		}
		f.addAnomalies(o, Anomaly{
			Kind:   SkippedTrack,
			Track:  i,
			Offset: offset,
			Detail: e.Error(),
		})
	}
	if len(f.Tracks) != int(h.TrackCount) {
		f.addAnomalies(o, Anomaly{
			Kind:   TrackCountMismatch,
			Track:  -1,
			Offset: len(data) - r.remaining(),
			Detail: fmt.Sprintf("MThd header declared %d tracks, but only "+
				"%d decoded", h.TrackCount, len(f.Tracks)),
		})
	}
	return f, nil
}

// Reads the SMF file at the given path and decodes it. See Decode.
func DecodeFile(path string, opts ...Option) (*File, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, errors.Wrapf(e, "Failed reading %s", path)
	}
	return Decode(data, opts...)
}

// Reads an SMF file from r until EOF and decodes it. See Decode.
func Read(r io.Reader, opts ...Option) (*File, error) {
	data, e := io.ReadAll(r)
	if e != nil {
		return nil, errors.Wrap(e, "Failed reading SMF data")
	}
	return Decode(data, opts...)
}
