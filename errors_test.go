package libsmf

import (
	"testing"

	"github.com/pkg/errors"
)

func TestTrackLevelErrors(t *testing.T) {
	trackLevel := map[ErrorKind]bool{
		TooShort:          false,
		BadSignature:      false,
		BadHeaderLength:   false,
		BadFormat:         false,
		UnsupportedFormat: false,
		BadTrackCount:     false,
		UnsupportedTiming: false,
		EndOfBuffer:       true,
		BadTrackSignature: true,
		TruncatedInput:    true,
		MissingStatus:     true,
		UnknownStatus:     true,
		Internal:          true,
	}
	for kind, expected := range trackLevel {
		if kind.TrackLevel() != expected {
			t.Logf("Got TrackLevel() = %v for %s, expected %v\n",
				kind.TrackLevel(), kind, expected)
			t.FailNow()
		}
		wrapped := errors.Wrap(&Error{Kind: kind, Track: 0}, "context")
		if isTrackLevel(wrapped) != expected {
			t.Logf("Wrapping a %s error changed whether it's track-level\n",
				kind)
			t.FailNow()
		}
	}
	if isTrackLevel(errors.New("unrelated error")) {
		t.Logf("An unrelated error was treated as track-level\n")
		t.FailNow()
	}
}
