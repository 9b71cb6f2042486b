package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/depinxi/libsmf"
)

func TestSummarize(t *testing.T) {
	smfData := []byte{
		// MThd, format 1, 2 tracks, 96 ticks per quarter note
		0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 1, 0, 2, 0, 0x60,
		// MTrk
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x10,
		// Track name
		0, 0xff, 0x03, 4, 'L', 'e', 'a', 'd',
		// Note on
		0, 0x90, 0x3c, 0x40,
		// End of track
		0, 0xff, 0x2f, 0,
		// An MTrk chunk starting with a data byte, which can't be decoded.
		0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 2,
		0, 0x3c,
	}
	f, e := libsmf.Decode(smfData)
	if e != nil {
		t.Logf("Failed decoding test file: %s\n", e)
		t.FailNow()
	}
	for _, dumpEvents := range []bool{false, true} {
		s := summarize("test.mid", f, dumpEvents)
		if (s.Format != 1) || (s.PPQN != 96) || (s.Declared != 2) {
			t.Logf("Got bad header summary: %+v\n", s)
			t.FailNow()
		}
		if (len(s.Tracks) != 1) || (s.Tracks[0].Name != "Lead") ||
			!s.Tracks[0].Terminated {
			t.Logf("Got bad track summary: %+v\n", s.Tracks)
			t.FailNow()
		}
		expectedEvents := 0
		if dumpEvents {
			expectedEvents = 2
		}
		if len(s.Tracks[0].Events) != expectedEvents {
			t.Logf("Expected %d events with dumpEvents = %v, got %d\n",
				expectedEvents, dumpEvents, len(s.Tracks[0].Events))
			t.FailNow()
		}
		// The skipped track, then the track count mismatch.
		if (len(s.Failed) != 1) || (len(s.Anomalies) != 2) {
			t.Logf("Expected 1 failure and 2 anomalies, got %v and %v\n",
				s.Failed, s.Anomalies)
			t.FailNow()
		}
		data, e := json.Marshal(s)
		if e != nil {
			t.Logf("Failed encoding summary: %s\n", e)
			t.FailNow()
		}
		if !strings.Contains(string(data), `"name":"Lead"`) {
			t.Logf("Track name missing from JSON: %s\n", data)
			t.FailNow()
		}
		t.Logf("JSON output: %s\n", data)
	}
}
