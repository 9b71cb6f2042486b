// This defines a command-line utility for gathering information about
// instruments used by MIDI files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/depinxi/libsmf"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Keeps track of our accumulated event count for each instrument.
type instrumentStats struct {
	// A slice containing 128 entries: one value per MIDI instrument. Each
	// value will be set to the number of times that instrument was used in an
	// event.
	eventCounts [128]uint64
	// A slice containing 128 entries: one value per MIDI percussion
	// instrument event (basically, a count of each note played on channel 10)
	percussionEventCounts [128]uint64
	// The number of files that decoded, and the number of tracks that were
	// skipped in them.
	files         int
	skippedTracks int
}

// Adds the counts in other to s.
func (s *instrumentStats) merge(other *instrumentStats) {
	for i := 0; i < 128; i++ {
		s.eventCounts[i] += other.eventCounts[i]
		s.percussionEventCounts[i] += other.percussionEventCounts[i]
	}
	s.files += other.files
	s.skippedTracks += other.skippedTracks
}

// Dumps the total counts for each instrument to stdout.
func (s *instrumentStats) printInfo() {
	for i := 0; i < 128; i++ {
		fmt.Printf("Instrument %d: %d events.\n", i, s.eventCounts[i])
	}
	for i := 0; i < 128; i++ {
		fmt.Printf("Percussion instrument %d: %d events.\n", i,
			s.percussionEventCounts[i])
	}
	fmt.Printf("%d note events in %d files. %d tracks were skipped.\n",
		lo.Sum(s.eventCounts[:])+lo.Sum(s.percussionEventCounts[:]), s.files,
		s.skippedTracks)
}

// Returns the instrument-event counts for the named MIDI file.
func fileStats(name string, log logrus.FieldLogger) (*instrumentStats,
	error) {
	f, e := libsmf.DecodeFile(name, libsmf.WithLogger(log))
	if e != nil {
		return nil, errors.Wrapf(e, "Failed parsing %s", name)
	}
	s := &instrumentStats{
		files:         1,
		skippedTracks: len(f.Failed()),
	}
	var channelInstruments [16]uint8
	var channel, key, velocity, program uint8
	for _, track := range f.Tracks {
		// For each track we'll reset the known instruments to 0. This may be
		// incorrect...
		for i := 0; i < 16; i++ {
			channelInstruments[i] = 0
		}
		for i := range track.Events {
			// We only care about program-change and note-on events in order to
			// figure out the number of times each instrument is played.
			m := track.Events[i].Message()
			if m.GetNoteOn(&channel, &key, &velocity) {
				if velocity == 0 {
					// Note on with 0 velocity actually turns off the note;
					// don't count it.
					continue
				}
				// Percussion = anything in channel 10 (index 9)
				if channel == 9 {
					s.percussionEventCounts[key]++
				} else {
					s.eventCounts[channelInstruments[channel]]++
				}
				continue
			}

			// Update the instrument associated with the specified channel if
			// this is a program-change event.
			if m.GetProgramChange(&channel, &program) {
				channelInstruments[channel] = program
			}
		}
	}
	return s, nil
}

// Decodes the given files using the given number of goroutines, and returns
// the combined counts.
func scanFiles(filenames []string, workers int,
	log logrus.FieldLogger) *instrumentStats {
	var lock sync.Mutex
	var wg sync.WaitGroup
	total := &instrumentStats{}
	names := make(chan string)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range names {
				s, e := fileStats(name, log)
				if e != nil {
					log.WithError(e).Errorf("Failed analyzing file %s", name)
					continue
				}
				lock.Lock()
				total.merge(s)
				lock.Unlock()
			}
		}()
	}
	for i, name := range filenames {
		log.Infof("Scanning file %d/%d: %s", i+1, len(filenames), name)
		names <- name
	}
	close(names)
	wg.Wait()
	return total
}

func run() int {
	var baseDir, logLevel string
	var workers int
	flag.StringVar(&baseDir, "dir", "", "The directory to scan for .mid files")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "The number of files "+
		"to decode at once")
	flag.StringVar(&logLevel, "log_level", "info", "The level of messages to "+
		"print to stderr")
	flag.Parse()
	if baseDir == "" {
		fmt.Println("A base directory must be specified. " +
			"Run with -help for usage.")
		return 1
	}
	if workers <= 0 {
		fmt.Printf("Invalid number of workers: %d\n", workers)
		return 1
	}
	level, e := logrus.ParseLevel(logLevel)
	if e != nil {
		fmt.Printf("Invalid log level %q: %s\n", logLevel, e)
		return 1
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	filenames, e := filepath.Glob(filepath.Join(baseDir, "*.mid"))
	if e != nil {
		fmt.Printf("Failed looking up MIDI files in dir %s: %s\n", baseDir, e)
		return 1
	}
	if len(filenames) <= 0 {
		fmt.Printf("Didn't find any MIDI (.mid) files in dir %s.\n", baseDir)
		return 1
	}
	scanFiles(filenames, workers, log).printInfo()
	return 0
}

func main() {
	os.Exit(run())
}
