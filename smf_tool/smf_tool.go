// This defines a command-line utility for inspecting standard MIDI files (SMF,
// usually with a ".mid" extension).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/depinxi/libsmf"
	"github.com/sirupsen/logrus"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f5"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fa0"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f55")).
	Bold(true)

// The -json output. Events are given as their printed form rather than as
// raw bytes, which encoding/json would write as base64.
type trackSummary struct {
	Index      int      `json:"index"`
	Name       string   `json:"name,omitempty"`
	EndTime    uint64   `json:"end_time"`
	Terminated bool     `json:"terminated"`
	Events     []string `json:"events,omitempty"`
}

type fileSummary struct {
	File      string         `json:"file"`
	Format    uint16         `json:"format"`
	PPQN      uint16         `json:"ppqn"`
	Declared  uint16         `json:"declared_tracks"`
	Tracks    []trackSummary `json:"tracks"`
	Failed    []string       `json:"failed,omitempty"`
	Anomalies []string       `json:"anomalies,omitempty"`
}

func summarize(filename string, f *libsmf.File, dumpEvents bool) *fileSummary {
	toReturn := &fileSummary{
		File:     filename,
		Format:   f.Header.Format,
		PPQN:     f.Header.PPQN(),
		Declared: f.Header.TrackCount,
		Tracks:   make([]trackSummary, 0, len(f.Tracks)),
	}
	for _, t := range f.Tracks {
		name, _ := t.Name()
		s := trackSummary{
			Index:      t.Index,
			Name:       name,
			EndTime:    t.EndTime,
			Terminated: t.Terminated,
		}
		if dumpEvents {
			for i := range t.Events {
				s.Events = append(s.Events, t.Events[i].String())
			}
		}
		toReturn.Tracks = append(toReturn.Tracks, s)
	}
	for _, o := range f.Failed() {
		toReturn.Failed = append(toReturn.Failed, o.Err.Error())
	}
	for _, a := range f.Anomalies {
		toReturn.Anomalies = append(toReturn.Anomalies, a.String())
	}
	return toReturn
}

// Prints the file's contents in a human-readable form.
func printSummary(filename string, f *libsmf.File, dumpEvents bool) {
	fmt.Println(okStyle.Render(fmt.Sprintf("Parsed %s OK. Contains %d of %d "+
		"tracks.", filename, len(f.Tracks), f.Header.TrackCount)))
	fmt.Printf("Header: %s.\n", &f.Header)
	for _, o := range f.Failed() {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Skipped track %d: %s",
			o.Index, o.Err)))
	}
	for _, a := range f.Anomalies {
		fmt.Println(warningStyle.Render(a.String()))
	}
	for _, t := range f.Tracks {
		name, ok := t.Name()
		if !ok {
			name = "unnamed"
		}
		fmt.Printf("Track %d (%s, %d events, ends at %d):\n", t.Index, name,
			len(t.Events), t.EndTime)
		if !dumpEvents {
			continue
		}
		for i := range t.Events {
			fmt.Printf("  %d. %s\n", i, &(t.Events[i]))
		}
		if !t.Terminated {
			fmt.Println(dimStyle.Render("  (no End-Of-Track event)"))
		}
	}
}

func run() int {
	var filename, logLevel string
	var dumpEvents, jsonOutput, strict bool
	flag.StringVar(&filename, "input_file", "", "The .mid file to open.")
	flag.BoolVar(&dumpEvents, "dump_events", false, "If set, print a list of "+
		"all events in the file to stdout.")
	flag.BoolVar(&jsonOutput, "json", false, "If set, print the file's "+
		"contents as JSON.")
	flag.StringVar(&logLevel, "log_level", "warning", "The level of decoder "+
		"messages to print to stderr: debug, info, warning or error.")
	flag.BoolVar(&strict, "strict", false, "If set, fail if any track can't "+
		"be decoded, rather than skipping it.")
	flag.Parse()
	if filename == "" {
		fmt.Printf("Invalid arguments. Run with -help for more information.\n")
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
	f, e := libsmf.DecodeFile(filename, libsmf.WithLogger(log),
		libsmf.WithStrict(strict))
	if e != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Couldn't parse %s: %s",
			filename, e)))
		return 1
	}
	if !jsonOutput {
		printSummary(filename, f, dumpEvents)
		return 0
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	e = encoder.Encode(summarize(filename, f, dumpEvents))
	if e != nil {
		fmt.Printf("Failed writing JSON: %s\n", e)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
