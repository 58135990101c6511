package game

import (
	"fmt"
	"strings"
)

// RenderLogEntry is one recorded event during a headless render run.
type RenderLogEntry struct {
	Tick     int
	Category string // frame, collision, bounce, wall
	Key      string // event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] collision ship_hit        at (312,410)
func (e RenderLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-9s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// RenderLog collects structured events during a headless render run. It
// is unbounded and machine-readable; the windowed game does not use it.
type RenderLog struct {
	entries []RenderLogEntry
	verbose bool
}

// NewRenderLog creates a RenderLog. If verbose is true, per-frame
// checksum entries are also recorded.
func NewRenderLog(verbose bool) *RenderLog {
	return &RenderLog{verbose: verbose}
}

// Add records a new entry.
func (rl *RenderLog) Add(tick int, category, key, value string, numVal float64) {
	rl.entries = append(rl.entries, RenderLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (rl *RenderLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !rl.verbose {
		return
	}
	rl.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (rl *RenderLog) Entries() []RenderLogEntry {
	return rl.entries
}

// Filter returns entries matching the given category and/or key. Pass an
// empty string to match any value for that field.
func (rl *RenderLog) Filter(category, key string) []RenderLogEntry {
	var out []RenderLogEntry
	for _, e := range rl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Dump renders the whole log as one string, one line per entry.
func (rl *RenderLog) Dump() string {
	var b strings.Builder
	for _, e := range rl.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
