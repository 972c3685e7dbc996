// Package profiling is a lightweight per-frame CPU profiler. Sections are
// timed with Track and summed until the next ResetFrame.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Section is the accumulated time of one named section in the current frame.
type Section struct {
	Name  string
	Total time.Duration
	Calls int
}

var (
	mu       sync.Mutex
	sections = make(map[string]*Section)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Add(name, time.Since(start))
	}
}

// Add records d under name without timing anything itself
func Add(name string, d time.Duration) {
	mu.Lock()
	s, ok := sections[name]
	if !ok {
		s = &Section{Name: name}
		sections[name] = s
	}
	s.Total += d
	s.Calls++
	mu.Unlock()
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(sections)
	mu.Unlock()
}

// Snapshot returns the current sections, slowest first. Ties sort by name.
func Snapshot() []Section {
	mu.Lock()
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, *s)
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Get returns the section with the given name, if recorded this frame
func Get(name string) (Section, bool) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := sections[name]
	if !ok {
		return Section{}, false
	}
	return *s, true
}

// TopN formats the n slowest sections of the current frame.
// Example: "renderer.prepass:4.2ms, meshing.BuildQuads:2.1ms(x3)"
func TopN(n int) string {
	list := Snapshot()
	if n < len(list) {
		list = list[:n]
	}
	parts := make([]string, 0, len(list))
	for _, s := range list {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

func (s Section) String() string {
	ms := float64(s.Total.Microseconds()) / 1000.0
	out := fmt.Sprintf("%s:%.1fms", s.Name, ms)
	if s.Calls > 1 {
		out += fmt.Sprintf("(x%d)", s.Calls)
	}
	return out
}
