package stats

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

type Type int

const (
	Files Type = iota
	Folders
	Links
)

type Stats struct {
	start    time.Time
	counters map[Type]*atomic.Int32
}

func (s *Stats) Add(t Type, delta int32) int32 {
	return s.counters[t].Add(delta)
}

func (s *Stats) Value(t Type) int32 {
	return s.counters[t].Load()
}

// Total returns the number of elements counted across all types.
func (s *Stats) Total() int32 {
	return s.Value(Files) + s.Value(Folders) + s.Value(Links)
}

func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

func (s *Stats) Print(w io.Writer) error {
	components := []string{
		"visited %d folders",
		"visited %d files",
		"visited %d links",
		"visited %d elements in %v",
		"",
	}

	_, err := fmt.Fprintf(w,
		strings.Join(components, "\n"),
		s.Value(Folders),
		s.Value(Files),
		s.Value(Links),
		s.Total(),
		s.Elapsed().Round(time.Millisecond),
	)

	return err //nolint:wrapcheck
}

func New() Stats {
	// init counters
	counters := make(map[Type]*atomic.Int32)
	counters[Files] = &atomic.Int32{}
	counters[Folders] = &atomic.Int32{}
	counters[Links] = &atomic.Int32{}

	return Stats{
		start:    time.Now(),
		counters: counters,
	}
}
