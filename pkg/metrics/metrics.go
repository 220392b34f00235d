// Package metrics tracks per-run decode counters and exposes them as
// a hand-rolled Prometheus text exposition, matching this project's
// existing metrics/exporter split rather than pulling in a metrics
// client library.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Snapshot holds decode-run counters. All fields are safe for
// concurrent use through the accessor methods below.
type Snapshot struct {
	mu              sync.Mutex
	packetsAccepted int64
	packetsDropped  int64
	checksumFailed  int64
	perTag          map[byte]int64
}

// NewSnapshot returns an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{perTag: make(map[byte]int64)}
}

// RecordAccepted increments the accepted-packet counter.
func (s *Snapshot) RecordAccepted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packetsAccepted++
}

// RecordDropped increments the dropped-packet counter.
func (s *Snapshot) RecordDropped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packetsDropped++
}

// RecordChecksumFailure increments both the dropped-packet and
// checksum-failure counters.
func (s *Snapshot) RecordChecksumFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packetsDropped++
	s.checksumFailed++
}

// RecordTag increments the per-tag histogram for tag.
func (s *Snapshot) RecordTag(tag byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perTag[tag]++
}

// Counters is a point-in-time copy of the snapshot's counters.
type Counters struct {
	PacketsAccepted int64
	PacketsDropped  int64
	ChecksumFailed  int64
	PerTag          map[byte]int64
}

// Counters returns a copy of the current counter values.
func (s *Snapshot) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	perTag := make(map[byte]int64, len(s.perTag))
	for k, v := range s.perTag {
		perTag[k] = v
	}
	return Counters{
		PacketsAccepted: s.packetsAccepted,
		PacketsDropped:  s.packetsDropped,
		ChecksumFailed:  s.checksumFailed,
		PerTag:          perTag,
	}
}

// Exporter serves Snapshot's counters as Prometheus text exposition
// format over HTTP.
type Exporter struct {
	snapshot *Snapshot
}

// NewExporter builds an Exporter over snapshot.
func NewExporter(snapshot *Snapshot) *Exporter {
	return &Exporter{snapshot: snapshot}
}

// ServeHTTP implements http.Handler.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprint(w, e.format())
}

func (e *Exporter) format() string {
	c := e.snapshot.Counters()

	var b []byte
	b = appendMetric(b, "uasklv_packets_accepted_total", "Packets accepted after framing and checksum validation.", "counter", float64(c.PacketsAccepted))
	b = appendMetric(b, "uasklv_packets_dropped_total", "Packets dropped for any reason.", "counter", float64(c.PacketsDropped))
	b = appendMetric(b, "uasklv_checksum_failures_total", "Packets dropped specifically for a checksum mismatch.", "counter", float64(c.ChecksumFailed))

	b = append(b, "# HELP uasklv_tag_occurrences_total Occurrences of each ST 0601 tag decoded.\n"...)
	b = append(b, "# TYPE uasklv_tag_occurrences_total counter\n"...)

	tags := make([]int, 0, len(c.PerTag))
	for tag := range c.PerTag {
		tags = append(tags, int(tag))
	}
	sort.Ints(tags)
	for _, tag := range tags {
		b = append(b, fmt.Sprintf("uasklv_tag_occurrences_total{tag=\"%d\"} %d\n", tag, c.PerTag[byte(tag)])...)
	}

	return string(b)
}

func appendMetric(b []byte, name, help, kind string, value float64) []byte {
	b = append(b, fmt.Sprintf("# HELP %s %s\n", name, help)...)
	b = append(b, fmt.Sprintf("# TYPE %s %s\n", name, kind)...)
	b = append(b, fmt.Sprintf("%s %v\n", name, value)...)
	return b
}
