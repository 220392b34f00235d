// Package klv implements the Universal-Label-keyed framing primitive
// shared by the ST 0601 top level and the nested Security (ST 0102)
// and VMTI (ST 0903) Local Sets (spec.md §4.2, §9 "Nested Local Sets").
package klv

import (
	"bytes"
	"fmt"

	"github.com/aminofox/uasklv/internal/ber"
)

// UASLDSUL is the default 16-byte Universal Label for the UAS Local
// Data Set (spec.md §3).
var UASLDSUL = []byte{0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01, 0x0e, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00}

// Item is one (tag, length, value) triple within a Local Set.
type Item struct {
	Tag   byte
	Value []byte
}

// ScanULs returns the byte offsets in buf where ul occurs, walking
// single-pass and byte-aligned (spec.md §4.2 "Scan"). On each match it
// skips past the UL and its BER-encoded length plus payload before
// resuming the search, so an accidental UL-shaped byte sequence inside
// a payload is never double-counted. Off-UL bytes are tolerated as
// noise and skipped one at a time.
func ScanULs(buf []byte, ul []byte) []int {
	k := len(ul)
	if k == 0 || len(buf) < k {
		return nil
	}

	var offsets []int
	i := 0
	for i <= len(buf)-k {
		if bytes.Equal(buf[i:i+k], ul) {
			offsets = append(offsets, i)

			length, size, err := ber.DecodeLength(buf[i+k:])
			if err != nil {
				i++
				continue
			}
			i += k + size + length
			continue
		}
		i++
	}
	return offsets
}

// PacketSpan is the byte range [Start, End) of one framed Local Set,
// including its UL and length field.
type PacketSpan struct {
	Start int
	End   int
}

// CarvePackets turns the UL offsets ScanULs discovered into packet
// spans. By design the final recorded UL match is dropped: the framer
// cannot confirm its payload without a following UL to bound it
// against (spec.md §4.2, §9 Open Questions — the source's
// `parseGroups` does `groups[:-1]`, preserved here).
func CarvePackets(buf []byte, ul []byte, ulOffsets []int) []PacketSpan {
	k := len(ul)
	if len(ulOffsets) == 0 {
		return nil
	}

	usable := ulOffsets[:len(ulOffsets)-1]
	spans := make([]PacketSpan, 0, len(usable))
	for _, start := range usable {
		length, size, err := ber.DecodeLength(buf[start+k:])
		if err != nil {
			continue
		}
		end := start + k + size + length
		if end > len(buf) {
			continue
		}
		spans = append(spans, PacketSpan{Start: start, End: end})
	}
	return spans
}

// ParseItems walks data as a flat sequence of (tag, BER length, value)
// items, the representation shared by the ST 0601 top level and the
// nested Security/VMTI Local Sets. It returns InvalidFrame-flavored
// errors (see pkg/errors) on truncated BER lengths or values that
// would overrun data; the caller drops the enclosing packet and moves
// on, per spec.md §4.2/§7.
func ParseItems(data []byte) ([]Item, error) {
	var items []Item
	p := 0
	for p < len(data) {
		tag := data[p]
		p++

		length, size, err := ber.DecodeLength(data[p:])
		if err != nil {
			return items, fmt.Errorf("klv: item tag %d: %w", tag, err)
		}
		p += size

		if p+length > len(data) {
			return items, fmt.Errorf("klv: item tag %d: value of length %d overruns packet", tag, length)
		}

		items = append(items, Item{Tag: tag, Value: data[p : p+length]})
		p += length
	}
	return items, nil
}

// ItemsForTag returns the value bytes of the first item in items whose
// tag matches t, and whether one was found.
func ItemsForTag(items []Item, t byte) ([]byte, bool) {
	for _, it := range items {
		if it.Tag == t {
			return it.Value, true
		}
	}
	return nil, false
}
