// Package uasklv is the public entry point for decoding MISB ST 0601
// UAS Datalink Local Sets, optionally demultiplexed out of an MPEG-2
// Transport Stream first (spec.md §1, §9 public API design note).
package uasklv

import (
	"fmt"
	"io"

	"github.com/aminofox/uasklv/internal/ber"
	"github.com/aminofox/uasklv/internal/klv"
	"github.com/aminofox/uasklv/internal/misb0601"
	"github.com/aminofox/uasklv/internal/ts"
	"github.com/aminofox/uasklv/pkg/errors"
	"github.com/aminofox/uasklv/pkg/logger"
	"github.com/aminofox/uasklv/pkg/value"
)

// UASLDSUL is the default Universal Label this package scans for when
// the caller doesn't supply one.
var UASLDSUL = klv.UASLDSUL

// DefaultPID is the MPEG-TS PID most FMV encoders assign to the KLV
// metadata elementary stream.
const DefaultPID = 0x101

// Packet is one decoded ST 0601 Local Set. Number preserves its
// position in the scan, including gaps left by packets dropped for a
// checksum mismatch (spec.md §4.2, §9 Open Questions).
type Packet struct {
	Number int
	Fields []value.Field
}

// Result is the ordered decode of every accepted packet found in a
// buffer.
type Result struct {
	Packets []Packet
}

// Decoder decodes KLV metadata buffers. Build one with New, which sets
// the default UL and a logger that only emits errors; the zero Decoder
// has no UL, so its Decode returns a precondition error.
type Decoder struct {
	ul  []byte
	log logger.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithUL overrides the Universal Label scanned for.
func WithUL(ul []byte) Option {
	return func(d *Decoder) { d.ul = ul }
}

// WithLogger attaches a logger for per-packet diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

// New builds a Decoder with the given options.
func New(opts ...Option) *Decoder {
	d := &Decoder{ul: UASLDSUL, log: logger.NewDefaultLogger(logger.ErrorLevel, "text")}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode scans buf for Local Sets keyed by the Decoder's UL, validates
// each packet's checksum, and decodes every accepted packet's items
// into a Result. Unknown tags are logged and kept as an "Unknown Key N"
// field holding their raw bytes, rather than failing the whole packet
// (spec.md §7).
func (d *Decoder) Decode(buf []byte) (*Result, error) {
	if len(d.ul) == 0 {
		return nil, errors.NewPreconditionError("decoder has an empty Universal Label")
	}

	offsets := klv.ScanULs(buf, d.ul)
	spans := klv.CarvePackets(buf, d.ul, offsets)

	result := &Result{}
	for i, span := range spans {
		packetNumber := i + 1

		_, lengthSize, err := ber.DecodeLength(buf[span.Start+len(d.ul):])
		if err != nil {
			d.log.Warn("dropping packet with unreadable length field", logger.PacketField(packetNumber), logger.Err(errors.NewInvalidFrameError(err)))
			continue
		}
		itemsStart := span.Start + len(d.ul) + lengthSize
		items, err := klv.ParseItems(buf[itemsStart:span.End])
		if err != nil {
			d.log.Warn("dropping malformed packet", logger.PacketField(packetNumber), logger.Err(errors.NewInvalidFrameError(err)))
			continue
		}

		if !klv.VerifyChecksum(buf[span.Start:span.End], items) {
			d.log.Warn("dropping packet with checksum mismatch", logger.PacketField(packetNumber), logger.Err(errors.NewChecksumMismatchError(packetNumber)))
			continue
		}

		fields := make([]value.Field, 0, len(items))
		for _, it := range items {
			name, v, ok := misb0601.Decode(it.Tag, it.Value)
			if !ok {
				d.log.Debug("passing through unknown tag", logger.PacketField(packetNumber), logger.TagField(it.Tag))
				name, v = fmt.Sprintf("Unknown Key %d", it.Tag), value.Bytes(it.Value)
			}
			fields = append(fields, value.Field{Name: name, Value: v})
		}

		result.Packets = append(result.Packets, Packet{Number: packetNumber, Fields: fields})
	}

	return result, nil
}

// DecodeTransportStream demultiplexes pid out of r, then decodes the
// recovered elementary stream exactly as Decode would.
func (d *Decoder) DecodeTransportStream(r io.Reader, pid uint16) (*Result, error) {
	payload, err := ts.NewDemuxer(pid).Extract(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(payload)
}
