// Package ts implements just enough of MPEG-2 Transport Stream
// demultiplexing to recover one elementary stream's payload bytes: a
// fixed 188-byte packet size, sync-byte resynchronization, PID
// filtering, and adaptation-field skipping (spec.md §4.1).
package ts

import (
	"bufio"
	"fmt"
	"io"
)

// PacketSize is the fixed MPEG-TS packet length.
const PacketSize = 188

// SyncByte marks the start of every TS packet.
const SyncByte = 0x47

// adaptationFieldControl values (ISO/IEC 13818-1 §2.4.3.2).
const (
	afPayloadOnly      = 0x01
	afAdaptationOnly   = 0x02
	afAdaptationAndPay = 0x03
)

// Demuxer extracts the payload bytes of a single PID from an MPEG-TS
// stream, in packet order.
type Demuxer struct {
	pid uint16
}

// NewDemuxer returns a Demuxer that keeps only packets addressed to
// pid, discarding everything else.
func NewDemuxer(pid uint16) *Demuxer {
	return &Demuxer{pid: pid}
}

// Extract reads r packet by packet until EOF, concatenating the
// payload of every packet whose PID matches and returning the result.
// A short final read (ShortRead) terminates the scan cleanly with
// whatever was accumulated so far; a packet whose sync byte is wrong
// (BadSync) is discarded and the scan continues at the next packet,
// per spec.md §4.1/§7 — neither condition is an error.
func (d *Demuxer) Extract(r io.Reader) ([]byte, error) {
	br := bufio.NewReaderSize(r, PacketSize*64)
	var out []byte

	for {
		var pkt [PacketSize]byte
		_, err := io.ReadFull(br, pkt[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("ts: read: %w", err)
		}

		if pkt[0] != SyncByte {
			continue
		}

		pid := uint16(pkt[1]&0x1f)<<8 | uint16(pkt[2])
		if pid == d.pid {
			payload, ok := payloadOf(pkt[:])
			if ok {
				out = append(out, payload...)
			}
		}
	}
	return out, nil
}

// payloadOf returns the payload slice of a single 188-byte packet,
// skipping the adaptation field when present. ok is false when the
// adaptation-field-control bits indicate there is no payload at all.
func payloadOf(pkt []byte) (payload []byte, ok bool) {
	afc := (pkt[3] & 0x30) >> 4
	p := 4

	switch afc {
	case afPayloadOnly:
		// no adaptation field
	case afAdaptationOnly:
		return nil, false
	case afAdaptationAndPay:
		if p >= len(pkt) {
			return nil, false
		}
		adaptationLength := int(pkt[p])
		p++
		p += adaptationLength
	default:
		return nil, false
	}

	if p >= len(pkt) {
		return nil, false
	}
	return pkt[p:], true
}
