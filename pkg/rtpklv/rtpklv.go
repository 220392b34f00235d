// Package rtpklv reassembles KLV units carried over RTP per RFC 6597,
// for metadata delivered live over RTSP/RTP rather than read from a
// file.
package rtpklv

import (
	"fmt"

	"github.com/pion/rtp"

	"github.com/aminofox/uasklv/internal/ber"
)

// klvStartPrefix is the first four bytes of every ST 0601 Universal
// Label; a payload beginning with them starts a new KLV unit rather
// than continuing one split across RTP packets.
var klvStartPrefix = []byte{0x06, 0x0e, 0x2b, 0x34}

// Reassembler accumulates RTP payload fragments into complete KLV
// units, tracking sequence continuity the way an RTP depacketizer
// tracks any other fragmented payload type.
type Reassembler struct {
	buffer          []byte
	expectedSize    uint
	currentTimestamp uint32
	assembling      bool
	lastSeqNum      uint16
	firstPacket     bool
}

// NewReassembler returns a ready-to-use Reassembler.
func NewReassembler() *Reassembler {
	r := &Reassembler{}
	r.reset()
	return r
}

func (r *Reassembler) reset() {
	r.buffer = r.buffer[:0]
	r.expectedSize = 0
	r.assembling = false
	r.firstPacket = true
}

// isKLVStart reports whether payload opens a new KLV unit.
func isKLVStart(payload []byte) bool {
	if len(payload) < len(klvStartPrefix) {
		return false
	}
	for i, b := range klvStartPrefix {
		if payload[i] != b {
			return false
		}
	}
	return true
}

// Decode feeds one RTP packet into the reassembler. It returns a
// non-nil byte slice when pkt completes a KLV unit (its marker bit is
// set and the accumulated buffer matches the length the unit's own
// BER length field declared); otherwise it returns nil while more
// fragments are awaited.
//
// A sequence-number gap while assembling drops the in-progress unit:
// there is no way to know what data is missing, so returning a
// partial unit would be worse than returning none.
func (r *Reassembler) Decode(pkt *rtp.Packet) ([]byte, error) {
	if pkt == nil {
		return nil, fmt.Errorf("rtpklv: nil packet")
	}

	if r.assembling && !r.firstPacket {
		expectedSeq := r.lastSeqNum + 1
		if pkt.SequenceNumber != expectedSeq {
			r.reset()
			return nil, fmt.Errorf("rtpklv: sequence gap, expected %d got %d", expectedSeq, pkt.SequenceNumber)
		}
	}

	payload := pkt.Payload

	if !r.assembling {
		if !isKLVStart(payload) {
			return nil, fmt.Errorf("rtpklv: fragment does not start a KLV unit")
		}
		r.assembling = true
		r.currentTimestamp = pkt.Timestamp
		r.buffer = append(r.buffer[:0], payload...)
	} else {
		if pkt.Timestamp != r.currentTimestamp {
			r.reset()
			return nil, fmt.Errorf("rtpklv: timestamp changed mid-unit")
		}
		r.buffer = append(r.buffer, payload...)
	}

	r.lastSeqNum = pkt.SequenceNumber
	r.firstPacket = false
	if r.expectedSize == 0 && len(r.buffer) > 16 {
		if length, size, err := ber.DecodeLength(r.buffer[16:]); err == nil {
			r.expectedSize = uint(16 + size + length)
		}
	}

	if !pkt.Marker {
		return nil, nil
	}

	if uint(len(r.buffer)) != r.expectedSize {
		got, want := len(r.buffer), r.expectedSize
		r.reset()
		return nil, fmt.Errorf("rtpklv: unit is %d bytes, its BER length declares %d", got, want)
	}
	out := append([]byte(nil), r.buffer...)
	r.reset()
	return out, nil
}
