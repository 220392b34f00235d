package rtpklv

import (
	"testing"

	"github.com/pion/rtp"
)

func klvUnit() []byte {
	ul := []byte{0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01, 0x0e, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00}
	items := []byte{0x01, 0x02, 0x02, 0x0a}
	return append(append(append([]byte{}, ul...), byte(len(items))), items...)
}

func TestReassemblerSinglePacket(t *testing.T) {
	unit := klvUnit()
	r := NewReassembler()
	pkt := &rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 1, Timestamp: 1000, Marker: true},
		Payload: unit,
	}
	out, err := r.Decode(pkt)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != string(unit) {
		t.Errorf("got %x, want %x", out, unit)
	}
}

func TestReassemblerSplitAcrossPackets(t *testing.T) {
	unit := klvUnit()
	mid := len(unit) / 2
	r := NewReassembler()

	out, err := r.Decode(&rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 1, Timestamp: 2000},
		Payload: unit[:mid],
	})
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if out != nil {
		t.Fatalf("first fragment should not complete a unit, got %x", out)
	}

	out, err = r.Decode(&rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 2, Timestamp: 2000, Marker: true},
		Payload: unit[mid:],
	})
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if string(out) != string(unit) {
		t.Errorf("got %x, want %x", out, unit)
	}
}

func TestReassemblerSequenceGapDropsUnit(t *testing.T) {
	unit := klvUnit()
	mid := len(unit) / 2
	r := NewReassembler()

	if _, err := r.Decode(&rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 1, Timestamp: 3000},
		Payload: unit[:mid],
	}); err != nil {
		t.Fatalf("first Decode: %v", err)
	}

	if _, err := r.Decode(&rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 3, Timestamp: 3000, Marker: true},
		Payload: unit[mid:],
	}); err == nil {
		t.Fatal("expected sequence gap error")
	}
}

func TestReassemblerRejectsNonKLVStart(t *testing.T) {
	r := NewReassembler()
	if _, err := r.Decode(&rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 1},
		Payload: []byte{0xde, 0xad, 0xbe, 0xef},
	}); err == nil {
		t.Fatal("expected error for non-KLV-start fragment")
	}
}
