package uasklv

import (
	"bytes"
	"testing"

	"github.com/aminofox/uasklv/internal/klv"
)

// buildPacket frames a precision time stamp item followed by a
// checksum item, with a correct trailing checksum, and returns the full
// byte range (UL through the checksum value).
func buildPacket(ts uint64) []byte {
	items := []byte{
		0x02, 0x04, // tag 2 (Precision Time Stamp), length 4
		byte(ts >> 24), byte(ts >> 16), byte(ts >> 8), byte(ts),
		0x01, 0x02, // tag 1 (Checksum), length 2, value filled below
		0x00, 0x00,
	}
	header := append(append([]byte{}, klv.UASLDSUL...), byte(len(items)))
	header = append(header, items[:len(items)-2]...)
	sum := klv.Checksum(header)

	full := append(header, byte(sum>>8), byte(sum))
	return full
}

func TestDecodeSinglePacket(t *testing.T) {
	pkt := buildPacket(10000)
	buf := append(append([]byte{}, pkt...), klv.UASLDSUL...) // trailing UL so CarvePackets keeps pkt

	d := New()
	result, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(result.Packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(result.Packets))
	}
	p := result.Packets[0]
	if p.Number != 1 {
		t.Errorf("packet number = %d, want 1", p.Number)
	}
	if len(p.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(p.Fields))
	}
	if p.Fields[0].Name != "Precision Time Stamp" {
		t.Errorf("field 0 name = %q, want Precision Time Stamp", p.Fields[0].Name)
	}
	got, _ := p.Fields[0].Value.Float()
	if got != 10.0 {
		t.Errorf("Precision Time Stamp = %v, want 10.0", got)
	}
}

func TestDecodeDropsChecksumMismatchButKeepsNumbering(t *testing.T) {
	good := buildPacket(1000)
	bad := buildPacket(2000)
	bad[len(bad)-1] ^= 0xff // corrupt the first packet's checksum

	buf := append(append(append([]byte{}, bad...), good...), klv.UASLDSUL...)

	d := New()
	result, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(result.Packets) != 1 {
		t.Fatalf("got %d packets, want 1 (first dropped for bad checksum)", len(result.Packets))
	}
	if result.Packets[0].Number != 2 {
		t.Errorf("surviving packet number = %d, want 2 (dropped packet leaves a gap)", result.Packets[0].Number)
	}
}

func TestDecodeEmptyULRejected(t *testing.T) {
	d := New(WithUL(nil))
	if _, err := d.Decode([]byte{0x00}); err == nil {
		t.Fatal("expected precondition error for empty UL")
	}
}

func TestDecodeTransportStream(t *testing.T) {
	pkt := buildPacket(5000)
	payload := append(append([]byte{}, pkt...), klv.UASLDSUL...)

	tsPacket := make([]byte, 188)
	tsPacket[0] = 0x47
	tsPacket[1] = 0x01
	tsPacket[2] = 0x01
	tsPacket[3] = 0x10 // payload only
	copy(tsPacket[4:], payload)

	d := New()
	result, err := d.DecodeTransportStream(bytes.NewReader(tsPacket), 0x101)
	if err != nil {
		t.Fatalf("DecodeTransportStream: %v", err)
	}
	if len(result.Packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(result.Packets))
	}
}
