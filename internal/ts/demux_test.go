package ts

import (
	"bytes"
	"testing"
)

func packet(pid uint16, adaptation bool, payload []byte) []byte {
	pkt := make([]byte, PacketSize)
	pkt[0] = SyncByte
	pkt[1] = byte(pid >> 8 & 0x1f)
	pkt[2] = byte(pid)
	p := 4
	if adaptation {
		pkt[3] = afAdaptationAndPay << 4
		adaptationLen := 3
		pkt[4] = byte(adaptationLen)
		p = 5 + adaptationLen
	} else {
		pkt[3] = afPayloadOnly << 4
	}
	copy(pkt[p:], payload)
	return pkt
}

func TestExtractFiltersByPID(t *testing.T) {
	d := NewDemuxer(0x101)
	buf := append(packet(0x101, false, []byte("AAAA")), packet(0x200, false, []byte("BBBB"))...)
	buf = append(buf, packet(0x101, false, []byte("CCCC"))...)

	got, err := d.Extract(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := make([]byte, 0)
	want = append(want, padPayload([]byte("AAAA"))...)
	want = append(want, padPayload([]byte("CCCC"))...)
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractSkipsAdaptationField(t *testing.T) {
	d := NewDemuxer(0x101)
	pkt := packet(0x101, true, []byte("DATA"))
	got, err := d.Extract(bytes.NewReader(pkt))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("DATA")) {
		t.Errorf("got %q, want payload starting with DATA", got)
	}
}

func TestExtractBadSyncSkipsPacket(t *testing.T) {
	d := NewDemuxer(0x101)
	bad := packet(0x101, false, []byte("X"))
	bad[0] = 0x00
	good := packet(0x101, false, []byte("GOOD"))
	buf := append(bad, good...)

	got, err := d.Extract(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("GOOD")) {
		t.Errorf("got %q, want payload starting with GOOD (bad-sync packet skipped, not fatal)", got)
	}
}

func TestExtractShortReadTerminatesCleanly(t *testing.T) {
	d := NewDemuxer(0x101)
	pkt := packet(0x101, false, []byte("X"))
	got, err := d.Extract(bytes.NewReader(pkt[:100]))
	if err != nil {
		t.Fatalf("Extract: %v, want clean termination with no error", err)
	}
	if len(got) != 0 {
		t.Errorf("got %q, want empty (truncated packet discarded)", got)
	}
}

func TestExtractEmptyStream(t *testing.T) {
	d := NewDemuxer(0x101)
	got, err := d.Extract(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func padPayload(b []byte) []byte {
	out := make([]byte, PacketSize-4)
	copy(out, b)
	return out
}
