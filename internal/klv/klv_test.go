package klv

import (
	"bytes"
	"testing"
)

// packetFixture returns one framed ST 0601 packet carrying a single
// Checksum (tag 1) item whose value is the correct running-sum
// checksum of everything before it.
func packetFixture() []byte {
	header := append(append([]byte{}, UASLDSUL...), 0x04, 0x01, 0x02)
	want := Checksum(header)
	var buf bytes.Buffer
	buf.Write(header)
	buf.WriteByte(byte(want >> 8))
	buf.WriteByte(byte(want))
	return buf.Bytes()
}

func TestScanULsSinglePacket(t *testing.T) {
	buf := packetFixture()
	offsets := ScanULs(buf, UASLDSUL)
	if len(offsets) != 1 || offsets[0] != 0 {
		t.Fatalf("ScanULs = %v, want [0]", offsets)
	}
}

func TestCarvePacketsDropsLastMatch(t *testing.T) {
	one := packetFixture()
	buf := append(append(append([]byte{}, one...), one...), one...)

	offsets := ScanULs(buf, UASLDSUL)
	if len(offsets) != 3 {
		t.Fatalf("ScanULs found %d offsets, want 3", len(offsets))
	}

	spans := CarvePackets(buf, UASLDSUL, offsets)
	if len(spans) != 2 {
		t.Fatalf("CarvePackets returned %d spans, want 2 (last match dropped)", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != len(one) {
		t.Errorf("span 0 = %+v, want {0 %d}", spans[0], len(one))
	}
	if spans[1].Start != len(one) || spans[1].End != 2*len(one) {
		t.Errorf("span 1 = %+v, want {%d %d}", spans[1], len(one), 2*len(one))
	}
}

func TestCarvePacketsSingleMatchYieldsNothing(t *testing.T) {
	buf := packetFixture()
	offsets := ScanULs(buf, UASLDSUL)
	spans := CarvePackets(buf, UASLDSUL, offsets)
	if len(spans) != 0 {
		t.Fatalf("CarvePackets = %v, want none (only UL match is dropped as unconfirmed)", spans)
	}
}

func TestParseItemsSingleChecksum(t *testing.T) {
	buf := packetFixture()
	items, err := ParseItems(buf[len(UASLDSUL)+1:])
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Tag != 1 || len(items[0].Value) != 2 {
		t.Errorf("item = %+v, want tag 1 with 2-byte value", items[0])
	}
}

func TestParseItemsTruncatedLength(t *testing.T) {
	_, err := ParseItems([]byte{0x01, 0x82, 0x00})
	if err == nil {
		t.Fatal("expected error for truncated long-form length")
	}
}

func TestParseItemsValueOverrun(t *testing.T) {
	_, err := ParseItems([]byte{0x01, 0x05, 0x00, 0x00})
	if err == nil {
		t.Fatal("expected error for value overrunning packet")
	}
}

func TestItemsForTag(t *testing.T) {
	items := []Item{{Tag: 1, Value: []byte{0x00, 0x01}}, {Tag: 5, Value: []byte{0xff}}}
	if v, ok := ItemsForTag(items, 5); !ok || !bytes.Equal(v, []byte{0xff}) {
		t.Errorf("ItemsForTag(5) = (%x, %v), want (ff, true)", v, ok)
	}
	if _, ok := ItemsForTag(items, 9); ok {
		t.Error("ItemsForTag(9) found a match that should not exist")
	}
}

func TestChecksumMinimalPacket(t *testing.T) {
	header := append(append([]byte{}, UASLDSUL...), 0x04, 0x01, 0x02)
	got := Checksum(header)
	if got == 0 {
		t.Fatal("checksum should not be zero for a non-trivial header")
	}
}

func TestVerifyChecksumAccepts(t *testing.T) {
	buf := packetFixture()
	items, err := ParseItems(buf[len(UASLDSUL)+1:])
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if !VerifyChecksum(buf, items) {
		t.Error("VerifyChecksum rejected a packet with a correct checksum")
	}
}

func TestVerifyChecksumRejectsMismatch(t *testing.T) {
	buf := packetFixture()
	buf[len(buf)-1] ^= 0xff
	items, err := ParseItems(buf[len(UASLDSUL)+1:])
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if VerifyChecksum(buf, items) {
		t.Error("VerifyChecksum accepted a packet with a corrupted checksum")
	}
}

func TestVerifyChecksumAbsentTagAccepted(t *testing.T) {
	buf := append(append([]byte{}, UASLDSUL...), 0x03, 0x02, 0x01, 0x05)
	items, err := ParseItems(buf[len(UASLDSUL)+1:])
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if !VerifyChecksum(buf, items) {
		t.Error("VerifyChecksum rejected a packet with no checksum item")
	}
}

func TestScanULsIgnoresNoise(t *testing.T) {
	noise := []byte{0xde, 0xad, 0xbe, 0xef}
	buf := append(append(append([]byte{}, noise...), packetFixture()...), noise...)
	offsets := ScanULs(buf, UASLDSUL)
	if len(offsets) != 1 || offsets[0] != len(noise) {
		t.Fatalf("ScanULs = %v, want [%d]", offsets, len(noise))
	}
}
