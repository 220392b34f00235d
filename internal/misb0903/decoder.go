// Package misb0903 decodes the MISB ST 0903 VMTI Local Set, the
// nested Local Set carried under ST 0601 tag 74 (spec.md §5, "VMTI
// Local Set").
package misb0903

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/aminofox/uasklv/pkg/value"
)

// DecodeItem decodes a single VMTI Local Set item and returns its
// display name and decoded value. Unrecognized tags fall back to
// "Unknown Key N" rather than an error, matching the reference
// decoder.
func DecodeItem(tag byte, val []byte) (string, value.Value) {
	switch tag {
	case 1:
		return "Checksum", value.Uint(beUint(val))
	case 2:
		return "Precision Time Stamp", value.Float(float64(beUint(val)) / 1000.0)
	case 3:
		return "VMTI System Name", utf8String(val)
	case 4:
		return "VMTI LS Version Number", value.Uint(beUint(val))
	case 5:
		return "Total Number of Targets Detected", value.Uint(beUint(val))
	case 6:
		return "Number of Reported Targets", value.Uint(beUint(val))
	case 7:
		return "Number of Regions of Interest", value.Uint(beUint(val))
	case 8:
		return "Frame Width", value.Uint(beUint(val))
	case 9:
		return "Frame Height", value.Uint(beUint(val))
	case 10:
		return "VMTI Source Sensor", utf8String(val)
	case 11:
		return "VMTI Horizontal FOV", value.String("IMAPB Required")
	case 12:
		return "VMTI Vertical FOV", value.String("IMAPB Required")
	case 13:
		return "MIIS ID", value.Bytes(val)
	case 101:
		return "VTarget Series", value.Bytes(val)
	case 102:
		return "Algorithm Series", value.Bytes(val)
	case 103:
		return "Ontology Series", value.Bytes(val)
	default:
		return fmt.Sprintf("Unknown Key %d", tag), value.Bytes(val)
	}
}

func utf8String(val []byte) value.Value {
	return value.String(strings.Trim(string(val), "\x00"))
}

func beUint(val []byte) uint64 {
	var buf [8]byte
	n := len(val)
	if n > 8 {
		n = 8
		val = val[len(val)-8:]
	}
	copy(buf[8-n:], val)
	return binary.BigEndian.Uint64(buf[:])
}
