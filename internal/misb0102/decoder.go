// Package misb0102 decodes the MISB ST 0102 Security Local Set, the
// nested Local Set carried under ST 0601 tag 48 (spec.md §5, "Security
// Local Set").
package misb0102

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/aminofox/uasklv/pkg/value"
)

var classificationNames = map[uint64]string{
	1: "UNCLASSIFIED",
	2: "RESTRICTED",
	3: "CONFIDENTIAL",
	4: "SECRET",
	5: "TOP SECRET",
}

// classificationReleaseMethod backs tag 2, Classifying Country and
// Releasing Instructions Country Coding Method.
var classificationReleaseMethod = map[uint64]string{
	1:  "ISO-3166 Two Letter",
	2:  "ISO-3166 Three Letter",
	3:  "FIPS 10-4 Two Letter",
	4:  "FIPS 10-4 Four Letter",
	5:  "ISO-3166 Numeric",
	6:  "1059 Two Letter",
	7:  "1059 Three Letter",
	8:  "Omitted Value",
	9:  "Omitted Value",
	10: "STANAG 1059 Two Letter",
	11: "STANAG 1059 Three Letter",
	12: "GENC Two Letter",
	13: "GENC Three Letter",
	14: "GENC Numeric",
	15: "GENC Administrative Subdivision",
	16: "GENC Composite",
}

// objectCountryCodingMethod backs tag 12, Object Country Coding
// Method. It shares several labels with tag 2's table but is a
// distinct, shorter enumeration.
var objectCountryCodingMethod = map[uint64]string{
	1:  "ISO-3166 Two Letter",
	2:  "ISO-3166 Three Letter",
	3:  "ISO-3166 Numeric",
	4:  "FIPS 10-4 Two Letter",
	5:  "FIPS 10-4 Four Letter",
	6:  "GENC Two Letter",
	7:  "GENC Three Letter",
	8:  "GENC Numeric",
	9:  "GENC Administrative Subdivision",
	10: "GENC Composite",
	11: "Omitted Value",
}

// DecodeItem decodes a single Security Local Set item and returns its
// display name and decoded value. Tags this decoder does not recognize
// fall back to "Unknown Key N", matching the reference decoder rather
// than surfacing an error: a security field the caller doesn't know
// about still gets reported, just without interpretation.
func DecodeItem(tag byte, val []byte) (string, value.Value) {
	switch tag {
	case 1:
		return "Security Classification", classificationEnum(val)
	case 2:
		return "Classifying Country and Releasing Instructions Country Coding Method", countryMethodEnum(classificationReleaseMethod, val)
	case 3:
		return "Classifying Country", utf8String(val)
	case 4:
		return "Security-SCI/SHI Information", utf8String(val)
	case 5:
		return "Caveats", utf8String(val)
	case 6:
		return "Releasing Instructions", utf8String(val)
	case 7:
		return "Classified By", utf8String(val)
	case 8:
		return "Derived From", utf8String(val)
	case 9:
		return "Classification Reason", utf8String(val)
	case 10:
		return "Declassification Date", utf8String(val)
	case 11:
		return "Classification and Marking System", utf8String(val)
	case 12:
		return "Object Country Coding Method", countryMethodEnum(objectCountryCodingMethod, val)
	case 13:
		return "Object Country Codes", utf8String(val)
	case 14:
		return "Classification Comments", utf8String(val)
	case 22:
		return "Version", value.Uint(beUint(val))
	case 23:
		return "Classifying Country and Releasing Instructions Country Coding Method Version Date", utf8String(val)
	case 24:
		return "Object Country Coding Method Version Date", utf8String(val)
	default:
		return fmt.Sprintf("Unknown Key %d", tag), value.Bytes(val)
	}
}

func classificationEnum(val []byte) value.Value {
	n, ok := classificationNames[beUint(val)]
	if !ok {
		n = "Unknown"
	}
	return value.String(n)
}

func countryMethodEnum(table map[uint64]string, val []byte) value.Value {
	n, ok := table[beUint(val)]
	if !ok {
		n = "Unknown"
	}
	return value.String(n)
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
