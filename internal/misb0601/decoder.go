// Package misb0601 decodes MISB ST 0601 UAS Datalink Local Set tags
// into typed values (spec.md §5). Each tag decode function mirrors the
// corresponding routine in the reference Python decoder it was ported
// from: same domain/range constants, same sentinel handling, same
// enum tables.
package misb0601

import (
	"fmt"
	"math"

	"github.com/aminofox/uasklv/internal/klv"
	"github.com/aminofox/uasklv/internal/misb0102"
	"github.com/aminofox/uasklv/internal/misb0903"
	"github.com/aminofox/uasklv/pkg/value"
)

// decodeFunc decodes the value bytes of a single tag into a Value.
type decodeFunc func(val []byte) (value.Value, error)

var decoders map[byte]decodeFunc

func init() {
	decoders = map[byte]decodeFunc{
		1:  decodeChecksum,
		2:  decodePrecisionTimeStamp,
		3:  decodeUTF8String,
		4:  decodeUTF8String,
		5:  decodeAngle360_16,
		6:  decodePlatformPitchAngle,
		7:  decodePlatformRollAngle,
		8:  decodeUint8Identity,
		9:  decodeUint8Identity,
		10: decodeUTF8String,
		11: decodeUTF8String,
		12: decodeUTF8String,
		13: decodeSensorLatitude,
		14: decodeSensorLongitude,
		15: decodeSensorTrueAltitude,
		16: decodeFOV180_16,
		17: decodeFOV180_16,
		18: decodeAngle360_32,
		19: decodeSignedAngle180_32,
		20: decodeSignedAngle360_32,
		21: decodeUint32Range0_5e6,
		22: decodeUint16Range0_10000,
		23: decodeSensorLatitude,
		24: decodeSensorLongitude,
		25: decodeSensorTrueAltitude,
		26: decodeOffsetCorner,
		27: decodeOffsetCorner,
		28: decodeOffsetCorner,
		29: decodeOffsetCorner,
		30: decodeOffsetCorner,
		31: decodeOffsetCorner,
		32: decodeOffsetCorner,
		33: decodeOffsetCorner,
		34: decodeIcingDetected,
		35: decodeAngle360_16,
		36: decodeUint8Range0_100,
		37: decodeUint16Range0_5000,
		38: decodeSensorTrueAltitude,
		39: decodeInt8Identity,
		40: decodeSensorLatitude,
		41: decodeSensorLongitude,
		42: decodeSensorTrueAltitude,
		43: decodeUint8Range0_510,
		44: decodeUint8Range0_510,
		45: decodeUint16Range0_4095,
		46: decodeUint16Range0_4095,
		47: decodeGenericFlagData,
		48: decodeSecurityLocalSet,
		49: decodeUint16Range0_5000,
		50: decodePlatformAngleOfAttack,
		51: decodePlatformVerticalSpeed,
		52: decodePlatformSideslipAngle,
		53: decodeUint16Range0_5000,
		54: decodeSensorTrueAltitude,
		55: decodeUint8Range0_100,
		56: decodeUint8Identity,
		57: decodeUint32Range0_5e6,
		58: decodeUint16Range0_10000Fuel,
		59: decodeUTF8String,
		60: decodeUintIdentity,
		61: decodeUintIdentity,
		62: decodeUintIdentity,
		63: decodeSensorFieldOfViewName,
		64: decodeAngle360_16,
		65: decodeUASDatalinkLSVersionNumber,
		66: decodeDeprecated,
		67: decodeAlternatePlatformLatitude,
		68: decodeAlternatePlatformLongitude,
		69: decodeSensorTrueAltitude,
		70: decodeUTF8String,
		71: decodeAngle360_16,
		72: decodeEventStartTimeUTC,
		73: decodeRVTLocalSet,
		74: decodeVMTILocalSet,
		75: decodeSensorTrueAltitude,
		76: decodeSensorTrueAltitude,
		77: decodeOperationalMode,
		78: decodeSensorTrueAltitude,
		79: decodeVelocity327_16,
		80: decodeVelocity327_16,
		81: decodeImageHorizonPixelPack,
		82: decodeSensorLatitudeFull,
		83: decodeSensorLongitudeFull,
		84: decodeSensorLatitudeFull,
		85: decodeSensorLongitudeFull,
		86: decodeSensorLatitudeFull,
		87: decodeSensorLongitudeFull,
		88: decodeSensorLatitudeFull,
		89: decodeSensorLongitudeFull,
		90: decodePlatformPitchAngleFull,
		91: decodePlatformRollAngleFull,
		92: decodePlatformAngleOfAttackFull,
		93: decodePlatformSideslipAngleFull,
		94: decodeMIISCoreIdentifier,
		95: decodeSARMotionImageryMetadata,
		96: decodeIMAPB,
		97: decodeReserved,
		98: decodeReserved,
		99: decodeReserved,
		100: decodeReserved,
		101: decodeReserved,
		102: decodeReserved,
		103: decodeIMAPB,
		104: decodeIMAPB,
		105: decodeIMAPB,
	}
}

// Decode decodes the value bytes of tag into a Value. It returns
// ("", Value{}, false) if the decoder does not recognize tag, letting
// the caller surface the item under an "Unknown Key N" name with its
// raw bytes (UnknownTag, spec.md §7).
func Decode(tag byte, val []byte) (name string, v value.Value, ok bool) {
	fn, known := decoders[tag]
	if !known {
		return "", value.Value{}, false
	}
	name = TagName(tag)
	out, err := fn(val)
	if err != nil {
		return name, value.String(fmt.Sprintf("decode error: %v", err)), true
	}
	return name, out, true
}

func decodeChecksum(val []byte) (value.Value, error) {
	return value.Uint(beUint(val)), nil
}

func decodePrecisionTimeStamp(val []byte) (value.Value, error) {
	return value.Float(float64(beUint(val)) / 1000.0), nil
}

// decodeUTF8String renders val as-is, with no NUL-stripping: unlike the
// nested Security/VMTI string fields (spec.md §4.4), the top-level
// ST 0601 string decoders (decode_mission_id et al.) do a plain
// value.decode('utf-8') with no trimming.
func decodeUTF8String(val []byte) (value.Value, error) {
	return value.String(string(val)), nil
}

func decodePlatformPitchAngle(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(2) {
		return value.Float(math.NaN()), nil
	}
	return value.Float((float64(raw) / 32768.0) * 20), nil
}

func decodePlatformRollAngle(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(2) {
		return value.Float(math.NaN()), nil
	}
	return value.Float((float64(raw) / 32768.0) * 50), nil
}

func decodePlatformPitchAngleFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-20, 20})), nil
}

func decodePlatformRollAngleFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-50, 50})), nil
}

func decodePlatformAngleOfAttackFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-20, 20})), nil
}

func decodePlatformSideslipAngleFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-20, 20})), nil
}

func decodeSensorLatitude(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float((float64(raw) / 2147483648.0) * 90), nil
}

func decodeSensorLongitude(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float((360.0 / 4294967294.0) * float64(raw)), nil
}

func decodeSensorLatitudeFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-90, 90})), nil
}

func decodeSensorLongitudeFull(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float((360.0 / 4294967294.0) * float64(raw)), nil
}

func decodeSensorTrueAltitude(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float((19900.0/65535.0)*float64(raw) - 900), nil
}

func decodeAlternatePlatformLatitude(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float(intToFloat(raw, span{-2147483647, 2147483647}, span{-90, 90})), nil
}

func decodeAlternatePlatformLongitude(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float(intToFloat(raw, span{-2147483647, 2147483647}, span{-180, 180})), nil
}

// decodeEventStartTimeUTC mirrors decodePrecisionTimeStamp's scaling:
// a big-endian microsecond count rendered as milliseconds.
func decodeEventStartTimeUTC(val []byte) (value.Value, error) {
	return value.Float(float64(beUint(val)) / 1000.0), nil
}

func decodeFOV180_16(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 180})), nil
}

func decodeAngle360_16(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 360})), nil
}

func decodeAngle360_32(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 4294967295}, span{0, 360})), nil
}

func decodeSignedAngle180_32(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-180, 180})), nil
}

func decodeSignedAngle360_32(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(4) {
		return value.Float(math.NaN()), nil
	}
	return value.Float(intToFloat(raw, span{-2147483648, 2147483647}, span{-360, 360})), nil
}

func decodeUint32Range0_5e6(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 4294967295}, span{0, 5000000})), nil
}

func decodeUint16Range0_10000(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 10000})), nil
}

func decodeUint16Range0_10000Fuel(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 10000})), nil
}

func decodeOffsetCorner(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float((float64(raw) / 32768.0) * 0.075), nil
}

func decodeIcingDetected(val []byte) (value.Value, error) {
	switch beUint(val) {
	case 0:
		return value.String("No Icing Detected"), nil
	case 1:
		return value.String("Icing Detected"), nil
	default:
		return value.String("Unknown"), nil
	}
}

func decodeUint8Range0_100(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 255}, span{0, 100})), nil
}

func decodeUint16Range0_5000(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 5000})), nil
}

func decodeInt8Identity(val []byte) (value.Value, error) {
	return value.Int(beInt(val)), nil
}

func decodeUint8Range0_510(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 255}, span{0, 510})), nil
}

func decodeUint16Range0_4095(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 65535}, span{0, 4095})), nil
}

func decodeGenericFlagData(val []byte) (value.Value, error) {
	var b byte
	if len(val) > 0 {
		b = val[0]
	}
	flags := []value.Flag{
		{Name: "Laser Range", Set: b&0x80 != 0},
		{Name: "Auto-Track", Set: b&0x40 != 0},
		{Name: "IR Polarity (1=black, 0=white)", Set: b&0x20 != 0},
		{Name: "Icing Detected", Set: b&0x10 != 0},
		{Name: "Slant Range Measured", Set: b&0x08 != 0},
		{Name: "Image Invalid", Set: b&0x04 != 0},
	}
	return value.Flags(flags), nil
}

// decodeSecurityLocalSet decodes tag 48's value as an ST 0102 Security
// Local Set. It yields a bare ordered list of decoded values, with no
// field names attached, matching original_source/misb0102.py's
// parse_security_klv (spec.md §8 scenario 6).
func decodeSecurityLocalSet(val []byte) (value.Value, error) {
	items, err := klv.ParseItems(val)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]value.Value, 0, len(items))
	for _, it := range items {
		_, v := misb0102.DecodeItem(it.Tag, it.Value)
		out = append(out, v)
	}
	return value.List(out), nil
}

// decodeVMTILocalSet decodes tag 74's value as an ST 0903 VMTI Local
// Set, yielding the same bare ordered list shape as
// decodeSecurityLocalSet (original_source/misb0903.py's parse_vmti_klv).
func decodeVMTILocalSet(val []byte) (value.Value, error) {
	items, err := klv.ParseItems(val)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]value.Value, 0, len(items))
	for _, it := range items {
		_, v := misb0903.DecodeItem(it.Tag, it.Value)
		out = append(out, v)
	}
	return value.List(out), nil
}

func decodePlatformAngleOfAttack(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float(intToFloat(raw, span{-32767, 32767}, span{-20, 20})), nil
}

func decodePlatformVerticalSpeed(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(2) {
		return value.Float(math.NaN()), nil
	}
	return value.Float((float64(raw) / 32768.0) * 180), nil
}

func decodePlatformSideslipAngle(val []byte) (value.Value, error) {
	raw := beInt(val)
	return value.Float(intToFloat(raw, span{-32767, 32767}, span{-20, 20})), nil
}

func decodeUint8Identity(val []byte) (value.Value, error) {
	return value.Uint(beUint(val)), nil
}

func decodeUintIdentity(val []byte) (value.Value, error) {
	return value.Uint(beUint(val)), nil
}

func decodeSensorFieldOfViewName(val []byte) (value.Value, error) {
	names := map[uint64]string{
		0: "Ultranarrow",
		1: "Narrow",
		2: "Medium",
		3: "Wide",
		4: "Very Wide",
		5: "Extreme Wide",
		6: "Variable",
		7: "Uncaged",
		8: "Continuous Zoom",
	}
	n, ok := names[beUint(val)]
	if !ok {
		n = "Unknown"
	}
	return value.String(n), nil
}

// decodeUASDatalinkLSVersionNumber uses identity scaling: domain and
// range are both (0, 256), so the raw byte value passes through
// unchanged as a float.
func decodeUASDatalinkLSVersionNumber(val []byte) (value.Value, error) {
	raw := beUint(val)
	return value.Float(uintToFloat(raw, span{0, 256}, span{0, 256})), nil
}

func decodeDeprecated(val []byte) (value.Value, error) {
	return value.String("DEPRECATED"), nil
}

func decodeHexBytes(val []byte) (value.Value, error) {
	return value.Bytes(val), nil
}

func decodeRVTLocalSet(val []byte) (value.Value, error) {
	return value.String(fmt.Sprintf("RVT Local Set: %x", val)), nil
}

func decodeOperationalMode(val []byte) (value.Value, error) {
	names := map[uint64]string{
		0: "Other",
		1: "Operational",
		2: "Training",
		3: "Exercise",
		4: "Maintenance",
		5: "Test",
	}
	n, ok := names[beUint(val)]
	if !ok {
		n = "Unknown"
	}
	return value.String(n), nil
}

func decodeVelocity327_16(val []byte) (value.Value, error) {
	raw := beInt(val)
	if raw == minInt(2) {
		return value.Float(math.NaN()), nil
	}
	return value.Float((float64(raw) / 32768.0) * 327), nil
}

func decodeImageHorizonPixelPack(val []byte) (value.Value, error) {
	return value.String(fmt.Sprintf("Image Horizon Pixel Pack: %x", val)), nil
}

func decodeMIISCoreIdentifier(val []byte) (value.Value, error) {
	return value.String(fmt.Sprintf("%x", val)), nil
}

func decodeSARMotionImageryMetadata(val []byte) (value.Value, error) {
	return value.String(fmt.Sprintf("SAR Motion Imagery Metadata: %x", val)), nil
}

// decodeIMAPB covers every tag (96, 103, 104, 105) whose reference
// decoder emits the literal sentinel "IMAPB" rather than a computed
// value: these fields are encoded with the MISB ST 1201 IMAPB scheme,
// which this decoder does not implement.
func decodeIMAPB(val []byte) (value.Value, error) {
	return value.String("IMAPB"), nil
}

func decodeReserved(val []byte) (value.Value, error) {
	return value.String(fmt.Sprintf("Reserved (raw): %x", val)), nil
}
