package misb0601

// tagNames maps every ST 0601 tag this decoder recognizes to its
// display name (spec.md §5). Tags 97-102 are reserved and share the
// generic "Reserved" label; callers that need the tag number for a
// reserved field read it off the klv.Item directly, since a decoded
// value.Field carries only the name.
var tagNames = map[byte]string{
	1:   "Checksum",
	2:   "Precision Time Stamp",
	3:   "Mission ID",
	4:   "Platform Tail Number",
	5:   "Platform Heading Angle",
	6:   "Platform Pitch Angle",
	7:   "Platform Roll Angle",
	8:   "Platform True Airspeed",
	9:   "Platform Indicated Airspeed",
	10:  "Platform Designation",
	11:  "Image Source Sensor",
	12:  "Image Coordinate System",
	13:  "Sensor Latitude",
	14:  "Sensor Longitude",
	15:  "Sensor True Altitude",
	16:  "Sensor Horizontal Field of View",
	17:  "Sensor Vertical Field of View",
	18:  "Sensor Relative Azimuth Angle",
	19:  "Sensor Relative Elevation Angle",
	20:  "Sensor Relative Roll Angle",
	21:  "Slant Range",
	22:  "Target Width",
	23:  "Frame Center Latitude",
	24:  "Frame Center Longitude",
	25:  "Frame Center Elevation",
	26:  "Offset Corner Latitude Point 1",
	27:  "Offset Corner Longitude Point 1",
	28:  "Offset Corner Latitude Point 2",
	29:  "Offset Corner Longitude Point 2",
	30:  "Offset Corner Latitude Point 3",
	31:  "Offset Corner Longitude Point 3",
	32:  "Offset Corner Latitude Point 4",
	33:  "Offset Corner Longitude Point 4",
	34:  "Icing Detected",
	35:  "Wind Direction",
	36:  "Wind Speed",
	37:  "Static Pressure",
	38:  "Density Altitude",
	39:  "Outside Air Temperature",
	40:  "Target Location Latitude",
	41:  "Target Location Longitude",
	42:  "Target Location Elevation",
	43:  "Target Track Gate Width",
	44:  "Target Track Gate Height",
	45:  "Target Error Estimate - CE90",
	46:  "Target Error Estimate - LE90",
	47:  "Generic Flag Data 01",
	48:  "Security Local Set",
	49:  "Differential Pressure",
	50:  "Platform Angle of Attack",
	51:  "Platform Vertical Speed",
	52:  "Platform Sideslip Angle",
	53:  "Airfield Barometric Pressure",
	54:  "Airfield Elevation",
	55:  "Relative Humidity",
	56:  "Platform Ground Speed",
	57:  "Ground Range",
	58:  "Platform Fuel Remaining",
	59:  "Platform Call Sign",
	60:  "Weapon Load",
	61:  "Weapon Fired",
	62:  "Laser PRF Code",
	63:  "Sensor Field of View Name",
	64:  "Platform Magnetic Heading",
	65:  "UAS Datalink LS Version Number",
	66:  "Deprecated",
	67:  "Alternate Platform Latitude",
	68:  "Alternate Platform Longitude",
	69:  "Alternate Platform Altitude",
	70:  "Alternate Platform Name",
	71:  "Alternate Platform Heading",
	72:  "Event Start Time UTC",
	73:  "RVT Local Set",
	74:  "VMTI Local Set",
	75:  "Sensor Ellipsoid Height",
	76:  "Alternate Platform Ellipsoid Height",
	77:  "Operational Mode",
	78:  "Frame Center Height Above Ellipsoid",
	79:  "Sensor North Velocity",
	80:  "Sensor East Velocity",
	81:  "Image Horizon Pixel Pack",
	82:  "Corner Latitude Point 1 (Full)",
	83:  "Corner Longitude Point 1 (Full)",
	84:  "Corner Latitude Point 2 (Full)",
	85:  "Corner Longitude Point 2 (Full)",
	86:  "Corner Latitude Point 3 (Full)",
	87:  "Corner Longitude Point 3 (Full)",
	88:  "Corner Latitude Point 4 (Full)",
	89:  "Corner Longitude Point 4 (Full)",
	90:  "Platform Pitch Angle (Full)",
	91:  "Platform Roll Angle (Full)",
	92:  "Platform Angle of Attack (Full)",
	93:  "Platform Sideslip Angle (Full)",
	94:  "MIIS Core Identifier",
	95:  "SAR Motion Imagery Metadata",
	96:  "Target Width Extended",
	97:  "Reserved",
	98:  "Reserved",
	99:  "Reserved",
	100: "Reserved",
	101: "Reserved",
	102: "Reserved",
	103: "Density Altitude Extended",
	104: "Sensor Ellipsoid Height Extended",
	105: "Alternate Platform Ellipsoid Height Extended",
}

// TagName returns the display name for tag, or "" if the decoder does
// not recognize it.
func TagName(tag byte) string {
	return tagNames[tag]
}

func isReserved(tag byte) bool {
	return tag >= 97 && tag <= 102
}
