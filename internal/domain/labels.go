package domain

// LabelID names a localizable unit or direction string.
type LabelID uint8

const (
	LabelMetres LabelID = iota + 1
	LabelKilometres
	LabelFeet
	LabelMiles
	LabelNauticalMiles
	LabelMetresPerSecond
	LabelKilometresPerHour
	LabelMilesPerHour
	LabelFeetPerSecond
	LabelKnots

	LabelNorth
	LabelNorthNortheast
	LabelNortheast
	LabelEastNortheast
	LabelEast
	LabelEastSoutheast
	LabelSoutheast
	LabelSouthSoutheast
	LabelSouth
	LabelSouthSouthwest
	LabelSouthwest
	LabelWestSouthwest
	LabelWest
	LabelWestNorthwest
	LabelNorthwest
	LabelNorthNorthwest
)

// Labels resolves label identifiers to display strings. Implementations must
// be safe for concurrent use.
type Labels interface {
	Label(id LabelID) string
}

var labelKeys = map[LabelID]string{
	LabelMetres:            "um_m",
	LabelKilometres:        "um_km",
	LabelFeet:              "um_ft",
	LabelMiles:             "um_mi",
	LabelNauticalMiles:     "um_nm",
	LabelMetresPerSecond:   "um_m_s",
	LabelKilometresPerHour: "um_km_h",
	LabelMilesPerHour:      "um_mph",
	LabelFeetPerSecond:     "um_fps",
	LabelKnots:             "um_kn",
	LabelNorth:             "north",
	LabelNorthNortheast:    "north_northeast",
	LabelNortheast:         "northeast",
	LabelEastNortheast:     "east_northeast",
	LabelEast:              "east",
	LabelEastSoutheast:     "east_southeast",
	LabelSoutheast:         "southeast",
	LabelSouthSoutheast:    "south_southeast",
	LabelSouth:             "south",
	LabelSouthSouthwest:    "south_southwest",
	LabelSouthwest:         "southwest",
	LabelWestSouthwest:     "west_southwest",
	LabelWest:              "west",
	LabelWestNorthwest:     "west_northwest",
	LabelNorthwest:         "northwest",
	LabelNorthNorthwest:    "north_northwest",
}

// Key is the stable message key used by string catalogs.
func (id LabelID) Key() string {
	return labelKeys[id]
}

// LabelIDs lists every label identifier in declaration order.
func LabelIDs() []LabelID {
	ids := make([]LabelID, 0, len(labelKeys))
	for id := LabelMetres; id <= LabelNorthNorthwest; id++ {
		ids = append(ids, id)
	}
	return ids
}

// compassPoints maps a 22.5° bucket to its direction. Buckets 0 and 16 are
// both due north.
var compassPoints = [17]LabelID{
	LabelNorth,
	LabelNorthNortheast,
	LabelNortheast,
	LabelEastNortheast,
	LabelEast,
	LabelEastSoutheast,
	LabelSoutheast,
	LabelSouthSoutheast,
	LabelSouth,
	LabelSouthSouthwest,
	LabelSouthwest,
	LabelWestSouthwest,
	LabelWest,
	LabelWestNorthwest,
	LabelNorthwest,
	LabelNorthNorthwest,
	LabelNorth,
}
