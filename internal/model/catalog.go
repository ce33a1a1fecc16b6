package model

// Room types and neighborhoods are closed sets: membership is checked by
// exact match at entity construction time. They are built once at process
// start and never mutated afterwards.

// RoomTypes is the fixed enumeration of accepted room types.
var RoomTypes = []string{
	"Entire home/apt",
	"Private room",
	"Shared room",
}

// Neighborhoods is the fixed enumeration of accepted Singapore localities.
var Neighborhoods = []string{
	"Ang Mo Kio",
	"Bedok",
	"Bishan",
	"Bukit Batok",
	"Bukit Merah",
	"Bukit Panjang",
	"Bukit Timah",
	"Central Water Catchment",
	"Choa Chu Kang",
	"Clementi",
	"Downtown Core",
	"Geylang",
	"Hougang",
	"Jurong East",
	"Jurong West",
	"Kallang",
	"Lim Chu Kang",
	"Mandai",
	"Marina South",
	"Marine Parade",
	"Museum",
	"Newton",
	"Novena",
	"Orchard",
	"Outram",
	"Pasir Ris",
	"Pioneer",
	"Punggol",
	"Queenstown",
	"River Valley",
	"Rochor",
	"Sembawang",
	"Sengkang",
	"Serangoon",
	"Singapore River",
	"Southern Islands",
	"Sungei Kadut",
	"Tampines",
	"Tanglin",
	"Toa Payoh",
	"Tuas",
	"Western Water Catchment",
	"Woodlands",
	"Yishun",
}

var (
	roomTypeSet     = toSet(RoomTypes)
	neighborhoodSet = toSet(Neighborhoods)
)

// ValidRoomType reports whether rt is a member of the room type enumeration.
func ValidRoomType(rt string) bool {
	_, ok := roomTypeSet[rt]
	return ok
}

// ValidNeighborhood reports whether n is a member of the neighborhood enumeration.
func ValidNeighborhood(n string) bool {
	_, ok := neighborhoodSet[n]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
