package atlas

// POI is a fixed map annotation in game coordinates.
type POI struct {
	Name string
	X    float64
	Z    float64
}

// Layer groups POIs that are toggled together.
type Layer struct {
	Name   string
	Color  string
	Points []POI
}

var poiDatabase = map[string][]Layer{
	"Chernarus": {
		{Name: "Military", Color: "#EF4444", Points: []POI{
			{Name: "NWAF", X: 4600, Z: 10200},
			{Name: "Tisy", X: 1700, Z: 14000},
			{Name: "VMC", X: 4500, Z: 8300},
			{Name: "Balota AF", X: 4400, Z: 2400},
		}},
		{Name: "Castles", Color: "#A855F7", Points: []POI{
			{Name: "Devil's Castle", X: 6800, Z: 11500},
			{Name: "Zub", X: 6500, Z: 3200},
			{Name: "Rog", X: 11200, Z: 4300},
		}},
		{Name: "Water", Color: "#22D3EE", Points: []POI{
			{Name: "Mogilevka Well", X: 7500, Z: 5000},
		}},
	},
}

// Layers returns the POI layers for a map, or nil when it has none.
func Layers(mapName string) []Layer {
	return poiDatabase[mapName]
}
