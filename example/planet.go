package example

import "github.com/crackcomm/protoc-plugin-go/spec"

// Planet is a generated enum type: protobuf enums are always backed by a
// 32-bit signed integer, the first declared value being the proto3 zero
// default.
type Planet int32

const (
	PlanetEarth Planet = 0
	PlanetMars  Planet = 1
	PlanetVenus Planet = 2
)

var planetNames = map[Planet]string{
	PlanetEarth: "EARTH",
	PlanetMars:  "MARS",
	PlanetVenus: "VENUS",
}

var planetByName = map[string]Planet{
	"EARTH": PlanetEarth,
	"MARS":  PlanetMars,
	"VENUS": PlanetVenus,
}

func (p Planet) String() string {
	if n, ok := planetNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// PlanetName returns p's declared string name and whether p is declared.
func PlanetName(p Planet) (string, bool) {
	n, ok := planetNames[p]
	return n, ok
}

// PlanetByName resolves a declared string name back to its Planet value.
func PlanetByName(name string) (Planet, bool) {
	p, ok := planetByName[name]
	return p, ok
}

// PlanetSpec is the TypedSpec generated code builds for any field of type
// Planet.
func PlanetSpec() spec.TypedSpec[Planet] {
	return spec.Enum(
		func(n int32) (Planet, bool) { p := Planet(n); _, ok := planetNames[p]; return p, ok },
		func(p Planet) int32 { return int32(p) },
	)
}
