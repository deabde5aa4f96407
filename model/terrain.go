package model

// TerrainType is a bit set of the features present in one hex. A hex with
// no bits set is clear terrain.
type TerrainType uint8

const (
	Woods    TerrainType = 1 << iota // light or heavy woods, jungle
	Building                         // any building or fortification
	Hazard                           // fire, magma, smoke-filled or mined hexes
	Water                            // water of any depth
)

// Clear is the empty feature set.
const Clear TerrainType = 0

// Has reports whether every bit of f is set.
func (t TerrainType) Has(f TerrainType) bool { return t&f == f }

// Hex is one board position. Level is ground elevation; Height is the
// height of the tallest feature (building floors, tree line) above it.
type Hex struct {
	Terrain TerrainType `json:"terrain"`
	Level   int         `json:"level"`
	Height  int         `json:"height"`
}

// Board is the static terrain of a map, row-major: Hexes[y*Width+x].
type Board struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Hexes  []Hex `json:"hexes"`
}

// NewBoard returns an all-clear board at level 0.
func NewBoard(width, height int) *Board {
	return &Board{Width: width, Height: height, Hexes: make([]Hex, width*height)}
}

// Contains reports whether c lies on the board.
func (b *Board) Contains(c Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

// At returns the hex at c. Returns a clear level-0 hex for out-of-bounds
// coordinates.
func (b *Board) At(c Coords) Hex {
	if !b.Contains(c) {
		return Hex{}
	}
	return b.Hexes[c.Y*b.Width+c.X]
}

// Set replaces the hex at c. Out-of-bounds writes are ignored.
func (b *Board) Set(c Coords, h Hex) {
	if !b.Contains(c) {
		return
	}
	b.Hexes[c.Y*b.Width+c.X] = h
}

// Valid reports whether the hex slice matches the declared dimensions.
func (b *Board) Valid() bool {
	return b.Width > 0 && b.Height > 0 && len(b.Hexes) == b.Width*b.Height
}
