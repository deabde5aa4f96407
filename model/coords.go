package model

import "math"

// Coords is a hex position in offset coordinates. Odd columns sit half a hex
// lower than even columns.
type Coords struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// cube converts offset coordinates to cube coordinates (q, r, s).
func (c Coords) cube() (int, int, int) {
	q := c.X
	r := c.Y - (c.X-(c.X&1))/2
	return q, r, -q - r
}

// Distance returns the hex distance between two positions.
func (c Coords) Distance(o Coords) int {
	q1, r1, s1 := c.cube()
	q2, r2, s2 := o.cube()
	return max(abs(q1-q2), abs(r1-r2), abs(s1-s2))
}

// EuclideanDistance treats offset coordinates as plain grid coordinates.
// Threat and range predicates use this metric.
func (c Coords) EuclideanDistance(o Coords) float64 {
	return Euclidean(c.X, c.Y, o.X, o.Y)
}

// Euclidean is EuclideanDistance on raw integers, for struct-of-arrays loops.
func Euclidean(x1, y1, x2, y2 int) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return math.Sqrt(dx*dx + dy*dy)
}

// Translated returns the neighbouring hex in the given facing direction.
func (c Coords) Translated(dir int) Coords {
	dir = ((dir % 6) + 6) % 6
	odd := c.X&1 == 1
	switch dir {
	case 0:
		return Coords{c.X, c.Y - 1}
	case 1:
		if odd {
			return Coords{c.X + 1, c.Y}
		}
		return Coords{c.X + 1, c.Y - 1}
	case 2:
		if odd {
			return Coords{c.X + 1, c.Y + 1}
		}
		return Coords{c.X + 1, c.Y}
	case 3:
		return Coords{c.X, c.Y + 1}
	case 4:
		if odd {
			return Coords{c.X - 1, c.Y + 1}
		}
		return Coords{c.X - 1, c.Y}
	default:
		if odd {
			return Coords{c.X - 1, c.Y}
		}
		return Coords{c.X - 1, c.Y - 1}
	}
}

// WithinRadius returns every position at hex distance <= radius from c,
// ordered by increasing distance, then by column and row. Positions off the
// board are included; callers filter when they need to.
func (c Coords) WithinRadius(radius int) []Coords {
	out := make([]Coords, 0, 1+3*radius*(radius+1))
	for d := 0; d <= radius; d++ {
		for x := c.X - d; x <= c.X+d; x++ {
			for y := c.Y - d - 1; y <= c.Y+d+1; y++ {
				p := Coords{x, y}
				if c.Distance(p) == d {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// DirectionTo returns the facing (0 = north, clockwise to 5) that points
// from c toward o. Returns 0 when the positions coincide.
func (c Coords) DirectionTo(o Coords) int {
	ax, ay := c.pixel()
	bx, by := o.pixel()
	dx, dy := bx-ax, by-ay
	if dx == 0 && dy == 0 {
		return 0
	}
	// angle measured clockwise from north; y grows southward
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return int(math.Round(deg/60)) % 6
}

func (c Coords) pixel() (float64, float64) {
	q, r, _ := c.cube()
	x := 1.5 * float64(q)
	y := math.Sqrt(3) * (float64(r) + float64(q)/2)
	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
