package model

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds procedural board parameters.
type GenConfig struct {
	Width        int
	Height       int
	Seed         int64   // 0 = random
	WaterLevel   float64 // elevation below which hexes are water (0.0–1.0)
	WoodsDensity float64 // vegetation noise threshold for woods (0.0–1.0)
	Urban        float64 // fraction of non-water hexes that may hold buildings
	MaxLevel     int
}

// DefaultGenConfig is a standard 16x17 mapsheet of rolling terrain.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:        16,
		Height:       17,
		WaterLevel:   0.2,
		WoodsDensity: 0.65,
		Urban:        0.05,
		MaxLevel:     3,
	}
}

// GenerateBoard builds a board from layered simplex noise: one layer for
// elevation, one for vegetation and one for settlement.
func GenerateBoard(cfg GenConfig) *Board {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	elevNoise := opensimplex.NewNormalized(seed)
	vegNoise := opensimplex.NewNormalized(seed + 1)
	urbanNoise := opensimplex.NewNormalized(seed + 2)

	b := NewBoard(cfg.Width, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x)*0.15, float64(y)*0.15
			elev := octave(elevNoise, fx, fy, 3)
			var h Hex
			if elev < cfg.WaterLevel {
				h.Terrain = Water
				b.Hexes[y*cfg.Width+x] = h
				continue
			}
			span := (elev - cfg.WaterLevel) / (1 - cfg.WaterLevel)
			h.Level = int(math.Floor(span * float64(cfg.MaxLevel+1)))
			if h.Level > cfg.MaxLevel {
				h.Level = cfg.MaxLevel
			}
			switch {
			case urbanNoise.Eval2(fx*2, fy*2) > 1-cfg.Urban:
				h.Terrain = Building
				h.Height = 1 + int(urbanNoise.Eval2(fy, fx)*3)
			case vegNoise.Eval2(fx, fy) > cfg.WoodsDensity:
				h.Terrain = Woods
				h.Height = 2
			}
			b.Hexes[y*cfg.Width+x] = h
		}
	}
	return b
}

func octave(n opensimplex.Noise, x, y float64, octaves int) float64 {
	total, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return total / norm
}
