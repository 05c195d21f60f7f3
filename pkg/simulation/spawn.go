package simulation

import (
	"math"
	"math/rand"

	"nbody-sim/pkg/physics"
)

// --- Generowanie galaktyk ---
type GalaxyConfig struct {
	Count    int        `json:"count"`               // liczba ciał (bez rdzenia)
	Center   [2]float64 `json:"center"`              // środek galaktyki
	CoreMass float64    `json:"core_mass"`           // masa rdzenia
	MeanMass float64    `json:"mean_mass,omitempty"` // średnia masa ciała
	Span     float64    `json:"span,omitempty"`      // odchylenie rozrzutu pozycji
	Spin     float64    `json:"spin,omitempty"`      // kierunek rotacji: +1 lub -1
	Color    string     `json:"color,omitempty"`
}

// SpawnGalaxy generuje rdzeń oraz Count ciał o pozycjach z rozkładu
// normalnego wokół środka i prędkościach orbitalnych prostopadłych do
// wektora od rdzenia (v = sqrt(g*M/r)).
func SpawnGalaxy(cfg GalaxyConfig, g float64) []physics.Body {
	meanMass := cfg.MeanMass
	if meanMass == 0 {
		meanMass = 1.0
	}
	span := cfg.Span
	if span == 0 {
		span = 200.0
	}
	spin := cfg.Spin
	if spin == 0 {
		spin = 1
	}
	col := parseColor(cfg.Color)

	bodies := make([]physics.Body, 0, cfg.Count+1)

	core := physics.NewBody(cfg.Center[0], cfg.Center[1], 0, 0, cfg.CoreMass)
	core.Radius = 10
	core.ColorC = col
	bodies = append(bodies, core)

	for i := 0; i < cfg.Count; i++ {
		m := math.Abs(rand.NormFloat64()*meanMass*0.3 + meanMass)
		x := rand.NormFloat64()*span + cfg.Center[0]
		y := rand.NormFloat64()*span + cfg.Center[1]

		dx := x - cfg.Center[0]
		dy := y - cfg.Center[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			r = 1
		}
		v := math.Sqrt(g * cfg.CoreMass / r)
		// prędkość prostopadła do promienia, kierunek według Spin
		vx := -dy / r * v * spin
		vy := dx / r * v * spin

		b := physics.NewBody(x, y, vx, vy, m)
		b.Radius = 2
		b.ColorC = col
		bodies = append(bodies, b)
	}
	return bodies
}
