package simulation

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"

	"nbody-sim/pkg/physics"
)

// domyślna domena drzewa, gdy konfiguracja jej nie podaje (środek układu
// w (0,0), jak na ekranie)
var defaultBounds = [4]float64{-2048, 2048, -2048, 2048}

// --- Konfiguracja solvera ---
type SolverConfig struct {
	Method       string     `json:"method,omitempty"`        // "barnes-hut" (domyślnie) lub "direct"
	Theta        float64    `json:"theta,omitempty"`         // parametr dokładności aproksymacji
	G            float64    `json:"g,omitempty"`             // stała grawitacji
	Eps          float64    `json:"eps,omitempty"`           // softening
	LeafCapacity int        `json:"leaf_capacity,omitempty"` // pojemność liścia drzewa
	Bounds       [4]float64 `json:"bounds,omitempty"`        // minX, maxX, minY, maxY
	Integrator   string     `json:"integrator,omitempty"`    // "verlet" (domyślnie) lub "euler"
}

// withDefaults uzupełnia brakujące pola wartościami domyślnymi.
func (c SolverConfig) withDefaults() SolverConfig {
	if c.Method == "" {
		c.Method = "barnes-hut"
	}
	if c.Theta == 0 {
		c.Theta = 0.5
	}
	if c.G == 0 {
		c.G = physics.G
	}
	if c.Eps == 0 {
		c.Eps = physics.DefaultEps
	}
	if c.LeafCapacity == 0 {
		c.LeafCapacity = 1
	}
	if c.Bounds == ([4]float64{}) {
		c.Bounds = defaultBounds
	}
	if c.Integrator == "" {
		c.Integrator = "verlet"
	}
	return c
}

// --- Struktura konfiguracji środowiska ---
type EnvironmentConfig struct {
	Name      string         `json:"name"`
	Dt        float64        `json:"dt"`
	Solver    SolverConfig   `json:"solver,omitempty"`
	Bodies    []BodyConfig   `json:"bodies"`
	Galaxies  []GalaxyConfig `json:"galaxies,omitempty"`
	AutoOrbit bool           `json:"auto_orbit,omitempty"`
}

type BodyConfig struct {
	Mass   float64    `json:"mass"`
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Color  string     `json:"color"`
	Radius float64    `json:"radius,omitempty"`
	Locked bool       `json:"locked,omitempty"`
}

// SetOrbitalVelocities nadaje ciałom o zerowej prędkości prędkość
// orbitalną wokół pierwszego ciała (traktowanego jako centralne).
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0] // pierwsze ciało traktujemy jako centralne
	for i := 1; i < len(bodies); i++ {
		b := (bodies[i].Vel[0] == 0) && bodies[i].Vel[1] == 0
		if !b {
			continue
		}

		dx := bodies[i].Pos[0] - central.Pos[0]
		dy := bodies[i].Pos[1] - central.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		// skierowanie prędkości prostopadle do wektora pozycji
		bodies[i].Vel[0] = -dy / r * v
		bodies[i].Vel[1] = dx / r * v
	}
}

// --- Wczytanie pliku konfiguracyjnego ---
func LoadConfig(path string) (*Simulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("błąd odczytu pliku: %w", err)
	}

	var env EnvironmentConfig
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("błąd parsowania JSON: %w", err)
	}

	return NewSimulator(env)
}

// --- Parser koloru HEX ---
func parseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return color.RGBA{200, 200, 255, 255}
}
