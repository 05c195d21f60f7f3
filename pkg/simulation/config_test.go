package simulation

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Test",
		"dt": 0.1,
		"solver": {
			"method": "barnes-hut",
			"theta": 0.7,
			"g": 100,
			"eps": 0.005,
			"leaf_capacity": 2,
			"bounds": [0, 200, 0, 200],
			"integrator": "euler"
		},
		"bodies": [
			{ "mass": 1000, "pos": [0, 0], "vel": [0, 0], "color": "#ff0000", "radius": 10, "locked": true },
			{ "mass": 1, "pos": [100, 0], "vel": [0, 5], "color": "#00ff00" }
		]
	}`)

	sim, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Name != "Test" || sim.Dt != 0.1 {
		t.Errorf("Name/Dt = %q/%g", sim.Name, sim.Dt)
	}
	if sim.Solver.Theta != 0.7 || sim.Solver.LeafCapacity != 2 || sim.Solver.Integrator != "euler" {
		t.Errorf("solver config not applied: %+v", sim.Solver)
	}
	if len(sim.Bodies) != 2 {
		t.Fatalf("len(Bodies) = %d, want 2", len(sim.Bodies))
	}
	if !sim.Bodies[0].Locked || sim.Bodies[0].Radius != 10 {
		t.Errorf("body 0 = %+v", sim.Bodies[0])
	}
	if sim.Bodies[0].ColorC != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("body 0 color = %v", sim.Bodies[0].ColorC)
	}
	if sim.Bodies[1].Vel.Y() != 5 {
		t.Errorf("body 1 vel = %v", sim.Bodies[1].Vel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Minimal",
		"dt": 0.05,
		"bodies": [ { "mass": 10, "pos": [0, 0], "vel": [0, 0], "color": "" } ]
	}`)

	sim, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	s := sim.Solver
	if s.Method != "barnes-hut" || s.Theta != 0.5 || s.LeafCapacity != 1 || s.Integrator != "verlet" {
		t.Errorf("defaults not applied: %+v", s)
	}
	if s.Bounds != defaultBounds {
		t.Errorf("bounds = %v, want default %v", s.Bounds, defaultBounds)
	}
	if sim.Bodies[0].Radius != 6 {
		t.Errorf("default radius = %g, want 6", sim.Bodies[0].Radius)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should return an error")
	}
	if _, err := LoadConfig(writeConfig(t, "{not json")); err == nil {
		t.Error("malformed JSON should return an error")
	}
	// zdegenerowana domena drzewa
	path := writeConfig(t, `{
		"name": "Bad",
		"dt": 0.1,
		"solver": { "bounds": [200, 0, 0, 200] },
		"bodies": []
	}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("degenerate bounds should return an error")
	}
}

func TestSetOrbitalVelocities(t *testing.T) {
	const g = 100.0
	bodies := []BodyConfig{
		{Mass: 10000, Pos: [2]float64{0, 0}},
		{Mass: 1, Pos: [2]float64{200, 0}},
		{Mass: 1, Pos: [2]float64{0, 300}, Vel: [2]float64{3, 0}}, // już ma prędkość
	}
	SetOrbitalVelocities(bodies, g)

	// ciało na osi x: prędkość prostopadła (0, v), v = sqrt(g*M/r)
	v := math.Sqrt(g * 10000 / 200)
	if math.Abs(bodies[1].Vel[0]) > 1e-12 || math.Abs(bodies[1].Vel[1]-v) > 1e-12 {
		t.Errorf("body 1 vel = %v, want (0, %g)", bodies[1].Vel, v)
	}
	// ciało z już ustawioną prędkością zostaje bez zmian
	if bodies[2].Vel != [2]float64{3, 0} {
		t.Errorf("body 2 vel = %v, want (3, 0)", bodies[2].Vel)
	}
	// centralne ciało nie dostaje prędkości
	if bodies[0].Vel != [2]float64{} {
		t.Errorf("central body vel = %v, want zero", bodies[0].Vel)
	}
}

func TestParseColor(t *testing.T) {
	fallback := color.RGBA{200, 200, 255, 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#0a141e", color.RGBA{10, 20, 30, 255}},
		{"", fallback},
		{"red", fallback},
		{"#zzzzzz", fallback},
		{"#fff", fallback},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
