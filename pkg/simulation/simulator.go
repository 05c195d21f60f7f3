package simulation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"nbody-sim/pkg/barneshut"
	"nbody-sim/pkg/physics"
)

// --- Główna struktura symulatora ---
type Simulator struct {
	Name   string
	Dt     float64
	Bodies []physics.Body
	Solver SolverConfig

	tree *barneshut.Tree
	calc *barneshut.ForceCalculator
}

// --- Tworzenie symulatora z konfiguracji ---
func NewSimulator(cfg EnvironmentConfig) (*Simulator, error) {
	solver := cfg.Solver.withDefaults()

	if cfg.AutoOrbit {
		SetOrbitalVelocities(cfg.Bodies, solver.G)
	}

	bodies := make([]physics.Body, 0, len(cfg.Bodies))
	for _, b := range cfg.Bodies {
		nb := physics.NewBody(b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1], b.Mass)
		nb.Radius = b.Radius
		if nb.Radius == 0 {
			nb.Radius = 6
		}
		nb.ColorC = parseColor(b.Color)
		nb.Locked = b.Locked
		bodies = append(bodies, nb)
	}
	for _, gal := range cfg.Galaxies {
		bodies = append(bodies, SpawnGalaxy(gal, solver.G)...)
	}

	tree, err := barneshut.New(barneshut.Bounds{
		MinX: solver.Bounds[0],
		MaxX: solver.Bounds[1],
		MinY: solver.Bounds[2],
		MaxY: solver.Bounds[3],
	}, solver.LeafCapacity)
	if err != nil {
		return nil, fmt.Errorf("błąd konfiguracji drzewa: %w", err)
	}

	return &Simulator{
		Name:   cfg.Name,
		Dt:     cfg.Dt,
		Bodies: bodies,
		Solver: solver,
		tree:   tree,
		calc:   barneshut.NewForceCalculator(solver.Theta, solver.G, solver.Eps),
	}, nil
}

// --- Aktualizacja symulacji ---
// Jeden krok: budowa drzewa od zera -> siły -> integracja. Dla metody
// "direct" drzewo nie jest budowane, siły liczy solver O(n^2).
func (s *Simulator) Update() {
	var forces []mgl64.Vec2
	if s.Solver.Method == "direct" {
		forces = physics.DirectForces(s.Bodies, s.Solver.G, s.Solver.Eps)
	} else {
		s.tree.Build(s.Bodies)
		forces = s.calc.CalculateForces(s.Bodies, s.tree)
	}

	if s.Solver.Integrator == "euler" {
		s.Bodies = physics.IntegrateEulerSymplectic(s.Bodies, forces, s.Dt)
	} else {
		s.Bodies = physics.IntegrateVerlet(s.Bodies, forces, s.Dt)
	}
}

// Tree zwraca drzewo z ostatniego kroku (do rysowania nakładki).
// Zawartość odpowiada stanowi sprzed ostatniej integracji.
func (s *Simulator) Tree() *barneshut.Tree {
	return s.tree
}
