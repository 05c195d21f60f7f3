package barneshut

import (
	"runtime"

	"github.com/dgravesa/go-parallel/parallel"
	"github.com/go-gl/mathgl/mgl64"

	"nbody-sim/pkg/physics"
)

// minApproachDist - dolny próg odległości w kryterium theta; chroni
// przed dzieleniem przez ~0 gdy ciało leży w środku masy węzła.
const minApproachDist = 1e-10

// --- Ewaluator sił ---
// ForceCalculator liczy siły grawitacyjne na podstawie zbudowanego
// drzewa. Theta steruje agresywnością aproksymacji (mniejsze = dokładniej,
// wolniej), Eps to parametr softeningu. Goroutines ogranicza liczbę
// goroutine'ów (0 = runtime.NumCPU()).
type ForceCalculator struct {
	Theta float64
	G     float64
	Eps   float64

	Goroutines int
}

func NewForceCalculator(theta, g, eps float64) *ForceCalculator {
	return &ForceCalculator{Theta: theta, G: g, Eps: eps}
}

// CalculateForces zwraca jedną siłę na ciało, w kolejności indeksów
// bodies. Trawersacje dla poszczególnych ciał są niezależne: drzewo i
// tablica ciał są tylko do odczytu, każda goroutine zapisuje do swojego
// slotu wyniku, więc wynik nie zależy od podziału pracy.
func (fc *ForceCalculator) CalculateForces(bodies []physics.Body, tree *Tree) []mgl64.Vec2 {
	forces := make([]mgl64.Vec2, len(bodies))
	p := fc.Goroutines
	if p <= 0 {
		p = runtime.NumCPU()
	}
	parallel.WithNumGoroutines(p).For(len(bodies), func(i, _ int) {
		forces[i] = fc.forceOnBody(i, bodies, tree.root, tree.bounds)
	})
	return forces
}

func (fc *ForceCalculator) forceOnBody(bodyIndex int, bodies []physics.Body, n *Node, nodeBounds Bounds) mgl64.Vec2 {
	if n.leaf {
		// liść: bezpośrednie siły parami, z pominięciem samego siebie
		force := mgl64.Vec2{0, 0}
		for _, other := range n.bodies {
			if other != bodyIndex {
				force = force.Add(fc.directForce(bodyIndex, other, bodies))
			}
		}
		return force
	}

	if n.mass == 0 {
		// puste poddrzewo
		return mgl64.Vec2{0, 0}
	}

	body := &bodies[bodyIndex]
	s := nodeBounds.MaxExtent()
	d := n.com.Sub(body.Pos).Len()

	if d > s/fc.Theta && d > minApproachDist {
		// węzeł wystarczająco daleko: całe poddrzewo jako jedna masa
		// punktowa w środku masy
		return physics.PairForce(body.Pos, body.Mass, n.com, n.mass, fc.G, fc.Eps)
	}

	// za blisko: schodzimy do wszystkich czterech dzieci
	force := mgl64.Vec2{0, 0}
	for q, child := range n.children {
		force = force.Add(fc.forceOnBody(bodyIndex, bodies, child, childBounds(nodeBounds, q)))
	}
	return force
}

func (fc *ForceCalculator) directForce(targetIndex, sourceIndex int, bodies []physics.Body) mgl64.Vec2 {
	t := &bodies[targetIndex]
	s := &bodies[sourceIndex]
	return physics.PairForce(t.Pos, t.Mass, s.Pos, s.Mass, fc.G, fc.Eps)
}
