package physics

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Ciało fizyczne ---
type Body struct {
	Mass   float64
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Acc    mgl64.Vec2
	Radius float64
	ColorC color.RGBA
	Locked bool

	// stan integratora Verleta
	prevPos   mgl64.Vec2
	firstStep bool
}

// NewBody tworzy ciało w pozycji (x, y) z prędkością (vx, vy).
func NewBody(x, y, vx, vy, mass float64) Body {
	return Body{
		Mass:      mass,
		Pos:       mgl64.Vec2{x, y},
		Vel:       mgl64.Vec2{vx, vy},
		prevPos:   mgl64.Vec2{x, y},
		firstStep: true,
	}
}

// ApplyForce dodaje siłę do akumulatora przyspieszenia (a += F/m).
func (b *Body) ApplyForce(force mgl64.Vec2) {
	b.Acc = b.Acc.Add(force.Mul(1.0 / b.Mass))
}

// Step wykonuje krok integratora Verleta (pozycyjnego).
// Pierwszy krok: x + v*dt + 0.5*a*dt^2, kolejne: 2x - x_prev + a*dt^2.
// Akumulator przyspieszenia jest zerowany po każdym kroku.
func (b *Body) Step(dt float64) {
	if b.Locked {
		b.Vel = mgl64.Vec2{0, 0}
		b.Acc = mgl64.Vec2{0, 0}
		return
	}
	if b.firstStep {
		newPos := b.Pos.Add(b.Vel.Mul(dt)).Add(b.Acc.Mul(0.5 * dt * dt))
		b.prevPos = b.Pos
		b.Pos = newPos
		b.firstStep = false
	} else {
		newPos := b.Pos.Mul(2).Sub(b.prevPos).Add(b.Acc.Mul(dt * dt))
		b.prevPos = b.Pos
		b.Pos = newPos
	}
	b.Acc = mgl64.Vec2{0, 0}
}

// ResetVerlet ustawia poprzednią pozycję na aktualną (np. po ręcznym
// przesunięciu ciała), aby integrator nie dostał skoku.
func (b *Body) ResetVerlet() {
	b.prevPos = b.Pos
	b.firstStep = true
}
