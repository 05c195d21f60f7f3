package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestApplyForce(t *testing.T) {
	b := NewBody(0, 0, 0, 0, 4)
	b.ApplyForce(mgl64.Vec2{8, -2})
	b.ApplyForce(mgl64.Vec2{0, 6})

	want := mgl64.Vec2{2, 1} // (8,-2)/4 + (0,6)/4
	if b.Acc.Sub(want).Len() > 1e-12 {
		t.Errorf("Acc = %v, want %v", b.Acc, want)
	}
}

func TestVerletFirstStep(t *testing.T) {
	const dt = 0.5
	b := NewBody(10, 20, 2, -1, 2)
	b.ApplyForce(mgl64.Vec2{4, 8}) // a = (2, 4)

	b.Step(dt)

	// x + v*dt + 0.5*a*dt^2
	want := mgl64.Vec2{
		10 + 2*dt + 0.5*2*dt*dt,
		20 + -1*dt + 0.5*4*dt*dt,
	}
	if b.Pos.Sub(want).Len() > 1e-12 {
		t.Errorf("Pos after first step = %v, want %v", b.Pos, want)
	}
	if b.Acc.Len() != 0 {
		t.Errorf("Acc should be reset after Step, got %v", b.Acc)
	}
}

func TestVerletSecondStep(t *testing.T) {
	const dt = 0.25
	b := NewBody(0, 0, 1, 0, 1)
	b.Step(dt) // pierwszy krok bez sił: pos = (dt, 0)

	prev := mgl64.Vec2{dt, 0}
	b.ApplyForce(mgl64.Vec2{0, 2}) // a = (0, 2)
	b.Step(dt)

	// 2x - x_prev + a*dt^2, z x == prev po pierwszym kroku
	want := prev.Mul(2).Sub(mgl64.Vec2{0, 0}).Add(mgl64.Vec2{0, 2 * dt * dt})
	if b.Pos.Sub(want).Len() > 1e-12 {
		t.Errorf("Pos after second step = %v, want %v", b.Pos, want)
	}
}

func TestLockedBodyDoesNotMove(t *testing.T) {
	b := NewBody(5, 5, 3, 3, 10)
	b.Locked = true
	b.ApplyForce(mgl64.Vec2{100, 100})
	b.Step(0.1)

	if b.Pos != (mgl64.Vec2{5, 5}) {
		t.Errorf("locked body moved to %v", b.Pos)
	}
	if b.Vel.Len() != 0 {
		t.Errorf("locked body velocity = %v, want zero", b.Vel)
	}
}

func TestResetVerlet(t *testing.T) {
	// po ręcznym przesunięciu ciała reset zapobiega skokowi integratora
	const dt = 0.1
	b := NewBody(0, 0, 1, 0, 1)
	b.Step(dt)
	b.Step(dt)

	b.Pos = mgl64.Vec2{500, 500} // przesunięcie "z zewnątrz"
	b.ResetVerlet()
	b.Vel = mgl64.Vec2{0, 0}
	b.Step(dt)

	if b.Pos != (mgl64.Vec2{500, 500}) {
		t.Errorf("Pos after reset and zero-velocity step = %v, want (500, 500)", b.Pos)
	}
}

func TestVerletConstantVelocity(t *testing.T) {
	// bez sił ciało porusza się jednostajnie
	const dt = 0.1
	b := NewBody(0, 0, 10, -5, 1)
	for i := 0; i < 100; i++ {
		b.Step(dt)
	}
	want := mgl64.Vec2{10 * dt * 100, -5 * dt * 100}
	if b.Pos.Sub(want).Len() > 1e-9 {
		t.Errorf("Pos after 100 steps = %v, want %v", b.Pos, want)
	}
}

func TestIntegrateVerlet(t *testing.T) {
	bodies := []Body{
		NewBody(0, 0, 0, 0, 2),
		NewBody(100, 0, 0, 0, 2),
	}
	forces := []mgl64.Vec2{{4, 0}, {-4, 0}}

	const dt = 0.5
	IntegrateVerlet(bodies, forces, dt)

	// pierwszy krok: 0.5 * (F/m) * dt^2
	want := 0.5 * 2 * dt * dt
	if math.Abs(bodies[0].Pos.X()-want) > 1e-12 {
		t.Errorf("body 0 x = %g, want %g", bodies[0].Pos.X(), want)
	}
	if math.Abs(bodies[1].Pos.X()-(100-want)) > 1e-12 {
		t.Errorf("body 1 x = %g, want %g", bodies[1].Pos.X(), 100-want)
	}
}

func TestIntegrateEulerSymplectic(t *testing.T) {
	bodies := []Body{NewBody(0, 0, 1, 0, 2)}
	forces := []mgl64.Vec2{{0, 4}} // a = (0, 2)

	const dt = 0.5
	IntegrateEulerSymplectic(bodies, forces, dt)

	wantVel := mgl64.Vec2{1, 2 * dt}
	if bodies[0].Vel.Sub(wantVel).Len() > 1e-12 {
		t.Errorf("Vel = %v, want %v", bodies[0].Vel, wantVel)
	}
	// pozycja według nowej prędkości
	wantPos := wantVel.Mul(dt)
	if bodies[0].Pos.Sub(wantPos).Len() > 1e-12 {
		t.Errorf("Pos = %v, want %v", bodies[0].Pos, wantPos)
	}

	// zablokowane ciało stoi w miejscu
	locked := []Body{NewBody(7, 7, 0, 0, 1)}
	locked[0].Locked = true
	IntegrateEulerSymplectic(locked, []mgl64.Vec2{{100, 100}}, dt)
	if locked[0].Pos != (mgl64.Vec2{7, 7}) {
		t.Errorf("locked body moved to %v", locked[0].Pos)
	}
}
