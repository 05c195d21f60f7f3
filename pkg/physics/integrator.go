package physics

import "github.com/go-gl/mathgl/mgl64"

// ApplyForces dodaje policzone siły do akumulatorów przyspieszeń.
// forces[i] odpowiada bodies[i].
func ApplyForces(bodies []Body, forces []mgl64.Vec2) {
	for i := range bodies {
		bodies[i].ApplyForce(forces[i])
	}
}

// IntegrateVerlet wykonuje krok symulacji integratorem Verleta
// (pozycyjnym, dwuetapowym). Siły muszą być policzone wcześniej.
func IntegrateVerlet(bodies []Body, forces []mgl64.Vec2, dt float64) []Body {
	ApplyForces(bodies, forces)
	for i := range bodies {
		bodies[i].Step(dt)
	}
	return bodies
}

// IntegrateEulerSymplectic wykonuje krok metodą semi-implicit Euler.
func IntegrateEulerSymplectic(bodies []Body, forces []mgl64.Vec2, dt float64) []Body {
	for i := range bodies {
		// przyspieszenie z policzonej siły
		bodies[i].Acc = forces[i].Mul(1.0 / bodies[i].Mass)

		if bodies[i].Locked {
			// nie aktualizujemy prędkości i pozycji zablokowanego ciała
			bodies[i].Vel = mgl64.Vec2{0, 0}
			continue
		}

		// Semi-implicit Euler: najpierw aktualizujemy prędkość
		bodies[i].Vel = bodies[i].Vel.Add(bodies[i].Acc.Mul(dt))

		// Następnie aktualizujemy pozycję według nowej prędkości
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Mul(dt))
		bodies[i].prevPos = bodies[i].Pos
	}
	return bodies
}
