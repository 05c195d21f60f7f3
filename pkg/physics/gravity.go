package physics

import "github.com/go-gl/mathgl/mgl64"

// G - domyślna stała grawitacji, sztucznie zwiększona dla wizualizacji.
const G = 6.67430e-1

// DefaultEps - domyślny parametr softeningu, dostosuj do skali układu.
const DefaultEps = 5.0

// PairForce liczy siłę działającą na ciało target od ciała source.
// Dla r^2 < eps^2 zwraca zero (ciała pokrywające się nie oddziałują -
// zapobiega NaN przy normalizacji). W mianowniku jest r^2 + eps (nie
// eps^2): softening ogranicza siłę przy małych odległościach, nie
// zerując jej całkiem. Ta sama formuła obowiązuje w solverze O(n^2)
// i w drzewie Barnesa-Huta.
func PairForce(targetPos mgl64.Vec2, targetMass float64, sourcePos mgl64.Vec2, sourceMass float64, g, eps float64) mgl64.Vec2 {
	r := sourcePos.Sub(targetPos)
	r2 := r.LenSqr()
	if r2 < eps*eps {
		return mgl64.Vec2{0, 0}
	}
	mag := g * targetMass * sourceMass / (r2 + eps)
	return r.Normalize().Mul(mag)
}

// DirectForces liczy siły metodą bezpośrednią O(n^2), parując ciała
// zgodnie z trzecią zasadą dynamiki (F_ij = -F_ji). Wynik ma tę samą
// długość i kolejność co bodies. Służy jako solver referencyjny dla
// małych układów i testów zbieżności.
func DirectForces(bodies []Body, g, eps float64) []mgl64.Vec2 {
	forces := make([]mgl64.Vec2, len(bodies))
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			f := PairForce(bodies[i].Pos, bodies[i].Mass, bodies[j].Pos, bodies[j].Mass, g, eps)
			forces[i] = forces[i].Add(f)
			forces[j] = forces[j].Sub(f)
		}
	}
	return forces
}
