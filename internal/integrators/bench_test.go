package integrators

import (
	"testing"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/vec"
)

func benchmarkIntegrator(b *testing.B, integ sim.Integrator[*vec.Vec2]) {
	a := newAgent()
	acc := push(1, 2, 0.1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(a, acc, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) {
	benchmarkIntegrator(b, NewEuler[*vec.Vec2]())
}

func BenchmarkSemiImplicitEuler(b *testing.B) {
	benchmarkIntegrator(b, NewSemiImplicitEuler[*vec.Vec2]())
}

func BenchmarkVerlet(b *testing.B) {
	benchmarkIntegrator(b, NewVerlet[*vec.Vec2]())
}
