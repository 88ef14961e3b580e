package sim_test

import (
	"context"
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/steersim/internal/integrators"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func newAgent(name string, x, y float64) *sim.Agent[*vec.Vec2] {
	return sim.NewAgent(name, vec.New2(x, y), 0.5, steer.NewFullLimiter(10, 5, 10, 5))
}

type countMetric struct{ observed int }

func (c *countMetric) Name() string                           { return "count" }
func (c *countMetric) Observe(*sim.World[*vec.Vec2], float64) { c.observed++ }
func (c *countMetric) Value() float64                         { return float64(c.observed) }
func (c *countMetric) Reset()                                 { c.observed = 0 }

var _ = Describe("Simulator", func() {
	var (
		world     *sim.World[*vec.Vec2]
		simulator *sim.Simulator[*vec.Vec2]
		cfg       sim.Config
	)

	BeforeEach(func() {
		world = sim.NewWorld(vec.New2(0, 0))
		simulator = sim.New[*vec.Vec2](world, integrators.NewSemiImplicitEuler[*vec.Vec2]())
		cfg = sim.Config{Dt: 0.1, Duration: 1}
	})

	Describe("configuration", func() {
		DescribeTable("rejects invalid configs",
			func(dt, duration float64) {
				_, err := simulator.Run(context.Background(), sim.Config{Dt: dt, Duration: duration})
				Expect(err).To(MatchError(sim.ErrInvalidConfig))
			},
			Entry("zero dt", 0.0, 1.0),
			Entry("negative dt", -0.1, 1.0),
			Entry("zero duration", 0.1, 0.0),
			Entry("negative duration", 0.1, -1.0),
		)
	})

	Describe("the tick", func() {
		It("advances the frame id by exactly one per tick", func() {
			var frames []uint64
			var deltas []float64
			simulator.AddObserver(sim.ObserverFunc[*vec.Vec2](func(w *sim.World[*vec.Vec2], _ float64) {
				frames = append(frames, w.FrameID())
				deltas = append(deltas, w.DeltaTime())
			}))

			result, err := simulator.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.StepsTaken).To(Equal(10))
			Expect(frames).To(Equal([]uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
			Expect(deltas).To(HaveEach(BeNumerically("==", 0.1)))
			Expect(world.Time()).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("records the initial frame and one per tick", func() {
			world.Add(newAgent("a", 0, 0))
			result, err := simulator.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(HaveLen(11))
			Expect(result.Times()[0]).To(Equal(0.0))
			Expect(result.Agents).To(Equal([]string{"a"}))
			Expect(result.Dim).To(Equal(2))
		})

		It("thins frames with RecordEvery but keeps the last", func() {
			world.Add(newAgent("a", 0, 0))
			cfg.RecordEvery = 4
			result, err := simulator.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Times()).To(HaveLen(4))
			Expect(result.Frames[3].Time).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("steers every agent from the pre-integration state", func() {
			a := newAgent("a", 0, 0)
			a.Vel.Set(vec.New2(0, 5))
			b := newAgent("b", 10, 0)
			a.Behavior = steer.NewSeek[*vec.Vec2](a, b)
			b.Behavior = steer.NewSeek[*vec.Vec2](b, a)
			world.Add(a, b)

			Expect(simulator.Step(0.1)).To(Succeed())

			Expect(a.Steering().Linear.X).To(BeNumerically("~", 10, 1e-9))
			Expect(b.Steering().Linear.X).To(BeNumerically("~", -10, 1e-9))
			Expect(b.Steering().Linear.Y).To(Equal(0.0))
			Expect(a.Pos.Y).To(BeNumerically(">", 0))
		})

		It("turns agents toward their velocity unless facing is independent", func() {
			a := newAgent("a", 0, 0)
			a.Behavior = steer.NewSeek[*vec.Vec2](a, steer.NewStatic(vec.New2(10, 0), 0))
			free := newAgent("free", 0, 0)
			free.IndependentFacing = true
			free.Behavior = steer.NewSeek[*vec.Vec2](free, steer.NewStatic(vec.New2(10, 0), 0))
			world.Add(a, free)

			Expect(simulator.Step(0.1)).To(Succeed())
			Expect(a.Heading).To(BeNumerically("~", -math.Pi/2, 1e-9))
			Expect(free.Heading).To(Equal(0.0))
		})

		It("drops airborne agents under gravity without steering them", func() {
			world = sim.NewWorld(vec.New2(0, -10))
			simulator = sim.New[*vec.Vec2](world, integrators.NewEuler[*vec.Vec2]())
			a := newAgent("a", 0, 0)
			a.Airborne = true
			a.Vel.Set(vec.New2(0, 8))
			a.Behavior = steer.NewSeek[*vec.Vec2](a, steer.NewStatic(vec.New2(10, 0), 0))
			world.Add(a)

			Expect(simulator.Step(0.5)).To(Succeed())
			Expect(a.Vel.Y).To(BeNumerically("~", 3, 1e-9))
			Expect(a.Vel.X).To(Equal(0.0))
		})
	})

	Describe("metrics", func() {
		It("resets and reports every metric", func() {
			m := &countMetric{observed: 42}
			simulator.AddMetric(m)

			result, err := simulator.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKeyWithValue("count", 10.0))
			Expect(simulator.Metrics()).To(HaveKeyWithValue("count", 10.0))
		})
	})

	Describe("failures", func() {
		It("turns a misconfigured limiter into a SimulationError", func() {
			a := newAgent("a", 0, 0)
			arrive := steer.NewArrive[*vec.Vec2](a, steer.NewStatic(vec.New2(10, 0), 0))
			arrive.Limiter = steer.NewAngularLimiter(1, 1)
			a.Behavior = arrive
			world.Add(a)

			result, err := simulator.Run(context.Background(), cfg)
			Expect(err).To(HaveOccurred())
			Expect(result.StepsTaken).To(Equal(0))

			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Agent).To(Equal("a"))

			var unsupported *steer.UnsupportedError
			Expect(errors.As(err, &unsupported)).To(BeTrue())
			Expect(unsupported.Method).To(Equal("MaxLinearSpeed"))
			Expect(errors.Is(err, steer.ErrUnsupported)).To(BeTrue())
		})

		It("stops on invalid state when validation is on", func() {
			a := newAgent("a", 0, 0)
			a.Vel.Set(vec.New2(math.NaN(), 0))
			world.Add(a)

			cfg.ValidateState = true
			_, err := simulator.Run(context.Background(), cfg)
			Expect(err).To(MatchError(sim.ErrInvalidState))
		})

		It("honors context cancellation between ticks", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := simulator.Run(ctx, cfg)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.StepsTaken).To(Equal(0))
		})

		It("lets a callback stop the run early", func() {
			calls := 0
			err := simulator.RunWithCallback(context.Background(), cfg, func(*sim.World[*vec.Vec2]) bool {
				calls++
				return calls < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
			Expect(world.FrameID()).To(Equal(uint64(3)))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one simulation per seed and summarizes the metrics", func() {
		var mu sync.Mutex
		seeds := map[int64]bool{}

		build := func(seed int64) (sim.Runner, error) {
			mu.Lock()
			seeds[seed] = true
			mu.Unlock()

			w := sim.NewWorld(vec.New2(0, 0), newAgent("a", float64(seed), 0))
			s := sim.New[*vec.Vec2](w, integrators.NewEuler[*vec.Vec2]())
			s.AddMetric(&countMetric{})
			return s, nil
		}

		ensemble := sim.NewEnsemble(build, 4, 10)
		ensemble.Workers = 2
		results, err := ensemble.Run(context.Background(), sim.Config{Dt: 0.1, Duration: 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		Expect(seeds).To(HaveLen(4))
		Expect(seeds).To(HaveKey(int64(13)))
		Expect(results[2].Frames[0].Agents[0].Position[0]).To(Equal(12.0))

		summary := sim.Summarize(results)
		Expect(summary["count"].Mean).To(Equal(5.0))
		Expect(summary["count"].N).To(Equal(4))
	})

	It("fails when a build fails", func() {
		boom := errors.New("boom")
		ensemble := sim.NewEnsemble(func(int64) (sim.Runner, error) { return nil, boom }, 3, 0)
		_, err := ensemble.Run(context.Background(), sim.Config{Dt: 0.1, Duration: 1})
		Expect(err).To(MatchError(boom))
	})
})
