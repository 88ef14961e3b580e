package steer

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/vec"
)

func TestPartialLimiters_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		query func()
	}{
		{"linear limiter angular speed", func() { NewLinearLimiter(1, 1).MaxAngularSpeed() }},
		{"linear acceleration limiter speed", func() { NewLinearAccelerationLimiter(1).MaxLinearSpeed() }},
		{"linear speed limiter acceleration", func() { NewLinearSpeedLimiter(1).MaxLinearAcceleration() }},
		{"angular limiter linear acceleration", func() { NewAngularLimiter(1, 1).MaxLinearAcceleration() }},
		{"angular acceleration limiter speed", func() { NewAngularAccelerationLimiter(1).MaxAngularSpeed() }},
		{"angular speed limiter set acceleration", func() { NewAngularSpeedLimiter(1).SetMaxAngularAcceleration(2) }},
		{"null limiter setter", func() { NullLimiter{}.SetMaxLinearSpeed(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("expected error panic, got %v", r)
				}
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("expected ErrUnsupported, got %v", err)
				}
			}()
			tt.query()
		})
	}
}

func TestPartialLimiters_Declared(t *testing.T) {
	l := NewLinearLimiter(3, 4)
	if l.MaxLinearAcceleration() != 3 || l.MaxLinearSpeed() != 4 {
		t.Errorf("unexpected caps %v %v", l.MaxLinearAcceleration(), l.MaxLinearSpeed())
	}
	l.SetZeroLinearSpeedThreshold(0.5)
	if l.ZeroLinearSpeedThreshold() != 0.5 {
		t.Error("zero threshold not stored")
	}

	a := NewAngularLimiter(2, 1)
	a.SetMaxAngularSpeed(7)
	if a.MaxAngularSpeed() != 7 || a.MaxAngularAcceleration() != 2 {
		t.Errorf("unexpected angular caps %v %v", a.MaxAngularSpeed(), a.MaxAngularAcceleration())
	}
}

func TestNeutralLimiter(t *testing.T) {
	if !math.IsInf(NeutralLimiter.MaxLinearAcceleration(), 1) || !math.IsInf(NeutralLimiter.MaxAngularSpeed(), 1) {
		t.Error("neutral limiter must not cap")
	}
	if NeutralLimiter.ZeroLinearSpeedThreshold() != DefaultZeroLinearSpeedThreshold {
		t.Error("neutral limiter threshold")
	}
}

func TestEvaluate_MisconfiguredLimiter(t *testing.T) {
	owner := newAgent(0, 0)
	arrive := NewArrive[*vec.Vec2](owner, point(10, 0))
	arrive.Limiter = NewAngularLimiter(1, 1)

	out := newOut()
	out.Linear.Set(vec.New2(9, 9))
	err := Evaluate[*vec.Vec2](arrive, out)

	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
	if ue.Method != "MaxLinearSpeed" {
		t.Errorf("unexpected method %q", ue.Method)
	}
	if !out.IsZero() {
		t.Errorf("output should be zeroed, got %v", out.Linear)
	}

	arrive.Limiter = nil
	if err := Evaluate[*vec.Vec2](arrive, out); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
