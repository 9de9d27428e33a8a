package scripting

import (
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEmissionScale(t *testing.T) {
	e := newTestEngine(t)
	if err := e.DoString(`function fade(p) return 1.0 - p end`); err != nil {
		t.Fatal(err)
	}

	if !e.HasCurve("fade") {
		t.Fatal("fade curve not registered")
	}
	if got := e.EmissionScale("fade", 0.25); got != 0.75 {
		t.Fatalf("EmissionScale = %v, want 0.75", got)
	}
}

func TestEmissionScaleClampsNegative(t *testing.T) {
	e := newTestEngine(t)
	if err := e.DoString(`function bad(p) return -3 end`); err != nil {
		t.Fatal(err)
	}
	if got := e.EmissionScale("bad", 0.5); got != 0 {
		t.Fatalf("EmissionScale = %v, want 0", got)
	}
}

func TestEmissionScaleMissingCurveDefaultsToOne(t *testing.T) {
	e := newTestEngine(t)
	if got := e.EmissionScale("nope", 0.5); got != 1.0 {
		t.Fatalf("EmissionScale = %v, want 1", got)
	}
}

func TestEmissionScaleErrorDefaultsToOne(t *testing.T) {
	e := newTestEngine(t)
	if err := e.DoString(`function boom(p) error("no") end`); err != nil {
		t.Fatal(err)
	}
	if got := e.EmissionScale("boom", 0.5); got != 1.0 {
		t.Fatalf("EmissionScale = %v, want 1", got)
	}
}
