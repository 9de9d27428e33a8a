package data

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleEffects = `
effects:
  - name: thruster_trail
    shape: trail
    count_min: 2
    count_max: 5
    speed_min: 1.0
    speed_max: 4.0
    cone_angle_deg: 10
    particle_life_min_ms: 200
    particle_life_max_ms: 600
    relative: true
  - name: impact_flash
    shape: point
    count_min: 1
    count_max: 1
    particle_life_min_ms: 100
    particle_life_max_ms: 100
    one_shot: true
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "effects.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEffectTable(t *testing.T) {
	tbl, err := LoadEffectTable(writeTemp(t, sampleEffects))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("len = %d, want 2", tbl.Len())
	}

	trail, ok := tbl.Get("thruster_trail")
	if !ok {
		t.Fatal("thruster_trail missing")
	}
	if trail.Shape != ShapeTrail || trail.CountMax != 5 || !trail.Relative {
		t.Fatalf("unexpected template: %+v", trail)
	}

	flash, _ := tbl.Get("impact_flash")
	if !flash.OneShot || flash.DurationMs != 0 {
		t.Fatalf("unexpected template: %+v", flash)
	}

	if _, ok := tbl.Get("missing"); ok {
		t.Fatal("unknown effect resolved")
	}
}

func TestLoadEffectTableRejectsBadShape(t *testing.T) {
	_, err := LoadEffectTable(writeTemp(t, `
effects:
  - name: broken
    shape: helix
`))
	if err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestLoadEffectTableRejectsBadRanges(t *testing.T) {
	_, err := LoadEffectTable(writeTemp(t, `
effects:
  - name: broken
    shape: point
    count_min: 5
    count_max: 2
`))
	if err == nil {
		t.Fatal("expected error for inverted count range")
	}
}

func TestLoadEffectTableRejectsDuplicates(t *testing.T) {
	_, err := LoadEffectTable(writeTemp(t, `
effects:
  - name: twice
    shape: point
  - name: twice
    shape: point
`))
	if err == nil {
		t.Fatal("expected error for duplicate names")
	}
}
