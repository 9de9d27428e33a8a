package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Shape selects the emission geometry of an effect.
type Shape string

const (
	ShapePoint  Shape = "point"  // all particles from the origin point
	ShapeCone   Shape = "cone"   // spread around the orientation forward axis
	ShapeSphere Shape = "sphere" // uniform directions
	ShapeTrail  Shape = "trail"  // cone from the tail of a hosting weapon
)

func (s Shape) valid() bool {
	switch s {
	case ShapePoint, ShapeCone, ShapeSphere, ShapeTrail:
		return true
	}
	return false
}

// EffectTemplate holds the static definition of one particle effect,
// loaded from YAML. All durations are simulated milliseconds.
type EffectTemplate struct {
	Name  string `yaml:"name"`
	Shape Shape  `yaml:"shape"`

	CountMin int `yaml:"count_min"` // particles per emission step
	CountMax int `yaml:"count_max"`

	SpeedMin float64 `yaml:"speed_min"` // m/s along the emission direction
	SpeedMax float64 `yaml:"speed_max"`

	ConeAngleDeg float64 `yaml:"cone_angle_deg"` // half-angle for cone/trail

	ParticleLifeMinMs int `yaml:"particle_life_min_ms"`
	ParticleLifeMaxMs int `yaml:"particle_life_max_ms"`

	DurationMs int `yaml:"duration_ms"` // active window length; 0 = unbounded
	DelayMs    int `yaml:"delay_ms"`    // activation delay after trigger

	OneShot  bool   `yaml:"one_shot"` // emit once, then terminal
	Relative bool   `yaml:"relative"` // attach spawned particles to the host
	Curve    string `yaml:"curve"`    // lua curve modulating emission count
}

// Validate checks a template for internal consistency.
func (t *EffectTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("effect with empty name")
	}
	if !t.Shape.valid() {
		return fmt.Errorf("effect %q: unknown shape %q", t.Name, t.Shape)
	}
	if t.CountMin < 0 || t.CountMax < t.CountMin {
		return fmt.Errorf("effect %q: bad count range [%d, %d]", t.Name, t.CountMin, t.CountMax)
	}
	if t.SpeedMin < 0 || t.SpeedMax < t.SpeedMin {
		return fmt.Errorf("effect %q: bad speed range [%g, %g]", t.Name, t.SpeedMin, t.SpeedMax)
	}
	if t.ConeAngleDeg < 0 || t.ConeAngleDeg > 180 {
		return fmt.Errorf("effect %q: cone angle %g out of range", t.Name, t.ConeAngleDeg)
	}
	if t.ParticleLifeMinMs < 0 || t.ParticleLifeMaxMs < t.ParticleLifeMinMs {
		return fmt.Errorf("effect %q: bad particle life range [%d, %d]",
			t.Name, t.ParticleLifeMinMs, t.ParticleLifeMaxMs)
	}
	if t.DurationMs < 0 || t.DelayMs < 0 {
		return fmt.Errorf("effect %q: negative timing", t.Name)
	}
	return nil
}

type effectListFile struct {
	Effects []EffectTemplate `yaml:"effects"`
}

// EffectTable holds all effect templates indexed by name.
type EffectTable struct {
	templates map[string]*EffectTemplate
}

// LoadEffectTable loads effect templates from a YAML file and validates
// every entry. Duplicate names are an error.
func LoadEffectTable(path string) (*EffectTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read effects: %w", err)
	}
	var f effectListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse effects: %w", err)
	}

	t := &EffectTable{templates: make(map[string]*EffectTemplate, len(f.Effects))}
	for i := range f.Effects {
		tpl := &f.Effects[i]
		if err := tpl.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.templates[tpl.Name]; dup {
			return nil, fmt.Errorf("effect %q: duplicate definition", tpl.Name)
		}
		t.templates[tpl.Name] = tpl
	}
	return t, nil
}

func (t *EffectTable) Get(name string) (*EffectTemplate, bool) {
	tpl, ok := t.templates[name]
	return tpl, ok
}

func (t *EffectTable) Len() int { return len(t.templates) }

func (t *EffectTable) Each(fn func(*EffectTemplate)) {
	for _, tpl := range t.templates {
		fn(tpl)
	}
}
