// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/doubleslit/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig        `yaml:"screen"`
	Physics   PhysicsConfig       `yaml:"physics"`
	Geometry  components.Geometry `yaml:"geometry"`
	Regime    RegimeConfig        `yaml:"regime"`
	Emitter   EmitterConfig       `yaml:"emitter"`
	Sampler   SamplerConfig       `yaml:"sampler"`
	Detector  DetectorConfig      `yaml:"detector"`
	Telemetry TelemetryConfig     `yaml:"telemetry"`
	Events    EventsConfig        `yaml:"events"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical front-end.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// RegimeConfig selects the physical regime by name.
type RegimeConfig struct {
	SlitCount    string `yaml:"slit_count"`    // one | two
	ParticleKind string `yaml:"particle_kind"` // classical | wave | quantum
	Observed     bool   `yaml:"observed"`      // only meaningful for quantum
}

// EmitterConfig holds the spawn policy and the per-kind emitter profiles.
// The wave regime has no profile: nothing is emitted and the detector is
// driven by relaxation alone.
type EmitterConfig struct {
	Policy       string         `yaml:"policy"`        // chance | count
	Speed        float64        `yaml:"speed"`         // longitudinal speed, units per second
	MaxParticles int            `yaml:"max_particles"` // cap on live particles
	Classical    EmitterProfile `yaml:"classical"`
	Quantum      EmitterProfile `yaml:"quantum"`
}

// EmitterProfile is how one particle kind leaves the source.
type EmitterProfile struct {
	SpawnChance    float64 `yaml:"spawn_chance"`    // probability of one spawn per tick (chance policy)
	SpawnCount     int     `yaml:"spawn_count"`     // spawns per tick (count policy)
	VelocitySpread float64 `yaml:"velocity_spread"` // transverse velocity drawn from ±spread
}

// Profile returns the emitter profile for kind. ok is false for the wave
// regime, which emits nothing.
func (c EmitterConfig) Profile(kind components.ParticleKind) (p EmitterProfile, ok bool) {
	switch kind {
	case components.KindClassical:
		return c.Classical, true
	case components.KindQuantum:
		return c.Quantum, true
	}
	return EmitterProfile{}, false
}

// SamplerConfig holds landing sampler parameters.
type SamplerConfig struct {
	MaxRetries      int     `yaml:"max_retries"`      // rejection attempts before the uniform fallback
	ClassicalSpread float64 `yaml:"classical_spread"` // σ of each classical pile
}

// DetectorConfig holds accumulation buffer parameters.
type DetectorConfig struct {
	Bins             int           `yaml:"bins"`
	HitIncrement     HitIncrements `yaml:"hit_increment"`
	NeighborFraction float64       `yaml:"neighbor_fraction"` // share of the increment given to adjacent bins
	RelaxDamping     float64       `yaml:"relax_damping"`     // fraction of the gap closed per tick in wave mode
	DisplayScale     float64       `yaml:"display_scale"`     // wave-mode target = intensity * this
}

// HitIncrements is the amount one hit adds to its bin, per particle kind.
type HitIncrements struct {
	Classical float64 `yaml:"classical"`
	Quantum   float64 `yaml:"quantum"`
}

// For returns the increment for kind. The wave regime records no hits and
// gets the quantum value so a buffer can still be built.
func (h HitIncrements) For(kind components.ParticleKind) float64 {
	if kind == components.KindClassical {
		return h.Classical
	}
	return h.Quantum
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	EventHistorySize    int     `yaml:"event_history_size"`
}

// EventsConfig holds pattern event thresholds.
type EventsConfig struct {
	MinHits             int     `yaml:"min_hits"`             // detections required before judging a pattern
	MinFringes          int     `yaml:"min_fringes"`          // local maxima required for fringes_resolved
	VisibilityResolved  float64 `yaml:"visibility_resolved"`  // fringe contrast for fringes_resolved
	VisibilityCollapsed float64 `yaml:"visibility_collapsed"` // contrast below which a pattern counts as collapsed
	ProminenceFraction  float64 `yaml:"prominence_fraction"`  // peak must exceed neighbors by this share of the max
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Regime      components.Regime // parsed RegimeConfig
	TicksPerSec float64           // 1 / Physics.DT
	ScreenX     float64           // longitudinal position of the screen plane
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	regime, err := c.Regime.Parse()
	if err != nil {
		return fmt.Errorf("regime: %w", err)
	}
	c.Derived.Regime = regime

	if c.Physics.DT > 0 {
		c.Derived.TicksPerSec = 1 / c.Physics.DT
	}
	c.Derived.ScreenX = c.Geometry.ScreenX()
	return nil
}

// Parse converts the named regime into its component form.
func (r RegimeConfig) Parse() (components.Regime, error) {
	slits, err := components.ParseSlitCount(r.SlitCount)
	if err != nil {
		return components.Regime{}, err
	}
	kind, err := components.ParseParticleKind(r.ParticleKind)
	if err != nil {
		return components.Regime{}, err
	}
	return components.Regime{Slits: slits, Kind: kind, Observed: r.Observed}, nil
}

// SetRegime stores r back into the named form and refreshes derived values.
func (c *Config) SetRegime(r components.Regime) {
	c.Regime = RegimeConfig{
		SlitCount:    r.Slits.String(),
		ParticleKind: r.Kind.String(),
		Observed:     r.Observed,
	}
	c.Derived.Regime = r
}

// SetGeometry replaces the geometry and refreshes derived values.
func (c *Config) SetGeometry(g components.Geometry) {
	c.Geometry = g
	c.Derived.ScreenX = g.ScreenX()
}

// Validate checks every parameter the engine depends on.
func (c *Config) Validate() error {
	if err := c.Geometry.Validate(c.Derived.Regime.Slits); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	if !(c.Physics.DT > 0) {
		return fmt.Errorf("physics.dt = %v: %w", c.Physics.DT, components.ErrNonPositive)
	}
	if c.Emitter.Policy != PolicyChance && c.Emitter.Policy != PolicyCount {
		return fmt.Errorf("emitter.policy %q: must be %q or %q", c.Emitter.Policy, PolicyChance, PolicyCount)
	}
	profiles := []struct {
		name string
		p    EmitterProfile
	}{
		{"classical", c.Emitter.Classical},
		{"quantum", c.Emitter.Quantum},
	}
	for _, pr := range profiles {
		if pr.p.SpawnChance < 0 || pr.p.SpawnChance > 1 {
			return fmt.Errorf("emitter.%s.spawn_chance = %v: must be in [0,1]", pr.name, pr.p.SpawnChance)
		}
		if pr.p.SpawnCount < 0 {
			return fmt.Errorf("emitter.%s.spawn_count = %v: must not be negative", pr.name, pr.p.SpawnCount)
		}
		if pr.p.VelocitySpread < 0 {
			return fmt.Errorf("emitter.%s.velocity_spread = %v: must not be negative", pr.name, pr.p.VelocitySpread)
		}
	}
	if !(c.Emitter.Speed > 0) {
		return fmt.Errorf("emitter.speed = %v: %w", c.Emitter.Speed, components.ErrNonPositive)
	}
	if c.Sampler.MaxRetries < 1 {
		return fmt.Errorf("sampler.max_retries = %v: must be at least 1", c.Sampler.MaxRetries)
	}
	if !(c.Sampler.ClassicalSpread > 0) {
		return fmt.Errorf("sampler.classical_spread = %v: %w", c.Sampler.ClassicalSpread, components.ErrNonPositive)
	}
	if c.Detector.Bins < 2 {
		return fmt.Errorf("detector.bins = %v: must be at least 2", c.Detector.Bins)
	}
	if !(c.Detector.HitIncrement.Classical > 0) {
		return fmt.Errorf("detector.hit_increment.classical = %v: %w", c.Detector.HitIncrement.Classical, components.ErrNonPositive)
	}
	if !(c.Detector.HitIncrement.Quantum > 0) {
		return fmt.Errorf("detector.hit_increment.quantum = %v: %w", c.Detector.HitIncrement.Quantum, components.ErrNonPositive)
	}
	if c.Detector.NeighborFraction < 0 || c.Detector.NeighborFraction > 1 {
		return fmt.Errorf("detector.neighbor_fraction = %v: must be in [0,1]", c.Detector.NeighborFraction)
	}
	if !(c.Detector.RelaxDamping > 0) || c.Detector.RelaxDamping > 1 {
		return fmt.Errorf("detector.relax_damping = %v: must be in (0,1]", c.Detector.RelaxDamping)
	}
	return nil
}

// Spawn policies.
const (
	PolicyChance = "chance"
	PolicyCount  = "count"
)

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
