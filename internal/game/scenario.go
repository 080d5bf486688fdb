package game

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SimParams are the per-room tuning knobs of the avoidance simulation.
type SimParams struct {
	Tau            float64 // lookahead horizon in seconds
	Hz             float64 // simulation tick rate
	NeighborRadius float64 // candidate search radius around each agent
	WorldW         float64
	WorldH         float64
}

func (p SimParams) Dt() float64 { return 1.0 / p.Hz }

// AgentSpec describes one agent of a scenario.
type AgentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	GoalX    float64 `yaml:"goalX"`
	GoalY    float64 `yaml:"goalY"`
	Radius   float64 `yaml:"radius"`
	MaxSpeed float64 `yaml:"maxSpeed"`
}

type Scenario struct {
	Name   string
	Params SimParams
	Agents []AgentSpec
}

type simParamsFile struct {
	Tau            *float64 `yaml:"tau"`
	Hz             *float64 `yaml:"hz"`
	NeighborRadius *float64 `yaml:"neighborRadius"`
	WorldW         *float64 `yaml:"worldW"`
	WorldH         *float64 `yaml:"worldH"`
}

type scenarioFile struct {
	Name   string         `yaml:"name"`
	Params *simParamsFile `yaml:"params"`
	Agents []AgentSpec    `yaml:"agents"`
}

// ParamOverrides are optional command-line overrides applied on top of
// whatever a scenario file sets.
type ParamOverrides struct {
	Tau            *float64
	Hz             *float64
	NeighborRadius *float64
}

func (o ParamOverrides) Apply(base SimParams) SimParams {
	if o.Tau != nil {
		base.Tau = *o.Tau
	}
	if o.Hz != nil {
		base.Hz = *o.Hz
	}
	if o.NeighborRadius != nil {
		base.NeighborRadius = *o.NeighborRadius
	}
	return SanitizeParams(base)
}

func DefaultParams() SimParams {
	return SimParams{
		Tau:            DefaultTau,
		Hz:             SimHz,
		NeighborRadius: DefaultNeighborRadius,
		WorldW:         WorldW,
		WorldH:         WorldH,
	}
}

// SanitizeParams clamps nonsensical values back to usable ones. The VO
// derivation needs tau well above one tick.
func SanitizeParams(p SimParams) SimParams {
	if p.Hz <= 0 || math.IsNaN(p.Hz) {
		p.Hz = SimHz
	}
	if p.Tau <= p.Dt() || math.IsNaN(p.Tau) {
		p.Tau = math.Max(DefaultTau, 2*p.Dt())
	}
	if p.NeighborRadius <= 0 || math.IsNaN(p.NeighborRadius) {
		p.NeighborRadius = DefaultNeighborRadius
	}
	if p.WorldW <= 0 {
		p.WorldW = WorldW
	}
	if p.WorldH <= 0 {
		p.WorldH = WorldH
	}
	return p
}

func sanitizeAgent(a AgentSpec) AgentSpec {
	if a.Radius <= 0 {
		a.Radius = DefaultAgentRadius
	}
	if a.MaxSpeed <= 0 {
		a.MaxSpeed = DefaultMaxSpeed
	}
	return a
}

func mergeParams(base SimParams, f *simParamsFile) SimParams {
	if f == nil {
		return SanitizeParams(base)
	}
	if f.Tau != nil {
		base.Tau = *f.Tau
	}
	if f.Hz != nil {
		base.Hz = *f.Hz
	}
	if f.NeighborRadius != nil {
		base.NeighborRadius = *f.NeighborRadius
	}
	if f.WorldW != nil {
		base.WorldW = *f.WorldW
	}
	if f.WorldH != nil {
		base.WorldH = *f.WorldH
	}
	return SanitizeParams(base)
}

// LoadScenario reads a YAML scenario file, filling gaps with defaults.
// A missing file is not an error: the built-in circle scenario is used.
func LoadScenario(path string, agents int) (Scenario, error) {
	if path == "" {
		return CircleScenario(agents), nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return CircleScenario(agents), nil
		}
		return Scenario{}, fmt.Errorf("read scenario %q: %w", cleanPath, err)
	}
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %q: %w", cleanPath, err)
	}
	sc := Scenario{
		Name:   f.Name,
		Params: mergeParams(DefaultParams(), f.Params),
	}
	if sc.Name == "" {
		sc.Name = "custom"
	}
	for _, a := range f.Agents {
		sc.Agents = append(sc.Agents, sanitizeAgent(a))
	}
	return sc, nil
}

// CircleScenario places n agents evenly on a circle, each with its goal
// at the antipodal point, so everyone must cross the center at once.
func CircleScenario(n int) Scenario {
	if n <= 0 {
		n = 12
	}
	params := DefaultParams()
	cx, cy := params.WorldW/2, params.WorldH/2
	ringRadius := math.Min(params.WorldW, params.WorldH) * 0.4

	sc := Scenario{Name: "circle", Params: params}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		x := cx + ringRadius*math.Cos(angle)
		y := cy + ringRadius*math.Sin(angle)
		sc.Agents = append(sc.Agents, AgentSpec{
			X:        x,
			Y:        y,
			GoalX:    cx - ringRadius*math.Cos(angle),
			GoalY:    cy - ringRadius*math.Sin(angle),
			Radius:   DefaultAgentRadius,
			MaxSpeed: DefaultMaxSpeed,
		})
	}
	return sc
}
