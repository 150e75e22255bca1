package automation

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// Actions understood by a scenario event.
const (
	ActionSpawn         = "spawn"
	ActionToggleGravity = "toggle_gravity"
	ActionCenterGravity = "center_gravity"
	ActionGravity       = "gravity"
)

// Scenario is a scripted sequence of events applied between frames.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// Event fires once, before the frame with index Frame is advanced.
type Event struct {
	Frame  int     `yaml:"frame"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Count  int     `yaml:"count"`
	Jitter float64 `yaml:"jitter"`
	// Enabled is read by center_gravity.
	Enabled bool `yaml:"enabled"`
}

// Target is what a scenario drives. The runner and the live view implement it.
type Target interface {
	SpawnAround(origin r2.Vec, count int, jitter float64) error
	ToggleCenterGravity()
	SetCenterGravity(enabled bool)
	SetGravity(g r2.Vec)
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, ev := range s.Events {
		if ev.Frame < 0 {
			return fmt.Errorf("event %d: negative frame %d", i+1, ev.Frame)
		}
		switch ev.Action {
		case ActionSpawn:
			if ev.Count < 0 {
				return fmt.Errorf("event %d: negative count", i+1)
			}
		case ActionToggleGravity, ActionCenterGravity, ActionGravity:
		default:
			return fmt.Errorf("event %d: unknown action %q", i+1, ev.Action)
		}
	}
	return nil
}

// Player hands out scenario events frame by frame.
type Player struct {
	events []Event
	next   int
}

// NewPlayer orders events by frame; events on the same frame keep file order.
func NewPlayer(s *Scenario) *Player {
	var events []Event
	if s != nil {
		events = make([]Event, len(s.Events))
		copy(events, s.Events)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
	return &Player{events: events}
}

// Apply runs every not-yet-applied event scheduled at or before frame.
// It returns the number of events applied.
func (p *Player) Apply(frame int, target Target) (int, error) {
	applied := 0
	for p.next < len(p.events) && p.events[p.next].Frame <= frame {
		ev := p.events[p.next]
		p.next++
		if err := apply(ev, target); err != nil {
			return applied, fmt.Errorf("frame %d %s: %w", ev.Frame, ev.Action, err)
		}
		applied++
	}
	return applied, nil
}

// Done reports whether every event has fired.
func (p *Player) Done() bool { return p.next >= len(p.events) }

func apply(ev Event, target Target) error {
	switch ev.Action {
	case ActionSpawn:
		count := ev.Count
		if count == 0 {
			count = 1
		}
		return target.SpawnAround(r2.Vec{X: ev.X, Y: ev.Y}, count, ev.Jitter)
	case ActionToggleGravity:
		target.ToggleCenterGravity()
	case ActionCenterGravity:
		target.SetCenterGravity(ev.Enabled)
	case ActionGravity:
		target.SetGravity(r2.Vec{X: ev.X, Y: ev.Y})
	}
	return nil
}
