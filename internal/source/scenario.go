package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/status-blinker/internal/domain/device"
)

// Step changes some device conditions while the tick is below Until.
// Nil fields are left as they are.
type Step struct {
	// Until is the first tick this step no longer applies to.
	Until int `yaml:"until"`
	// Alarm sets the alarm state when not nil.
	Alarm *device.AlarmState `yaml:"alarm,omitempty"`
	// Supply sets the power source when not nil.
	Supply *device.SupplyState `yaml:"supply,omitempty"`
	// USBActivity sets USB activity when not nil.
	USBActivity *bool `yaml:"usb_activity,omitempty"`
}

// Scenario is a tick-indexed sequence of condition changes.
// For a given tick the first step whose Until is greater than the tick
// applies; past the last step nothing changes.
type Scenario struct {
	// Name identifies the scenario in logs.
	Name string `yaml:"name"`
	// Steps are ordered by ascending Until.
	Steps []Step `yaml:"steps"`
}

var (
	// errNoSteps is returned for a scenario without steps.
	errNoSteps = errors.New("scenario has no steps")
	// errUnorderedSteps is returned when Until values do not increase.
	errUnorderedSteps = errors.New("scenario steps must have increasing until values")
)

// DefaultScenario sweeps through the interesting condition combinations:
// USB power, an active alarm, a pending alarm with USB traffic, traffic
// stopping, main power returning and finally a one-tick active alarm.
func DefaultScenario() Scenario {
	return Scenario{
		Name: "default",
		Steps: []Step{
			{Until: 100, Supply: ptr(device.USBSupply)},
			{Until: 150, Alarm: ptr(device.ActiveAlarm)},
			{Until: 200, Alarm: ptr(device.PendingAlarm), USBActivity: ptr(true)},
			{Until: 250, USBActivity: ptr(false)},
			{Until: 500, Supply: ptr(device.MainSupply)},
			{Until: 501, Alarm: ptr(device.ActiveAlarm)},
		},
	}
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (Scenario, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(contents, &s); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal scenario: %w", err)
	}

	if s.Name == "" {
		s.Name = filepath.Base(path)
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}

	return s, nil
}

// Validate checks that the steps are usable.
func (s Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return errNoSteps
	}

	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i].Until <= s.Steps[i-1].Until {
			return fmt.Errorf("%w: step %d", errUnorderedSteps, i)
		}
	}

	return nil
}

// Apply changes state according to the step covering tick.
func (s Scenario) Apply(tick int, state *device.State) {
	for _, step := range s.Steps {
		if tick >= step.Until {
			continue
		}

		if step.Alarm != nil {
			state.Alarm = *step.Alarm
		}

		if step.Supply != nil {
			state.Supply = *step.Supply
		}

		if step.USBActivity != nil {
			state.USBActivity = *step.USBActivity
		}

		return
	}
}

// ScenarioSource replays a Scenario one tick per Snapshot call.
type ScenarioSource struct {
	// scenario drives the state changes.
	scenario Scenario
	// state is the state for the next tick.
	state device.State
	// tick is the index of the next tick.
	tick int
	// mu serialises Snapshot calls.
	mu sync.Mutex
}

// NewScenarioSource starts scenario from the default device state.
func NewScenarioSource(scenario Scenario) *ScenarioSource {
	return &ScenarioSource{
		scenario: scenario,
		state:    device.Default(),
	}
}

// Snapshot returns the state for the current tick, then lets the scenario
// update it for the next one.
func (s *ScenarioSource) Snapshot(context.Context) (device.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state

	s.scenario.Apply(s.tick, &s.state)
	s.tick++

	return current, nil
}

func ptr[T any](v T) *T {
	return &v
}
