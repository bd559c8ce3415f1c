package script

import (
	"context"
	"fmt"
	"io"
	"log"

	"survivors/sim"
)

// Outcome is what a headless run reports
type Outcome struct {
	Result sim.Result

	// Finished is false when the run stopped at the tick limit
	Finished bool
	Choices  []string
}

// Runner drives a simulation with a pilot instead of a keyboard
type Runner struct {
	pilot    *Pilot
	maxTicks uint64
	logger   *log.Logger

	result  *sim.Result
	choices []string
}

// NewRunner creates a runner; maxTicks of 0 runs until game over
func NewRunner(pilot *Pilot, maxTicks uint64, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{pilot: pilot, maxTicks: maxTicks, logger: logger}
}

// PresentUpgradeChoices implements sim.Menu
func (r *Runner) PresentUpgradeChoices(options []sim.Upgrade) {
	r.logger.Printf("offered %v", options)
}

// GameOver implements sim.Observer
func (r *Runner) GameOver(result sim.Result) {
	r.result = &result
}

// Run starts s and steps it until game over, the tick limit, or ctx is done
func (r *Runner) Run(ctx context.Context, s *sim.Simulation) (Outcome, error) {
	s.SetMenu(r)
	s.SetObserver(r)
	if err := s.Start(); err != nil {
		return Outcome{}, err
	}
	r.logger.Printf("pilot %s flying run %s", r.pilot.Name(), s.RunID())

	for r.maxTicks == 0 || s.HUD().Tick < r.maxTicks {
		if s.HUD().Tick%600 == 0 {
			if err := ctx.Err(); err != nil {
				return r.outcome(s), err
			}
		}

		pc := BuildPilotContext(s.Snapshot(), s.HUD())
		decision, err := r.pilot.Decide(pc)
		if err != nil {
			return r.outcome(s), fmt.Errorf("tick %d: %w", pc.Tick, err)
		}

		switch s.Step(decision) {
		case sim.PhaseGameOver:
			return r.outcome(s), nil
		case sim.PhaseChoosingUpgrade:
			if err := r.chooseAll(s); err != nil {
				return r.outcome(s), err
			}
		}
	}
	return r.outcome(s), nil
}

// chooseAll answers pending choices until the simulation is running again
func (r *Runner) chooseAll(s *sim.Simulation) error {
	for s.Phase() == sim.PhaseChoosingUpgrade {
		pc := BuildPilotContext(s.Snapshot(), s.HUD())
		index, err := r.pilot.Choose(pc)
		if err != nil {
			return fmt.Errorf("level %d: %w", pc.Level, err)
		}
		label := pc.Choices[index].Label
		if err := s.ChooseUpgrade(index); err != nil {
			return err
		}
		r.choices = append(r.choices, label)
		r.logger.Printf("level %d: took %s", pc.Level, label)
	}
	return nil
}

func (r *Runner) outcome(s *sim.Simulation) Outcome {
	out := Outcome{
		Result:  s.Result(),
		Choices: append([]string(nil), r.choices...),
	}
	if r.result != nil {
		out.Result = *r.result
		out.Finished = true
	}
	return out
}
