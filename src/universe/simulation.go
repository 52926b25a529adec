package universe

import (
	"context"
	"errors"
	"time"
)

//Options represents the simulation's configurable options
type Options struct {
	Generations    int
	Interval       time.Duration //pause after each generation
	StopWhenStable bool          //finish early when a generation changes nothing
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data
//Refresh is called synchronously, u must not be retained after it returns
type Viewer interface {
	Refresh(st Status, u *Universe)
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefGenerations = 100
	DefInterval    = 50 * time.Millisecond
)

const (
	RunningStateIdle RunningState = iota
	RunningStateRun
	RunningStateFinished
)

var DefaultOptions = Options{
	Generations: DefGenerations,
	Interval:    DefInterval,
}

var ErrReleased = errors.New("simulation is closed")

//Simulation owns the current and the next generation and swaps them after each full pass
type Simulation struct {
	options Options
	state   Status
	cur     *Universe
	next    *Universe
	views   []Viewer
}

//NewSimulation takes ownership of u and allocates the buffer for the next generation
func NewSimulation(u *Universe, o Options) (*Simulation, error) {
	next, err := New(u.Rows(), u.Cols(), u.Toroidal())
	if err != nil {
		return nil, err
	}
	s := &Simulation{options: o, cur: u, next: next}
	s.state.LiveCells = u.LiveCells()
	return s, nil
}

//Current returns the last completed generation
func (s *Simulation) Current() *Universe {
	return s.cur
}

func (s *Simulation) Status() Status {
	return s.state
}

func (s *Simulation) Options() Options {
	return s.options
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
}

//Step computes one generation and makes it current
func (s *Simulation) Step() error {
	_, err := s.step()
	return err
}

func (s *Simulation) step() (Stats, error) {
	if s.cur == nil {
		return Stats{}, ErrReleased
	}
	st, err := Advance(s.cur, s.next)
	if err != nil {
		return st, err
	}
	s.cur, s.next = s.next, s.cur
	s.state.Generation++
	s.state.LiveCells = st.LiveCells
	s.state.IterationTime = st.IterationTime
	s.refreshView()
	return st, nil
}

//Run simulates the configured number of generations
//ctx is checked between generations only, a generation in progress is always completed
func (s *Simulation) Run(ctx context.Context) error {
	s.switchRunningState(RunningStateRun)
	for s.state.Generation < s.options.Generations {
		if err := ctx.Err(); err != nil {
			s.switchRunningState(RunningStateIdle)
			return err
		}
		st, err := s.step()
		if err != nil {
			s.switchRunningState(RunningStateIdle)
			return err
		}
		if s.options.StopWhenStable && !st.Changed {
			break
		}
		if s.options.Interval > 0 && s.state.Generation < s.options.Generations {
			if err = sleep(ctx, s.options.Interval); err != nil {
				s.switchRunningState(RunningStateIdle)
				return err
			}
		}
	}
	s.switchRunningState(RunningStateFinished)
	return nil
}

//Close releases both generations
func (s *Simulation) Close() {
	if s.cur == nil {
		return
	}
	s.cur.Release()
	s.next.Release()
	s.cur, s.next = nil, nil
}

//switchRunningState switch the state of the simulation to RunningState and notifies the viewers
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.RunningMode = to
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh(s.state, s.cur)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
