package view

import (
	"bytes"
	"context"
	"fmt"
	"life/src/universe"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"golang.org/x/sync/errgroup"
)

const (
	fieldView  = "universe"
	statusView = "status"
)

type keyBindings struct {
	key     interface{}
	name    string
	descr   string
	handler func(v *gocui.View) error
}

//ConsoleUI animates the simulation in the terminal, one frame per generation
//the latest generation is kept in a snapshot which every layout pass draws
type ConsoleUI struct {
	g          *gocui.Gui
	k          []keyBindings
	stop       context.CancelFunc
	post       func(func(*gocui.Gui) error)
	liveFiller string

	mu     sync.Mutex
	frame  []string
	status universe.Status

	//laidOut is the status of the last drawn snapshot, owned by the main loop
	laidOut universe.Status
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateIdle:     aurora.Colorize("stopped", aurora.BlueFg).String(),
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewConsoleUI() (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t := ConsoleUI{
		g:          g,
		liveFiller: aurora.Green("o").String(),
	}
	t.post = g.Update
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Stop", t.cmdStop},
		{'q', "Q", "Stop", t.cmdStop},
	}
	t.g.SetManagerFunc(t.layout)
	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding("", kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

//Animate runs the simulation while the terminal main loop draws it
//the terminal is restored before Animate returns
func (t *ConsoleUI) Animate(ctx context.Context, s *universe.Simulation) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.stop = cancel
	t.store(s.Status(), renderFrame(s.Current()))
	s.RegisterViewer(t)

	var eg errgroup.Group
	eg.Go(func() error {
		err := s.Run(ctx)
		t.post(t.quitWhenDrawn(s.Status()))
		return err
	})
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		cancel()
		_ = eg.Wait()
		t.g.Close()
		return fmt.Errorf("terminal main loop: %w", err)
	}
	err := eg.Wait()
	t.g.Close()
	return err
}

//Refresh snapshots the generation, the frame is drawn later from the terminal main loop
func (t *ConsoleUI) Refresh(st universe.Status, u *universe.Universe) {
	t.store(st, renderFrame(u))
	//updates run in no particular order, so they only wake the main loop up
	t.post(func(*gocui.Gui) error { return nil })
}

func (t *ConsoleUI) store(st universe.Status, frame []string) {
	t.mu.Lock()
	t.status, t.frame = st, frame
	t.mu.Unlock()
}

func (t *ConsoleUI) snapshot() (universe.Status, []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.frame
}

//quitWhenDrawn quits the main loop once the final status has been laid out and flushed
//until then it requeues itself, returning nil lets the main loop flush first
func (t *ConsoleUI) quitWhenDrawn(final universe.Status) func(*gocui.Gui) error {
	var quit func(*gocui.Gui) error
	quit = func(*gocui.Gui) error {
		if t.laidOut == final {
			return gocui.ErrQuit
		}
		t.post(quit)
		return nil
	}
	return quit
}

//renderFrame draws the live cells as 'o' at their row/column, dead cells are blank
func renderFrame(u *universe.Universe) []string {
	a := u.Area()
	frame := make([]string, len(a.Entities))
	b := make([]byte, a.Cols)
	for r, l := range a.Entities {
		for c, e := range l {
			if e {
				b[c] = 'o'
			} else {
				b[c] = ' '
			}
		}
		frame[r] = strings.TrimRight(string(b), " ")
	}
	return frame
}

//cropFrame cuts the frame to the view size, the last visible line carries a warning when cropped
func (t *ConsoleUI) cropFrame(frame []string, maxW int, maxH int) string {
	var b bytes.Buffer
	for i, l := range frame {
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if len(frame) > maxH && i == maxH-1 {
			b.WriteString(aurora.Red("The universe is larger than the terminal").BgBlack().String())
			break
		}
		if len(l) > maxW {
			l = l[:maxW]
		}
		b.WriteString(strings.ReplaceAll(l, "o", t.liveFiller))
	}
	return b.String()
}

func (t *ConsoleUI) renderField(frame []string) {
	v, err := t.g.View(fieldView)
	if err != nil {
		return
	}
	v.Clear()
	maxW, maxH := v.Size()
	_, _ = fmt.Fprint(v, t.cropFrame(frame, maxW, maxH))
}

func (t *ConsoleUI) renderStatus(st universe.Status) {
	v, err := t.g.View(statusView)
	if err != nil {
		return
	}
	v.Clear()
	_, _ = fmt.Fprintf(v, "%s  %s  %s  %s",
		t.renderProp("Generation", "%v", st.Generation),
		t.renderProp("Live cells", "%v", st.LiveCells),
		t.renderProp("Mode", "%v", runningStateDescr[st.RunningMode]),
		t.renderKeys())
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) renderKeys() string {
	b := bytes.Buffer{}
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

//layout runs on every flush of the main loop and draws the latest snapshot
func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	st, frame := t.snapshot()

	if v, err := g.SetView(fieldView, -1, -1, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}
	t.renderField(frame)

	if v, err := g.SetView(statusView, -1, maxY-2, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}
	t.renderStatus(st)
	t.laidOut = st
	return nil
}

//cmdStop stops the simulation after the current generation, the main loop quits when it returns
func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	if t.stop != nil {
		t.stop()
	}
	return nil
}
