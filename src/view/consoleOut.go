package view

import (
	"fmt"
	"io"
	"life/src/universe"
	"sort"
	"time"
)

//ConsoleOut reports the running configuration and the run summary as plain text
type ConsoleOut struct {
	w         io.Writer
	startTime time.Time
}

func NewConsoleOut(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w}
}

//Start prints the running configuration and starts the clock
func (c *ConsoleOut) Start(u *universe.Universe, o universe.Options) {
	c.startTime = time.Now()
	topology := "bounded"
	if u.Toroidal() {
		topology = "toroidal"
	}
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":   fmt.Sprintf("%v x %v", u.Rows(), u.Cols()),
		"Topology":    topology,
		"Generations": o.Generations,
		"Interval":    o.Interval,
		"Live cells":  u.LiveCells(),
	})
}

func (c *ConsoleOut) Refresh(st universe.Status, _ *universe.Universe) {
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		fmt.Fprintln(c.w, "Finished:")
		c.printHashData(map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		})
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Generation != 0 && st.Generation%10 == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v\n", st.Generation)
		}
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
