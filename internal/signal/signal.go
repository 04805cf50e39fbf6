// Package signal holds the independent momentum/breakout detectors and
// the named-flag report they produce for one instrument.
package signal

import "strings"

// Detector names as they appear in the decision log.
const (
	FlowName     = "flow"
	BreakoutName = "boyh"
)

// Flag is one named detector outcome.
type Flag struct {
	Name string
	On   bool
}

// Report is the ordered set of detector outcomes for one instrument.
// Identities are preserved end to end so the log shows which
// combination fired, not just how many.
type Report []Flag

// Count returns how many detectors fired.
func (r Report) Count() int {
	n := 0
	for _, flag := range r {
		if flag.On {
			n++
		}
	}
	return n
}

// String renders the report as comma-joined name=0/1 pairs, e.g.
// "flow=1,boyh=0".
func (r Report) String() string {
	var b strings.Builder
	for i, flag := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(flag.Name)
		if flag.On {
			b.WriteString("=1")
		} else {
			b.WriteString("=0")
		}
	}
	return b.String()
}
