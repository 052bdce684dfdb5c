package tracker

import (
	"fmt"

	ts "github.com/samuelfneumann/customgym/timestep"
)

// EndReason counts how the episodes of an experiment ended. Terminated
// episodes are counted under the "reason" entry of their last
// TimeStep's info, or under the end type if no reason was given.
// Truncated episodes are counted under timestep.Timeout.
type EndReason struct {
	counts   map[string]int
	filename string
}

// NewEndReason returns a new EndReason Tracker which will save its data
// at the specified location filename
func NewEndReason(filename string) *EndReason {
	return &EndReason{counts: make(map[string]int), filename: filename}
}

// Track counts the ending reason of t if it is the last timestep of an
// episode
func (e *EndReason) Track(t ts.TimeStep) {
	if !t.Last() {
		return
	}

	reason := t.EndType().String()
	if r, ok := t.Info["reason"]; ok && t.Terminated() {
		reason = r
	}
	e.counts[reason]++
}

// Data returns the number of episodes ended for each reason
func (e *EndReason) Data() map[string]int {
	data := make(map[string]int, len(e.counts))
	for k, v := range e.counts {
		data[k] = v
	}
	return data
}

// Save saves the data tracked by the EndReason Tracker to disk.
func (e *EndReason) Save() error {
	if err := save(e.filename, e.counts); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
