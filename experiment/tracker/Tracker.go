// Package tracker implements Trackers, which track and save data in an
// experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/customgym/environment"
	ts "github.com/samuelfneumann/customgym/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// save gob-encodes data into the file at filename
func save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %w", err)
	}

	en := gob.NewEncoder(file)
	if err := en.Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("could not encode data: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close save file: %w", err)
	}
	return nil
}

// LoadData loads the data saved by a Tracker into data, which should
// be a pointer to the type of data the Tracker saves
func LoadData(filename string, data interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return nil
}

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
//
// This may be useful if an experiment is run using an Environment
// wrapper but the data from the wrapped Environment needs to be
// tracked.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register returns a Tracker which tracks the most recent TimeStep of
// env, ignoring the TimeSteps passed to its Track method.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered Environment.
func (r *registeredTracker) Track(ts.TimeStep) {
	r.Tracker.Track(r.env.CurrentTimeStep())
}
