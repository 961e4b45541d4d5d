package dto

import "time"

type StartInput struct {
	Mode     string        // empty uses the configured mode
	Duration time.Duration // zero uses the configured focus duration
}

type StatusOutput struct {
	Active     bool
	ID         string
	Day        int
	Mode       string
	State      string
	Duration   time.Duration
	Elapsed    time.Duration
	Remaining  time.Duration
	Generation uint64
	Done       bool
}

type TickOutput struct {
	Applied  bool
	Status   StatusOutput
	Finished *StopOutput
}

// StopOutput describes how a session ended and what it credited.
type StopOutput struct {
	ID            string
	Day           int
	Mode          string
	Elapsed       time.Duration
	Finished      bool // countdown ran to zero
	XPAwarded     int
	HoursAwarded  float64
	MinutesLogged int
}

type RunInput struct {
	Duration time.Duration
	OnTick   func(StatusOutput)
}
