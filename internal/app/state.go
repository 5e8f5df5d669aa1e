package app

import "weathernow/internal/weather"

// State is the single presentation aggregate. It is owned by one
// Coordinator per session and mutated only through reduce.
type State struct {
	City      string            `json:"city"`
	InputCity string            `json:"inputCity"`
	Weather   *weather.Snapshot `json:"weather,omitempty"`
	Loading   bool              `json:"loading"`
	Err       string            `json:"error,omitempty"`
}

// Event is a single state transition input.
type Event interface {
	isEvent()
}

// flowStarted resets the outcome fields before any work begins, so the
// UI never shows a stale snapshot next to a fresh loading indicator.
type flowStarted struct{}

// citySet records the place label determined during a flow.
type citySet struct {
	name string
}

// inputChanged echoes the search text field.
type inputChanged struct {
	text string
}

// weatherLoaded settles a flow successfully.
type weatherLoaded struct {
	snapshot weather.Snapshot
}

// flowFailed settles a flow with a user-facing message.
type flowFailed struct {
	message string
}

func (flowStarted) isEvent()   {}
func (citySet) isEvent()       {}
func (inputChanged) isEvent()  {}
func (weatherLoaded) isEvent() {}
func (flowFailed) isEvent()    {}

// fallbackErrMessage settles a flow whose failure carried no message.
const fallbackErrMessage = "Something went wrong"

// reduce is the pure transition function (State, Event) → State.
func reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case flowStarted:
		s.Loading = true
		s.Err = ""
		s.Weather = nil
	case citySet:
		s.City = e.name
	case inputChanged:
		s.InputCity = e.text
	case weatherLoaded:
		snap := e.snapshot
		s.Weather = &snap
		s.Err = ""
		s.Loading = false
	case flowFailed:
		msg := e.message
		if msg == "" {
			msg = fallbackErrMessage
		}
		s.Err = msg
		s.Weather = nil
		s.Loading = false
	}
	return s
}
