package routing

import (
	"errors"
	"fmt"
)

// Route identifies a dashboard page
type Route string

// Dashboard pages
const (
	RouteHome          Route = "home"
	RouteSpeed         Route = "page1"
	RouteSpeedOverTime Route = "page2"
)

// Event is a sidebar navigation button press
type Event string

// Sidebar buttons
const (
	EventNone          Event = ""
	EventHome          Event = "home"
	EventSpeed         Event = "speed"
	EventSpeedOverTime Event = "speed_over_time"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrUnknownEvent = errors.New("unknown navigation event")
)

var targets = map[Event]Route{
	EventHome:          RouteHome,
	EventSpeed:         RouteSpeed,
	EventSpeedOverTime: RouteSpeedOverTime,
}

// Routes lists every page in sidebar order
func Routes() []Route {
	return []Route{RouteHome, RouteSpeed, RouteSpeedOverTime}
}

// ParseRoute validates a route key; an empty key selects the home page
func ParseRoute(s string) (Route, error) {
	if s == "" {
		return RouteHome, nil
	}
	r := Route(s)
	for _, known := range Routes() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoute, s)
}

// Navigate returns the page to show after event happens on current.
// EventNone keeps the current page.
func Navigate(current Route, event Event) (Route, error) {
	if _, err := ParseRoute(string(current)); err != nil {
		return "", err
	}
	if event == EventNone {
		if current == "" {
			return RouteHome, nil
		}
		return current, nil
	}
	next, ok := targets[event]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return next, nil
}
