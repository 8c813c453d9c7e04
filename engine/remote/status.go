package remote

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
)

// LocationInfo describes one navigable location.
type LocationInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Button string `json:"button,omitempty"`
}

// Status is the tour state published by the frame loop for HTTP readers.
type Status struct {
	Active        bool           `json:"active"`
	Location      string         `json:"location"`
	Transitioning bool           `json:"transitioning"`
	Locations     []LocationInfo `json:"locations"`
}

// StatusOf captures the status of m. Call it on the frame goroutine.
//
// Parameters:
//   - m: the tour manager
//
// Returns:
//   - Status: the current status
func StatusOf(m tour.Manager) Status {
	s := Status{
		Active:        m.Active(),
		Location:      m.CurrentLocation(),
		Transitioning: m.Transitioning(),
	}
	for _, l := range m.Table().Locations {
		s.Locations = append(s.Locations, LocationInfo{ID: l.ID, Name: l.Name, Button: l.Button})
	}
	return s
}

// statusBoard holds the last published Status.
type statusBoard struct {
	mu     *sync.RWMutex
	status Status
}

func newStatusBoard() *statusBoard {
	return &statusBoard{mu: &sync.RWMutex{}}
}

func (b *statusBoard) publish(s Status) {
	locs := make([]LocationInfo, len(s.Locations))
	copy(locs, s.Locations)
	s.Locations = locs

	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = s
}

func (b *statusBoard) get() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.status
	s.Locations = make([]LocationInfo, len(b.status.Locations))
	copy(s.Locations, b.status.Locations)
	return s
}
