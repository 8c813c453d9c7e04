package tour

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownLocation reports a location id missing from the table.
	ErrUnknownLocation = errors.New("tour: unknown location")
	// ErrInvalidTable reports a location table that failed validation.
	ErrInvalidTable = errors.New("tour: invalid location table")
)

//go:embed locations.yaml
var defaultTableSource []byte

// Hotspot kinds as written in a location table.
const (
	KindInfo     = "info"
	KindAction   = "action"
	KindTeleport = "teleport"
)

// CameraView is the default eye position and look target of a location.
type CameraView struct {
	Position common.Vec3 `yaml:"position"`
	LookAt   common.Vec3 `yaml:"lookAt"`
}

// Bounds is the walkable horizontal area of a room.
type Bounds struct {
	MinX float32 `yaml:"minX"`
	MaxX float32 `yaml:"maxX"`
	MinZ float32 `yaml:"minZ"`
	MaxZ float32 `yaml:"maxZ"`
}

// Clamp moves p into the bounds on the X and Z axes. Y is untouched.
func (b Bounds) Clamp(p common.Vec3) common.Vec3 {
	p[0] = common.Clamp(p[0], b.MinX, b.MaxX)
	p[2] = common.Clamp(p[2], b.MinZ, b.MaxZ)
	return p
}

// Contains reports whether p lies inside the bounds on the X and Z axes.
func (b Bounds) Contains(p common.Vec3) bool {
	return p[0] >= b.MinX && p[0] <= b.MaxX && p[2] >= b.MinZ && p[2] <= b.MaxZ
}

// HotspotSpec declares one hotspot of a location. Which fields apply depends on Kind.
type HotspotSpec struct {
	Kind        string      `yaml:"kind"`
	Position    common.Vec3 `yaml:"position"`
	Title       string      `yaml:"title,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Action      string      `yaml:"action,omitempty"`
	Target      string      `yaml:"target,omitempty"`
	Label       string      `yaml:"label,omitempty"`
	Scale       float32     `yaml:"scale,omitempty"`
}

// Location is one entry of the location table.
type Location struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Button      string        `yaml:"button,omitempty"`
	Description string        `yaml:"description"`
	Camera      CameraView    `yaml:"camera"`
	Bounds      Bounds        `yaml:"bounds"`
	Hotspots    []HotspotSpec `yaml:"hotspots"`
}

// LocationTable is the static configuration of every tour location.
type LocationTable struct {
	Fallback  string     `yaml:"fallback"`
	Start     string     `yaml:"start,omitempty"`
	Locations []Location `yaml:"locations"`
}

// Lookup returns the location with the given id.
//
// Parameters:
//   - id: the location id
//
// Returns:
//   - *Location: the entry, nil when missing
//   - bool: true when the id exists
func (t *LocationTable) Lookup(id string) (*Location, bool) {
	for i := range t.Locations {
		if t.Locations[i].ID == id {
			return &t.Locations[i], true
		}
	}
	return nil, false
}

// IDs returns the location ids in table order.
func (t *LocationTable) IDs() []string {
	ids := make([]string, len(t.Locations))
	for i, l := range t.Locations {
		ids[i] = l.ID
	}
	return ids
}

// StartID returns the location a first tour starts in: Start when set, else Fallback.
func (t *LocationTable) StartID() string {
	if t.Start != "" {
		return t.Start
	}
	return t.Fallback
}

// Validate checks the table for duplicate or empty ids, a missing fallback or start location,
// inverted bounds, default cameras outside their bounds, unknown hotspot kinds and dangling teleport
// targets.
//
// Returns:
//   - error: every problem found joined together and wrapping ErrInvalidTable, nil when valid
func (t *LocationTable) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...)))
	}

	if len(t.Locations) == 0 {
		fail("no locations")
	}
	seen := make(map[string]bool, len(t.Locations))
	for _, l := range t.Locations {
		if l.ID == "" {
			fail("location with empty id")
			continue
		}
		if seen[l.ID] {
			fail("duplicate location %q", l.ID)
		}
		seen[l.ID] = true
	}
	if _, ok := t.Lookup(t.Fallback); !ok {
		fail("fallback %q: %v", t.Fallback, ErrUnknownLocation)
	}
	if t.Start != "" {
		if _, ok := t.Lookup(t.Start); !ok {
			fail("start %q: %v", t.Start, ErrUnknownLocation)
		}
	}

	for _, l := range t.Locations {
		b := l.Bounds
		if b.MinX > b.MaxX || b.MinZ > b.MaxZ {
			fail("location %q: inverted bounds", l.ID)
		} else if !b.Contains(l.Camera.Position) {
			fail("location %q: camera position outside bounds", l.ID)
		}
		for i, h := range l.Hotspots {
			switch h.Kind {
			case KindInfo:
			case KindAction:
				if h.Action == "" {
					fail("location %q hotspot %d: action without key", l.ID, i)
				}
			case KindTeleport:
				if _, ok := t.Lookup(h.Target); !ok {
					fail("location %q hotspot %d: teleport target %q: %v", l.ID, i, h.Target, ErrUnknownLocation)
				}
			default:
				fail("location %q hotspot %d: unknown kind %q", l.ID, i, h.Kind)
			}
			if h.Scale < 0 {
				fail("location %q hotspot %d: negative scale", l.ID, i)
			}
		}
	}
	return errors.Join(errs...)
}

// ParseTable decodes and validates a YAML location table.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *LocationTable: the decoded table
//   - error: a decode error or the validation errors
func ParseTable(data []byte) (*LocationTable, error) {
	var t LocationTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("tour: decode location table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTable reads and validates a YAML location table from disk.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *LocationTable: the decoded table
//   - error: a read, decode or validation error
func LoadTable(path string) (*LocationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tour: read location table: %w", err)
	}
	return ParseTable(data)
}

// DefaultTable returns a fresh copy of the built-in campus location table.
func DefaultTable() *LocationTable {
	t, err := ParseTable(defaultTableSource)
	if err != nil {
		panic("tour: built-in location table: " + err.Error())
	}
	return t
}
