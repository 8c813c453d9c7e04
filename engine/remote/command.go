// Package remote is the browser-facing control surface of the tour: a small HTTP API and a
// websocket that streams the HUD and accepts commands. Handlers never touch the tour directly;
// they queue commands that the frame loop applies.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownCommand reports a command type the tour does not understand.
var ErrUnknownCommand = errors.New("remote: unknown command")

// CommandType names a remote command.
type CommandType string

const (
	CommandStart       CommandType = "start"
	CommandEnd         CommandType = "end"
	CommandSetLocation CommandType = "set_location"
)

// Command is one request to change the tour, as sent over the websocket.
type Command struct {
	Type     CommandType `json:"type"`
	Location string      `json:"location,omitempty"`
}

// Validate checks the command type and that set_location names a location.
func (c Command) Validate() error {
	switch c.Type {
	case CommandStart, CommandEnd:
		return nil
	case CommandSetLocation:
		if c.Location == "" {
			return fmt.Errorf("remote: %s without location", c.Type)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
	}
}

// ParseCommand decodes and validates a JSON command.
//
// Parameters:
//   - data: the JSON message
//
// Returns:
//   - Command: the decoded command
//   - error: a decode or validation error
func ParseCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("remote: decode command: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// Target is the tour surface commands drive. tour.Manager satisfies it.
type Target interface {
	Start()
	End()
	SetLocation(id string)
}

// Apply runs the command against t.
func (c Command) Apply(t Target) {
	switch c.Type {
	case CommandStart:
		t.Start()
	case CommandEnd:
		t.End()
	case CommandSetLocation:
		t.SetLocation(c.Location)
	}
}

// CommandQueue buffers commands from HTTP goroutines until the frame goroutine drains them.
type CommandQueue interface {
	// Push appends a command. Safe for concurrent use.
	//
	// Parameters:
	//   - c: the command
	//
	// Returns:
	//   - bool: false when the queue is full and the command was dropped
	Push(c Command) bool

	// Drain returns every pending command in push order and empties the queue.
	Drain() []Command

	// ApplyTo drains the queue and applies every command to t in order.
	//
	// Parameters:
	//   - t: the tour
	//
	// Returns:
	//   - int: the number of applied commands
	ApplyTo(t Target) int

	// Len returns the number of pending commands.
	Len() int
}

type commandQueue struct {
	mu      *sync.Mutex
	pending []Command
	limit   int
}

var _ CommandQueue = &commandQueue{}

// NewCommandQueue creates a queue holding at most limit commands; limit <= 0 selects 64.
func NewCommandQueue(limit int) CommandQueue {
	if limit <= 0 {
		limit = 64
	}
	return &commandQueue{mu: &sync.Mutex{}, limit: limit}
}

func (q *commandQueue) Push(c Command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) >= q.limit {
		return false
	}
	q.pending = append(q.pending, c)
	return true
}

func (q *commandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *commandQueue) ApplyTo(t Target) int {
	cmds := q.Drain()
	for _, c := range cmds {
		c.Apply(t)
	}
	return len(cmds)
}

func (q *commandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
