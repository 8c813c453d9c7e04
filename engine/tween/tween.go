// Package tween runs frame-driven numeric tweens on top of gween.
// Nothing here starts goroutines or timers; time only advances through Scheduler.Update.
package tween

import (
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing maps elapsed time to a value, in gween's (t, begin, change, duration) form.
type Easing = ease.TweenFunc

var (
	// Linear interpolates at constant speed.
	Linear Easing = ease.Linear
	// InQuad accelerates from zero velocity (power2.in).
	InQuad Easing = ease.InQuad
	// OutQuad decelerates to zero velocity (power2.out).
	OutQuad Easing = ease.OutQuad
	// InOutQuad accelerates then decelerates (power2.inOut).
	InOutQuad Easing = ease.InOutQuad
)

// Handle identifies a scheduled tween. The zero Handle is never issued.
type Handle uint64

// Scheduler owns a set of tweens advanced together once per frame.
type Scheduler interface {
	// To schedules a tween from one value to another.
	// onUpdate receives every intermediate value and finally exactly `to`.
	//
	// Parameters:
	//   - from: start value
	//   - to: end value
	//   - duration: length in seconds; values <= 0 complete on the next Update
	//   - easing: easing curve, Linear when nil
	//   - onUpdate: value sink, may be nil
	//   - options: delay and completion options
	//
	// Returns:
	//   - Handle: identifier usable with Cancel
	To(from, to, duration float32, easing Easing, onUpdate func(value float32), options ...TweenOption) Handle

	// Update advances every running tween by dt seconds and fires their callbacks.
	// Tweens scheduled from inside a callback start on the following Update.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// Cancel stops a tween without firing its completion callback.
	//
	// Parameters:
	//   - h: the tween
	//
	// Returns:
	//   - bool: true if the tween was still scheduled
	Cancel(h Handle) bool

	// CancelAll stops every tween without firing completion callbacks.
	CancelAll()

	// Running reports whether a tween is still scheduled.
	//
	// Parameters:
	//   - h: the tween
	//
	// Returns:
	//   - bool: true until the tween completes or is cancelled
	Running(h Handle) bool

	// Len returns the number of scheduled tweens, including ones still in their delay.
	//
	// Returns:
	//   - int: scheduled tween count
	Len() int
}

type task struct {
	handle     Handle
	tween      *gween.Tween
	to         float32
	duration   float32
	delay      float32
	onUpdate   func(float32)
	onComplete func()
}

type schedulerImpl struct {
	mu *sync.Mutex

	next    Handle
	tasks   []*task
	pending []*task
	active  map[Handle]*task
	ticking bool
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates an empty Scheduler.
//
// Returns:
//   - Scheduler: the scheduler
func NewScheduler() Scheduler {
	return &schedulerImpl{
		mu:     &sync.Mutex{},
		active: make(map[Handle]*task),
	}
}

func (s *schedulerImpl) To(from, to, duration float32, easing Easing, onUpdate func(value float32), options ...TweenOption) Handle {
	if easing == nil {
		easing = Linear
	}
	t := &task{
		to:       to,
		duration: duration,
		onUpdate: onUpdate,
	}
	for _, opt := range options {
		opt(t)
	}
	if duration > 0 {
		t.tween = gween.New(from, to, duration, easing)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	t.handle = s.next
	s.active[t.handle] = t
	if s.ticking {
		s.pending = append(s.pending, t)
	} else {
		s.tasks = append(s.tasks, t)
	}
	return t.handle
}

func (s *schedulerImpl) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}

	s.mu.Lock()
	s.ticking = true
	tasks := s.tasks
	s.mu.Unlock()

	for _, t := range tasks {
		if !s.Running(t.handle) {
			continue
		}
		step := dt
		if t.delay > 0 {
			if step < t.delay {
				t.delay -= step
				continue
			}
			step -= t.delay
			t.delay = 0
		}

		value, finished := t.to, true
		if t.tween != nil {
			value, finished = t.tween.Update(step)
			if finished {
				value = t.to
			}
		}

		if finished {
			s.finish(t)
		}
		if t.onUpdate != nil {
			t.onUpdate(value)
		}
		if finished && t.onComplete != nil {
			t.onComplete()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticking = false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if _, ok := s.active[t.handle]; ok {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = append(kept, s.pending...)
	s.pending = nil
}

// finish marks t as done so that Running reports false inside its own callbacks.
func (s *schedulerImpl) finish(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, t.handle)
}

func (s *schedulerImpl) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[h]; !ok {
		return false
	}
	delete(s.active, h)
	return true
}

func (s *schedulerImpl) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = make(map[Handle]*task)
	if !s.ticking {
		s.tasks = nil
	}
	s.pending = nil
}

func (s *schedulerImpl) Running(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[h]
	return ok
}

func (s *schedulerImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
