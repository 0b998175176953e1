// Package snackbar is the single-slot transient notification of a form page.
// A new message replaces the visible one; there is no queue.
package snackbar

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

const (
	IconWarning = "warning"
	IconCheck   = "check"
	IconInfo    = "info"
)

// CloseReason tells Close why it was called.
type CloseReason string

const (
	ReasonClickaway CloseReason = "clickaway"
	ReasonCloseIcon CloseReason = "closeIcon"
	ReasonTimeout   CloseReason = "timeout"
)

const DefaultAutoHide = 6 * time.Second

type Anchor struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

type State struct {
	Visible  bool     `json:"visible"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Icon     string   `json:"icon"`
	Anchor   Anchor   `json:"anchor"`
}

// Timer is the part of *time.Timer the snackbar needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

type Snackbar struct {
	mu        sync.Mutex
	state     State
	autoHide  time.Duration
	afterFunc AfterFunc
	timer     Timer
	gen       uint64
	onChange  func(State)
}

type Option func(*Snackbar)

func WithAutoHide(d time.Duration) Option {
	return func(s *Snackbar) {
		if d > 0 {
			s.autoHide = d
		}
	}
}

func WithAfterFunc(f AfterFunc) Option {
	return func(s *Snackbar) { s.afterFunc = f }
}

// WithOnChange registers a callback fired after every visible change.
// It runs without the snackbar lock held.
func WithOnChange(f func(State)) Option {
	return func(s *Snackbar) { s.onChange = f }
}

func New(opts ...Option) *Snackbar {
	s := &Snackbar{
		state: State{
			Severity: SeverityError,
			Icon:     IconWarning,
			Anchor:   Anchor{Vertical: "bottom", Horizontal: "center"},
		},
		autoHide: DefaultAutoHide,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show overwrites the slot and restarts the auto-hide countdown.
func (s *Snackbar) Show(message string, severity Severity, icon string) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.state.Visible = true
	s.state.Message = message
	s.state.Severity = severity
	s.state.Icon = icon
	s.timer = s.afterFunc(s.autoHide, func() { s.expire(gen) })
	st := s.state
	s.mu.Unlock()
	s.notify(st)
}

// Close hides the message unless the reason is a click away from it.
// It reports whether anything was hidden.
func (s *Snackbar) Close(reason CloseReason) bool {
	if reason == ReasonClickaway {
		return false
	}
	s.mu.Lock()
	if !s.state.Visible {
		s.mu.Unlock()
		return false
	}
	s.hideLocked()
	st := s.state
	s.mu.Unlock()
	s.notify(st)
	return true
}

// State returns a copy of the slot.
func (s *Snackbar) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop cancels a pending auto-hide. Used when the owning page goes away.
func (s *Snackbar) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// expire runs from the timer; a newer Show bumps gen and wins.
func (s *Snackbar) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.state.Visible {
		s.mu.Unlock()
		return
	}
	s.hideLocked()
	st := s.state
	s.mu.Unlock()
	s.notify(st)
}

// hideLocked keeps message/severity so the last outcome stays observable.
func (s *Snackbar) hideLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state.Visible = false
}

func (s *Snackbar) notify(st State) {
	if s.onChange != nil {
		s.onChange(st)
	}
}
