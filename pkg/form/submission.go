package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/logger"
	"plataform/pkg/snackbar"
)

const (
	MsgRequiredFields = "Preencha os campos obrigatórios."
	MsgSuccess        = "Cadastro realizado com sucesso!"
	MsgFailure        = "Ocorreu um erro."
)

// ErrAlreadySubmitted rejects a submit after the record was accepted. The
// record is done at that point; a new one starts on a fresh page.
var ErrAlreadySubmitted = &apperr.SubmissionError{Err: errors.New("record already submitted")}

type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Notifier receives the outcome messages; *snackbar.Snackbar implements it.
type Notifier interface {
	Show(message string, severity snackbar.Severity, icon string)
}

// Sender delivers an assembled payload to the backend.
type Sender interface {
	SubmitPlataform(ctx context.Context, p entities.PlataformPayload) error
}

// Outcome is the result of one submit attempt.
type Outcome struct {
	State       State
	FieldErrors FieldErrors
	Payload     *entities.PlataformPayload
	Err         error
}

// Submission drives Idle → Validating → {Invalid → Idle | Submitting →
// {Succeeded | Failed → Idle}}. Invalid and Failed are transient: the
// machine rests in Idle afterwards, or in Succeeded until the next attempt.
type Submission struct {
	mu       sync.Mutex
	state    State
	notifier Notifier
	sender   Sender
	assemble func(Record) (entities.PlataformPayload, error)
	trace    []State
}

func NewSubmission(n Notifier, s Sender) *Submission {
	return &Submission{notifier: n, sender: s, assemble: Assemble}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RestartVisible reports whether the restart affordance is shown: only
// after a successful submission.
func (s *Submission) RestartVisible() bool { return s.State() == StateSucceeded }

// history returns every state entered since creation.
func (s *Submission) history() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]State(nil), s.trace...)
}

// Submit validates r against the latest reference lists and, when valid,
// assembles and sends the payload. A submit while another is in flight
// is rejected as a failure without touching the notification, and so is any
// submit after a success.
func (s *Submission) Submit(ctx context.Context, r Record, infos []entities.PropertyInfo, labs []entities.Laboratory) Outcome {
	s.mu.Lock()
	if s.state == StateSucceeded {
		s.mu.Unlock()
		return Outcome{State: StateSucceeded, FieldErrors: FieldErrors{}, Err: ErrAlreadySubmitted}
	}
	if s.state == StateValidating || s.state == StateSubmitting {
		s.mu.Unlock()
		return Outcome{State: StateFailed, Err: &apperr.SubmissionError{Err: fmt.Errorf("submission already %s", s.state)}}
	}
	s.enter(StateValidating)
	s.mu.Unlock()

	res := ValidateAgainst(r, infos, labs)
	if !res.Valid {
		s.transition(StateInvalid)
		logger.WithFields(map[string]any{"component": "form", "fields": res.FieldErrors.Fields()}).Info("submit rejected")
		s.notifier.Show(MsgRequiredFields, snackbar.SeverityError, snackbar.IconWarning)
		s.transition(StateIdle)
		return Outcome{State: StateInvalid, FieldErrors: res.FieldErrors, Err: res.Err()}
	}

	s.transition(StateSubmitting)
	payload, err := s.send(ctx, r)
	if err != nil {
		s.transition(StateFailed)
		logger.WithFields(map[string]any{"component": "form"}).WithError(err).Warn("submit failed")
		s.notifier.Show(MsgFailure, snackbar.SeverityError, snackbar.IconWarning)
		s.transition(StateIdle)
		return Outcome{State: StateFailed, FieldErrors: FieldErrors{}, Err: err}
	}

	s.transition(StateSucceeded)
	logger.WithFields(map[string]any{"component": "form", "payload": payload}).Info("plataform submitted")
	s.notifier.Show(MsgSuccess, snackbar.SeveritySuccess, snackbar.IconCheck)
	return Outcome{State: StateSucceeded, FieldErrors: FieldErrors{}, Payload: &payload}
}

func (s *Submission) send(ctx context.Context, r Record) (p entities.PlataformPayload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &apperr.SubmissionError{Err: fmt.Errorf("assemble panicked: %v", rec)}
		}
	}()
	p, err = s.assemble(r)
	if err != nil {
		return p, &apperr.SubmissionError{Err: err}
	}
	if s.sender == nil {
		return p, nil
	}
	if err := s.sender.SubmitPlataform(ctx, p); err != nil {
		return p, &apperr.SubmissionError{Err: err}
	}
	return p, nil
}

func (s *Submission) transition(to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enter(to)
}

func (s *Submission) enter(to State) {
	s.state = to
	s.trace = append(s.trace, to)
}
