package flow

import (
	"context"
	"strings"
	"sync"
)

// State is the engine's position in the question/answer/feedback loop.
type State int

const (
	StateGeneratingQuestion State = iota
	StateAwaitingAnswer
	StateGrading
	StateShowingFeedback
)

func (s State) String() string {
	switch s {
	case StateGeneratingQuestion:
		return "GeneratingQuestion"
	case StateAwaitingAnswer:
		return "AwaitingAnswer"
	case StateGrading:
		return "Grading"
	case StateShowingFeedback:
		return "ShowingFeedback"
	default:
		return "Unknown"
	}
}

// Engine runs one active interview session. All transient state lives here
// and is discarded with the engine; nothing is persisted locally.
//
// Each remote call captures an epoch before release and re-checks it before
// applying the response, so a response that outlives its view (Abandon) or
// its round (a newer request) is dropped instead of applied.
type Engine struct {
	backend Backend

	mu         sync.Mutex
	sessionID  string
	jobRole    string
	epoch      uint64
	state      State
	inFlight   bool
	question   string
	userAnswer string
	feedback   *Feedback
	errMsg     string
}

// Snapshot is a read-only view of the engine for rendering.
type Snapshot struct {
	State        State
	SessionID    string
	JobRole      string
	Question     string
	UserAnswer   string
	Feedback     *Feedback
	Err          string
	IsGenerating bool
	IsGrading    bool
}

// NewEngine refuses entry without a job role; that case belongs back at the
// initiator.
func NewEngine(backend Backend, handoff Handoff) (*Engine, error) {
	if strings.TrimSpace(handoff.JobRole) == "" {
		return nil, ErrRoleRequired
	}

	return &Engine{
		backend:   backend,
		sessionID: handoff.SessionID,
		jobRole:   handoff.JobRole,
		state:     StateGeneratingQuestion,
	}, nil
}

// Begin triggers the automatic first question generation on session entry.
func (e *Engine) Begin(ctx context.Context) error {
	return e.generate(ctx)
}

// SetAnswer updates the draft answer. Only valid while the answer surface
// is visible.
func (e *Engine) SetAnswer(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateAwaitingAnswer {
		return ErrNotActionable
	}
	e.userAnswer = text
	return nil
}

// SubmitAnswer sends the draft for grading. Whitespace-only drafts are
// refused locally; the submitted text is sent exactly as drafted. On failure
// the draft survives so the user can retry.
func (e *Engine) SubmitAnswer(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateAwaitingAnswer {
		busy := e.inFlight
		e.mu.Unlock()
		if busy {
			return ErrBusy
		}
		return ErrNotActionable
	}
	if strings.TrimSpace(e.userAnswer) == "" {
		e.mu.Unlock()
		return ErrAnswerRequired
	}

	e.state = StateGrading
	e.inFlight = true
	e.errMsg = ""
	e.epoch++
	epoch := e.epoch
	sessionID, question, answer := e.sessionID, e.question, e.userAnswer
	e.mu.Unlock()

	fb, err := e.backend.GradeAnswer(ctx, sessionID, question, answer)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.epoch != epoch {
		// Stale response; the view moved on.
		return nil
	}
	e.inFlight = false

	if err != nil {
		e.errMsg = bannerMessage(err)
		e.state = StateAwaitingAnswer
		return nil
	}

	e.feedback = &fb
	e.state = StateShowingFeedback
	return nil
}

// NextPrompt discards the shown feedback and generates a fresh question. It
// is also the retry path when generation failed before any question existed.
func (e *Engine) NextPrompt(ctx context.Context) error {
	e.mu.Lock()
	actionable := e.state == StateShowingFeedback ||
		(e.state == StateAwaitingAnswer && e.question == "")
	if !actionable {
		e.mu.Unlock()
		return ErrNotActionable
	}
	e.mu.Unlock()

	return e.generate(ctx)
}

// Abandon invalidates any in-flight request; its response will be dropped
// on arrival. Called when the user navigates away from the session view.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epoch++
	e.inFlight = false
}

// Snapshot returns a copy of the current view state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var fb *Feedback
	if e.feedback != nil {
		copied := *e.feedback
		fb = &copied
	}

	return Snapshot{
		State:        e.state,
		SessionID:    e.sessionID,
		JobRole:      e.jobRole,
		Question:     e.question,
		UserAnswer:   e.userAnswer,
		Feedback:     fb,
		Err:          e.errMsg,
		IsGenerating: e.state == StateGeneratingQuestion && e.inFlight,
		IsGrading:    e.state == StateGrading && e.inFlight,
	}
}

func (e *Engine) generate(ctx context.Context) error {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return ErrBusy
	}

	e.state = StateGeneratingQuestion
	e.inFlight = true
	e.errMsg = ""
	e.feedback = nil
	e.userAnswer = ""
	e.epoch++
	epoch := e.epoch
	jobRole := e.jobRole
	e.mu.Unlock()

	question, err := e.backend.GenerateQuestion(ctx, jobRole)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.epoch != epoch {
		return nil
	}
	e.inFlight = false

	if err != nil {
		e.errMsg = bannerMessage(err)
		e.question = ""
		e.state = StateAwaitingAnswer
		return nil
	}

	e.question = question
	e.state = StateAwaitingAnswer
	return nil
}
