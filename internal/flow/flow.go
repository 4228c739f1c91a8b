// Package flow holds the client-side interview session logic: starting a
// session, the question/answer/feedback loop, and history browsing. It is
// pure state-machine code over a Backend interface; transports live elsewhere.
package flow

import (
	"context"
	"errors"
	"time"
)

// Identity is the externally-managed user identity, passed explicitly into
// every action rather than read from ambient state.
type Identity struct {
	UserID string
	Ready  bool
}

// SignedIn reports whether the identity provider finished loading and
// produced a user.
func (id Identity) SignedIn() bool {
	return id.Ready && id.UserID != ""
}

// Backend is the remote collaborator that generates questions, grades
// answers, and persists sessions.
type Backend interface {
	StartInterview(ctx context.Context, jobRole, userID string) (string, error)
	GenerateQuestion(ctx context.Context, jobRole string) (string, error)
	GradeAnswer(ctx context.Context, interviewID, question, userAnswer string) (Feedback, error)
	ListInterviews(ctx context.Context, userID string) ([]Session, error)
}

// Feedback is one grading result. Improvement is only present in the live
// response; history records carry just question/answer/feedback/score.
type Feedback struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
}

// Session is one past interview as returned by the list endpoint.
type Session struct {
	ID        string    `json:"id"`
	JobRole   string    `json:"jobRole"`
	CreatedAt time.Time `json:"createdAt"`
	QAPairs   []QAPair  `json:"qaPairs"`
}

// PromptCount is the number of completed grading rounds.
func (s Session) PromptCount() int {
	return len(s.QAPairs)
}

type QAPair struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	AIFeedback string `json:"aiFeedback"`
	Score      int    `json:"score"`
}

// Validation refusals. These mean "the control is disabled": no request was
// sent and no banner should be shown.
var (
	ErrIdentityNotReady = errors.New("identity is still loading")
	ErrSignInRequired   = errors.New("sign in required")
	ErrRoleRequired     = errors.New("job role is required")
	ErrAnswerRequired   = errors.New("answer is required")
	ErrBusy             = errors.New("another request is in flight")
	ErrNotActionable    = errors.New("action not available in this state")
)

// User-facing fallback messages, matching what the product shows when the
// backend gives nothing better.
var (
	ErrConnectionFailed  = errors.New("Failed to reach backend.")
	ErrMalformedResponse = errors.New("Connection error.")
)

const connectionFailedBanner = "Connection failed."

// RemoteError is a non-2xx backend response. Its message is surfaced to the
// user verbatim.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// bannerMessage converts a failed remote call into the single-slot error
// banner text: remote rejections verbatim, everything else generic.
func bannerMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return connectionFailedBanner
}
