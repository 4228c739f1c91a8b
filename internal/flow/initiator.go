package flow

import (
	"context"
	"errors"
	"strings"
)

// Handoff carries the session identity from the initiator to the engine.
type Handoff struct {
	SessionID string
	JobRole   string
}

// Initiator creates a remote interview session from a role and an identity.
type Initiator struct {
	backend Backend
}

func NewInitiator(backend Backend) *Initiator {
	return &Initiator{backend: backend}
}

// CanStart mirrors the UI-disable contract: the start control is only
// actionable for a signed-in identity and a non-blank role.
func (i *Initiator) CanStart(role string, id Identity) bool {
	return id.SignedIn() && strings.TrimSpace(role) != ""
}

// Start issues one create-session request and returns the handoff for the
// engine. Preconditions are refused locally without touching the network;
// every call is an independent request with no idempotency guarantee, so a
// repeated Start creates a new remote session each time.
func (i *Initiator) Start(ctx context.Context, role string, id Identity) (Handoff, error) {
	if !id.Ready {
		return Handoff{}, ErrIdentityNotReady
	}
	if id.UserID == "" {
		return Handoff{}, ErrSignInRequired
	}
	if strings.TrimSpace(role) == "" {
		return Handoff{}, ErrRoleRequired
	}

	sessionID, err := i.backend.StartInterview(ctx, role, id.UserID)
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			return Handoff{}, remote
		}
		return Handoff{}, ErrConnectionFailed
	}

	// A success response without an identifier is no session at all.
	if sessionID == "" {
		return Handoff{}, ErrMalformedResponse
	}

	return Handoff{SessionID: sessionID, JobRole: role}, nil
}
