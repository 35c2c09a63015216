package models

import "fmt"

// SessionState is the visible lifecycle state of one upload session.
type SessionState string

const (
	SessionLoading            SessionState = "loading"
	SessionInvalid            SessionState = "invalid"
	SessionAlreadyCompleted   SessionState = "already_completed"
	SessionAwaitingSubmission SessionState = "awaiting_submission"
	SessionUploading          SessionState = "uploading"
	SessionComplete           SessionState = "complete"
)

// sessionTransitions lists the legal moves. Invalid, AlreadyCompleted and
// Complete are terminal for the session's lifetime; a failed submission
// drops back from Uploading to AwaitingSubmission.
var sessionTransitions = map[SessionState][]SessionState{
	SessionLoading:            {SessionInvalid, SessionAlreadyCompleted, SessionAwaitingSubmission},
	SessionAwaitingSubmission: {SessionUploading},
	SessionUploading:          {SessionAwaitingSubmission, SessionComplete},
}

// UploadSession holds the state of one form session. It is created per page
// load and mutated only through Transition, so rendering stays a pure
// function of State plus ErrorMessage.
type UploadSession struct {
	Token         string       `json:"token"`
	ApplicantName string       `json:"applicant_name,omitempty"`
	State         SessionState `json:"state"`
	ErrorMessage  string       `json:"error_message,omitempty"`
}

// NewUploadSession starts a session in the Loading state.
func NewUploadSession(token string) *UploadSession {
	return &UploadSession{
		Token: token,
		State: SessionLoading,
	}
}

// CanTransition reports whether moving to next is legal from the current state.
func (s *UploadSession) CanTransition(next SessionState) bool {
	for _, allowed := range sessionTransitions[s.State] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the session to next, or fails when the move is illegal.
func (s *UploadSession) Transition(next SessionState) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("illegal session transition %s -> %s", s.State, next)
	}
	s.State = next
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s *UploadSession) IsTerminal() bool {
	return len(sessionTransitions[s.State]) == 0
}
