package domain

import (
	"time"
)

// SessionStatus represents where a tagging session ended up
type SessionStatus string

const (
	SessionStatusPending           SessionStatus = "pending"
	SessionStatusRunning           SessionStatus = "running"
	SessionStatusTagged            SessionStatus = "tagged"
	SessionStatusPushed            SessionStatus = "pushed"
	SessionStatusPushFailedPartial SessionStatus = "push_failed_partial"
	SessionStatusPushFailedNone    SessionStatus = "push_failed_none"
	SessionStatusFailed            SessionStatus = "failed"
)

// PushStatus represents the outcome of pushing tags to one remote
type PushStatus string

const (
	PushStatusPending   PushStatus = "pending"
	PushStatusCompleted PushStatus = "completed"
	PushStatusFailed    PushStatus = "failed"
)

// SessionState is the journal of a tagging session. It is an audit record for
// operators; git remains the source of truth for which tags exist.
type SessionState struct {
	SessionID string        `json:"session_id"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Branch    string        `json:"branch"`
	Commit    string        `json:"commit"`
	Tags      []string      `json:"tags"`
	Pushes    []PushRecord  `json:"pushes"`
	Status    SessionStatus `json:"status"`
	Error     string        `json:"error,omitempty"`
}

// PushRecord is the outcome of pushing tags to a single remote
type PushRecord struct {
	Remote      string     `json:"remote"`
	Status      PushStatus `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewSessionState creates a new journal for the given session
func NewSessionState(sessionID string, session Session) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID: sessionID,
		StartedAt: now,
		UpdatedAt: now,
		Branch:    session.Branch,
		Commit:    session.Commit,
		Tags:      []string{},
		Pushes:    []PushRecord{},
		Status:    SessionStatusPending,
	}
}

// Session returns the branch and commit the journal was opened for
func (s *SessionState) Session() Session {
	return Session{Branch: s.Branch, Commit: s.Commit}
}

// MarkRunning marks the session as started
func (s *SessionState) MarkRunning() {
	s.Status = SessionStatusRunning
	s.UpdatedAt = time.Now()
}

// RecordTag records a tag created during the session
func (s *SessionState) RecordTag(name string) {
	s.Tags = append(s.Tags, name)
	s.UpdatedAt = time.Now()
}

// MarkTagged marks all tag creation as done
func (s *SessionState) MarkTagged() {
	s.Status = SessionStatusTagged
	s.UpdatedAt = time.Now()
}

// RecordPush records the outcome of pushing to a remote, replacing an earlier
// record for the same remote.
func (s *SessionState) RecordPush(remote string, err error) {
	now := time.Now()
	rec := PushRecord{Remote: remote, Status: PushStatusCompleted, CompletedAt: &now}
	if err != nil {
		rec.Status = PushStatusFailed
		rec.Error = err.Error()
	}
	for i := range s.Pushes {
		if s.Pushes[i].Remote == remote {
			s.Pushes[i] = rec
			s.UpdatedAt = now
			return
		}
	}
	s.Pushes = append(s.Pushes, rec)
	s.UpdatedAt = now
}

// PendingRemotes returns the remotes, in the given order, that have not
// received the tags yet.
func (s *SessionState) PendingRemotes(remotes ...string) []string {
	var pending []string
	for _, remote := range remotes {
		if !s.pushedTo(remote) {
			pending = append(pending, remote)
		}
	}
	return pending
}

func (s *SessionState) pushedTo(remote string) bool {
	for _, p := range s.Pushes {
		if p.Remote == remote && p.Status == PushStatusCompleted {
			return true
		}
	}
	return false
}

// MarkPushed marks the session as complete
func (s *SessionState) MarkPushed() {
	s.Status = SessionStatusPushed
	s.Error = ""
	s.UpdatedAt = time.Now()
}

// MarkFailed marks the session as failed with the given status
func (s *SessionState) MarkFailed(status SessionStatus, err error) {
	s.Status = status
	if err != nil {
		s.Error = err.Error()
	}
	s.UpdatedAt = time.Now()
}
