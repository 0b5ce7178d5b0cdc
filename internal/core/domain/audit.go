package domain

import "time"

// AuthEventType names what happened in an authentication flow.
type AuthEventType string

const (
	EventRegister AuthEventType = "register"
	EventLogin    AuthEventType = "login"
)

// AuthOutcome is the result recorded for an AuthEvent.
type AuthOutcome string

const (
	OutcomeSuccess AuthOutcome = "success"
	OutcomeFailure AuthOutcome = "failure"
)

// AuthEvent is one entry of the authentication audit trail.
type AuthEvent struct {
	ID       string
	Type     AuthEventType
	Username string
	UserID   uint // zero when the user is unknown
	Outcome  AuthOutcome
	Reason   string
	RemoteIP string
	At       time.Time
}
