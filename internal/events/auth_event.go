package events

import "time"

type EventType string

const (
	EventRegister     EventType = "register"
	EventLogin        EventType = "login"
	EventAuthenticate EventType = "authenticate"
)

type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// AuthEvent is an audit record for one authentication attempt. It never
// carries a password, hash or token.
type AuthEvent struct {
	Type      EventType
	Outcome   Outcome
	UserID    string
	IP        string
	Browser   string
	OS        string
	Device    string
	Timestamp time.Time
}

// Fields flattens the event into stream values. Empty optional fields are
// omitted.
func (e *AuthEvent) Fields() map[string]interface{} {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	fields := map[string]interface{}{
		"type":      string(e.Type),
		"outcome":   string(e.Outcome),
		"timestamp": ts.UnixMilli(),
	}

	optional := map[string]string{
		"user_id": e.UserID,
		"ip":      e.IP,
		"browser": e.Browser,
		"os":      e.OS,
		"device":  e.Device,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}

	return fields
}
