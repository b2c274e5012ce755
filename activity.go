package auth

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventInviteCreated      ActivityEventType = "auth.invite.created"
	ActivityEventUserRegistered     ActivityEventType = "auth.user.registered"
	ActivityEventLoginSuccess       ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure       ActivityEventType = "auth.login.failure"
	ActivityEventPasswordChanged    ActivityEventType = "auth.password.changed"
	ActivityEventProfileChanged     ActivityEventType = "auth.profile.changed"
	ActivityEventRecoveryRequested  ActivityEventType = "auth.recovery.requested"
	ActivityEventPasswordRecovered  ActivityEventType = "auth.recovery.success"
	ActivityEventEmailChangeRequest ActivityEventType = "auth.email.change_requested"
	ActivityEventEmailChanged       ActivityEventType = "auth.email.changed"
)

// ActorRef identifies who/what triggered an event.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType  ActivityEventType
	Actor      ActorRef
	UserID     string
	Email      string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
