package service

import (
	"context"
	"time"

	"admingov/internal/gov/util"
)

// Event kinds
const (
	EventRequestCreated  = "request.created"
	EventRequestApproved = "request.approved"
	EventRequestRejected = "request.rejected"
	EventOverrideGranted = "override.granted"
	EventOverrideBlocked = "override.blocked"
	EventOverrideRevoked = "override.revoked"
)

// Event is emitted after a successful state transition. Consumers (audit
// trail, notification fan-out) are external; nothing in this core depends on
// delivery succeeding.
type Event struct {
	Kind      string    `json:"kind"`
	RequestID string    `json:"request_id,omitempty"`
	AdminID   string    `json:"admin_id,omitempty"`
	Actor     string    `json:"actor"`
	At        time.Time `json:"at"`
}

type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// logEmitter writes events to the structured log.
type logEmitter struct{}

func NewLogEmitter() Emitter { return logEmitter{} }

func (logEmitter) Emit(_ context.Context, ev Event) {
	util.GetLogger().Info("event",
		"kind", ev.Kind,
		"request_id", ev.RequestID,
		"admin_id", ev.AdminID,
		"actor", ev.Actor,
	)
}

// emit fires the event asynchronously, detached from the request context so
// a canceled request cannot suppress the audit signal.
func (s *Service) emit(ev Event) {
	if s.Emitter == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Emitter.Emit(ctx, ev)
	}()
}
