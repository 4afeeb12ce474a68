package platform

import (
	"github.com/aretw0/introspection"
)

// SessionState aggregates the state of the session's components.
type SessionState struct {
	Range       string `json:"range"`
	Store       any    `json:"store"`
	Persistence any    `json:"persistence"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	return SessionState{
		Range:       s.rng.String(),
		Store:       s.store.State(),
		Persistence: s.engine.State(),
	}
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
