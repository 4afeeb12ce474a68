package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes int    `json:"notes"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	days := s.Days()
	st := StoreState{Notes: len(days)}
	if len(days) > 0 {
		st.First = days[0].String()
		st.Last = days[len(days)-1].String()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
