package semantic

import (
	"slices"

	"github.com/matlang/go-matlang/ast"
)

// System is one fully merged, directory-scoped collection of roles, states,
// sequences, and groups. It is only ever produced by a validation run with
// an empty error list, lives for the duration of that run, and is never
// mutated afterwards.
//
// All slices preserve declaration order (file order, then order within the
// file), which keeps repeated runs over the same input bit-identical.
type System struct {
	Name      string
	Roles     []string
	States    []ast.State
	Sequences []ast.Sequence
	Groups    []ast.Group

	roleSet    map[string]struct{}
	stateIndex map[string]int
	seqIndex   map[string]int
	groupIndex map[string]int
}

// HasRole reports whether the role was declared anywhere in the system.
func (s *System) HasRole(name string) bool {
	_, ok := s.roleSet[name]
	return ok
}

// State returns the declared state with the given name.
func (s *System) State(name string) (ast.State, bool) {
	i, ok := s.stateIndex[name]
	if !ok {
		return ast.State{}, false
	}
	return s.States[i], true
}

// Sequence returns the declared sequence with the given name.
func (s *System) Sequence(name string) (ast.Sequence, bool) {
	i, ok := s.seqIndex[name]
	if !ok {
		return ast.Sequence{}, false
	}
	return s.Sequences[i], true
}

// Group returns the declared group with the given name.
func (s *System) Group(name string) (ast.Group, bool) {
	i, ok := s.groupIndex[name]
	if !ok {
		return ast.Group{}, false
	}
	return s.Groups[i], true
}

// Compatible reports whether the named state may be occupied under the named
// role. A state without an explicit role restriction is compatible with
// every declared role; that openness is evaluated here against the final
// merged role set, never cached at registration time, because roles may be
// declared in files processed after the state.
func (s *System) Compatible(state, role string) bool {
	if !s.HasRole(role) {
		return false
	}
	i, ok := s.stateIndex[state]
	if !ok {
		return false
	}
	if s.States[i].Roles == nil {
		return true
	}
	return slices.Contains(s.States[i].Roles, role)
}
