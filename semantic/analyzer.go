// Package semantic merges parsed declaration lists from every file of a
// system and validates them against the formal model: one role set R, a
// state table S, sequences whose steps reference (state, role) nodes, and
// organizational groups.
//
// Validation runs in four strictly ordered phases (role registration, state
// registration, role-compatibility, sequence/group validation). Each phase
// collects every violation it can find before the next phase starts, so a
// single run reports all reference problems rather than only the first.
package semantic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matlang/go-matlang/ast"
)

// Analyzer accumulates declarations from parsed files and validates the
// merged system. One Analyzer serves exactly one validation run.
type Analyzer struct {
	roles      []string
	roleSet    map[string]struct{}
	states     []ast.State
	stateIndex map[string]int
	sequences  []ast.Sequence
	seqIndex   map[string]int
	groups     []ast.Group
	groupIndex map[string]int

	errs []Error
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		roleSet:    make(map[string]struct{}),
		stateIndex: make(map[string]int),
		seqIndex:   make(map[string]int),
		groupIndex: make(map[string]int),
	}
}

// Analyze merges the declarations of every file, in file order, and
// validates the result. It returns the validated System when the error list
// is empty, otherwise a nil System and the ordered error list. There is no
// partially valid System.
func Analyze(name string, files []*ast.File) (*System, []Error) {
	a := NewAnalyzer()

	a.registerRoles(files)
	a.registerStates(files)
	a.checkStateRoles()
	a.checkSequencesAndGroups(files)

	if len(a.errs) > 0 {
		return nil, a.errs
	}

	return &System{
		Name:       name,
		Roles:      a.roles,
		States:     a.states,
		Sequences:  a.sequences,
		Groups:     a.groups,
		roleSet:    a.roleSet,
		stateIndex: a.stateIndex,
		seqIndex:   a.seqIndex,
		groupIndex: a.groupIndex,
	}, nil
}

func (a *Analyzer) errorf(kind ErrorKind, ref, format string, args ...any) {
	a.errs = append(a.errs, Error{Kind: kind, Ref: ref, Message: fmt.Sprintf(format, args...)})
}

// Phase 1: merge every roles block from every file into one role set.
func (a *Analyzer) registerRoles(files []*ast.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			roles, ok := decl.(ast.Roles)
			if !ok {
				continue
			}
			for _, name := range roles.Names {
				if _, exists := a.roleSet[name]; exists {
					a.errorf(DuplicateRole, name, "role is already declared")
					continue
				}
				a.roleSet[name] = struct{}{}
				a.roles = append(a.roles, name)
			}
		}
	}

	// V is undefined without R: a system with no roles at all is invalid
	// even when every other table is empty.
	if len(a.roles) == 0 {
		a.errorf(MissingRoles, "roles", "no roles declared; at least one roles block is required")
	}
}

// Phase 2: register states. Explicit role lists are recorded as written;
// their membership in R is checked in phase 3.
func (a *Analyzer) registerStates(files []*ast.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			state, ok := decl.(ast.State)
			if !ok {
				continue
			}
			if _, exists := a.stateIndex[state.Name]; exists {
				a.errorf(DuplicateState, state.Name, "state is already declared")
				continue
			}
			a.stateIndex[state.Name] = len(a.states)
			a.states = append(a.states, state)
		}
	}
}

// Phase 3: every role listed in a state's restriction must exist in the
// merged role set.
func (a *Analyzer) checkStateRoles() {
	for _, state := range a.states {
		seen := make(map[string]struct{}, len(state.Roles))
		for _, role := range state.Roles {
			if _, ok := a.roleSet[role]; !ok {
				a.errorf(UndeclaredRole, state.Name, "role '%s' is not declared (available: %s)",
					role, strings.Join(a.roles, ", "))
			}
			if _, dup := seen[role]; dup {
				a.errorf(DuplicateRole, state.Name, "role '%s' is listed more than once", role)
				continue
			}
			seen[role] = struct{}{}
		}
	}
}

// Phase 4: register and validate sequences and groups.
func (a *Analyzer) checkSequencesAndGroups(files []*ast.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case ast.Sequence:
				a.addSequence(d)
			case ast.Group:
				a.addGroup(d)
			}
		}
	}
}

func (a *Analyzer) addSequence(seq ast.Sequence) {
	if _, exists := a.seqIndex[seq.Name]; exists {
		a.errorf(DuplicateSequence, seq.Name, "sequence is already declared")
	} else {
		a.seqIndex[seq.Name] = len(a.sequences)
		a.sequences = append(a.sequences, seq)
	}

	// Steps of a duplicate are still checked so all of its reference
	// problems surface in the same run.
	actions := make(map[string]struct{}, len(seq.Steps))
	for i, step := range seq.Steps {
		if _, dup := actions[step.Action]; dup {
			a.errorf(DuplicateAction, step.Action, "action is already used in sequence '%s'", seq.Name)
		}
		actions[step.Action] = struct{}{}

		a.checkNodeRef(step.From, seq.Name, step.Action)
		a.checkNodeRef(step.To, seq.Name, step.Action)

		if i > 0 {
			prev := seq.Steps[i-1]
			if prev.To != step.From {
				a.errorf(BrokenChain, seq.Name,
					"step chain is broken between '%s' and '%s': '%s' ends at %s but '%s' starts at %s",
					prev.Action, step.Action, prev.Action, prev.To, step.Action, step.From)
			}
		}
	}
}

// checkNodeRef resolves one written (state, role) endpoint against the
// merged tables: the state must be declared, the role must be declared, and
// the role must be compatible with the state.
func (a *Analyzer) checkNodeRef(ref ast.NodeRef, seqName, action string) {
	idx, ok := a.stateIndex[ref.State]
	if !ok {
		a.errorf(UndeclaredState, ref.State, "state is not declared (referenced by '%s' in sequence '%s')",
			action, seqName)
		return
	}

	if _, ok := a.roleSet[ref.Role]; !ok {
		a.errorf(InvalidNodeReference, ref.String(),
			"role '%s' is not declared (state '%s', action '%s' in sequence '%s')",
			ref.Role, ref.State, action, seqName)
		return
	}

	state := a.states[idx]
	if state.Roles != nil && !slices.Contains(state.Roles, ref.Role) {
		a.errorf(InvalidNodeReference, ref.String(),
			"role '%s' is not allowed for state '%s' (allowed: %s)",
			ref.Role, ref.State, strings.Join(state.Roles, ", "))
	}
}

func (a *Analyzer) addGroup(group ast.Group) {
	if _, exists := a.groupIndex[group.Name]; exists {
		a.errorf(DuplicateGroup, group.Name, "group is already declared")
		return
	}
	a.groupIndex[group.Name] = len(a.groups)
	a.groups = append(a.groups, group)

	if len(group.States) == 0 {
		a.errorf(EmptyGroup, group.Name, "group must contain at least one state")
		return
	}
	for _, name := range group.States {
		if _, ok := a.stateIndex[name]; !ok {
			a.errorf(UndeclaredState, name, "state is not declared (member of group '%s')", group.Name)
		}
	}
}
