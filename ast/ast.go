// Package ast defines the declaration nodes produced by the parser.
//
// A File holds one source file's declarations in written order. Multiple
// files from one directory are merged by the semantic analyzer; nothing in
// this package resolves references.
package ast

import "fmt"

// File is the parse result for one martial DSL source file.
type File struct {
	Name  string
	Decls []Decl
}

// Decl is a top-level declaration: Roles, State, Sequence, or Group.
type Decl interface {
	decl()
}

// Roles declares role identifiers.
//
//	roles { Top, Bottom, Neutral }
//
// Any file may contain any number of roles blocks; they are merged.
type Roles struct {
	Names []string
}

// State declares an atomic positional configuration.
//
//	state Mount roles { Top, Bottom }
//
// A nil Roles slice means open compatibility: the state is valid with every
// role in the final merged role set. That set is not known at parse time, so
// the expansion is deferred to graph construction.
type State struct {
	Name  string
	Roles []string
}

// NodeRef is a (state, role) reference as written in source: State[Role].
type NodeRef struct {
	State string `json:"state"`
	Role  string `json:"role"`
}

func (r NodeRef) String() string {
	return fmt.Sprintf("%s[%s]", r.State, r.Role)
}

// Step is one action within a sequence.
//
//	KneeCut: Headquarters[Top] -> SideControl[Top]
type Step struct {
	Action string
	From   NodeRef
	To     NodeRef
}

// Sequence declares an ordered chain of steps.
//
//	sequence GuardPass:
//	    Stack: OpenGuard[Top] -> HalfGuard[Top]
//	    KneeSlice: HalfGuard[Top] -> SideControl[Top]
type Sequence struct {
	Name  string
	Steps []Step
}

// Group declares an organizational cluster of state names. Groups carry no
// transition semantics; they exist for downstream visualization only.
//
//	group GuardFamily { ClosedGuard, OpenGuard }
type Group struct {
	Name   string
	States []string
}

func (Roles) decl()    {}
func (State) decl()    {}
func (Sequence) decl() {}
func (Group) decl()    {}
