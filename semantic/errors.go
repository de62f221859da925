package semantic

import "fmt"

// ErrorKind classifies semantic validation errors.
type ErrorKind int

const (
	DuplicateRole ErrorKind = iota
	DuplicateState
	DuplicateSequence
	DuplicateAction
	DuplicateGroup
	UndeclaredRole
	UndeclaredState
	InvalidNodeReference
	BrokenChain
	EmptyGroup
	MissingRoles
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateRole:
		return "duplicate role"
	case DuplicateState:
		return "duplicate state"
	case DuplicateSequence:
		return "duplicate sequence"
	case DuplicateAction:
		return "duplicate action"
	case DuplicateGroup:
		return "duplicate group"
	case UndeclaredRole:
		return "undeclared role"
	case UndeclaredState:
		return "undeclared state"
	case InvalidNodeReference:
		return "invalid node reference"
	case BrokenChain:
		return "broken chain"
	case EmptyGroup:
		return "empty group"
	case MissingRoles:
		return "missing roles"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is one structural violation found during validation. Ref names the
// symbol the violation is about (role, state, sequence, action, or group
// name); the message carries the human-readable detail.
type Error struct {
	Kind    ErrorKind
	Ref     string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Kind, e.Ref, e.Message)
}
