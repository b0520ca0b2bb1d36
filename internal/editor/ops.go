package editor

import "sketchpad/pkg/scene"

type OpKind int

const (
	OpCreate OpKind = iota
	OpUpdate
	OpDelete
	OpReorder
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Operation is one entry of the undo log. Besides the forward payload it
// keeps what is needed to invert itself: the removed node and its index for
// deletes, the prior field values for updates, the source index for reorders.
type Operation struct {
	Kind OpKind
	ID   string

	// Node is the created node (OpCreate) or the removed node (OpDelete).
	Node scene.Node
	// Index is where Node sits (OpCreate, OpDelete) or the destination (OpReorder).
	Index int
	// From is the source index of a reorder.
	From int

	Changes scene.Patch
	Prior   scene.Patch
}

// Inverse returns the operation that undoes op.
func (op Operation) Inverse() Operation {
	switch op.Kind {
	case OpCreate:
		return Operation{Kind: OpDelete, ID: op.ID, Node: op.Node, Index: op.Index}
	case OpDelete:
		return Operation{Kind: OpCreate, ID: op.ID, Node: op.Node, Index: op.Index}
	case OpUpdate:
		return Operation{Kind: OpUpdate, ID: op.ID, Changes: op.Prior, Prior: op.Changes}
	case OpReorder:
		return Operation{Kind: OpReorder, ID: op.ID, Index: op.From, From: op.Index}
	}
	return op
}
