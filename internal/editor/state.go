package editor

import (
	"fmt"

	"github.com/google/uuid"

	"sketchpad/internal/geom"
	"sketchpad/pkg/scene"
)

type Tool string

const (
	ToolSelect  Tool = "select"
	ToolPan     Tool = "pan"
	ToolRect    Tool = "rect"
	ToolEllipse Tool = "ellipse"
	ToolLine    Tool = "line"
	ToolText    Tool = "text"
)

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolSelect, ToolPan, ToolRect, ToolEllipse, ToolLine, ToolText}
}

func (t Tool) Valid() bool {
	for _, v := range Tools() {
		if v == t {
			return true
		}
	}
	return false
}

const DefaultMaxHistory = 200

// State is the canonical editor model: the scene, the active tool, the
// viewport and the undo log. Every mutation goes through its methods.
type State struct {
	Nodes      []scene.Node
	SelectedID string
	Tool       Tool
	Viewport   geom.Viewport
	History    []Operation
	Future     []Operation
	MaxHistory int

	revision uint64
	newID    func(scene.Kind) string
}

func NewState() *State {
	return &State{
		Nodes:      make([]scene.Node, 0, 32),
		Tool:       ToolSelect,
		Viewport:   geom.DefaultViewport(),
		History:    make([]Operation, 0, 64),
		Future:     make([]Operation, 0, 16),
		MaxHistory: DefaultMaxHistory,
	}
}

// Revision increases on every observable change.
func (s *State) Revision() uint64 { return s.revision }

func (s *State) touch() { s.revision++ }

// NextID returns a fresh node id for kind.
func (s *State) NextID(kind scene.Kind) string {
	if s.newID != nil {
		return s.newID(kind)
	}
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}

// SetIDSource replaces the id generator; nil restores the default.
func (s *State) SetIDSource(fn func(scene.Kind) string) {
	s.newID = fn
}

func (s *State) Node(id string) (scene.Node, bool) {
	idx := scene.IndexOf(s.Nodes, id)
	if idx < 0 {
		return nil, false
	}
	return s.Nodes[idx], true
}

func (s *State) Selected() (scene.Node, bool) {
	return s.Node(s.SelectedID)
}

func (s *State) CanUndo() bool { return len(s.History) > 0 }
func (s *State) CanRedo() bool { return len(s.Future) > 0 }

// AddNode appends n and logs a create. A missing or colliding id is replaced
// by a generated one. It returns the committed id, or "" if n is unusable.
func (s *State) AddNode(n scene.Node) string {
	if n == nil {
		return ""
	}
	id := n.Attrs().ID
	if id == "" || scene.IndexOf(s.Nodes, id) >= 0 {
		id = s.NextID(n.Kind())
	}
	n = scene.WithID(n, id)
	if err := scene.ValidateNode(n); err != nil {
		return ""
	}
	op := Operation{Kind: OpCreate, ID: id, Node: scene.Clone(n), Index: len(s.Nodes)}
	s.apply(op)
	s.commit(op)
	return id
}

// UpdateNode merges changes into the node with id. Unknown ids and empty
// patches are ignored.
func (s *State) UpdateNode(id string, changes scene.Patch) bool {
	idx := scene.IndexOf(s.Nodes, id)
	if idx < 0 || changes.Empty() {
		return false
	}
	// The log outlives the caller's slice.
	if changes.Points != nil {
		changes.Points = append([]geom.Point{}, changes.Points...)
	}
	op := Operation{
		Kind:    OpUpdate,
		ID:      id,
		Changes: changes,
		Prior:   scene.Capture(s.Nodes[idx], changes),
	}
	s.apply(op)
	s.commit(op)
	return true
}

func (s *State) DeleteNode(id string) bool {
	idx := scene.IndexOf(s.Nodes, id)
	if idx < 0 {
		return false
	}
	op := Operation{Kind: OpDelete, ID: id, Node: scene.Clone(s.Nodes[idx]), Index: idx}
	s.apply(op)
	s.commit(op)
	return true
}

// ReorderNode moves the node with id to paint position to (clamped).
func (s *State) ReorderNode(id string, to int) bool {
	from := scene.IndexOf(s.Nodes, id)
	if from < 0 {
		return false
	}
	to = clampIndex(to, len(s.Nodes)-1)
	if to == from {
		return false
	}
	op := Operation{Kind: OpReorder, ID: id, Index: to, From: from}
	s.apply(op)
	s.commit(op)
	return true
}

// SelectNode sets the selection. "" clears it; ids not in the scene are
// ignored so the selection always names an existing node.
func (s *State) SelectNode(id string) {
	if id != "" && scene.IndexOf(s.Nodes, id) < 0 {
		return
	}
	if s.SelectedID == id {
		return
	}
	s.SelectedID = id
	s.touch()
}

func (s *State) SetTool(t Tool) {
	if !t.Valid() || s.Tool == t {
		return
	}
	s.Tool = t
	s.touch()
}

// ViewportPatch is a partial viewport change; nil fields are kept.
type ViewportPatch struct {
	Scale   *float64
	OffsetX *float64
	OffsetY *float64
}

// ViewportOf builds a patch that replaces every viewport field.
func ViewportOf(vp geom.Viewport) ViewportPatch {
	return ViewportPatch{Scale: &vp.Scale, OffsetX: &vp.OffsetX, OffsetY: &vp.OffsetY}
}

func (s *State) SetViewport(p ViewportPatch) {
	vp := s.Viewport
	if p.Scale != nil {
		vp.Scale = *p.Scale
	}
	if p.OffsetX != nil {
		vp.OffsetX = *p.OffsetX
	}
	if p.OffsetY != nil {
		vp.OffsetY = *p.OffsetY
	}
	s.Viewport = vp.Clamped()
	s.touch()
}

func (s *State) ZoomIn() {
	scale := s.Viewport.Scale * geom.ZoomStep
	s.SetViewport(ViewportPatch{Scale: &scale})
}

func (s *State) ZoomOut() {
	scale := s.Viewport.Scale / geom.ZoomStep
	s.SetViewport(ViewportPatch{Scale: &scale})
}

// Undo reverts the most recent operation and queues it for Redo.
func (s *State) Undo() bool {
	if len(s.History) == 0 {
		return false
	}
	op := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.apply(op.Inverse())
	s.Future = append(s.Future, op)
	s.touch()
	return true
}

// Redo re-applies the most recently undone operation.
func (s *State) Redo() bool {
	if len(s.Future) == 0 {
		return false
	}
	op := s.Future[len(s.Future)-1]
	s.Future = s.Future[:len(s.Future)-1]
	s.apply(op)
	s.pushHistory(op)
	s.touch()
	return true
}

// Clear removes every node. It is not undoable, so the log is dropped too.
func (s *State) Clear() {
	s.Nodes = s.Nodes[:0]
	s.SelectedID = ""
	s.History = s.History[:0]
	s.Future = s.Future[:0]
	s.touch()
}

func (s *State) commit(op Operation) {
	s.pushHistory(op)
	s.Future = s.Future[:0]
	s.touch()
}

func (s *State) pushHistory(op Operation) {
	s.History = append(s.History, op)
	limit := s.MaxHistory
	if limit <= 0 {
		limit = DefaultMaxHistory
	}
	if over := len(s.History) - limit; over > 0 {
		s.History = append(s.History[:0], s.History[over:]...)
	}
}

// apply performs op on the scene without touching the log.
func (s *State) apply(op Operation) bool {
	switch op.Kind {
	case OpCreate:
		if op.Node == nil || scene.IndexOf(s.Nodes, op.ID) >= 0 {
			return false
		}
		idx := clampIndex(op.Index, len(s.Nodes))
		s.Nodes = append(s.Nodes, nil)
		copy(s.Nodes[idx+1:], s.Nodes[idx:])
		s.Nodes[idx] = scene.Clone(op.Node)
		return true
	case OpDelete:
		idx := scene.IndexOf(s.Nodes, op.ID)
		if idx < 0 {
			return false
		}
		s.Nodes = append(s.Nodes[:idx], s.Nodes[idx+1:]...)
		if s.SelectedID == op.ID {
			s.SelectedID = ""
		}
		return true
	case OpUpdate:
		idx := scene.IndexOf(s.Nodes, op.ID)
		if idx < 0 {
			return false
		}
		s.Nodes[idx] = scene.Apply(s.Nodes[idx], op.Changes)
		return true
	case OpReorder:
		from := scene.IndexOf(s.Nodes, op.ID)
		if from < 0 {
			return false
		}
		n := s.Nodes[from]
		s.Nodes = append(s.Nodes[:from], s.Nodes[from+1:]...)
		to := clampIndex(op.Index, len(s.Nodes))
		s.Nodes = append(s.Nodes, nil)
		copy(s.Nodes[to+1:], s.Nodes[to:])
		s.Nodes[to] = n
		return true
	}
	return false
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

// Snapshot is a read-only copy of the state for presenters.
type Snapshot struct {
	Nodes      []scene.Node
	SelectedID string
	Tool       Tool
	Viewport   geom.Viewport
	CanUndo    bool
	CanRedo    bool
	Revision   uint64
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Nodes:      scene.CloneAll(s.Nodes),
		SelectedID: s.SelectedID,
		Tool:       s.Tool,
		Viewport:   s.Viewport,
		CanUndo:    s.CanUndo(),
		CanRedo:    s.CanRedo(),
		Revision:   s.revision,
	}
}

// Selected returns the selected node or nil.
func (s Snapshot) Selected() scene.Node {
	idx := scene.IndexOf(s.Nodes, s.SelectedID)
	if idx < 0 {
		return nil
	}
	return s.Nodes[idx]
}
