package transform

import "pattern-projector/internal/geom"

// Transformer owns the local transform of a session and applies actions
// and drags to it.
type Transformer struct {
	m geom.Mat3

	dragging   bool
	dragStart  geom.Point
	startM     geom.Mat3
	AxisLocked bool
}

// NewTransformer returns a Transformer at the identity.
func NewTransformer() *Transformer {
	return &Transformer{m: geom.Identity()}
}

// Matrix returns the current local transform.
func (t *Transformer) Matrix() geom.Mat3 {
	return t.m
}

// Dispatch applies a and returns the new transform.
func (t *Transformer) Dispatch(a Action) geom.Mat3 {
	t.m = Reduce(t.m, a)
	return t.m
}

// StartDrag begins moving the content with the pointer at screen point p.
// perspective maps screen to canonical space.
func (t *Transformer) StartDrag(p geom.Point, perspective geom.Mat3) {
	t.dragging = true
	t.dragStart = geom.TransformPoint(p, perspective)
	t.startM = t.m
}

// Drag moves the content so the point grabbed by StartDrag follows p. With
// AxisLocked set only the dominant direction of the move is kept. It
// reports false when no drag is in progress.
func (t *Transformer) Drag(p geom.Point, perspective geom.Mat3) bool {
	if !t.dragging {
		return false
	}
	v := geom.TransformPoint(p, perspective).Sub(t.dragStart)
	if t.AxisLocked {
		v = geom.SingleAxis(v)
	}
	t.m = t.startM.Mul(geom.Translate(v))
	return true
}

// EndDrag finishes a drag. The transform keeps its last position.
func (t *Transformer) EndDrag() {
	t.dragging = false
}

// Dragging reports whether a drag is in progress.
func (t *Transformer) Dragging() bool {
	return t.dragging
}
