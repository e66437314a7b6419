package transform

import "pattern-projector/internal/geom"

// Action is a discrete change to the local transform. The set of actions is
// closed: only the types in this file implement it.
type Action interface {
	isAction()
}

// Set replaces the transform outright.
type Set struct{ M geom.Mat3 }

// Reset returns to the identity.
type Reset struct{}

// Translate moves the content by V.
type Translate struct{ V geom.Point }

// FlipHorizontal mirrors left to right about Center.
type FlipHorizontal struct{ Center geom.Point }

// FlipVertical mirrors top to bottom about Center.
type FlipVertical struct{ Center geom.Point }

// Rotate turns the content a quarter turn clockwise about Center.
type Rotate struct{ Center geom.Point }

// RotateToHorizontal levels Line.
type RotateToHorizontal struct{ Line geom.Line }

// FlipAlong reflects the content across Line.
type FlipAlong struct{ Line geom.Line }

// Recenter moves the center of a LayoutWidth × LayoutHeight layout to
// Center.
type Recenter struct {
	Center       geom.Point
	LayoutWidth  float64
	LayoutHeight float64
}

// AlignToCenter levels Line and moves its first endpoint to GridCenter.
type AlignToCenter struct {
	GridCenter geom.Point
	Line       geom.Line
}

func (Set) isAction()                {}
func (Reset) isAction()              {}
func (Translate) isAction()          {}
func (FlipHorizontal) isAction()     {}
func (FlipVertical) isAction()       {}
func (Rotate) isAction()             {}
func (RotateToHorizontal) isAction() {}
func (FlipAlong) isAction()          {}
func (Recenter) isAction()           {}
func (AlignToCenter) isAction()      {}
