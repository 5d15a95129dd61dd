// pkg/physics/shape.go
package physics

import "fmt"

// Kind identifies which variant a Shape is
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is the geometry attached to a Body. It is implemented only by
// Circle and Box.
type Shape interface {
	Kind() Kind
	isShape()
}

// Circle is a disc centered on the owning body's position
type Circle struct {
	Radius float32
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) isShape()   {}

// Box is an axis-aligned rectangle centered on the owning body's position
type Box struct {
	HalfExtent Vector2
}

func (Box) Kind() Kind { return KindBox }
func (Box) isShape()   {}

// AABB describes an axis-aligned box by its corners. Min must not exceed
// Max on either axis; inverted boxes produce negative extents.
type AABB struct {
	Min Vector2
	Max Vector2
}

// Extent returns the half width and half height
func (a AABB) Extent() Vector2 {
	return a.Max.Sub(a.Min).Div(2)
}

// Center returns the midpoint of the box
func (a AABB) Center() Vector2 {
	return a.Min.Add(a.Max).Div(2)
}

// BoxFromAABB converts corner extents into a Box shape. Only the size is
// kept; place the box with the Body position.
func BoxFromAABB(a AABB) Box {
	return Box{HalfExtent: a.Extent()}
}

// Body is a shape placed in world space. Position is the circle center or
// the box center.
type Body struct {
	Position Vector2
	Shape    Shape
}

// NewCircleBody creates a circle body
func NewCircleBody(position Vector2, radius float32) *Body {
	return &Body{Position: position, Shape: Circle{Radius: radius}}
}

// NewBoxBody creates a box body from its center and half extents
func NewBoxBody(center, halfExtent Vector2) *Body {
	return &Body{Position: center, Shape: Box{HalfExtent: halfExtent}}
}

// Bounds returns the world-space AABB of a box body
func (b *Body) Bounds() (AABB, bool) {
	box, ok := b.Shape.(Box)
	if !ok {
		return AABB{}, false
	}
	return AABB{
		Min: b.Position.Sub(box.HalfExtent),
		Max: b.Position.Add(box.HalfExtent),
	}, true
}

func circleOf(b *Body) (Circle, bool) {
	if b == nil {
		return Circle{}, false
	}
	c, ok := b.Shape.(Circle)
	return c, ok
}

func boxOf(b *Body) (Box, bool) {
	if b == nil {
		return Box{}, false
	}
	box, ok := b.Shape.(Box)
	return box, ok
}
