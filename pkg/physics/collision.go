// pkg/physics/collision.go
package physics

import (
	"github.com/EngoEngine/math"
)

// Manifold describes how two overlapping bodies should be separated.
// A and B are set by the caller. Normal points from A toward B and,
// together with Penetration, is only meaningful after a test returned true.
type Manifold struct {
	A           *Body
	B           *Body
	Normal      Vector2
	Penetration float32
}

// TestCircleCircle reports whether the circles m.A and m.B overlap.
// Touching circles count as overlapping with zero penetration.
func TestCircleCircle(m *Manifold) bool {
	ca, ok := circleOf(m.A)
	if !ok {
		return false
	}
	cb, ok := circleOf(m.B)
	if !ok {
		return false
	}

	// Vector from A to B
	n := m.B.Position.Sub(m.A.Position)
	r := ca.Radius + cb.Radius

	if n.LengthSquared() > r*r {
		return false
	}

	d := n.Length()
	if d != 0 {
		m.Penetration = r - d
		m.Normal = n.Div(d)
		return true
	}

	// Concentric circles have no separation direction; pick a fixed one.
	m.Penetration = ca.Radius
	m.Normal = Vector2{X: 1, Y: 0}
	return true
}

// TestBoxBox reports whether the boxes m.A and m.B overlap. The normal is
// the axis of least overlap; on equal overlap the y axis is used.
func TestBoxBox(m *Manifold) bool {
	ba, ok := boxOf(m.A)
	if !ok {
		return false
	}
	bb, ok := boxOf(m.B)
	if !ok {
		return false
	}

	n := m.B.Position.Sub(m.A.Position)

	xOverlap := ba.HalfExtent.X + bb.HalfExtent.X - math.Abs(n.X)
	if xOverlap <= 0 {
		return false
	}

	yOverlap := ba.HalfExtent.Y + bb.HalfExtent.Y - math.Abs(n.Y)
	if yOverlap <= 0 {
		return false
	}

	if xOverlap < yOverlap {
		m.Normal = Vector2{X: axisSign(n.X), Y: 0}
		m.Penetration = xOverlap
		return true
	}

	m.Normal = Vector2{X: 0, Y: axisSign(n.Y)}
	m.Penetration = yOverlap
	return true
}

// TestBoxCircle reports whether box m.A and circle m.B overlap. The
// argument order is fixed: A must be the box and B the circle.
func TestBoxCircle(m *Manifold) bool {
	result, ok := TestBoxVsCircle(m.A, m.B)
	if !ok {
		return false
	}
	m.Normal = result.Normal
	m.Penetration = result.Penetration
	return true
}

// TestBoxVsCircle tests a box body against a circle body. The returned
// manifold has A set to box and B set to circle.
//
// When the circle center lies inside the box the pair always collides and
// the normal points from the circle center toward the nearest box face.
// A circle center lying exactly on a box face ends up with a zero-length
// normal and the division below yields NaN components.
func TestBoxVsCircle(box, circle *Body) (Manifold, bool) {
	m := Manifold{A: box, B: circle}

	b, ok := boxOf(box)
	if !ok {
		return m, false
	}
	c, ok := circleOf(circle)
	if !ok {
		return m, false
	}

	// Circle center relative to the box center
	n := circle.Position.Sub(box.Position)
	ext := b.HalfExtent

	closest := Vector2{
		X: Clamp(-ext.X, ext.X, n.X),
		Y: Clamp(-ext.Y, ext.Y, n.Y),
	}

	inside := false
	if n.Equal(closest) {
		inside = true

		// Snap the dominant axis onto the box surface
		if math.Abs(n.X) > math.Abs(n.Y) {
			closest.X = snapToExtent(closest.X, ext.X)
		} else {
			closest.Y = snapToExtent(closest.Y, ext.Y)
		}
	}

	normal := n.Sub(closest)
	dSquared := normal.LengthSquared()
	r := c.Radius

	if dSquared > r*r && !inside {
		return m, false
	}

	d := math.Sqrt(dSquared)
	m.Penetration = r - d
	m.Normal = normal.Div(d)
	if inside {
		m.Normal = m.Normal.Neg()
	}
	return m, true
}

func axisSign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func snapToExtent(v, extent float32) float32 {
	if v > 0 {
		return extent
	}
	return -extent
}
