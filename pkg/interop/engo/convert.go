// Package engo converts between engo geometry and narrow-phase bodies so
// engo games can run the collision tests on their own components.
package engo

import (
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-narrowphase/pkg/physics"
)

// Vector converts an engo point
func Vector(p engo.Point) physics.Vector2 {
	return physics.Vector2{X: p.X, Y: p.Y}
}

// Point converts a physics vector
func Point(v physics.Vector2) engo.Point {
	return engo.Point{X: v.X, Y: v.Y}
}

// CircleBody creates a circle body centered at center
func CircleBody(center engo.Point, radius float32) *physics.Body {
	return physics.NewCircleBody(Vector(center), radius)
}

// BoxBody creates a box body covering a world-space engo AABB
func BoxBody(aabb engo.AABB) *physics.Body {
	bounds := physics.AABB{Min: Vector(aabb.Min), Max: Vector(aabb.Max)}
	return &physics.Body{
		Position: bounds.Center(),
		Shape:    physics.BoxFromAABB(bounds),
	}
}

// AABB returns the world-space bounds of a box body
func AABB(body *physics.Body) (engo.AABB, bool) {
	bounds, ok := body.Bounds()
	if !ok {
		return engo.AABB{}, false
	}
	return engo.AABB{Min: Point(bounds.Min), Max: Point(bounds.Max)}, true
}

// SpaceBody creates a box body from a SpaceComponent. Rotation is ignored;
// the component's Position is its top-left corner.
func SpaceBody(sc common.SpaceComponent) *physics.Body {
	return BoxBody(engo.AABB{
		Min: sc.Position,
		Max: engo.Point{X: sc.Position.X + sc.Width, Y: sc.Position.Y + sc.Height},
	})
}

// Normal converts a manifold normal for use with engo math
func Normal(m physics.Manifold) engo.Point {
	return Point(m.Normal)
}
