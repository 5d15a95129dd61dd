// pkg/physics/dispatch.go
package physics

// Collide picks the narrow-phase test matching the shape kinds of a and b.
// The returned manifold always has A set to a and B set to b, with the
// normal pointing from a toward b.
func Collide(a, b *Body) (Manifold, bool) {
	m := Manifold{A: a, B: b}
	if a == nil || b == nil || a.Shape == nil || b.Shape == nil {
		return m, false
	}

	switch {
	case a.Shape.Kind() == KindCircle && b.Shape.Kind() == KindCircle:
		return m, TestCircleCircle(&m)
	case a.Shape.Kind() == KindBox && b.Shape.Kind() == KindBox:
		return m, TestBoxBox(&m)
	case a.Shape.Kind() == KindBox && b.Shape.Kind() == KindCircle:
		return TestBoxVsCircle(a, b)
	case a.Shape.Kind() == KindCircle && b.Shape.Kind() == KindBox:
		swapped, ok := TestBoxVsCircle(b, a)
		if !ok {
			return m, false
		}
		m.Normal = swapped.Normal.Neg()
		m.Penetration = swapped.Penetration
		return m, true
	}
	return m, false
}
