// pkg/physics/vector.go
package physics

import (
	"github.com/EngoEngine/math"
)

// Vector2 represents a 2D vector with float32 components
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 is shorthand for Vector2{X: x, Y: y}
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Neg returns the vector pointing the opposite way
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2) Scale(factor float32) Vector2 {
	return Vector2{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Div divides both components by a scalar. Dividing by zero yields
// non-finite components; callers that need a guard must check first.
func (v Vector2) Div(divisor float32) Vector2 {
	return Vector2{
		X: v.X / divisor,
		Y: v.Y / divisor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float32 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return Vector2{}
	}
	return v.Div(length)
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Equal reports exact component-wise equality
func (v Vector2) Equal(other Vector2) bool {
	return v.X == other.X && v.Y == other.Y
}

// Clamp bounds value to [lo, hi]. lo must not exceed hi.
func Clamp(lo, hi, value float32) float32 {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}
