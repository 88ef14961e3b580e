// Package vec provides the vector arithmetic shared by 2D and 3D agents.
//
// Higher-level code is written against the self-typed [Vector] contract so the
// same steering logic serves both dimensionalities:
//
//   - [Vec2]: planar vectors, orientation 0 faces +Y
//   - [Vec3]: spatial vectors, orientation rotates about +Y in the XZ plane
//
// Mutators change the receiver and return it so calls can be chained. Callers
// that need to keep a value across a mutating call must [Vector.Clone] it first.
//
// # Usage
//
//	a := vec.New2(3, 4)
//	b := a.Clone().Nor().Scale(10) // a is untouched
//	a.MulAdd(b, 0.5)
package vec
