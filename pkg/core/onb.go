package core

import "math"

// ONB is an orthonormal basis with W along a chosen axis
type ONB struct {
	U, V, W Vec3
}

// NewONBFromW builds a basis whose W axis is n
func NewONBFromW(n Vec3) ONB {
	w := n.Normalize()

	// Pick a helper axis that is not parallel to w
	var a Vec3
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local maps local coordinates (a, b, c) to world space
func (o ONB) Local(a, b, c float64) Vec3 {
	return o.U.Multiply(a).Add(o.V.Multiply(b)).Add(o.W.Multiply(c))
}

// LocalVec maps a vector expressed in this basis to world space
func (o ONB) LocalVec(v Vec3) Vec3 {
	return o.Local(v.X, v.Y, v.Z)
}
