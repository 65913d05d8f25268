package gm

import (
	"fmt"
	"math"
)

type Scalar interface {
	float32 | float64 | int32
}

type Vec32 = VecType[float32]
type Vec64 = VecType[float64]

type Vec = Vec64

var VecZero = Vec{}
var VecOne = Vec{X: 1, Y: 1}

type IVec = VecType[int32]

func VecOf[S Scalar](x, y S) VecType[S] {
	return VecType[S]{X: x, Y: y}
}

// VecSplat returns a vector with both components set to value.
func VecSplat[S Scalar](value S) VecType[S] {
	return VecType[S]{X: value, Y: value}
}

type VecType[S Scalar] struct {
	X, Y S
}

func (v VecType[S]) Add(other VecType[S]) VecType[S] {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v VecType[S]) Sub(other VecType[S]) VecType[S] {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v VecType[S]) Mul(scalar S) VecType[S] {
	v.X *= scalar
	v.Y *= scalar
	return v
}

func (v VecType[S]) MulEach(other VecType[S]) VecType[S] {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

func (v VecType[S]) DivEach(other VecType[S]) VecType[S] {
	v.X /= other.X
	v.Y /= other.Y
	return v
}

func (v VecType[S]) Neg() VecType[S] {
	v.X = -v.X
	v.Y = -v.Y
	return v
}

func (v VecType[S]) Abs() VecType[S] {
	if v.X < 0 {
		v.X = -v.X
	}
	if v.Y < 0 {
		v.Y = -v.Y
	}
	return v
}

func (v VecType[S]) Dot(other VecType[S]) S {
	return v.X*other.X + v.Y*other.Y
}

// Clamp limits both components of the vector to the range spanned by lo and hi.
func (v VecType[S]) Clamp(lo, hi VecType[S]) VecType[S] {
	v.X = min(max(v.X, lo.X), hi.X)
	v.Y = min(max(v.Y, lo.Y), hi.Y)
	return v
}

func (v VecType[S]) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}

func (v VecType[S]) Normalized() VecType[S] {
	length := v.Length()
	v.X /= length
	v.Y /= length
	return v
}

func (v VecType[S]) Length() S {
	return S(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

func (v VecType[S]) LengthSqr() S {
	return v.X*v.X + v.Y*v.Y
}

func (v VecType[S]) DistanceTo(other VecType[S]) S {
	return other.Sub(v).Length()
}
