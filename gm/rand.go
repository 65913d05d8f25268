package gm

import (
	"math/rand/v2"
)

// RandomIn returns a random value uniformly sampled from the given range, excluding max.
func RandomIn[S Scalar](min, max S) S {
	return S(rand.Float64()*(float64(max)-float64(min))) + min
}

// RandomVec returns a vector uniformly sampled from within the unit circle.
func RandomVec[S Scalar]() VecType[S] {
	for {
		v := VecType[S]{
			X: RandomIn[S](-1, 1),
			Y: RandomIn[S](-1, 1),
		}

		if v.LengthSqr() <= 1 {
			return v
		}
	}
}
