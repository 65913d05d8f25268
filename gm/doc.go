// Package gm (stands for geometry math) provides some geometry primitives.
//
// It includes a simple 2d vector type called Vec and an axis aligned
// rectangle type named Rect.
package gm
