// Package physics implements the collision and physics core of the
// framework: axis aligned box and circle colliders, a grid accelerated
// collision detector, and an impulse based resolver driven once per fixed
// tick.
//
// The package does not own entity storage. All positions, velocities and
// body parameters live in caller owned storage reached through the narrow
// Components interface, and are mutated in place during a Step. Within one
// tick the order is always integrate, detect, resolve.
package physics
