package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyID is an opaque handle to a body owned by a World.
type BodyID int

// Pose is a rigid transform: position plus unit-quaternion orientation.
type Pose struct {
	Pos    mgl64.Vec3
	Orient mgl64.Quat
}

// Damping holds per-second velocity decay coefficients.
type Damping struct {
	Linear  float64
	Angular float64
}

// Material holds surface response coefficients for contact resolution.
type Material struct {
	Friction    float64
	Restitution float64
}

// Shape is a collision shape. Only boxes exist; flat surfaces are thin
// slabs, which keeps broad-phase and contact generation uniform.
type Shape struct {
	HalfExtents mgl64.Vec3
}

// Box returns a box shape from half extents per axis.
func Box(hx, hy, hz float64) Shape {
	return Shape{HalfExtents: mgl64.Vec3{hx, hy, hz}}
}

// Cube returns a box shape with equal half extents.
func Cube(half float64) Shape {
	return Shape{HalfExtents: mgl64.Vec3{half, half, half}}
}

// World is the full surface the simulation core needs from a rigid-body
// engine. The session never reaches past it, so the solver is swappable
// (tests drive the session with a scripted implementation).
type World interface {
	// Step advances the simulation by a fixed timestep in seconds.
	Step(dt float64)

	// CreateFixedBody adds an immovable collider. Fixed bodies are
	// axis-aligned; their orientation is ignored.
	CreateFixedBody(shape Shape, pose Pose, mat Material) BodyID

	// CreateDynamicBody adds a simulated body.
	CreateDynamicBody(shape Shape, pose Pose, mass float64, mat Material, damp Damping) BodyID

	Transform(id BodyID) (mgl64.Vec3, mgl64.Quat)
	SetTransform(id BodyID, pos mgl64.Vec3, orient mgl64.Quat)

	Velocities(id BodyID) (linear, angular mgl64.Vec3)
	SetVelocities(id BodyID, linear, angular mgl64.Vec3)

	SetDamping(id BodyID, d Damping)

	// ApplyImpulse adds impulse/mass to the body's linear velocity at its
	// center of mass (no induced spin).
	ApplyImpulse(id BodyID, impulse mgl64.Vec3)
}

// ContactReporter is implemented by worlds that track hard contacts.
// Impacts returns the number of contacts since the previous query whose
// normal impulse exceeded the audible-impact threshold, then resets the
// count.
type ContactReporter interface {
	Impacts(id BodyID) int
}
