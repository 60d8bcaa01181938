package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact resolution tuning. These shape the feel of the built-in solver
// and are not exposed: callers that need different contact behavior should
// bring their own World implementation.
const (
	// Fraction of penetration removed per contact per step. Below 1.0 to
	// avoid popping when several corners touch at once.
	penetrationRelax = 0.85

	// Below this approach speed restitution is dropped entirely, which
	// stops low-amplitude bounce jitter on resting bodies.
	restitutionVelMin = 0.5

	// Normal impulses above this are reported through ContactReporter.
	impactImpulseMin = 0.8

	// Margin factor for the bounding sphere used in body-body response.
	bodySphereFactor = 0.9

	// A body held by at least supportMin upward-facing contacts in one step
	// is face-flat on a surface. Velocities below the snap bounds at that
	// point are contact-cancellation residue and get zeroed, otherwise the
	// per-step gravity/impulse cycle keeps a parked body oscillating.
	restSnapLinear  = 0.15
	restSnapAngular = 0.3
	supportNormalY  = 0.7
	supportMin      = 3
)

type body struct {
	shape  Shape
	pos    mgl64.Vec3
	orient mgl64.Quat

	vel    mgl64.Vec3
	angVel mgl64.Vec3

	invMass    float64
	invInertia mgl64.Vec3 // local-frame diagonal
	mat        Material
	damp       Damping

	dynamic bool
}

// SolverWorld is the built-in impulse solver: semi-implicit Euler
// integration, box corner contacts against axis-aligned fixed boxes, and
// bounding-sphere response between dynamic bodies. A game-feel solver, not
// a general-purpose one; anything the dice table needs, nothing more.
type SolverWorld struct {
	gravity  mgl64.Vec3
	bodies   []*body
	impacts  []int // hard contacts per body since last queried
	supports []int // upward-facing contacts per body during the latest Step
}

// NewSolverWorld creates an empty world with the given gravity vector.
func NewSolverWorld(gravity mgl64.Vec3) *SolverWorld {
	return &SolverWorld{gravity: gravity}
}

func (w *SolverWorld) CreateFixedBody(shape Shape, pose Pose, mat Material) BodyID {
	b := &body{
		shape:  shape,
		pos:    pose.Pos,
		orient: mgl64.QuatIdent(),
		mat:    mat,
	}
	w.bodies = append(w.bodies, b)
	w.impacts = append(w.impacts, 0)
	w.supports = append(w.supports, 0)
	return BodyID(len(w.bodies) - 1)
}

func (w *SolverWorld) CreateDynamicBody(shape Shape, pose Pose, mass float64, mat Material, damp Damping) BodyID {
	h := shape.HalfExtents
	b := &body{
		shape:   shape,
		pos:     pose.Pos,
		orient:  pose.Orient.Normalize(),
		invMass: 1.0 / mass,
		invInertia: mgl64.Vec3{
			3.0 / (mass * (h.Y()*h.Y() + h.Z()*h.Z())),
			3.0 / (mass * (h.X()*h.X() + h.Z()*h.Z())),
			3.0 / (mass * (h.X()*h.X() + h.Y()*h.Y())),
		},
		mat:     mat,
		damp:    damp,
		dynamic: true,
	}
	w.bodies = append(w.bodies, b)
	w.impacts = append(w.impacts, 0)
	w.supports = append(w.supports, 0)
	return BodyID(len(w.bodies) - 1)
}

func (w *SolverWorld) Transform(id BodyID) (mgl64.Vec3, mgl64.Quat) {
	b := w.bodies[id]
	return b.pos, b.orient
}

func (w *SolverWorld) SetTransform(id BodyID, pos mgl64.Vec3, orient mgl64.Quat) {
	b := w.bodies[id]
	b.pos = pos
	b.orient = orient.Normalize()
}

func (w *SolverWorld) Velocities(id BodyID) (mgl64.Vec3, mgl64.Vec3) {
	b := w.bodies[id]
	return b.vel, b.angVel
}

func (w *SolverWorld) SetVelocities(id BodyID, linear, angular mgl64.Vec3) {
	b := w.bodies[id]
	b.vel = linear
	b.angVel = angular
}

func (w *SolverWorld) SetDamping(id BodyID, d Damping) {
	w.bodies[id].damp = d
}

func (w *SolverWorld) ApplyImpulse(id BodyID, impulse mgl64.Vec3) {
	b := w.bodies[id]
	if !b.dynamic {
		return
	}
	b.vel = b.vel.Add(impulse.Mul(b.invMass))
}

// Impacts implements ContactReporter. Counts accumulate across steps and
// reset when read, so a caller polling once per rendered frame sees every
// sub-step contact.
func (w *SolverWorld) Impacts(id BodyID) int {
	n := w.impacts[id]
	w.impacts[id] = 0
	return n
}

// Step advances the world by dt seconds: integrate, then resolve contacts.
func (w *SolverWorld) Step(dt float64) {
	for i := range w.supports {
		w.supports[i] = 0
	}

	for _, b := range w.bodies {
		if !b.dynamic {
			continue
		}
		b.vel = b.vel.Add(w.gravity.Mul(dt))
		b.vel = b.vel.Mul(decay(b.damp.Linear, dt))
		b.angVel = b.angVel.Mul(decay(b.damp.Angular, dt))

		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.integrateOrientation(dt)
	}

	for i, a := range w.bodies {
		if !a.dynamic {
			continue
		}
		for j, o := range w.bodies {
			if i == j {
				continue
			}
			if o.dynamic {
				if j > i {
					w.resolveBodies(i, j)
				}
			} else {
				w.resolveAgainstFixed(i, j)
			}
		}
	}

	for i, b := range w.bodies {
		if !b.dynamic || w.supports[i] < supportMin {
			continue
		}
		if b.vel.Len() < restSnapLinear && b.angVel.Len() < restSnapAngular {
			b.vel = mgl64.Vec3{}
			b.angVel = mgl64.Vec3{}
		}
	}
}

func decay(damping, dt float64) float64 {
	f := 1.0 - damping*dt
	if f < 0 {
		return 0
	}
	return f
}

func (b *body) integrateOrientation(dt float64) {
	wq := mgl64.Quat{W: 0, V: b.angVel}
	dq := wq.Mul(b.orient).Scale(0.5 * dt)
	b.orient = b.orient.Add(dq).Normalize()
}

// applyInvInertia maps a world-space angular quantity through the body's
// world-frame inverse inertia tensor.
func (b *body) applyInvInertia(v mgl64.Vec3) mgl64.Vec3 {
	l := b.orient.Conjugate().Rotate(v)
	l = mgl64.Vec3{l.X() * b.invInertia.X(), l.Y() * b.invInertia.Y(), l.Z() * b.invInertia.Z()}
	return b.orient.Rotate(l)
}

var boxCornerSigns = [8]mgl64.Vec3{
	{+1, +1, +1}, {+1, +1, -1}, {+1, -1, +1}, {+1, -1, -1},
	{-1, +1, +1}, {-1, +1, -1}, {-1, -1, +1}, {-1, -1, -1},
}

// resolveAgainstFixed tests the dynamic body's eight corners against one
// axis-aligned fixed box and resolves each penetrating corner with a
// positional push plus a normal/friction impulse pair.
func (w *SolverWorld) resolveAgainstFixed(dynIdx, fixIdx int) {
	b := w.bodies[dynIdx]
	f := w.bodies[fixIdx]
	h := b.shape.HalfExtents
	fh := f.shape.HalfExtents

	for _, s := range boxCornerSigns {
		local := mgl64.Vec3{s.X() * h.X(), s.Y() * h.Y(), s.Z() * h.Z()}
		corner := b.pos.Add(b.orient.Rotate(local))

		d := corner.Sub(f.pos)
		ox := fh.X() - math.Abs(d.X())
		oy := fh.Y() - math.Abs(d.Y())
		oz := fh.Z() - math.Abs(d.Z())
		if ox <= 0 || oy <= 0 || oz <= 0 {
			continue
		}

		// Push out along the axis of least penetration.
		var n mgl64.Vec3
		depth := ox
		n = mgl64.Vec3{sign(d.X()), 0, 0}
		if oy < depth {
			depth = oy
			n = mgl64.Vec3{0, sign(d.Y()), 0}
		}
		if oz < depth {
			depth = oz
			n = mgl64.Vec3{0, 0, sign(d.Z())}
		}

		if n.Y() > supportNormalY {
			w.supports[dynIdx]++
		}

		b.pos = b.pos.Add(n.Mul(depth * penetrationRelax))

		mat := Material{
			Friction:    0.5 * (b.mat.Friction + f.mat.Friction),
			Restitution: 0.5 * (b.mat.Restitution + f.mat.Restitution),
		}
		r := corner.Sub(b.pos)
		if jn := w.contactImpulse(b, r, n, mat); jn > impactImpulseMin {
			w.impacts[dynIdx]++
		}
	}
}

// contactImpulse applies a normal impulse (with restitution) and a Coulomb
// friction impulse at contact offset r, returning the normal magnitude.
func (w *SolverWorld) contactImpulse(b *body, r, n mgl64.Vec3, mat Material) float64 {
	vrel := b.vel.Add(b.angVel.Cross(r))
	vn := vrel.Dot(n)
	if vn >= 0 {
		return 0
	}

	e := mat.Restitution
	if -vn < restitutionVelMin {
		e = 0
	}

	denom := b.invMass + n.Dot(b.applyInvInertia(r.Cross(n)).Cross(r))
	jn := -(1 + e) * vn / denom
	p := n.Mul(jn)
	b.vel = b.vel.Add(p.Mul(b.invMass))
	b.angVel = b.angVel.Add(b.applyInvInertia(r.Cross(p)))

	// Friction against the post-normal tangential velocity.
	vrel = b.vel.Add(b.angVel.Cross(r))
	vt := vrel.Sub(n.Mul(vrel.Dot(n)))
	speed := vt.Len()
	if speed < 1e-9 {
		return jn
	}
	t := vt.Mul(1.0 / speed)
	denomT := b.invMass + t.Dot(b.applyInvInertia(r.Cross(t)).Cross(r))
	jt := speed / denomT
	if maxT := mat.Friction * jn; jt > maxT {
		jt = maxT
	}
	p = t.Mul(-jt)
	b.vel = b.vel.Add(p.Mul(b.invMass))
	b.angVel = b.angVel.Add(b.applyInvInertia(r.Cross(p)))

	return jn
}

// resolveBodies handles dynamic-dynamic contact with bounding spheres:
// symmetric separation plus an elastic impulse along the center line.
func (w *SolverWorld) resolveBodies(i, j int) {
	a := w.bodies[i]
	b := w.bodies[j]

	ra := a.shape.HalfExtents.Len() * bodySphereFactor
	rb := b.shape.HalfExtents.Len() * bodySphereFactor

	delta := b.pos.Sub(a.pos)
	distSq := delta.Dot(delta)
	minDist := ra + rb
	if distSq >= minDist*minDist || distSq == 0 {
		return
	}

	dist := math.Sqrt(distSq)
	n := delta.Mul(1.0 / dist)
	overlap := minDist - dist

	half := overlap * 0.5 * penetrationRelax
	a.pos = a.pos.Sub(n.Mul(half))
	b.pos = b.pos.Add(n.Mul(half))

	relVel := a.vel.Sub(b.vel)
	vn := relVel.Dot(n)
	if vn <= 0 {
		return
	}

	e := 0.5 * (a.mat.Restitution + b.mat.Restitution)
	if vn < restitutionVelMin {
		e = 0
	}
	jn := (1 + e) * vn / (a.invMass + b.invMass)
	a.vel = a.vel.Sub(n.Mul(jn * a.invMass))
	b.vel = b.vel.Add(n.Mul(jn * b.invMass))

	if jn > impactImpulseMin {
		w.impacts[i]++
		w.impacts[j]++
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
