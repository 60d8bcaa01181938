package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 120.0

func dieMaterial() Material {
	return Material{Friction: 0.45, Restitution: 0.35}
}

func feltMaterial() Material {
	return Material{Friction: 0.8, Restitution: 0.25}
}

func identPose(pos mgl64.Vec3) Pose {
	return Pose{Pos: pos, Orient: mgl64.QuatIdent()}
}

func TestFreeFallMatchesGravity(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{0, -10, 0})
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{0, 100, 0}), 1.0, dieMaterial(), Damping{})

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	lin, _ := w.Velocities(id)
	if math.Abs(lin.Y()-(-10.0)) > 1e-6 {
		t.Errorf("velocity after 1s = %v, want -10", lin.Y())
	}

	// Semi-implicit Euler overshoots the analytic -5.0 slightly
	pos, _ := w.Transform(id)
	drop := 100 - pos.Y()
	if drop < 5.0 || drop > 5.1 {
		t.Errorf("drop after 1s = %v, want ~5.04", drop)
	}
}

func TestApplyImpulseScalesByMass(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{})
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{}), 2.0, dieMaterial(), Damping{})

	w.ApplyImpulse(id, mgl64.Vec3{4, 0, 0})

	lin, _ := w.Velocities(id)
	if lin != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("velocity = %v, want {2 0 0}", lin)
	}
}

func TestDampingDecaysVelocity(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{})
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{}), 1.0, dieMaterial(),
		Damping{Linear: 0.5, Angular: 0.5})
	w.SetVelocities(id, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 2, 0})

	prev := 1.0
	for i := 0; i < 240; i++ {
		w.Step(dt)
		lin, _ := w.Velocities(id)
		if lin.Len() >= prev {
			t.Fatalf("step %d: speed %v did not decrease from %v", i, lin.Len(), prev)
		}
		prev = lin.Len()
	}

	// Discrete decay over 2s at coefficient 0.5 lands near e^-1
	if prev < 0.3 || prev > 0.45 {
		t.Errorf("speed after 2s = %v, want ~0.37", prev)
	}

	_, ang := w.Velocities(id)
	if ang.Len() >= 2.0 {
		t.Errorf("angular speed %v did not decay", ang.Len())
	}
}

func TestFixedBodyImmobile(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{0, -10, 0})
	id := w.CreateFixedBody(Box(10, 0.5, 10), identPose(mgl64.Vec3{0, -0.5, 0}), feltMaterial())

	w.ApplyImpulse(id, mgl64.Vec3{100, 100, 100})
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	pos, _ := w.Transform(id)
	if pos != (mgl64.Vec3{0, -0.5, 0}) {
		t.Errorf("fixed body moved to %v", pos)
	}
	lin, _ := w.Velocities(id)
	if lin != (mgl64.Vec3{}) {
		t.Errorf("fixed body gained velocity %v", lin)
	}
}

// A die dropped flat onto a floor slab must come to rest on it.
func TestDroppedDieSettlesOnFloor(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{0, -18, 0})
	w.CreateFixedBody(Box(10, 0.5, 10), identPose(mgl64.Vec3{0, -0.5, 0}), feltMaterial())
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{0, 1.5, 0}), 1.0, dieMaterial(),
		Damping{Linear: 0.6, Angular: 0.9})

	for i := 0; i < 1200; i++ {
		w.Step(dt)
	}

	pos, _ := w.Transform(id)
	lin, ang := w.Velocities(id)

	if pos.Y() < 0.15 || pos.Y() > 0.45 {
		t.Errorf("resting height = %v, want ~0.25", pos.Y())
	}
	// The resting snap must hold the body below the table's settle
	// thresholds, not merely near them.
	if lin.Len() > 0.05 {
		t.Errorf("resting linear speed = %v, want < 0.05", lin.Len())
	}
	if ang.Len() > 0.1 {
		t.Errorf("resting angular speed = %v, want < 0.1", ang.Len())
	}
}

// A body parked face-flat with residual contact jitter must be pinned at
// zero velocity instead of oscillating around the rest thresholds.
func TestRestingContactSnapsToZero(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{0, -18, 0})
	w.CreateFixedBody(Box(10, 0.5, 10), identPose(mgl64.Vec3{0, -0.5, 0}), feltMaterial())
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{0, 0.251, 0}), 1.0, dieMaterial(),
		Damping{Linear: 0.6, Angular: 0.9})
	w.SetVelocities(id, mgl64.Vec3{0.1, -0.05, 0}, mgl64.Vec3{0, 0.2, 0})

	for i := 0; i < 30; i++ {
		w.Step(dt)
	}

	for i := 0; i < 20; i++ {
		w.Step(dt)
		lin, ang := w.Velocities(id)
		if lin.Len() != 0 || ang.Len() != 0 {
			t.Fatalf("step %d: velocities (%v, %v) not snapped to zero", i, lin, ang)
		}
	}
}

func TestDropReportsImpact(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{0, -18, 0})
	w.CreateFixedBody(Box(10, 0.5, 10), identPose(mgl64.Vec3{0, -0.5, 0}), feltMaterial())
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{0, 1.5, 0}), 1.0, dieMaterial(),
		Damping{Linear: 0.6, Angular: 0.9})

	hit := false
	for i := 0; i < 240 && !hit; i++ {
		w.Step(dt)
		hit = w.Impacts(id) > 0
	}
	if !hit {
		t.Error("no impact reported for a hard floor hit")
	}
}

func TestBodySphereCollisionSeparates(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{})
	a := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{-0.1, 0, 0}), 1.0, dieMaterial(), Damping{})
	b := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{0.1, 0, 0}), 1.0, dieMaterial(), Damping{})
	w.SetVelocities(a, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{})
	w.SetVelocities(b, mgl64.Vec3{-2, 0, 0}, mgl64.Vec3{})

	for i := 0; i < 10; i++ {
		w.Step(dt)
	}

	la, _ := w.Velocities(a)
	lb, _ := w.Velocities(b)
	if la.X() >= 0 {
		t.Errorf("body a still moving right after head-on collision: %v", la)
	}
	if lb.X() <= 0 {
		t.Errorf("body b still moving left after head-on collision: %v", lb)
	}

	pa, _ := w.Transform(a)
	pb, _ := w.Transform(b)
	if pb.X()-pa.X() <= 0.15 {
		t.Errorf("bodies not separated: a=%v b=%v", pa.X(), pb.X())
	}
}

func TestSetTransformNormalizesOrientation(t *testing.T) {
	w := NewSolverWorld(mgl64.Vec3{})
	id := w.CreateDynamicBody(Cube(0.25), identPose(mgl64.Vec3{}), 1.0, dieMaterial(), Damping{})

	w.SetTransform(id, mgl64.Vec3{1, 2, 3}, mgl64.Quat{W: 2, V: mgl64.Vec3{0, 0, 0}})

	_, q := w.Transform(id)
	if math.Abs(q.Len()-1.0) > 1e-12 {
		t.Errorf("orientation length = %v, want 1", q.Len())
	}
}
