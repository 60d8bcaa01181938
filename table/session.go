package table

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dicetable/physics"
)

// DieState is the per-frame readout the renderer consumes.
type DieState struct {
	Pos    mgl64.Vec3
	Orient mgl64.Quat
}

// Session owns one dice table simulation: the physics world, the two die
// bodies, and the roll/settle state machine. It is single-threaded; the
// caller drives it from one frame loop and may call Roll from the same
// goroutine at any time, including mid-roll.
type Session struct {
	world physics.World
	tun   Tunables
	rng   *rand.Rand

	dice [NumDice]physics.BodyID

	running     bool
	stillFrames int
	accum       float64
	ready       bool

	onSettle func([NumDice]int)
}

// Dice before the first roll show a seven.
var initialFaces = [NumDice]int{6, 1}

// NewSession builds the arena and dice in the given world. A nil rng gets
// a time-seeded one; tests pass a seeded generator for reproducible rolls.
func NewSession(world physics.World, tun Tunables, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{world: world, tun: tun, rng: rng}

	BuildArena(world)

	for i := range s.dice {
		m := 1.0 - 2.0*float64(i%2)
		pose := physics.Pose{
			Pos:    mgl64.Vec3{-0.7 * m, tun.DieHalf, 0.4 * m},
			Orient: OrientationFor(initialFaces[i]),
		}
		s.dice[i] = world.CreateDynamicBody(
			physics.Cube(tun.DieHalf), pose, tun.DieMass, tun.DieMaterial, tun.Damping)
	}

	s.ready = true
	return s
}

// OnSettle registers a callback invoked once per completed roll with the
// final face values. Runs inside Advance on the settling frame.
func (s *Session) OnSettle(fn func([NumDice]int)) {
	s.onSettle = fn
}

// Running reports whether a roll is in progress.
func (s *Session) Running() bool {
	return s.running
}

// StillFrames returns the current count of consecutive at-rest frames.
func (s *Session) StillFrames() int {
	return s.stillFrames
}

// Roll starts a new roll, superseding any roll in progress. Each die gets
// a fresh random orientation, a center-aimed impulse with jitter and a
// downward toss, and random spin. A no-op until the session is ready, so
// triggers racing async setup are silently absorbed.
func (s *Session) Roll() {
	if s == nil || !s.ready {
		return
	}

	// Session state first: a settle check between here and the body
	// resets must not finish the new roll early.
	s.stillFrames = 0
	s.running = true

	for i, id := range s.dice {
		s.world.SetDamping(id, s.tun.Damping)
		s.world.SetVelocities(id, mgl64.Vec3{}, mgl64.Vec3{})

		spawn := s.spawnPos(i)
		s.world.SetTransform(id, spawn, s.randomOrientation())

		s.world.ApplyImpulse(id, s.throwImpulse(spawn))

		lin, _ := s.world.Velocities(id)
		s.world.SetVelocities(id, lin, s.randomSpin())
	}
}

// spawnPos mirrors the lateral offset per die so the two spawn apart and
// drop toward the center from opposite sides.
func (s *Session) spawnPos(i int) mgl64.Vec3 {
	m := 1.0 - 2.0*float64(i%2)
	return mgl64.Vec3{-s.tun.StartX * m, s.tun.StartHeight, s.tun.StartZ * m}
}

func (s *Session) randomOrientation() mgl64.Quat {
	return mgl64.AnglesToQuat(
		s.rng.Float64()*2*math.Pi,
		s.rng.Float64()*2*math.Pi,
		s.rng.Float64()*2*math.Pi,
		mgl64.XYZ,
	)
}

// throwImpulse aims at the table center with angular jitter; the vertical
// component is a downward toss so dice reach the felt quickly despite the
// drop height. Scaled by die mass, so it lands in the velocity domain.
func (s *Session) throwImpulse(spawn mgl64.Vec3) mgl64.Vec3 {
	angle := math.Atan2(-spawn.Z(), -spawn.X())
	angle += (s.rng.Float64()*2 - 1) * s.tun.JitterAngle

	speed := s.uniform(s.tun.SpeedMin, s.tun.SpeedMax)
	toss := s.uniform(s.tun.TossYMin, s.tun.TossYMax)

	return mgl64.Vec3{
		math.Cos(angle) * speed,
		toss,
		math.Sin(angle) * speed,
	}.Mul(s.tun.DieMass)
}

func (s *Session) randomSpin() mgl64.Vec3 {
	m := s.tun.AngVelMax
	return mgl64.Vec3{
		s.uniform(-m, m),
		s.uniform(-m, m),
		s.uniform(-m, m),
	}
}

func (s *Session) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Advance accumulates frame time, steps the world in fixed sub-steps, and
// while a roll is running applies containment then settle detection once
// per call. Frame time is clamped so a slow frame cannot trigger a
// catch-up spiral.
func (s *Session) Advance(elapsed time.Duration) {
	if s == nil || !s.ready {
		return
	}

	dt := elapsed.Seconds()
	if dt < 0 {
		dt = 0
	}
	if dt > s.tun.MaxFrameDelta {
		dt = s.tun.MaxFrameDelta
	}

	s.accum += dt
	step := 1.0 / s.tun.TickRate
	for s.accum >= step {
		s.world.Step(step)
		s.accum -= step
	}

	if s.running {
		s.nudge()
		s.checkSettle()
	}
}

// nudge applies a soft corrective impulse to any die outside the bounds:
// a spring-like pull back over subsequent frames, never a hard clamp.
func (s *Session) nudge() {
	for _, id := range s.dice {
		pos, _ := s.world.Transform(id)
		imp := mgl64.Vec3{
			s.corrective(pos.X(), s.tun.BoundsHalfX),
			0,
			s.corrective(pos.Z(), s.tun.BoundsHalfZ),
		}
		if imp.X() != 0 || imp.Z() != 0 {
			s.world.ApplyImpulse(id, imp)
		}
	}
}

func (s *Session) corrective(p, half float64) float64 {
	exc := math.Abs(p) - half
	if exc <= 0 {
		return 0
	}
	m := exc * s.tun.BoundsGain
	if m > s.tun.MaxCorrective {
		m = s.tun.MaxCorrective
	}
	if p > 0 {
		return -m
	}
	return m
}

// checkSettle requires every die to be simultaneously at rest for
// StillFramesToSettle consecutive frames before the roll finishes. A
// single-frame low-velocity reading can be a bounce's zero crossing, so
// one qualifying frame proves nothing.
func (s *Session) checkSettle() {
	for _, id := range s.dice {
		if !s.atRest(id) {
			s.stillFrames = 0
			return
		}
	}

	s.stillFrames++
	if s.stillFrames < s.tun.StillFramesToSettle {
		return
	}

	s.running = false
	s.stillFrames = 0
	if s.onSettle != nil {
		s.onSettle(s.TopFaces())
	}
}

// atRest: inside bounds, slow, barely spinning, and not mid-air.
func (s *Session) atRest(id physics.BodyID) bool {
	pos, _ := s.world.Transform(id)
	lin, ang := s.world.Velocities(id)

	if math.Abs(pos.X()) > s.tun.BoundsHalfX || math.Abs(pos.Z()) > s.tun.BoundsHalfZ {
		return false
	}
	if lin.Len() >= s.tun.LinearRestSpeed {
		return false
	}
	if maxAbsComponent(ang) >= s.tun.AngularRestSpeed {
		return false
	}
	return pos.Y() < s.tun.RestHeight
}

func maxAbsComponent(v mgl64.Vec3) float64 {
	m := math.Abs(v.X())
	if a := math.Abs(v.Y()); a > m {
		m = a
	}
	if a := math.Abs(v.Z()); a > m {
		m = a
	}
	return m
}

// DiceStates returns the per-die transform readout for rendering.
func (s *Session) DiceStates() [NumDice]DieState {
	var out [NumDice]DieState
	for i, id := range s.dice {
		pos, orient := s.world.Transform(id)
		out[i] = DieState{Pos: pos, Orient: orient}
	}
	return out
}

// TopFaces resolves the upward face value of each die.
func (s *Session) TopFaces() [NumDice]int {
	var out [NumDice]int
	for i, id := range s.dice {
		_, orient := s.world.Transform(id)
		out[i] = TopFace(orient)
	}
	return out
}

// Impacted reports whether any die registered a hard contact since the
// previous call, if the world tracks contacts at all. Every die's counter
// is drained so one query covers the whole frame.
func (s *Session) Impacted() bool {
	cr, ok := s.world.(physics.ContactReporter)
	if !ok {
		return false
	}
	hit := false
	for _, id := range s.dice {
		if cr.Impacts(id) > 0 {
			hit = true
		}
	}
	return hit
}
