package table

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dicetable/parameter"
	"github.com/lixenwraith/dicetable/physics"
)

// NumDice is the number of dice on the table.
const NumDice = parameter.NumDice

// Tunables holds every knob that shapes a roll's randomized character and
// the settle criteria. Defaults come from the parameter package; callers
// may override individual fields before creating a session.
type Tunables struct {
	Gravity       mgl64.Vec3
	TickRate      float64
	MaxFrameDelta float64

	DieHalf     float64
	DieMass     float64
	DieMaterial physics.Material
	Damping     physics.Damping

	// Launch
	StartHeight float64
	StartX      float64
	StartZ      float64
	SpeedMin    float64
	SpeedMax    float64
	TossYMin    float64
	TossYMax    float64
	AngVelMax   float64
	JitterAngle float64

	// Soft containment
	BoundsHalfX   float64
	BoundsHalfZ   float64
	BoundsGain    float64
	MaxCorrective float64

	// Settle detection. RestHeight tracks die size; re-derive it when
	// DieHalf changes instead of copying a constant.
	LinearRestSpeed     float64
	AngularRestSpeed    float64
	RestHeight          float64
	StillFramesToSettle int
}

// DefaultTunables returns the tuned stock configuration.
func DefaultTunables() Tunables {
	return Tunables{
		Gravity:       mgl64.Vec3{0, parameter.GravityY, 0},
		TickRate:      parameter.TickRate,
		MaxFrameDelta: parameter.MaxFrameDelta,

		DieHalf: parameter.DieHalfExtent,
		DieMass: parameter.DieMass,
		DieMaterial: physics.Material{
			Friction:    parameter.DieFriction,
			Restitution: parameter.DieRestitution,
		},
		Damping: physics.Damping{
			Linear:  parameter.DieLinearDamping,
			Angular: parameter.DieAngularDamping,
		},

		StartHeight: parameter.StartHeight,
		StartX:      parameter.StartX,
		StartZ:      parameter.StartZ,
		SpeedMin:    parameter.SpeedMin,
		SpeedMax:    parameter.SpeedMax,
		TossYMin:    parameter.TossYMin,
		TossYMax:    parameter.TossYMax,
		AngVelMax:   parameter.AngVelMax,
		JitterAngle: parameter.JitterAngle,

		BoundsHalfX:   parameter.BoundsHalfX,
		BoundsHalfZ:   parameter.BoundsHalfZ,
		BoundsGain:    parameter.BoundsGain,
		MaxCorrective: parameter.MaxCorrective,

		LinearRestSpeed:     parameter.LinearRestSpeed,
		AngularRestSpeed:    parameter.AngularRestSpeed,
		RestHeight:          parameter.RestHeight,
		StillFramesToSettle: parameter.StillFramesToSettle,
	}
}
