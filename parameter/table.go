package parameter

// Arena geometry. The felt is a square centered on the origin; rails sit
// inside the outer walls with overhanging lips above them.
const (
	FeltHalf = 3.0

	WallHeight    = 4.0
	WallThickness = 0.5
	CeilingHeight = 4.0

	// Rail inner face sits at FeltHalf-RailInset-RailHalfWidth = 2.6, so a
	// die flush against it rests with its center inside the settle bounds.
	RailInset     = 0.25
	RailHalfWidth = 0.15
	RailHeight    = 0.7

	LipHalfWidth = 0.2
	LipHeight    = 0.2
	LipOverhang  = 0.15 // lip center shift toward table center from rail
)

// Roll launch
const (
	StartHeight = 2.2
	StartX      = 1.4
	StartZ      = 0.9

	SpeedMin = 2.5
	SpeedMax = 4.5

	TossYMin = -3.5
	TossYMax = -1.5

	AngVelMax   = 10.0
	JitterAngle = 0.35 // radians either side of the center-aimed direction
)

// Soft containment bounds, strictly inside the rail footprint
const (
	BoundsHalfX   = 2.4
	BoundsHalfZ   = 2.4
	BoundsGain    = 3.0
	MaxCorrective = 0.4
)

// Settle detection
const (
	LinearRestSpeed  = 0.05
	AngularRestSpeed = 0.1

	// Derived from DieHalfExtent plus bounce allowance, not a free constant:
	// a die flat on the felt has its center at DieHalfExtent.
	RestHeight = DieHalfExtent * 2.0

	StillFramesToSettle = 10
)

// Number of dice on the table
const NumDice = 2
