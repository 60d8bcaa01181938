package parameter

// World stepping
const (
	// Stronger than 9.81 for a snappy table feel
	GravityY = -18.0

	// Fixed physics steps per second
	TickRate = 120.0

	// Clamp on accumulated frame time
	MaxFrameDelta = 1.0 / 30.0
)

// Die body
const (
	DieHalfExtent  = 0.25
	DieMass        = 1.0
	DieFriction    = 0.45
	DieRestitution = 0.35

	DieLinearDamping  = 0.6
	DieAngularDamping = 0.9
)

// Table surfaces
const (
	FeltFriction    = 0.8
	FeltRestitution = 0.25

	RailFriction    = 0.6
	RailRestitution = 0.55 // rails kick back harder than felt
)
