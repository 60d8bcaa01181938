package table

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dicetable/parameter"
	"github.com/lixenwraith/dicetable/physics"
)

// BuildArena creates the static table geometry: felt floor slab, four
// outer walls, a ceiling, four inner rails and four overhanging lips above
// them. All bodies are fixed and axis-aligned; the session never touches
// them after construction.
func BuildArena(w physics.World) {
	felt := physics.Material{
		Friction:    parameter.FeltFriction,
		Restitution: parameter.FeltRestitution,
	}
	rail := physics.Material{
		Friction:    parameter.RailFriction,
		Restitution: parameter.RailRestitution,
	}

	outer := parameter.FeltHalf + 2*parameter.WallThickness

	addBox(w, physics.Box(outer, 0.5, outer), mgl64.Vec3{0, -0.5, 0}, felt)

	// Outer walls, tops flush with the ceiling gap
	wallY := parameter.WallHeight / 2
	wallX := parameter.FeltHalf + parameter.WallThickness
	addBox(w, physics.Box(parameter.WallThickness, wallY, outer), mgl64.Vec3{wallX, wallY, 0}, rail)
	addBox(w, physics.Box(parameter.WallThickness, wallY, outer), mgl64.Vec3{-wallX, wallY, 0}, rail)
	addBox(w, physics.Box(outer, wallY, parameter.WallThickness), mgl64.Vec3{0, wallY, wallX}, rail)
	addBox(w, physics.Box(outer, wallY, parameter.WallThickness), mgl64.Vec3{0, wallY, -wallX}, rail)

	addBox(w, physics.Box(outer, 0.5, outer), mgl64.Vec3{0, parameter.CeilingHeight + 0.5, 0}, rail)

	// Inner rails sitting on the felt
	railDist := parameter.FeltHalf - parameter.RailInset
	railY := parameter.RailHeight / 2
	railLen := railDist + parameter.RailHalfWidth
	addBox(w, physics.Box(parameter.RailHalfWidth, railY, railLen), mgl64.Vec3{railDist, railY, 0}, rail)
	addBox(w, physics.Box(parameter.RailHalfWidth, railY, railLen), mgl64.Vec3{-railDist, railY, 0}, rail)
	addBox(w, physics.Box(railLen, railY, parameter.RailHalfWidth), mgl64.Vec3{0, railY, railDist}, rail)
	addBox(w, physics.Box(railLen, railY, parameter.RailHalfWidth), mgl64.Vec3{0, railY, -railDist}, rail)

	// Lips overhang the rails toward the table center to knock down
	// climbers
	lipDist := railDist - parameter.LipOverhang
	lipY := parameter.RailHeight + parameter.LipHeight/2
	lipHalfH := parameter.LipHeight / 2
	addBox(w, physics.Box(parameter.LipHalfWidth, lipHalfH, railLen), mgl64.Vec3{lipDist, lipY, 0}, rail)
	addBox(w, physics.Box(parameter.LipHalfWidth, lipHalfH, railLen), mgl64.Vec3{-lipDist, lipY, 0}, rail)
	addBox(w, physics.Box(railLen, lipHalfH, parameter.LipHalfWidth), mgl64.Vec3{0, lipY, lipDist}, rail)
	addBox(w, physics.Box(railLen, lipHalfH, parameter.LipHalfWidth), mgl64.Vec3{0, lipY, -lipDist}, rail)
}

func addBox(w physics.World, shape physics.Shape, center mgl64.Vec3, mat physics.Material) {
	w.CreateFixedBody(shape, physics.Pose{Pos: center, Orient: mgl64.QuatIdent()}, mat)
}
