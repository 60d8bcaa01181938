package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dicetable/parameter"
	"github.com/lixenwraith/dicetable/table"
)

func TestProjectCentersOrigin(t *testing.T) {
	r := NewTable(80, 24)
	sx, sy := r.project(mgl64.Vec3{})
	if sx != 40 || sy != 11 {
		t.Errorf("origin projects to (%v, %v), want (40, 11)", sx, sy)
	}
}

func TestProjectAxes(t *testing.T) {
	r := NewTable(80, 24)
	cx, cy := r.project(mgl64.Vec3{})

	// +X goes right, +Z goes down-screen, +Y lifts up-screen
	if sx, _ := r.project(mgl64.Vec3{1, 0, 0}); sx <= cx {
		t.Error("+X should project rightward")
	}
	if _, sy := r.project(mgl64.Vec3{0, 0, 1}); sy <= cy {
		t.Error("+Z should project down-screen")
	}
	if _, sy := r.project(mgl64.Vec3{0, 1, 0}); sy >= cy {
		t.Error("+Y should project up-screen")
	}
}

func TestResizeKeepsTableInView(t *testing.T) {
	r := NewTable(80, 24)
	for _, dims := range [][2]int{{40, 12}, {200, 60}, {10, 5}} {
		r.Resize(dims[0], dims[1])
		if r.scale <= 0 {
			t.Errorf("scale = %v at %v", r.scale, dims)
		}
		span := parameter.FeltHalf + 2*parameter.WallThickness
		if h := 2 * span * tiltCos * r.scale; h > float64(dims[1]-hudRows) {
			t.Errorf("projected table height %v exceeds view at %v", h, dims)
		}
	}
}

func TestQuadContains(t *testing.T) {
	px := [4]float64{0, 10, 10, 0}
	py := [4]float64{0, 0, 10, 10}

	if !quadContains(px, py, 5, 5) {
		t.Error("center should be inside")
	}
	if quadContains(px, py, 15, 5) {
		t.Error("outside point reported inside")
	}

	// Reversed winding must still work
	rx := [4]float64{0, 0, 10, 10}
	ry := [4]float64{0, 10, 10, 0}
	if !quadContains(rx, ry, 5, 5) {
		t.Error("center should be inside regardless of winding")
	}
}

func TestPipLayoutCounts(t *testing.T) {
	for v := 1; v <= 6; v++ {
		if got := len(pipLayouts[v]); got != v {
			t.Errorf("face %d has %d pips", v, got)
		}
	}
}

func TestDrawPaintsFelt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	r := NewTable(80, 24)
	var states [parameter.NumDice]table.DieState
	for i := range states {
		states[i] = table.DieState{
			Pos:    mgl64.Vec3{float64(i) - 0.5, parameter.DieHalfExtent, 0},
			Orient: mgl64.QuatIdent(),
		}
	}

	r.Draw(screen, states, Status{Running: true})

	// A cell near the table center but away from both dice is felt
	_, _, style, _ := screen.GetContent(30, 9)
	_, bg, _ := style.Decompose()
	if bg != feltColor && bg != feltOutColor && bg != shadowColor {
		t.Errorf("center-ish cell background = %v, want felt", bg)
	}
}
