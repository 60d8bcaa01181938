package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dicetable/parameter"
	"github.com/lixenwraith/dicetable/table"
)

const hudRows = 2

// Camera tilt from vertical; the table is viewed from high behind +Z.
var (
	tiltSin = math.Sin(55 * math.Pi / 180)
	tiltCos = math.Cos(55 * math.Pi / 180)

	// Direction from the table toward the camera
	toCamera = mgl64.Vec3{0, tiltSin, tiltCos}.Normalize()

	lightDir = mgl64.Vec3{-0.4, 0.8, -0.45}.Normalize()
)

var (
	feltColor    = tcell.NewRGBColor(18, 105, 58)
	feltOutColor = tcell.NewRGBColor(14, 82, 46) // outside the soft bounds
	railColor    = tcell.NewRGBColor(96, 58, 30)
	shadowColor  = tcell.NewRGBColor(10, 58, 32)
	hintColor    = tcell.NewRGBColor(110, 110, 120)
	resultColor  = tcell.NewRGBColor(255, 210, 90)
)

// One body color and one pip color per die.
var (
	dieColors = [parameter.NumDice]mgl64.Vec3{
		{240, 240, 228}, // ivory
		{205, 45, 45},   // casino red
	}
	pipColors = [parameter.NumDice]tcell.Color{
		tcell.NewRGBColor(25, 25, 30),
		tcell.NewRGBColor(240, 240, 228),
	}
)

// Status is the non-kinematic frame state shown in the HUD.
type Status struct {
	Running    bool
	HaveResult bool
	Faces      [parameter.NumDice]int
}

// Table projects die transforms onto the terminal. Pure output: it never
// mutates simulation state.
type Table struct {
	width, height int
	scale         float64
	cx, cy        float64
}

func NewTable(width, height int) *Table {
	t := &Table{}
	t.Resize(width, height)
	return t
}

func (t *Table) Resize(width, height int) {
	t.width = width
	t.height = height

	viewH := float64(height - hudRows)
	span := parameter.FeltHalf + 2*parameter.WallThickness

	// Fit the table in both axes; terminal cells are ~1:2, so x gets a
	// doubled scale.
	sv := (viewH - 1) / (2 * span * tiltCos)
	sh := (float64(width) - 2) / (2 * span * 2)
	t.scale = math.Min(sv, sh)

	t.cx = float64(width) / 2
	t.cy = viewH / 2
}

// project maps a world point to fractional screen coordinates.
func (t *Table) project(p mgl64.Vec3) (float64, float64) {
	sx := t.cx + p.X()*t.scale*2
	sy := t.cy + (p.Z()*tiltCos-p.Y()*tiltSin)*t.scale
	return sx, sy
}

func (t *Table) Draw(screen tcell.Screen, states [parameter.NumDice]table.DieState, st Status) {
	screen.Clear()

	t.drawSurface(screen)
	for i := range states {
		t.drawShadow(screen, states[i].Pos)
	}

	// Painter's order: far dice first
	order := make([]int, parameter.NumDice)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return states[order[a]].Pos.Z() < states[order[b]].Pos.Z()
	})
	for _, i := range order {
		t.drawDie(screen, i, states[i])
	}

	t.drawHUD(screen, st)
	screen.Show()
}

// drawSurface paints felt and rail cells by inverse-projecting each screen
// cell onto the y=0 plane.
func (t *Table) drawSurface(screen tcell.Screen) {
	railOuter := parameter.FeltHalf + parameter.WallThickness
	railInner := parameter.FeltHalf - parameter.RailInset - parameter.RailHalfWidth

	for y := 0; y < t.height-hudRows; y++ {
		for x := 0; x < t.width; x++ {
			wx := (float64(x) + 0.5 - t.cx) / (t.scale * 2)
			wz := (float64(y) + 0.5 - t.cy) / (t.scale * tiltCos)

			ax, az := math.Abs(wx), math.Abs(wz)
			if ax > railOuter || az > railOuter {
				continue
			}

			var bg tcell.Color
			switch {
			case ax > railInner || az > railInner:
				bg = railColor
			case ax > parameter.BoundsHalfX || az > parameter.BoundsHalfZ:
				bg = feltOutColor
			default:
				bg = feltColor
			}
			screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// drawShadow darkens an ellipse of felt under the die.
func (t *Table) drawShadow(screen tcell.Screen, pos mgl64.Vec3) {
	cx, cy := t.project(mgl64.Vec3{pos.X(), 0, pos.Z()})
	rx := parameter.DieHalfExtent * t.scale * 2 * 1.2
	ry := parameter.DieHalfExtent * t.scale * tiltCos * 1.2

	style := tcell.StyleDefault.Background(shadowColor)
	for y := int(cy - ry); y <= int(cy+ry+1); y++ {
		for x := int(cx - rx); x <= int(cx+rx+1); x++ {
			dx := (float64(x) + 0.5 - cx) / math.Max(rx, 0.5)
			dy := (float64(y) + 0.5 - cy) / math.Max(ry, 0.5)
			if dx*dx+dy*dy <= 1.0 && t.inView(x, y) {
				screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

// drawDie renders the camera-facing faces of one die back to front, then
// pips on the most facing one.
func (t *Table) drawDie(screen tcell.Screen, idx int, st table.DieState) {
	type face struct {
		value  int
		facing float64
	}
	var visible []face
	for v := 1; v <= 6; v++ {
		n := st.Orient.Rotate(table.FaceNormal(v))
		if d := n.Dot(toCamera); d > 0.05 {
			visible = append(visible, face{value: v, facing: d})
		}
	}
	if len(visible) == 0 {
		return
	}
	sort.Slice(visible, func(a, b int) bool {
		return visible[a].facing < visible[b].facing
	})

	for i, f := range visible {
		t.drawFace(screen, idx, st, f.value, i == len(visible)-1)
	}
}

func (t *Table) drawFace(screen tcell.Screen, idx int, st table.DieState, value int, withPips bool) {
	h := parameter.DieHalfExtent
	n := table.FaceNormal(value)
	e1, e2 := faceTangents(n)

	// Perimeter order: ++, +-, --, -+
	signs := [4][2]float64{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	var px, py [4]float64
	for i, s := range signs {
		local := n.Mul(h).Add(e1.Mul(s[0] * h)).Add(e2.Mul(s[1] * h))
		px[i], py[i] = t.project(st.Pos.Add(st.Orient.Rotate(local)))
	}

	worldN := st.Orient.Rotate(n)
	shade := 0.55 + 0.45*math.Max(0, worldN.Dot(lightDir))
	c := dieColors[idx].Mul(shade)
	bg := tcell.NewRGBColor(clamp255(c.X()), clamp255(c.Y()), clamp255(c.Z()))

	t.fillQuad(screen, px, py, tcell.StyleDefault.Background(bg))

	if withPips {
		t.drawPips(screen, idx, st, value, n, e1, e2, bg)
	}
}

// pipLayouts holds face-local pip offsets in units of half extent.
var pipLayouts = [7][][2]float64{
	1: {{0, 0}},
	2: {{-1, -1}, {1, 1}},
	3: {{-1, -1}, {0, 0}, {1, 1}},
	4: {{-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
	5: {{-1, -1}, {-1, 1}, {0, 0}, {1, -1}, {1, 1}},
	6: {{-1, -1}, {-1, 0}, {-1, 1}, {1, -1}, {1, 0}, {1, 1}},
}

func (t *Table) drawPips(screen tcell.Screen, idx int, st table.DieState, value int, n, e1, e2 mgl64.Vec3, bg tcell.Color) {
	// Pips vanish when the face projects too small to hold them.
	if parameter.DieHalfExtent*t.scale*2 < 2.0 {
		return
	}

	h := parameter.DieHalfExtent
	style := tcell.StyleDefault.Foreground(pipColors[idx]).Background(bg)
	for _, p := range pipLayouts[value] {
		local := n.Mul(h).Add(e1.Mul(p[0] * 0.55 * h)).Add(e2.Mul(p[1] * 0.55 * h))
		sx, sy := t.project(st.Pos.Add(st.Orient.Rotate(local)))
		x, y := int(sx), int(sy)
		if t.inView(x, y) {
			screen.SetContent(x, y, '•', nil, style)
		}
	}
}

// faceTangents returns two axes orthogonal to the face normal.
func faceTangents(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var e1 mgl64.Vec3
	if math.Abs(n.Y()) > 0.9 {
		e1 = mgl64.Vec3{1, 0, 0}
	} else {
		e1 = mgl64.Vec3{0, 1, 0}
	}
	e2 := n.Cross(e1).Normalize()
	e1 = e2.Cross(n)
	return e1, e2
}

// fillQuad rasterizes a convex quad with a point-in-polygon test over its
// bounding box; die faces are a handful of cells, so brute force is fine.
func (t *Table) fillQuad(screen tcell.Screen, px, py [4]float64, style tcell.Style) {
	minX, maxX := px[0], px[0]
	minY, maxY := py[0], py[0]
	for i := 1; i < 4; i++ {
		minX = math.Min(minX, px[i])
		maxX = math.Max(maxX, px[i])
		minY = math.Min(minY, py[i])
		maxY = math.Max(maxY, py[i])
	}

	for y := int(minY); y <= int(maxY+1); y++ {
		for x := int(minX); x <= int(maxX+1); x++ {
			if !t.inView(x, y) {
				continue
			}
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if quadContains(px, py, fx, fy) {
				screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

// quadContains checks that the point lies on one consistent side of every
// edge; projection may flip the winding, so either sign qualifies.
func quadContains(px, py [4]float64, x, y float64) bool {
	pos, neg := false, false
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		cross := (px[j]-px[i])*(y-py[i]) - (py[j]-py[i])*(x-px[i])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
	}
	return !(pos && neg)
}

func (t *Table) inView(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height-hudRows
}

func (t *Table) drawHUD(screen tcell.Screen, st Status) {
	statusY := t.height - 2
	controlY := t.height - 1

	var line string
	switch {
	case st.Running:
		line = "rolling..."
	case st.HaveResult:
		sum := 0
		for _, f := range st.Faces {
			sum += f
		}
		line = fmt.Sprintf("%d + %d = %d", st.Faces[0], st.Faces[1], sum)
	default:
		line = "press space to roll"
	}
	writeStr(screen, 1, statusY, line, resultColor)
	writeStr(screen, 1, controlY, "space/enter/click:roll  q:quit", hintColor)
}

func writeStr(screen tcell.Screen, x, y int, s string, fg tcell.Color) {
	style := tcell.StyleDefault.Foreground(fg)
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func clamp255(v float64) int32 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int32(v)
}
