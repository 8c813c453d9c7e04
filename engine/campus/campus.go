// Package campus builds the outdoor faculty scene shown before the tour starts and the pointer
// interactions available on it.
package campus

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
)

// Node names the interactions look up in a built campus.
const (
	NameFaculty     = "faculty"
	NameBuilding    = "building"
	NameWindow      = "window"
	NameLeftDoor    = "leftDoor"
	NameRightDoor   = "rightDoor"
	NameFacultySign = "facultySign"
)

const (
	itkBlue     = 0x005691
	glassColor  = 0x88ccff
	stoneColor  = 0x444444
	facadeColor = 0xe0e0e0
	pathColor   = 0xaaaaaa
	grassColor  = 0x3a9d23
)

// Build constructs the faculty grounds: ground, main building with its windows, doors and sign,
// two secondary buildings, paths, trees, benches, lamp posts and the entrance gate.
//
// Returns:
//   - game_object.GameObject: the root group, named NameFaculty
func Build() game_object.GameObject {
	faculty := game_object.NewGroup(NameFaculty)

	faculty.AddChild(game_object.NewMesh("ground", game_object.PrimitiveCylinder, common.Vec3{100, 0.02, 100},
		game_object.WithPosition(common.Vec3{0, -0.5, 0}),
		game_object.WithHexColor(grassColor),
	))

	faculty.AddChild(mainBuilding())

	left := secondaryBuilding()
	left.SetPosition(common.Vec3{-15, 0, 5})
	left.SetRotation(common.Vec3{0, math.Pi / 4, 0})
	faculty.AddChild(left)

	right := secondaryBuilding()
	right.SetPosition(common.Vec3{15, 0, 5})
	right.SetRotation(common.Vec3{0, -math.Pi / 4, 0})
	faculty.AddChild(right)

	paths(faculty)
	decorations(faculty)
	faculty.AddChild(entrance())
	return faculty
}

func box(name string, size, pos common.Vec3, hex uint32, options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	base := []game_object.GameObjectBuilderOption{
		game_object.WithPosition(pos),
		game_object.WithHexColor(hex),
	}
	return game_object.NewMesh(name, game_object.PrimitiveBox, size, append(base, options...)...)
}

func cylinder(name string, radius, height float32, pos common.Vec3, hex uint32) game_object.GameObject {
	return game_object.NewMesh(name, game_object.PrimitiveCylinder, common.Vec3{radius * 2, height, radius * 2},
		game_object.WithPosition(pos),
		game_object.WithHexColor(hex),
	)
}

func mainBuilding() game_object.GameObject {
	b := game_object.NewGroup("mainBuilding")

	b.AddChild(box("foundation", common.Vec3{20, 1, 12}, common.Vec3{0, -0.5, 0}, stoneColor))
	steps := game_object.NewGroup("steps")
	for i := 0; i < 3; i++ {
		fi := float32(i)
		steps.AddChild(box("step", common.Vec3{10, 0.2, 1}, common.Vec3{0, fi * 0.2, 6.5 + fi*0.5}, 0x999999))
	}
	b.AddChild(steps)

	b.AddChild(box(NameBuilding, common.Vec3{18, 8, 10}, common.Vec3{0, 3.5, 0}, facadeColor))

	windows(b)

	// entrance
	b.AddChild(box("doorFrame", common.Vec3{4, 4, 0.5}, common.Vec3{0, 2, 5.2}, 0x333333))
	door := common.Vec3{1.8, 3.6, 0.1}
	b.AddChild(box(NameLeftDoor, door, common.Vec3{-0.95, 1.8, 5.4}, glassColor))
	b.AddChild(box(NameRightDoor, door, common.Vec3{0.95, 1.8, 5.4}, glassColor))
	for _, x := range []float32{-0.3, 0.3} {
		b.AddChild(cylinder("doorHandle", 0.05, 0.8, common.Vec3{x, 1.8, 5.5}, 0xc0c0c0))
	}

	// roof
	b.AddChild(game_object.NewMesh("roof", game_object.PrimitiveCone, common.Vec3{28, 6, 28},
		game_object.WithPosition(common.Vec3{0, 11, 0}),
		game_object.WithRotation(common.Vec3{0, math.Pi / 4, 0}),
		game_object.WithHexColor(itkBlue),
	))
	b.AddChild(game_object.NewMesh("dome", game_object.PrimitiveSphere, common.Vec3{6, 6, 6},
		game_object.WithPosition(common.Vec3{0, 11, 0}),
		game_object.WithHexColor(0xc0c0c0),
	))
	b.AddChild(game_object.NewMesh("pinnacle", game_object.PrimitiveCone, common.Vec3{1, 2, 1},
		game_object.WithPosition(common.Vec3{0, 13.5, 0}),
		game_object.WithHexColor(0xffcc00),
	))

	b.AddChild(box(NameFacultySign, common.Vec3{12, 1, 0.2}, common.Vec3{0, 7.5, 5.1}, itkBlue))

	// pillars, caps and flag
	for _, x := range []float32{-5, 5} {
		b.AddChild(cylinder("pillar", 0.4, 8, common.Vec3{x, 3.5, 5}, facadeColor))
		b.AddChild(box("pillarCap", common.Vec3{1.2, 0.5, 1.2}, common.Vec3{x, 7.5, 5}, 0xdddddd))
		b.AddChild(box("pillarBase", common.Vec3{1.2, 0.5, 1.2}, common.Vec3{x, -0.2, 5}, 0xdddddd))
	}
	b.AddChild(cylinder("flagpole", 0.1, 10, common.Vec3{9, 4.5, 4}, 0xc0c0c0))
	b.AddChild(box("flag", common.Vec3{2, 1, 0.02}, common.Vec3{8, 8, 4}, 0xff0000))
	return b
}

// windows adds the glass panes on every facade, two floors each, leaving the door bay free.
// Panes are thin boxes so they need no rotation on the side walls.
func windows(b game_object.GameObject) {
	front := common.Vec3{1.5, 2, 0.02}
	side := common.Vec3{0.02, 2, 1.5}
	floors := []float32{3.5, 6}

	for i := -3; i <= 3; i += 2 {
		x := float32(i * 2)
		for _, y := range floors {
			if i != -1 && i != 1 {
				b.AddChild(box(NameWindow, front, common.Vec3{x, y, 5.01}, glassColor))
			}
			b.AddChild(box(NameWindow, front, common.Vec3{x, y, -5.01}, glassColor))
		}
	}
	for _, z := range []float32{-2, 2} {
		for _, y := range floors {
			b.AddChild(box(NameWindow, side, common.Vec3{-9.01, y, z}, glassColor))
			b.AddChild(box(NameWindow, side, common.Vec3{9.01, y, z}, glassColor))
		}
	}
}

func secondaryBuilding() game_object.GameObject {
	b := game_object.NewGroup("secondaryBuilding")
	b.AddChild(box("foundation", common.Vec3{12, 0.5, 8}, common.Vec3{0, -0.25, 0}, stoneColor))
	b.AddChild(box("structure", common.Vec3{10, 5, 6}, common.Vec3{0, 2.5, 0}, 0xf0f0f0))
	b.AddChild(box("roof", common.Vec3{11, 0.5, 7}, common.Vec3{0, 5.25, 0}, 0x333333))

	pane := common.Vec3{1.2, 1.5, 0.02}
	for i := -1; i <= 1; i++ {
		x := float32(i * 3)
		b.AddChild(box("pane", pane, common.Vec3{x, 2.5, 3.01}, glassColor))
		b.AddChild(box("pane", pane, common.Vec3{x, 2.5, -3.01}, glassColor))
	}
	sidePane := common.Vec3{0.02, 1.5, 1.2}
	for _, z := range []float32{-1, 1} {
		b.AddChild(box("pane", sidePane, common.Vec3{-5.01, 2.5, z}, glassColor))
		b.AddChild(box("pane", sidePane, common.Vec3{5.01, 2.5, z}, glassColor))
	}
	b.AddChild(box("door", common.Vec3{1.5, 2.5, 0.02}, common.Vec3{0, 1.25, 3.01}, 0x995522))
	return b
}

func paths(faculty game_object.GameObject) {
	plane := func(size, pos common.Vec3) game_object.GameObject {
		return game_object.NewMesh("path", game_object.PrimitivePlane, size,
			game_object.WithPosition(pos),
			game_object.WithHexColor(pathColor),
		)
	}
	faculty.AddChild(plane(common.Vec3{5, 0, 30}, common.Vec3{0, -0.48, 15}))
	faculty.AddChild(plane(common.Vec3{20, 0, 3}, common.Vec3{-7.5, -0.48, 5}))
	faculty.AddChild(plane(common.Vec3{20, 0, 3}, common.Vec3{7.5, -0.48, 5}))
}

var (
	treePositions = []common.Vec3{
		{-20, 0, -15}, {-15, 0, -20}, {-10, 0, -18}, {10, 0, -18},
		{15, 0, -20}, {20, 0, -15}, {-20, 0, 15}, {-25, 0, 5},
		{20, 0, 15}, {25, 0, 5}, {0, 0, -25}, {0, 0, 30},
		{-5, 0, 20}, {5, 0, 20},
	}
	benchPlacements = []struct {
		pos common.Vec3
		yaw float32
	}{
		{common.Vec3{-5, 0, 10}, 0},
		{common.Vec3{5, 0, 10}, 0},
		{common.Vec3{-10, 0, 0}, math.Pi / 2},
		{common.Vec3{10, 0, 0}, math.Pi / 2},
	}
	lampPositions = []common.Vec3{
		{-10, 0, 15}, {10, 0, 15}, {-15, 0, 5}, {15, 0, 5},
		{0, 0, 25}, {-10, 0, -10}, {10, 0, -10},
	}
)

func decorations(faculty game_object.GameObject) {
	for i, pos := range treePositions {
		t := tree(i % 3)
		t.SetPosition(pos)
		faculty.AddChild(t)
	}
	for _, p := range benchPlacements {
		b := bench()
		b.SetPosition(p.pos)
		b.SetRotation(common.Vec3{0, p.yaw, 0})
		faculty.AddChild(b)
	}
	for _, pos := range lampPositions {
		l := lampPost()
		l.SetPosition(pos)
		faculty.AddChild(l)
	}
}

// tree builds one of three tree variants: a two-layer pine, a bushy tree or a thin tree.
func tree(variant int) game_object.GameObject {
	t := game_object.NewGroup("tree")
	t.AddChild(cylinder("trunk", 0.35, 2.5, common.Vec3{0, 1, 0}, 0x8b4513))
	switch variant {
	case 0:
		t.AddChild(game_object.NewMesh("leaves", game_object.PrimitiveCone, common.Vec3{3, 4, 3},
			game_object.WithPosition(common.Vec3{0, 3.5, 0}),
			game_object.WithHexColor(0x2d572c),
		))
		t.AddChild(game_object.NewMesh("leaves", game_object.PrimitiveCone, common.Vec3{2, 3, 2},
			game_object.WithPosition(common.Vec3{0, 5, 0}),
			game_object.WithHexColor(0x2d572c),
		))
	case 1:
		t.AddChild(game_object.NewMesh("leaves", game_object.PrimitiveSphere, common.Vec3{4, 4, 4},
			game_object.WithPosition(common.Vec3{0, 3, 0}),
			game_object.WithHexColor(0x3a9d23),
		))
	default:
		t.AddChild(game_object.NewMesh("leaves", game_object.PrimitiveCone, common.Vec3{2, 3, 2},
			game_object.WithPosition(common.Vec3{0, 3.5, 0}),
			game_object.WithHexColor(0x52b788),
		))
	}
	return t
}

func bench() game_object.GameObject {
	b := game_object.NewGroup("bench")
	b.AddChild(box("seat", common.Vec3{3, 0.1, 1}, common.Vec3{0, 0.6, 0}, 0x886622))
	b.AddChild(box("back", common.Vec3{3, 1, 0.1}, common.Vec3{0, 1.1, -0.45}, 0x886622))
	b.AddChild(box("leg", common.Vec3{0.1, 0.6, 1}, common.Vec3{-1.2, 0.3, 0}, 0x333333))
	b.AddChild(box("leg", common.Vec3{0.1, 0.6, 1}, common.Vec3{1.2, 0.3, 0}, 0x333333))
	return b
}

func lampPost() game_object.GameObject {
	l := game_object.NewGroup("lampPost")
	l.AddChild(cylinder("post", 0.1, 5, common.Vec3{0, 2.5, 0}, 0x333333))
	l.AddChild(cylinder("lampHead", 0.3, 0.2, common.Vec3{0, 5, 0}, 0x222222))
	l.AddChild(game_object.NewMesh("bulb", game_object.PrimitiveSphere, common.Vec3{0.4, 0.4, 0.4},
		game_object.WithPosition(common.Vec3{0, 4.8, 0}),
		game_object.WithHexColor(0xffdd88),
		game_object.WithEmissive(0.5),
	))
	return l
}

func entrance() game_object.GameObject {
	gate := game_object.NewGroup("entrance")
	gate.AddChild(box("gatePillar", common.Vec3{1, 6, 1}, common.Vec3{-4, 3, 30}, 0x666666))
	gate.AddChild(box("gatePillar", common.Vec3{1, 6, 1}, common.Vec3{4, 3, 30}, 0x666666))
	gate.AddChild(game_object.NewMesh("arch", game_object.PrimitiveCylinder, common.Vec3{1, 10, 1},
		game_object.WithPosition(common.Vec3{0, 6, 30}),
		game_object.WithRotation(common.Vec3{0, 0, math.Pi / 2}),
		game_object.WithHexColor(itkBlue),
	))
	gate.AddChild(box("gateBoard", common.Vec3{7, 1, 0.2}, common.Vec3{0, 7, 30}, 0xffffff))
	return gate
}
