package content

import (
	"math"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
)

// Location ids of the campus tour.
const (
	LocationMainBuilding  = "main-building"
	LocationAILab         = "ai-lab"
	LocationLibrary       = "library"
	LocationCreativeSpace = "creative-space"
	LocationHall          = "hall"
)

// DefaultLocationIDs lists the campus locations in navigation order.
var DefaultLocationIDs = []string{
	LocationMainBuilding,
	LocationAILab,
	LocationLibrary,
	LocationCreativeSpace,
	LocationHall,
}

var defaultBlueprints = map[string]Blueprint{
	LocationMainBuilding:  mainBuildingInterior,
	LocationAILab:         aiLab,
	LocationLibrary:       library,
	LocationCreativeSpace: creativeSpace,
	LocationHall:          hall,
}

const (
	wallHeight    = 4.0
	wallThickness = 0.2
	wallColor     = 0xf5f5f5
	ceilingColor  = 0xffffff
	lightSpacing  = 5.0
)

func box(name string, size, pos common.Vec3, hex uint32, options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	base := []game_object.GameObjectBuilderOption{
		game_object.WithPosition(pos),
		game_object.WithHexColor(hex),
	}
	return game_object.NewMesh(name, game_object.PrimitiveBox, size, append(base, options...)...)
}

func cylinder(name string, radius, height float32, pos common.Vec3, hex uint32, options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	base := []game_object.GameObjectBuilderOption{
		game_object.WithPosition(pos),
		game_object.WithHexColor(hex),
	}
	size := common.Vec3{radius * 2, height, radius * 2}
	return game_object.NewMesh(name, game_object.PrimitiveCylinder, size, append(base, options...)...)
}

func sphere(name string, radius float32, pos common.Vec3, hex uint32) game_object.GameObject {
	size := common.Vec3{radius * 2, radius * 2, radius * 2}
	return game_object.NewMesh(name, game_object.PrimitiveSphere, size,
		game_object.WithPosition(pos),
		game_object.WithHexColor(hex),
	)
}

// basicRoom adds the floor, four walls, ceiling and ceiling lights of a width x depth room
// centred on the origin.
func basicRoom(room game_object.GameObject, width, depth float32, floorHex uint32) {
	halfW, halfD := width/2, depth/2

	room.AddChild(game_object.NewMesh("floor", game_object.PrimitivePlane, common.Vec3{width, 0, depth},
		game_object.WithPosition(common.Vec3{0, -0.1, 0}),
		game_object.WithHexColor(floorHex),
	))

	frontBack := common.Vec3{width, wallHeight, wallThickness}
	sides := common.Vec3{wallThickness, wallHeight, depth}
	room.AddChild(box("frontWall", frontBack, common.Vec3{0, wallHeight / 2, halfD}, wallColor))
	room.AddChild(box("backWall", frontBack, common.Vec3{0, wallHeight / 2, -halfD}, wallColor))
	room.AddChild(box("leftWall", sides, common.Vec3{-halfW, wallHeight / 2, 0}, wallColor))
	room.AddChild(box("rightWall", sides, common.Vec3{halfW, wallHeight / 2, 0}, wallColor))

	room.AddChild(game_object.NewMesh("ceiling", game_object.PrimitivePlane, common.Vec3{width, 0, depth},
		game_object.WithPosition(common.Vec3{0, wallHeight, 0}),
		game_object.WithHexColor(ceilingColor),
	))

	lights := game_object.NewGroup("ceilingLights")
	for x := -halfW + lightSpacing/2; x <= halfW-lightSpacing/2; x += lightSpacing {
		for z := -halfD + lightSpacing/2; z <= halfD-lightSpacing/2; z += lightSpacing {
			lights.AddChild(cylinder("ceilingLight", 0.2, 0.1, common.Vec3{x, wallHeight - 0.05, z}, 0xffffff,
				game_object.WithEmissive(0.5),
			))
		}
	}
	room.AddChild(lights)
}

func mainBuildingInterior() game_object.GameObject {
	room := game_object.NewGroup(LocationMainBuilding)
	basicRoom(room, 20, 15, 0xdddddd)

	room.AddChild(box("receptionDesk", common.Vec3{4, 1, 1.5}, common.Vec3{0, 0.5, 5}, 0x8b4513))
	room.AddChild(box("chair", common.Vec3{0.8, 1.2, 0.8}, common.Vec3{-5, 0.6, 3}, 0x333333))
	room.AddChild(box("chair", common.Vec3{0.8, 1.2, 0.8}, common.Vec3{-3, 0.6, 3}, 0x333333))

	plant := game_object.NewGroup("plant")
	plant.AddChild(cylinder("pot", 0.4, 1, common.Vec3{-8, 0.5, 6}, 0xaa7744))
	plant.AddChild(sphere("leaves", 0.8, common.Vec3{-8, 1.5, 6}, 0x2e8b57))
	room.AddChild(plant)

	room.AddChild(box("infoBoard", common.Vec3{3, 2, 0.1}, common.Vec3{-8, 2, -7}, 0x005691))
	return room
}

func aiLab() game_object.GameObject {
	room := game_object.NewGroup(LocationAILab)
	basicRoom(room, 15, 10, 0x444444)

	for _, z := range []float32{3, 0} {
		for _, x := range []float32{-5, -2.5, 0, 2.5, 5} {
			room.AddChild(workstation(common.Vec3{x, 0, z}))
		}
	}
	room.AddChild(serverRack(common.Vec3{-5, 0, -4}))
	return room
}

// workstation is a desk with monitor, keyboard, mouse and chair standing at pos.
func workstation(pos common.Vec3) game_object.GameObject {
	ws := game_object.NewGroup("workstation", game_object.WithPosition(pos))
	ws.AddChild(box("desk", common.Vec3{2, 0.1, 1}, common.Vec3{0, 0.7, 0}, 0x222222))
	ws.AddChild(box("monitorBase", common.Vec3{0.5, 0.1, 0.3}, common.Vec3{0, 0.75, -0.3}, 0x111111))
	ws.AddChild(box("monitorStand", common.Vec3{0.05, 0.3, 0.05}, common.Vec3{0, 0.95, -0.3}, 0x111111))
	ws.AddChild(box("monitor", common.Vec3{0.8, 0.5, 0.05}, common.Vec3{0, 1.2, -0.3}, 0x111111))
	ws.AddChild(box("monitorScreen", common.Vec3{0.75, 0.45, 0.01}, common.Vec3{0, 1.2, -0.27}, 0x1e90ff,
		game_object.WithEmissive(0.3),
	))
	ws.AddChild(box("keyboard", common.Vec3{0.6, 0.05, 0.2}, common.Vec3{0, 0.75, 0}, 0x333333))
	ws.AddChild(box("mouse", common.Vec3{0.1, 0.03, 0.06}, common.Vec3{0.35, 0.75, 0}, 0x222222))
	ws.AddChild(box("chairSeat", common.Vec3{0.6, 0.1, 0.6}, common.Vec3{0, 0.35, 0.7}, 0x222222))
	ws.AddChild(cylinder("chairLeg", 0.05, 0.7, common.Vec3{0, 0, 0.7}, 0x222222))
	ws.AddChild(box("chairBack", common.Vec3{0.6, 0.6, 0.1}, common.Vec3{0, 0.7, 1}, 0x222222))
	return ws
}

// serverRack stands a rack of eight servers with status LEDs at pos.
func serverRack(pos common.Vec3) game_object.GameObject {
	rack := game_object.NewGroup("serverRack", game_object.WithPosition(pos))
	rack.AddChild(box("rack", common.Vec3{1.5, 3, 0.8}, common.Vec3{0, 1.5, 0}, 0x222222))
	for i := 0; i < 8; i++ {
		y := 0.5 + float32(i)*0.3
		rack.AddChild(box("server", common.Vec3{1.4, 0.2, 0.7}, common.Vec3{0, y, 0.05}, 0x333333))
		for j := 0; j < 4; j++ {
			rack.AddChild(box("led", common.Vec3{0.06, 0.06, 0.06}, common.Vec3{-0.65 + float32(j)*0.05, y, 0.42}, 0x00ff00,
				game_object.WithEmissive(1),
			))
		}
	}
	return rack
}

func library() game_object.GameObject {
	room := game_object.NewGroup(LocationLibrary)
	basicRoom(room, 20, 15, 0x8b4513)

	for _, x := range []float32{-7.5, -4.5, 4.5, 7.5} {
		room.AddChild(box("bookshelf", common.Vec3{2, 2.5, 0.5}, common.Vec3{x, 1.25, -7}, 0x5c3317))
	}
	room.AddChild(box("readingTable", common.Vec3{3, 0.1, 1.5}, common.Vec3{0, 0.75, 0}, 0xa0522d))
	return room
}

func creativeSpace() game_object.GameObject {
	room := game_object.NewGroup(LocationCreativeSpace)
	basicRoom(room, 18, 18, 0xeeeeee)

	room.AddChild(cylinder("discussionTable", 1.2, 0.1, common.Vec3{0, 0.75, 0}, 0xff8c00))
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		pos := common.Vec3{float32(math.Cos(a)) * 2, 0.25, float32(math.Sin(a)) * 2}
		room.AddChild(cylinder("stool", 0.3, 0.5, pos, 0x3cb371))
	}
	room.AddChild(box("whiteboard", common.Vec3{4, 2, 0.1}, common.Vec3{0, 2, -8.8}, 0xffffff))
	return room
}

func hall() game_object.GameObject {
	room := game_object.NewGroup(LocationHall)
	basicRoom(room, 25, 20, 0xdddddd)

	room.AddChild(box("stage", common.Vec3{12, 0.8, 4}, common.Vec3{0, 0.4, -8}, 0x8b0000))
	room.AddChild(box("screen", common.Vec3{8, 3, 0.1}, common.Vec3{0, 2.3, -9.8}, 0xffffff,
		game_object.WithEmissive(0.2),
	))
	for row := 0; row < 4; row++ {
		for col := -4; col <= 4; col++ {
			pos := common.Vec3{float32(col) * 1.5, 0.25, -2 + float32(row)*2}
			room.AddChild(box("seat", common.Vec3{0.8, 0.5, 0.8}, pos, 0x333333))
		}
	}
	return room
}
