package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/stretchr/testify/require"
)

func buildTree() (root, table, leg GameObject) {
	leg = NewMesh("leg", PrimitiveBox, common.Vec3{0.1, 0.7, 0.1}, WithPosition(common.Vec3{0.5, -0.35, 0.5}))
	table = NewGroup("table", WithPosition(common.Vec3{2, 0.75, 0}), WithChildren(leg))
	root = NewGroup("room", WithChildren(
		NewMesh("floor", PrimitivePlane, common.Vec3{20, 0, 15}),
		table,
	))
	return
}

func TestGameObject_Defaults(t *testing.T) {
	g := NewGameObject()
	require.Equal(t, KindGroup, g.Kind())
	require.True(t, g.Visible())
	require.Equal(t, common.Vec3{1, 1, 1}, g.Scale())
	require.Nil(t, g.Parent())

	m := NewMesh("box", PrimitiveBox, common.Vec3{1, 2, 3})
	require.Equal(t, KindMesh, m.Kind())
	require.Equal(t, common.Vec3{1, 2, 3}, m.Size())
	require.NotEqual(t, g.ID(), m.ID())
}

func TestGameObject_Hierarchy(t *testing.T) {
	root, table, leg := buildTree()

	t.Run("Find", func(t *testing.T) {
		require.Equal(t, leg, root.Find(leg.ID()))
		require.Equal(t, table, root.FindByName("table"))
		require.Nil(t, table.FindByName("floor"))
	})

	t.Run("Traverse Prunes", func(t *testing.T) {
		var names []string
		root.Traverse(func(n GameObject) bool {
			names = append(names, n.Name())
			return n.Name() != "table"
		})
		require.Equal(t, []string{"room", "floor", "table"}, names)
	})

	t.Run("World Position", func(t *testing.T) {
		p := leg.WorldPosition()
		require.InDelta(t, 2.5, p[0], 1e-5)
		require.InDelta(t, 0.4, p[1], 1e-5)
		require.InDelta(t, 0.5, p[2], 1e-5)
	})

	t.Run("Reparent", func(t *testing.T) {
		root.AddChild(leg)
		require.Len(t, table.Children(), 0)
		require.Equal(t, root, leg.Parent())
		require.True(t, root.RemoveChild(leg.ID()))
		require.False(t, root.RemoveChild(leg.ID()))
		require.Nil(t, leg.Parent())
	})
}

func TestGameObject_Clone(t *testing.T) {
	root, _, _ := buildTree()
	root.FindByName("floor").SetVisible(false)

	c := root.Clone()
	require.NotEqual(t, root.ID(), c.ID())
	require.Nil(t, c.Parent())

	originals := map[string]bool{}
	root.Traverse(func(n GameObject) bool {
		originals[n.ID().String()] = true
		return true
	})
	count := 0
	c.Traverse(func(n GameObject) bool {
		count++
		require.False(t, originals[n.ID().String()], "clone reused identity of %s", n.Name())
		return true
	})
	require.Equal(t, len(originals), count)
	require.False(t, c.FindByName("floor").Visible())

	c.FindByName("leg").SetColor(common.Vec3{1, 0, 0})
	require.Equal(t, common.Vec3{1, 1, 1}, root.FindByName("leg").Color())
}

func TestGameObject_Advance(t *testing.T) {
	g := NewGameObject(WithRotationSpeed(common.Vec3{0, 2, 0}))
	child := NewGameObject(WithRotationSpeed(common.Vec3{1, 0, 0}))
	g.AddChild(child)

	g.Advance(0.5)
	require.InDelta(t, 1, g.Rotation()[1], 1e-6)
	require.InDelta(t, 0.5, child.Rotation()[0], 1e-6)
}

func TestHexColor(t *testing.T) {
	require.Equal(t, common.Vec3{1, 0, 0}, HexColor(0xff0000))
	require.InDelta(t, 0.2, HexColor(0x333333)[0], 1e-6)
}
