package tour

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/content"
	"github.com/stretchr/testify/require"
)

const minimalTable = `
fallback: lobby
locations:
  - id: lobby
    name: Lobby
    camera:
      position: [0, 1.7, 2]
      lookAt: [0, 1.7, 0]
    bounds: {minX: -3, maxX: 3, minZ: -3, maxZ: 3}
    hotspots:
      - kind: info
        position: [0, 1.5, -2]
        title: Sign
        scale: 2
`

func TestDefaultTable(t *testing.T) {
	t.Run("Is Valid", func(t *testing.T) {
		table := DefaultTable()
		require.NoError(t, table.Validate())
		require.Equal(t, content.DefaultLocationIDs, table.IDs())
		require.Equal(t, content.LocationMainBuilding, table.Fallback)
		require.Equal(t, content.LocationMainBuilding, table.StartID())
	})

	t.Run("Every Location Has Text And A Way Out", func(t *testing.T) {
		for _, loc := range DefaultTable().Locations {
			require.NotEmpty(t, loc.Name, loc.ID)
			require.NotEmpty(t, loc.Description, loc.ID)
			require.True(t, loc.Bounds.Contains(loc.Camera.Position), loc.ID)

			teleports := 0
			for _, h := range loc.Hotspots {
				if h.Kind == KindTeleport {
					teleports++
				}
			}
			require.Positive(t, teleports, loc.ID)
		}
	})

	t.Run("Returns Independent Copies", func(t *testing.T) {
		a := DefaultTable()
		a.Locations[0].Name = "changed"
		b := DefaultTable()
		require.NotEqual(t, "changed", b.Locations[0].Name)
	})
}

func TestLocationTable_Lookup(t *testing.T) {
	table := DefaultTable()

	loc, ok := table.Lookup(content.LocationAILab)
	require.True(t, ok)
	require.Equal(t, "Laboratorium AI", loc.Name)
	require.Len(t, loc.Hotspots, 3)

	_, ok = table.Lookup("rooftop")
	require.False(t, ok)
}

func TestParseTable(t *testing.T) {
	t.Run("Decodes A Minimal Table", func(t *testing.T) {
		table, err := ParseTable([]byte(minimalTable))
		require.NoError(t, err)
		require.Equal(t, "lobby", table.StartID())
		loc, ok := table.Lookup("lobby")
		require.True(t, ok)
		require.Equal(t, common.Vec3{0, 1.7, 2}, loc.Camera.Position)
		require.Equal(t, Bounds{MinX: -3, MaxX: 3, MinZ: -3, MaxZ: 3}, loc.Bounds)
		require.Equal(t, float32(2), loc.Hotspots[0].Scale)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := ParseTable([]byte("locations: [: nope"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidTable)
	})

	invalid := map[string]*LocationTable{
		"No Locations": {Fallback: "lobby"},
		"Duplicate Id": {
			Fallback: "a",
			Locations: []Location{
				{ID: "a", Bounds: Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1}},
				{ID: "a", Bounds: Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1}},
			},
		},
		"Missing Fallback": {
			Fallback:  "b",
			Locations: []Location{{ID: "a", Bounds: Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1}}},
		},
		"Missing Start": {
			Fallback:  "a",
			Start:     "b",
			Locations: []Location{{ID: "a", Bounds: Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1}}},
		},
		"Inverted Bounds": {
			Fallback:  "a",
			Locations: []Location{{ID: "a", Bounds: Bounds{MinX: 1, MaxX: -1, MinZ: -1, MaxZ: 1}}},
		},
		"Camera Outside Bounds": {
			Fallback: "a",
			Locations: []Location{{
				ID:     "a",
				Camera: CameraView{Position: common.Vec3{5, 1.7, 0}},
				Bounds: Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
			}},
		},
		"Dangling Teleport": {
			Fallback: "a",
			Locations: []Location{{
				ID:       "a",
				Bounds:   Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
				Hotspots: []HotspotSpec{{Kind: KindTeleport, Target: "b"}},
			}},
		},
		"Action Without Key": {
			Fallback: "a",
			Locations: []Location{{
				ID:       "a",
				Bounds:   Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
				Hotspots: []HotspotSpec{{Kind: KindAction, Title: "desk"}},
			}},
		},
		"Unknown Kind": {
			Fallback: "a",
			Locations: []Location{{
				ID:       "a",
				Bounds:   Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
				Hotspots: []HotspotSpec{{Kind: "portal"}},
			}},
		},
		"Negative Scale": {
			Fallback: "a",
			Locations: []Location{{
				ID:       "a",
				Bounds:   Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
				Hotspots: []HotspotSpec{{Kind: KindInfo, Scale: -1}},
			}},
		},
	}
	for name, table := range invalid {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, table.Validate(), ErrInvalidTable)
		})
	}

	t.Run("Dangling Target Reports Unknown Location", func(t *testing.T) {
		err := invalid["Dangling Teleport"].Validate()
		require.ErrorContains(t, err, `teleport target "b"`)
		require.ErrorContains(t, err, ErrUnknownLocation.Error())
	})
}

func TestLoadTable(t *testing.T) {
	t.Run("Reads From Disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "locations.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalTable), 0o644))
		table, err := LoadTable(path)
		require.NoError(t, err)
		require.Equal(t, []string{"lobby"}, table.IDs())
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{MinX: -9.5, MaxX: 9.5, MinZ: -7, MaxZ: 7}
	require.Equal(t, common.Vec3{9.5, 3, -7}, b.Clamp(common.Vec3{20, 3, -20}))
	require.Equal(t, common.Vec3{1, 1.7, 2}, b.Clamp(common.Vec3{1, 1.7, 2}))
	require.True(t, b.Contains(common.Vec3{9.5, 100, 7}))
	require.False(t, b.Contains(common.Vec3{9.6, 0, 0}))
}
