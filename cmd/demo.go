package cmd

import (
	"fmt"

	"github.com/PcieExplioter/vigilant-disco/scene"
	"github.com/PcieExplioter/vigilant-disco/types"
	"github.com/PcieExplioter/vigilant-disco/vis"
	"github.com/urfave/cli"
)

// Run a set of visibility queries against a small in-memory scene: a ground
// plane at y=0 and a wall at z=500 spanning x in [-100,100], y in [0,1000].
func RunDemo(ctx *cli.Context) error {
	setupLogging(ctx)

	ground := scene.Mesh{
		{
			V0: types.XYZ(-1000, 0, -1000),
			V1: types.XYZ(1000, 0, -1000),
			V2: types.XYZ(1000, 0, 1000),
		},
		{
			V0: types.XYZ(-1000, 0, -1000),
			V1: types.XYZ(1000, 0, 1000),
			V2: types.XYZ(-1000, 0, 1000),
		},
	}
	wall := scene.Mesh{
		{
			V0: types.XYZ(-100, 0, 500),
			V1: types.XYZ(100, 0, 500),
			V2: types.XYZ(100, 1000, 500),
		},
		{
			V0: types.XYZ(-100, 0, 500),
			V1: types.XYZ(100, 1000, 500),
			V2: types.XYZ(-100, 1000, 500),
		},
	}

	checker := vis.New()
	if !checker.LoadGeometry([]scene.Mesh{ground, wall}) {
		return fmt.Errorf("demo: failed to load geometry")
	}

	queries := []struct {
		from, to types.Vec3
	}{
		{types.XYZ(0, 100, 0), types.XYZ(0, 100, 200)},
		{types.XYZ(0, 100, 0), types.XYZ(0, 100, 1000)},
		{types.XYZ(0, 100, 0), types.XYZ(0, 100, 0)},
		{types.XYZ(0, 50, 400), types.XYZ(0, 50, 600)},
		{types.XYZ(0, 1500, 400), types.XYZ(0, 1500, 600)},
		{types.XYZ(500, 100, 0), types.XYZ(500, 100, 1000)},
	}

	for i, q := range queries {
		result := "BLOCKED"
		if checker.IsVisible(q.from, q.to) {
			result = "VISIBLE"
		}
		fmt.Printf("Test %d: %v -> %v: %s\n", i+1, q.from, q.to, result)
	}

	return nil
}
