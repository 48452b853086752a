package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PcieExplioter/vigilant-disco/types"
	"github.com/PcieExplioter/vigilant-disco/vis"
	"github.com/urfave/cli"
)

// Run a single visibility query against a geometry file. The two query
// points are passed as comma-separated coordinate triplets.
func CheckVisibility(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return fmt.Errorf("check: expected 2 point arguments of the form x,y,z")
	}

	p1, err := parsePoint(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("check: %s", err.Error())
	}
	p2, err := parsePoint(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("check: %s", err.Error())
	}

	checker, err := loadChecker(ctx)
	if err != nil {
		return err
	}

	if checker.IsVisible(p1, p2) {
		fmt.Println("VISIBLE")
	} else {
		fmt.Println("BLOCKED")
	}
	return nil
}

// Load geometry (and optionally a BVH cache) as selected by the common
// geometry/cache flags.
func loadChecker(ctx *cli.Context) (*vis.VisCheck, error) {
	geomFile := ctx.String("geometry")
	if geomFile == "" {
		return nil, fmt.Errorf("no geometry file specified; use --geometry")
	}

	checker := vis.New()
	if !checker.LoadFromOptFile(geomFile) {
		return nil, fmt.Errorf("failed to load geometry from %s", geomFile)
	}

	if cacheFile := ctx.String("cache"); cacheFile != "" {
		if !checker.LoadBVHFromFile(cacheFile) {
			logger.Warningf("could not use BVH cache %s; falling back to the freshly built trees", cacheFile)
		}
	}

	return checker, nil
}

// Parse a point argument of the form x,y,z.
func parsePoint(arg string) (types.Vec3, error) {
	tokens := strings.Split(arg, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf("malformed point %q; expected x,y,z", arg)
	}

	var out types.Vec3
	for i, token := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("malformed point %q: %s", arg, err.Error())
		}
		out[i] = float32(v)
	}
	return out, nil
}
