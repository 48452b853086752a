package cmd

import (
	"fmt"
	"strings"

	"github.com/PcieExplioter/vigilant-disco/vis"
	"github.com/urfave/cli"
)

// Compile geometry files into the binary .opt format and optionally emit a
// BVH cache next to each output so later runs skip tree construction.
func CompileGeometry(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return fmt.Errorf("compile: no input files specified")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		geomFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(geomFile, ".obj") && !strings.HasSuffix(geomFile, ".opt") {
			return fmt.Errorf("compile: unsupported file %s", geomFile)
		}

		checker := vis.New()
		if !checker.LoadFromOptFile(geomFile) {
			return fmt.Errorf("compile: failed to load %s", geomFile)
		}

		baseName := strings.TrimSuffix(strings.TrimSuffix(geomFile, ".obj"), ".opt")
		if strings.HasSuffix(geomFile, ".obj") {
			if !checker.SaveGeometryToFile(baseName + ".opt") {
				return fmt.Errorf("compile: failed to write %s.opt", baseName)
			}
		}

		if ctx.Bool("cache") {
			if !checker.SaveBVHToFile(baseName + ".bvh") {
				return fmt.Errorf("compile: failed to write %s.bvh", baseName)
			}
		}
	}

	return nil
}
