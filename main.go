package main

import (
	"os"

	"github.com/PcieExplioter/vigilant-disco/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	geometryFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "geometry, g",
			Usage: "geometry file (.opt or .obj)",
		},
		cli.StringFlag{
			Name:  "cache, c",
			Usage: "pre-built BVH cache file",
		},
	}

	app := cli.NewApp()
	app.Name = "vischeck"
	app.Usage = "line-of-sight queries against static triangle meshes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile geometry into the binary .opt format",
			Description: `
Parse mesh geometry from wavefront obj files, convert it to the binary .opt
format and optionally build the per-mesh BVH trees and write them to a cache
file so that later runs skip tree construction.`,
			ArgsUsage: "scene1.obj scene2.obj ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "cache",
					Usage: "also write a .bvh cache file per input",
				},
			},
			Action: cmd.CompileGeometry,
		},
		{
			Name:      "check",
			Usage:     "run a visibility query between two points",
			ArgsUsage: "x1,y1,z1 x2,y2,z2",
			Flags:     geometryFlags,
			Action:    cmd.CheckVisibility,
		},
		{
			Name:   "info",
			Usage:  "print mesh and BVH statistics for a geometry file",
			Flags:  geometryFlags,
			Action: cmd.ShowInfo,
		},
		{
			Name:   "demo",
			Usage:  "run visibility queries against a built-in demo scene",
			Action: cmd.RunDemo,
		},
	}

	app.Run(os.Args)
}
