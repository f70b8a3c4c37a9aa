package main

import (
	"os"

	"github.com/aduvenhage/lostnfound/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lostnfound"
	app.Usage = "render scenes using path tracing"
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
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame of the built-in demo scene.`,
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 1024,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 768,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "spp",
							Value: 64,
							Usage: "max samples per pixel",
						},
						cli.IntFlag{
							Name:  "depth",
							Value: 16,
							Usage: "max trace depth",
						},
						cli.IntFlag{
							Name:  "workers",
							Value: 0,
							Usage: "worker count (0 = 2x hardware parallelism)",
						},
						cli.Float64Flag{
							Name:  "tolerance",
							Value: 0.01,
							Usage: "adaptive sampling convergence tolerance",
						},
						cli.IntFlag{
							Name:  "seed",
							Value: 1,
							Usage: "random seed",
						},
						cli.Float64Flag{
							Name:  "fov",
							Value: 60,
							Usage: "vertical field of view in degrees",
						},
						cli.Float64Flag{
							Name:  "aperture",
							Value: 1.5,
							Usage: "camera aperture size",
						},
						cli.Float64Flag{
							Name:  "focus-distance",
							Value: 120,
							Usage: "camera focus distance",
						},
						cli.IntFlag{
							Name:  "bvh-leaf-size",
							Value: 16,
							Usage: "max primitives per BVH leaf",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					},
					Action: cmd.RenderFrame,
				},
			},
		},
	}

	app.Run(os.Args)
}
