package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/mistfall/photonmapper/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "photonmapper"
	app.Usage = "render scenes with a two-pass photon-mapping integrator"
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
			Name:  "render",
			Usage: "render the demo Cornell-box scene",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config",
					Value: "photon_map.json",
					Usage: "path to a JSON document with a photon_map section",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 400,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 32,
					Usage: "camera samples per pixel",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
