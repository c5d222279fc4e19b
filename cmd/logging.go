package cmd

import (
	"github.com/urfave/cli"

	"github.com/mistfall/photonmapper/pkg/rlog"
)

var logger = rlog.New("photonmapper")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		rlog.SetLevel(rlog.Info)
	}

	if ctx.GlobalBool("vv") {
		rlog.SetLevel(rlog.Debug)
	}
}
