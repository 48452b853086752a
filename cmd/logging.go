package cmd

import (
	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/urfave/cli"
)

var logger = log.New("vischeck")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
