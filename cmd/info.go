package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// Print statistics about a geometry file and its BVH trees.
func ShowInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	checker, err := loadChecker(ctx)
	if err != nil {
		return err
	}

	fmt.Print(checker.Stats())
	return nil
}
