package main

import (
	"os"

	"pedro.to/valgo/cli"
	"pedro.to/valgo/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	logger.SetupLogger()
}
