package main

import (
	"os"

	"github.com/markx3/todoboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
