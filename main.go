package main

import (
	"os"

	"github.com/guiyumin/tubenotes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
