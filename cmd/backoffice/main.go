package main

import (
	"os"

	"github.com/kedaikopi/backoffice/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
