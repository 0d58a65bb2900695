package main

import (
	"os"

	"github.com/DeusData/codesym/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
