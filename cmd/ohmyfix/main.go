package main

import (
	"os"

	"github.com/dshills/ohmyfix/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
