package main

import (
	"github.com/tebeka/atexit"

	"github.com/wesleyorama2/pagelat/internal/cli"
)

func main() {
	atexit.Exit(cli.Execute())
}
