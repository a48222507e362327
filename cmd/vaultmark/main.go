package main

import (
	"os"

	"github.com/vaultmark/vaultmark/cli"
)

func main() {
	cli.Run(os.Args)
}
