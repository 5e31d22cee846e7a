package main

import (
	"os"

	"github.com/vsinha/wavecalc/pkg/interfaces/cli/commands"
)

func main() {
	os.Exit(commands.Execute())
}
