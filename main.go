package main

import (
	"github.com/tracim/tracim-seed-cli/cmd"
)

func main() {
	cmd.Execute()
}
