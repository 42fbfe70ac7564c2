package main

import (
	"github.com/COMBINE-lab/piquant/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
