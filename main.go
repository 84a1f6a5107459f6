// main.go
//
// Entry point for the factory-sim CLI; commands live in cmd/

package main

import (
	"github.com/factory-sim/factory-sim/cmd"
)

func main() {
	cmd.Execute()
}
