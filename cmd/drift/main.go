// Package main provides the Drift CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Drift %s\n", version)
		return
	}

	fmt.Println("Drift - Reinforcement Learning Building Blocks for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/ddpg for a full actor-critic training loop.")
}
