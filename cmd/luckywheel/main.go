// Command luckywheel renders and plays lucky wheel spins.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/luckywheel/cmd/luckywheel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
