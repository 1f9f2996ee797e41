package main

import (
	"fmt"
	"os"

	"neon-transcriber/cmd/transcriber/cmd"
	"neon-transcriber/internal/config"
)

func main() {
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd.Execute()
}
