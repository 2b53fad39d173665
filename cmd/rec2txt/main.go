package main

import (
	"fmt"
	"os"

	"rec2txt/cmd/rec2txt/cmd"
	"rec2txt/internal/config"
)

func main() {
	// A broken .env is reported but not fatal; the key check comes later.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd.Execute()
}
