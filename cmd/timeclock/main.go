package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Randhum/TimeClock/internal/cli"
)

func main() {
	// Optional .env next to the binary; real env wins over file values.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
