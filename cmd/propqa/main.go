package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/clearbid-labs/propqa-cli/internal/adapters/driving/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
