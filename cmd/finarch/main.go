package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/finarch/finance-architect/internal/cli"
)

func main() {
	// Optional .env file for FINARCH_DB and friends; absence is fine.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
