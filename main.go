package main

import (
	"github.com/QuantumLynx/stocks-news-app/cmd"
	"github.com/joho/godotenv"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Optional .env for FINNHUB_API_KEY; absence is fine.
	_ = godotenv.Load()

	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
