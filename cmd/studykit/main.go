// Command studykit is the document question-answering CLI.
package main

import (
	"github.com/joho/godotenv"

	"github.com/custodia-labs/studykit/internal/adapters/driving/cli"
)

func main() {
	// Missing .env is fine; the config file and environment still apply.
	_ = godotenv.Load()

	cli.Execute()
}
