package main

import (
	"os"

	"github.com/remaimber-it/flashcards/internal/cli"

	_ "github.com/remaimber-it/flashcards/docs" // generated swagger docs
)

// @title           Flashcards API
// @version         1.0
// @description     Quiz yourself on a question bank and keep a history of every answer.

// @host      localhost:8080
// @BasePath  /

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
