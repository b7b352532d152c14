package main

import (
	"os"

	"insurance-chatbot-backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
