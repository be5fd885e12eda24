// Package main is a command line tool over the job title category CSV
package main

import (
	"fmt"
	"os"

	"paydash/internal/platform/config"
)

func main() {
	// .env supplies CATEGORIES_CSV when the flag is not given
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
