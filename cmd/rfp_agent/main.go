// Package main provides the entry point for the RFP analysis CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rfp_agent",
	Short: "RFP analysis pipeline",
	Long:  "rfp_agent analyzes B2B RFP documents: it extracts technical requirements, matches them against a component catalog, scores the fit and composes a proposal.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
