// Package main provides the entry point for the Interview Prep API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_prep",
	Short: "Interview Prep API Server",
	Long:  "Interview Prep stores interview and resume records per user and streams AI-generated interview practice conversations grounded in those records.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
