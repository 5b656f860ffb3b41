// Package main provides the cvcheck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cvcheck",
	Short: "Verify CV publication claims against bibliographic records",
	Long: `cvcheck parses the publications section of a free-form CV, looks each
entry up in Crossref, and verifies the claimed authors and author order
against the published record.

Workflow:
  parse   - extract publication records from CV text or PDF
  match   - retrieve and rank external candidates for each record
  verify  - check claimed authorship against the selected candidates
  check   - run the full pipeline and write a report

All commands output JSON by default for scripting.
Use --human flag for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for CROSSREF_MAILTO)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
