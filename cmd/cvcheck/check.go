package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cvcheck/internal/report"
)

var (
	checkCSVPath  string
	checkHTMLPath string
)

func init() {
	checkCmd.Flags().StringVar(&checkCSVPath, "csv", "", "Write a CSV report to this path")
	checkCmd.Flags().StringVar(&checkHTMLPath, "html", "", "Write an HTML report to this path")
	addProfileFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the full pipeline: parse, match, verify",
	Long: `Run the full pipeline on a CV: parse its publication entries, retrieve
and rank external candidates for each, and verify claimed authorship
against the selected candidates.

Writes the verified records as JSON to stdout; --csv and --html
additionally write report files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFullCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Records  []VerifiedRecord `json:"records"`
	Good     int              `json:"good"`
	Warnings int              `json:"warnings"`
	Bad      int              `json:"bad"`
}

func runFullCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	recs, err := parseRecords(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	recs, err = matchRecords(recs)
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}

	results := verifyRecords(recs, resolveProfile())

	if err := writeReports(results); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	good, warn, bad := summarize(results)
	if humanOutput {
		printVerdictsHuman(results)
		return nil
	}
	return outputJSON(CheckResult{
		Records:  results,
		Good:     good,
		Warnings: warn,
		Bad:      bad,
	})
}

func writeReports(results []VerifiedRecord) error {
	if checkCSVPath == "" && checkHTMLPath == "" {
		return nil
	}

	rows := make([]report.Row, 0, len(results))
	for _, res := range results {
		rows = append(rows, report.Row{Record: res.Record, Verdict: res.Verdict})
	}

	if checkCSVPath != "" {
		if err := writeReportFile(checkCSVPath, rows, report.WriteCSV); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", checkCSVPath)
	}
	if checkHTMLPath != "" {
		if err := writeReportFile(checkHTMLPath, rows, report.WriteHTML); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", checkHTMLPath)
	}
	return nil
}

func writeReportFile(path string, rows []report.Row, write func(w io.Writer, rows []report.Row) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err := write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
