package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cvcheck/internal/cvtext"
	"cvcheck/internal/extract"
	"cvcheck/internal/record"
)

var parseOutput string

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Write records to a file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract publication records from CV text",
	Long: `Extract publication records from a CV.

Reads plain text or a PDF file; with no argument (or "-") reads text
from stdin. Each entry in the publications section becomes one record
with its authors, title, venue, and year extracted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	recs, err := parseRecords(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		printRecordsHuman(recs)
		return nil
	}
	return writeRecords(parseOutput, recs)
}

// parseRecords runs the text pipeline: read, segment, extract.
func parseRecords(path string) ([]record.PublicationRecord, error) {
	text, err := readCVText(path)
	if err != nil {
		return nil, err
	}

	frags := cvtext.Segment(text)
	if len(frags) == 0 {
		return nil, fmt.Errorf("no publication entries found")
	}

	return extract.BuildRecords(frags), nil
}

func printRecordsHuman(recs []record.PublicationRecord) {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		year := ""
		if rec.Year != 0 {
			year = strconv.Itoa(rec.Year)
		}
		rows = append(rows, []string{
			string(rec.Type),
			truncateString(rec.Title, 60),
			truncateString(strings.Join(rec.Authors, "; "), 40),
			truncateString(rec.Venue, 30),
			year,
		})
	}
	fmt.Println(renderTable([]string{"Type", "Title", "Authors", "Venue", "Year"}, rows))
	fmt.Printf("%d record(s)\n", len(recs))
}
