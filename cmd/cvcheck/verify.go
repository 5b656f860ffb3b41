package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cvcheck/internal/author"
	"cvcheck/internal/config"
	"cvcheck/internal/record"
)

var (
	verifyProfile  string
	verifyVariants []string
)

func init() {
	addProfileFlags(verifyCmd)
	rootCmd.AddCommand(verifyCmd)
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&verifyProfile, "profile", "", "Verify only this person's authorship instead of the whole author list")
	cmd.Flags().StringArrayVar(&verifyVariants, "variant", nil, "Additional name variant for --profile (repeatable)")
}

var verifyCmd = &cobra.Command{
	Use:   "verify [records.json]",
	Short: "Verify claimed authorship against selected candidates",
	Long: `Verify each record's claimed author list against the author list of
its selected external candidate.

By default the whole author lists are aligned position by position,
with a trailing "et al." accepting any remainder. With --profile only
the named person's presence and position are checked; --variant adds
alternate spellings of the name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

// VerifiedRecord pairs a record with its verification verdict.
type VerifiedRecord struct {
	Record  record.PublicationRecord `json:"record"`
	Verdict record.Verdict           `json:"verdict"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	recs, err := loadRecords(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	results := verifyRecords(recs, resolveProfile())

	if humanOutput {
		printVerdictsHuman(results)
		return nil
	}
	return outputJSON(results)
}

// resolveProfile builds the verification profile from flags, falling
// back to the configured owner name. Nil means whole-list alignment.
func resolveProfile() *author.Profile {
	name, variants := verifyProfile, verifyVariants
	if name == "" {
		if cfg, err := config.Load(); err == nil && cfg.OwnerName != "" && len(verifyVariants) == 0 {
			// Config only supplies the profile when the flags are untouched.
			name, variants = cfg.OwnerName, cfg.OwnerVariants
		}
	}
	if name == "" {
		return nil
	}
	return &author.Profile{FullName: name, Variants: variants}
}

func verifyRecords(recs []record.PublicationRecord, profile *author.Profile) []VerifiedRecord {
	results := make([]VerifiedRecord, 0, len(recs))
	for _, rec := range recs {
		results = append(results, VerifiedRecord{
			Record:  rec,
			Verdict: verdictFor(rec, profile),
		})
	}
	return results
}

func verdictFor(rec record.PublicationRecord, profile *author.Profile) record.Verdict {
	var external []string
	if sel := rec.Match.Selected(); sel != nil {
		external = sel.Authors
	}

	if profile != nil {
		return author.VerifyAgainstProfile(rec.Authors, external, *profile)
	}
	return author.Verify(rec.Authors, external)
}

func printVerdictsHuman(results []VerifiedRecord) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			truncateString(res.Record.Title, 55),
			string(res.Verdict.Authorship),
			string(res.Verdict.Position),
			string(res.Verdict.Status),
			truncateString(res.Verdict.Details, 45),
		})
	}
	fmt.Println(renderTable([]string{"Title", "Authorship", "Position", "Status", "Details"}, rows))

	good, warn, bad := summarize(results)
	fmt.Printf("%d good, %d warning, %d bad\n", good, warn, bad)
}

func summarize(results []VerifiedRecord) (good, warn, bad int) {
	for _, res := range results {
		switch res.Verdict.Status {
		case record.StatusGood:
			good++
		case record.StatusWarning:
			warn++
		case record.StatusBad:
			bad++
		}
	}
	return good, warn, bad
}
