package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"cvcheck/internal/cache"
	"cvcheck/internal/config"
	"cvcheck/internal/crossref"
	"cvcheck/internal/record"
	"cvcheck/internal/similarity"
)

var (
	matchOutput  string
	matchMailto  string
	matchRows    int
	matchNoCache bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Write records to a file instead of stdout")
	matchCmd.Flags().StringVar(&matchMailto, "mailto", "", "Contact address for the Crossref polite pool")
	matchCmd.Flags().IntVar(&matchRows, "rows", 0, "Candidates to request per record")
	matchCmd.Flags().BoolVar(&matchNoCache, "no-cache", false, "Bypass the local lookup cache")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match [records.json]",
	Short: "Retrieve external candidates for parsed records",
	Long: `Retrieve bibliographic candidates for each parsed record from
Crossref, rank them by similarity to the record, and auto-select the
best candidate when it clearly outscores the runner-up.

Lookups are cached locally; re-running match on the same records does
not repeat API calls. Interrupting the command keeps the candidates
fetched so far.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	recs, err := loadRecords(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	recs, err = matchRecords(recs)
	if err != nil {
		exitWithError(ExitAPIError, "%v", err)
	}

	if humanOutput {
		printMatchesHuman(recs)
		return nil
	}
	return writeRecords(matchOutput, recs)
}

// matchRecords fills in Match for every record. Records are processed
// sequentially; the Crossref client enforces the request rate. On
// interrupt the records matched so far keep their candidates.
func matchRecords(recs []record.PublicationRecord) ([]record.PublicationRecord, error) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	client := crossref.NewClient(clientOptions(cfg)...)

	var db *cache.DB
	if !matchNoCache {
		db, err = cache.Open(cfg.DefaultCachePath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: lookup cache unavailable: %v\n", err)
		} else {
			defer db.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for i := range recs {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "interrupted, keeping partial results")
			break
		}

		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, len(recs), truncateString(recs[i].Title, 60))

		cands, err := lookup(ctx, client, db, recs[i])
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(os.Stderr, "interrupted, keeping partial results")
				break
			}
			return nil, fmt.Errorf("looking up %q: %w", recs[i].Title, err)
		}

		recs[i].Match = &record.Match{Candidates: cands}
		if best := similarity.PickBest(cands); best != nil {
			recs[i].Match.SelectedID = best.ID
			recs[i].Match.AutoSelected = true
		}
	}

	return recs, nil
}

func clientOptions(cfg *config.Config) []crossref.ClientOption {
	var opts []crossref.ClientOption
	if cfg.CrossrefBaseURL != "" {
		opts = append(opts, crossref.WithBaseURL(cfg.CrossrefBaseURL))
	}
	if mailto := firstNonEmpty(matchMailto, cfg.CrossrefMailto); mailto != "" {
		opts = append(opts, crossref.WithMailto(mailto))
	}
	if rows := firstNonZero(matchRows, cfg.CandidateRows); rows > 0 {
		opts = append(opts, crossref.WithRows(rows))
	}
	return opts
}

// lookup consults the cache first, then Crossref. Cache failures degrade
// to direct lookups.
func lookup(ctx context.Context, client *crossref.Client, db *cache.DB, rec record.PublicationRecord) ([]record.ExternalCandidate, error) {
	key := cache.Key(rec)

	if db != nil {
		if cands, ok, err := db.Get(key); err == nil && ok {
			return cands, nil
		}
	}

	cands, err := client.Search(ctx, rec)
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err := db.Put(key, cands); err != nil {
			fmt.Fprintf(os.Stderr, "warning: caching lookup: %v\n", err)
		}
	}
	return cands, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func printMatchesHuman(recs []record.PublicationRecord) {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		selected, score := "", ""
		if sel := rec.Match.Selected(); sel != nil {
			selected = truncateString(sel.Title, 50)
			score = strconv.FormatFloat(sel.Score, 'f', 3, 64)
		}
		rows = append(rows, []string{
			truncateString(rec.Title, 50),
			strconv.Itoa(candidateCount(rec)),
			selected,
			score,
		})
	}
	fmt.Println(renderTable([]string{"Title", "Candidates", "Selected", "Score"}, rows))
}

func candidateCount(rec record.PublicationRecord) int {
	if rec.Match == nil {
		return 0
	}
	return len(rec.Match.Candidates)
}
