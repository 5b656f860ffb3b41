package crossref

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cvcheck/internal/record"
)

const worksFixture = `{
	"message": {
		"items": [
			{
				"DOI": "10.1234/other",
				"title": ["A Different Paper Altogether"],
				"container-title": ["Unrelated Quarterly"],
				"author": [{"given": "Brian", "family": "Lee"}],
				"published-print": {"date-parts": [[2010]]}
			},
			{
				"DOI": "10.1234/match",
				"title": ["A Study of Things"],
				"container-title": ["Journal of Medicine"],
				"author": [
					{"given": "John A", "family": "Smith"},
					{"given": "Rachel K", "family": "Doe"}
				],
				"published-online": {"date-parts": [[2020, 3, 14]]}
			}
		]
	}
}`

func testRecord() record.PublicationRecord {
	return record.PublicationRecord{
		Title: "A Study of Things",
		Venue: "Journal of Medicine",
		Year:  2020,
	}
}

func TestClient_Search(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(worksFixture))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithMailto("someone@example.org"), WithRows(2))
	cands, err := c.Search(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(cands) != 2 {
		t.Fatalf("Search() returned %d candidates, want 2", len(cands))
	}

	// The better match must be ranked first, independent of source order.
	if cands[0].DOI != "10.1234/match" {
		t.Errorf("cands[0].DOI = %q, want the matching paper first", cands[0].DOI)
	}
	if cands[0].Score <= cands[1].Score {
		t.Errorf("candidates not sorted descending: %v, %v", cands[0].Score, cands[1].Score)
	}
	for i, cand := range cands {
		if cand.Score < 0 || cand.Score > 1 {
			t.Errorf("cands[%d].Score = %v, want in [0,1]", i, cand.Score)
		}
		if cand.Source != SourceName {
			t.Errorf("cands[%d].Source = %q, want %q", i, cand.Source, SourceName)
		}
		if cand.ID == "" {
			t.Errorf("cands[%d] has no id", i)
		}
	}

	wantAuthors := []string{"John A Smith", "Rachel K Doe"}
	for i, a := range cands[0].Authors {
		if a != wantAuthors[i] {
			t.Errorf("cands[0].Authors[%d] = %q, want %q", i, a, wantAuthors[i])
		}
	}
	if cands[0].Year != 2020 {
		t.Errorf("cands[0].Year = %d, want online date used when print is absent", cands[0].Year)
	}

	if got := gotQuery["query.bibliographic"]; len(got) != 1 || got[0] != "A Study of Things Journal of Medicine 2020" {
		t.Errorf("query.bibliographic = %v, want title+venue+year", got)
	}
	if got := gotQuery["mailto"]; len(got) != 1 || got[0] != "someone@example.org" {
		t.Errorf("mailto = %v, want polite-pool contact", got)
	}
	if got := gotQuery["rows"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("rows = %v, want 2", got)
	}
}

func TestClient_SearchEmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	cands, err := c.Search(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("Search() = %d candidates, want 0", len(cands))
	}
}

func TestClient_SearchHTTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantRateErr bool
	}{
		{"server error", http.StatusInternalServerError, false},
		{"not found", http.StatusNotFound, false},
		{"rate limited", http.StatusTooManyRequests, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			_, err := c.Search(context.Background(), testRecord())
			if err == nil {
				t.Fatal("Search() error = nil, want error")
			}
			if IsRateLimited(err) != tt.wantRateErr {
				t.Errorf("IsRateLimited(%v) = %v, want %v", err, IsRateLimited(err), tt.wantRateErr)
			}
			if !tt.wantRateErr {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Errorf("error %v is not an *APIError", err)
				} else if apiErr.StatusCode != tt.status {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
				}
			}
		})
	}
}

func TestClient_SearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), testRecord())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Search() error = %v, want ErrInvalidResponse", err)
	}
}

func TestClient_SearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBaseURL("http://127.0.0.1:0"))
	if _, err := c.Search(ctx, testRecord()); err == nil {
		t.Error("Search() with cancelled context = nil error, want error")
	}
}
