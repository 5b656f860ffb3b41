package cache

import (
	"path/filepath"
	"testing"

	"cvcheck/internal/record"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMiss(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get("no such key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() on empty cache reported a hit")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cands := []record.ExternalCandidate{
		{
			ID:      record.NewID(),
			DOI:     "10.1234/abc",
			Title:   "A Study of Things",
			Authors: []string{"Smith JA", "Doe RK"},
			Venue:   "Journal of Medicine",
			Year:    2020,
			Score:   0.913,
			Source:  "Crossref",
		},
	}

	if err := db.Put("key-1", cands); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := db.Get("key-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() after Put() reported a miss")
	}
	if len(got) != 1 {
		t.Fatalf("Get() returned %d candidates, want 1", len(got))
	}
	if got[0].DOI != cands[0].DOI || got[0].Score != cands[0].Score {
		t.Errorf("Get() = %+v, want %+v", got[0], cands[0])
	}
	if len(got[0].Authors) != 2 || got[0].Authors[0] != "Smith JA" {
		t.Errorf("Authors = %v, want preserved order", got[0].Authors)
	}
}

func TestPutReplaces(t *testing.T) {
	db := openTestDB(t)

	if err := db.Put("key", []record.ExternalCandidate{{Title: "old"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := db.Put("key", []record.ExternalCandidate{{Title: "new"}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := db.Get("key")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, error %v", ok, err)
	}
	if len(got) != 1 || got[0].Title != "new" {
		t.Errorf("Get() = %+v, want the replacement entry", got)
	}
}

func TestPutEmptyResult(t *testing.T) {
	db := openTestDB(t)

	// A lookup that found nothing is still a cacheable answer.
	if err := db.Put("key", nil); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := db.Get("key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Error("Get() after caching an empty result reported a miss")
	}
	if len(got) != 0 {
		t.Errorf("Get() = %v, want no candidates", got)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		rec  record.PublicationRecord
		want string
	}{
		{
			name: "all fields",
			rec:  record.PublicationRecord{Title: "A Study", Venue: "J Med", Year: 2020},
			want: "a study|j med|2020",
		},
		{
			name: "case and spacing folded",
			rec:  record.PublicationRecord{Title: "A  STUDY", Venue: "j  med", Year: 2020},
			want: "a study|j med|2020",
		},
		{
			name: "year absent",
			rec:  record.PublicationRecord{Title: "A Study", Venue: "J Med"},
			want: "a study|j med",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.rec); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}
