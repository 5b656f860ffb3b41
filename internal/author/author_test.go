package author

import (
	"testing"

	"cvcheck/internal/record"
)

func TestNewSignature(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Signature
	}{
		{"surname-first with joined initials", "Smith JA", Signature{Surname: "smith", Initials: "ja"}},
		{"surname-first with split initials", "Smith J A", Signature{Surname: "smith", Initials: "ja"}},
		{"surname-first single initial", "Smith J", Signature{Surname: "smith", Initials: "j"}},
		{"given-first", "John Smith", Signature{Surname: "smith", Initials: "j"}},
		{"given-first with middle", "John Andrew Smith", Signature{Surname: "smith", Initials: "ja"}},
		{"single token", "Smith", Signature{Surname: "smith"}},
		{"punctuation stripped", "O'Brien, K.", Signature{Surname: "obrien", Initials: "k"}},
		{"empty", "", Signature{}},
		{"whitespace only", "   ", Signature{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSignature(tt.input); got != tt.want {
				t.Errorf("NewSignature(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSignature_Matches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "Smith JA", "Smith JA", true},
		{"initials prefix", "Smith JA", "Smith J", true},
		{"prefix is symmetric", "Smith J", "Smith JA", true},
		{"cv form vs external form", "Smith JA", "John A Smith", true},
		{"empty initials on one side", "Smith", "John Smith", true},
		{"different surnames", "Smith JA", "Jones JA", false},
		{"conflicting initials", "Smith JA", "Smith R", false},
		{"case-insensitive surnames", "SMITH JA", "smith ja", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSignature(tt.a).Matches(NewSignature(tt.b))
			if got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSignature_EmptyNeverMatches(t *testing.T) {
	empty := NewSignature("")
	if empty.Matches(empty) {
		t.Error("empty signatures must not match each other")
	}
	if empty.Matches(NewSignature("Smith JA")) {
		t.Error("empty signature must not match a real one")
	}
}

func TestIsEtAl(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"et al", true},
		{"et al.", true},
		{"Et Al.", true},
		{"et als", true},
		{"Smith JA", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEtAl(tt.input); got != tt.want {
			t.Errorf("IsEtAl(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAlignLists(t *testing.T) {
	tests := []struct {
		name     string
		cv       []string
		external []string
		want     bool
	}{
		{
			name:     "exact alignment with initials prefix",
			cv:       []string{"Smith JA", "Doe RK"},
			external: []string{"Smith J", "Doe R"},
			want:     true,
		},
		{
			name:     "full external names",
			cv:       []string{"Smith JA", "Doe RK"},
			external: []string{"John A Smith", "Rachel K Doe"},
			want:     true,
		},
		{
			name:     "et al marker skips remaining",
			cv:       []string{"Smith JA", "et al."},
			external: []string{"Smith JA", "Lee B", "Park C"},
			want:     true,
		},
		{
			name:     "cv shorter than external still aligns",
			cv:       []string{"Smith JA"},
			external: []string{"Smith JA", "Lee B", "Park C"},
			want:     true,
		},
		{
			name:     "external shorter than cv fails",
			cv:       []string{"Smith JA", "Doe RK", "Lee B"},
			external: []string{"Smith JA", "Doe RK"},
			want:     false,
		},
		{
			name:     "order matters",
			cv:       []string{"Smith JA", "Doe RK"},
			external: []string{"Doe RK", "Smith JA"},
			want:     false,
		},
		{
			name:     "empty external never aligns with non-empty cv",
			cv:       []string{"Smith JA"},
			external: nil,
			want:     false,
		},
		{
			name:     "both empty",
			cv:       nil,
			external: nil,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignLists(tt.cv, tt.external); got != tt.want {
				t.Errorf("AlignLists(%v, %v) = %v, want %v", tt.cv, tt.external, got, tt.want)
			}
		})
	}
}

func TestAlignLists_OrderSensitive(t *testing.T) {
	cv := []string{"Smith JA", "Doe RK"}
	external := []string{"John Smith", "Rachel Doe"}

	if !AlignLists(cv, external) {
		t.Fatal("AlignLists() = false for matching order, want true")
	}

	reversed := []string{"Rachel Doe", "John Smith"}
	if AlignLists(cv, reversed) {
		t.Error("AlignLists() = true after reversing external list, want false")
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		cv         []string
		external   []string
		wantStatus record.OverallStatus
		wantAuthor record.AuthorState
	}{
		{
			name:       "aligned lists are good",
			cv:         []string{"Smith JA", "Doe RK"},
			external:   []string{"Smith J", "Doe R"},
			wantStatus: record.StatusGood,
			wantAuthor: record.StateMatch,
		},
		{
			name:       "et al escape is good",
			cv:         []string{"Smith JA", "et al."},
			external:   []string{"Smith JA", "Lee B", "Park C"},
			wantStatus: record.StatusGood,
			wantAuthor: record.StateMatch,
		},
		{
			name:       "misaligned lists are bad",
			cv:         []string{"Smith JA", "Doe RK"},
			external:   []string{"Doe RK", "Smith JA"},
			wantStatus: record.StatusBad,
			wantAuthor: record.StateMismatch,
		},
		{
			name:       "no external authors is a warning",
			cv:         []string{"Smith JA"},
			external:   nil,
			wantStatus: record.StatusWarning,
			wantAuthor: record.StateUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Verify(tt.cv, tt.external)
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", v.Status, tt.wantStatus)
			}
			if v.Authorship != tt.wantAuthor {
				t.Errorf("Authorship = %q, want %q", v.Authorship, tt.wantAuthor)
			}
			if v.Details == "" {
				t.Error("Details is empty, want an explanation")
			}
		})
	}
}

func TestVerifyAgainstProfile(t *testing.T) {
	profile := Profile{FullName: "John A Smith"}

	tests := []struct {
		name       string
		cv         []string
		external   []string
		wantStatus record.OverallStatus
		wantPos    record.AuthorState
	}{
		{
			name:       "same position is good",
			cv:         []string{"Smith JA", "Doe RK"},
			external:   []string{"John A Smith", "Rachel Doe"},
			wantStatus: record.StatusGood,
			wantPos:    record.StateMatch,
		},
		{
			name:       "position differs is a warning",
			cv:         []string{"Smith JA", "Doe RK"},
			external:   []string{"Rachel Doe", "John A Smith"},
			wantStatus: record.StatusWarning,
			wantPos:    record.StateMismatch,
		},
		{
			name:       "name missing externally is bad",
			cv:         []string{"Smith JA"},
			external:   []string{"Rachel Doe", "Brian Lee"},
			wantStatus: record.StatusBad,
			wantPos:    record.StateMismatch,
		},
		{
			name:       "no external authors is a warning",
			cv:         []string{"Smith JA"},
			external:   nil,
			wantStatus: record.StatusWarning,
			wantPos:    record.StateUnknown,
		},
		{
			name:       "not on cv but found externally is good",
			cv:         []string{"Doe RK"},
			external:   []string{"John A Smith"},
			wantStatus: record.StatusGood,
			wantPos:    record.StateMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := VerifyAgainstProfile(tt.cv, tt.external, profile)
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", v.Status, tt.wantStatus)
			}
			if v.Position != tt.wantPos {
				t.Errorf("Position = %q, want %q", v.Position, tt.wantPos)
			}
		})
	}
}

func TestVerifyAgainstProfile_Variants(t *testing.T) {
	profile := Profile{FullName: "John A Smith", Variants: []string{"J Smith-Jones"}}

	v := VerifyAgainstProfile(
		[]string{"Smith-Jones J"},
		[]string{"John Smith-Jones"},
		profile,
	)
	if v.Status != record.StatusGood {
		t.Errorf("Status = %q, want %q for variant name", v.Status, record.StatusGood)
	}
}
