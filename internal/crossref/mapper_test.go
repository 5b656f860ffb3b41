package crossref

import (
	"reflect"
	"testing"
)

func TestMapAuthors(t *testing.T) {
	tests := []struct {
		name  string
		names []workName
		want  []string
	}{
		{
			name: "given and family",
			names: []workName{
				{Given: "John A", Family: "Smith"},
				{Given: "Rachel", Family: "Doe"},
			},
			want: []string{"John A Smith", "Rachel Doe"},
		},
		{
			name:  "family only",
			names: []workName{{Family: "Smith"}},
			want:  []string{"Smith"},
		},
		{
			name:  "empty entry skipped",
			names: []workName{{}, {Given: "A", Family: "B"}},
			want:  []string{"A B"},
		},
		{
			name:  "no authors",
			names: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAuthors(tt.names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mapAuthors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDatePartsYear(t *testing.T) {
	tests := []struct {
		name string
		d    *dateParts
		want int
	}{
		{"nil", nil, 0},
		{"empty", &dateParts{}, 0},
		{"empty inner", &dateParts{DateParts: [][]int{{}}}, 0},
		{"year only", &dateParts{DateParts: [][]int{{2021}}}, 2021},
		{"full date", &dateParts{DateParts: [][]int{{2019, 6, 1}}}, 2019},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.year(); got != tt.want {
				t.Errorf("year() = %d, want %d", got, tt.want)
			}
		})
	}
}
