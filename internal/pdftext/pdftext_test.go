package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name   string
		chunks []pdf.Text
		want   string
	}{
		{
			name: "adjacent chunks joined without space",
			chunks: []pdf.Text{
				{X: 0, W: 10, S: "Publica"},
				{X: 10.2, W: 8, S: "tions"},
			},
			want: "Publications",
		},
		{
			name: "gap inserts word break",
			chunks: []pdf.Text{
				{X: 0, W: 10, S: "Smith"},
				{X: 15, W: 5, S: "JA"},
			},
			want: "Smith JA",
		},
		{
			name: "chunks sorted by position before joining",
			chunks: []pdf.Text{
				{X: 20, W: 5, S: "World"},
				{X: 0, W: 10, S: "Hello"},
			},
			want: "Hello World",
		},
		{
			name: "empty chunks skipped",
			chunks: []pdf.Text{
				{X: 0, W: 5, S: "A"},
				{X: 5, W: 0, S: ""},
				{X: 5.5, W: 5, S: "B"},
			},
			want: "AB",
		},
		{
			name:   "empty row",
			chunks: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinRow(tt.chunks); got != tt.want {
				t.Errorf("joinRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFileMissing(t *testing.T) {
	if _, err := ExtractFile("does-not-exist.pdf"); err == nil {
		t.Error("ExtractFile() on a missing file = nil error, want error")
	}
}
