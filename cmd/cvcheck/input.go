package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cvcheck/internal/pdftext"
	"cvcheck/internal/record"
)

// readCVText reads CV text from a file path or stdin ("-" or empty).
// PDF files are converted to plain text first.
func readCVText(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := pdftext.ExtractFile(path)
		if err != nil {
			return "", fmt.Errorf("extracting PDF text: %w", err)
		}
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading CV file: %w", err)
	}
	return string(data), nil
}

// loadRecords reads previously parsed records from a JSON file, or stdin
// when path is "-" or empty.
func loadRecords(path string) ([]record.PublicationRecord, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening records file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var recs []record.PublicationRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return recs, nil
}

// writeRecords writes records as formatted JSON to a file, or stdout when
// path is empty.
func writeRecords(path string, recs []record.PublicationRecord) error {
	if path == "" {
		return outputJSON(recs)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}
