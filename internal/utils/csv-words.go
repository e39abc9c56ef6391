package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCsvFile loads a word list from path. See ReadWords for the format.
func ReadCsvFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read word file %s: %w", filePath, err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s as CSV: %w", filePath, err)
	}
	return words, nil
}

// ReadWords reads one word per record from the first column. Extra columns
// (such as a usage count) are ignored, a "word" header row is skipped, and
// blank or duplicate words are dropped.
func ReadWords(r io.Reader) ([]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	csvReader.TrimLeadingSpace = true

	var words []string
	seen := make(map[string]bool)
	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		word := strings.TrimSpace(record[0])
		if word == "" || seen[word] || (line == 1 && strings.EqualFold(word, "word")) {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words, nil
}
