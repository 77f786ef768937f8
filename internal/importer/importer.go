// Package importer reads bulk voter registrations from CSV files exported
// from the registration spreadsheet.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/voting-console/internal/application"
)

// requiredColumns matches the registration spreadsheet header.
var requiredColumns = []string{
	"First Name", "Last Name", "Street#", "Street Name",
	"City", "Postal Code", "Phone", "Email",
}

// ReadVoters parses voter rows from CSV data. The first row must be a header
// containing every required column; extra columns are ignored.
func ReadVoters(r io.Reader) ([]application.VoterInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("file is missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var voters []application.VoterInput
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		voters = append(voters, application.VoterInput{
			FirstName:    field(row, "First Name"),
			LastName:     field(row, "Last Name"),
			StreetNumber: field(row, "Street#"),
			StreetName:   field(row, "Street Name"),
			City:         field(row, "City"),
			PostalCode:   field(row, "Postal Code"),
			Phone:        field(row, "Phone"),
			Email:        field(row, "Email"),
		})
	}

	return voters, nil
}

// ReadVotersFile opens and parses a CSV registration file from disk.
func ReadVotersFile(path string) ([]application.VoterInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadVoters(f)
}
