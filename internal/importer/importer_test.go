package importer

import (
	"strings"
	"testing"
)

const sampleCSV = `First Name,Last Name,Street#,Street Name,City,Postal Code,Phone,Email
Alice,Smith,12,Main St,Springfield,A1B 2C3,+15550100,alice@example.com
Bob,Jones,34,Oak Ave,Shelbyville,Z9Y 8X7,+15550101,bob@example.com
`

func TestReadVoters(t *testing.T) {
	t.Parallel()

	voters, err := ReadVoters(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadVoters returned error: %v", err)
	}
	if len(voters) != 2 {
		t.Fatalf("expected 2 voters, got %d", len(voters))
	}

	alice := voters[0]
	if alice.Email != "alice@example.com" || alice.FirstName != "Alice" || alice.StreetNumber != "12" {
		t.Fatalf("unexpected first row: %+v", alice)
	}
	if voters[1].City != "Shelbyville" {
		t.Fatalf("unexpected second row: %+v", voters[1])
	}
}

func TestReadVoters_ColumnOrderIsFlexible(t *testing.T) {
	t.Parallel()

	reordered := `Email,Phone,Postal Code,City,Street Name,Street#,Last Name,First Name,Notes
alice@example.com,+15550100,A1B 2C3,Springfield,Main St,12,Smith,Alice,ignored
`
	voters, err := ReadVoters(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("ReadVoters returned error: %v", err)
	}
	if len(voters) != 1 {
		t.Fatalf("expected 1 voter, got %d", len(voters))
	}
	if voters[0].Email != "alice@example.com" || voters[0].LastName != "Smith" {
		t.Fatalf("unexpected voter: %+v", voters[0])
	}
}

func TestReadVoters_MissingColumns(t *testing.T) {
	t.Parallel()

	_, err := ReadVoters(strings.NewReader("First Name,Last Name\nAlice,Smith\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "Email") {
		t.Fatalf("error must name the missing columns, got %q", err)
	}
}

func TestReadVoters_EmptyFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadVoters(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestReadVotersFile_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadVotersFile("does-not-exist.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
