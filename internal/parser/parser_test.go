package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "test.csv", "name,age,email\nJohn Doe,30,john.doe@example.com\nJane Smith,25,jane.smith@example.com")

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "John Doe", rows[0]["name"])
	assert.Equal(t, "30", rows[0]["age"])
	assert.Equal(t, "john.doe@example.com", rows[0]["email"])
	assert.Equal(t, "Jane Smith", rows[1]["name"])
	assert.Equal(t, "25", rows[1]["age"])
	assert.Equal(t, "jane.smith@example.com", rows[1]["email"])
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nonexistent.csv"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, perr.Path, "nonexistent.csv")
}

func TestParseCSV_StripsBOM(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("\ufeffLead ID,Status\nL-1,Open\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "L-1", rows[0]["Lead ID"])
}

func TestParseCSV_KeepsUnicodeAndQuotes(t *testing.T) {
	input := "Lead Name,Contact Information\n\"Zoë, Müller\",\"+49 30 \"\"main\"\"\"\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zoë, Müller", rows[0]["Lead Name"])
	assert.Equal(t, `+49 30 "main"`, rows[0]["Contact Information"])
}

func TestParseCSV_RaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\n1,2,3,4\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, hasC := rows[0]["c"]
	assert.False(t, hasC, "short row must not invent a value for c")
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, rows[1])
}

func TestParseCSVRecords_SourceLines(t *testing.T) {
	input := "id,note\n1,plain\n\n2,\"spans\ntwo lines\"\n3,last\n"

	records, err := ParseCSVRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, 4, records[1].Line)
	assert.Equal(t, "spans\ntwo lines", records[1].Values["note"])
	assert.Equal(t, 6, records[2].Line)
}

func TestParseCSVRecords_BOMDoesNotShiftLines(t *testing.T) {
	records, err := ParseCSVRecords(strings.NewReader("\ufeffid\n1\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, "1", records[0].Values["id"])
}

func TestParseCSV_EmptyInputs(t *testing.T) {
	for name, input := range map[string]string{
		"empty":       "",
		"header only": "Lead ID,Lead Name\n",
		"blank lines": "Lead ID,Lead Name\n\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			rows, err := ParseCSV(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestParseCSV_InvalidUTF8(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name\n\xff\xfe\n"))

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestReadJSONFile(t *testing.T) {
	path := writeFile(t, "ex_data.json", `{"name": "John Doe", "age": 30, "email": "john.doe@example.com"}`)

	data, err := ReadJSONFile(path)
	require.NoError(t, err)

	obj, ok := data.(map[string]interface{})
	require.True(t, ok, "expected object, got %T", data)
	assert.Equal(t, "John Doe", obj["name"])
	assert.Equal(t, float64(30), obj["age"])
	assert.Equal(t, "john.doe@example.com", obj["email"])
}

func TestReadJSONFile_Errors(t *testing.T) {
	var perr *ParseError

	_, err := ReadJSONFile(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.ErrorAs(t, err, &perr)

	_, err = ReadJSONFile(writeFile(t, "invalid.json", "{invalid json}"))
	assert.ErrorAs(t, err, &perr)
}

func BenchmarkParseCSV(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Lead ID,Lead Name,Contact Information,Source,Interest Level,Status,Assigned Salesperson\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("L-1,Jane Doe,jane@example.com,Referral,High,Open,Sam\n")
	}
	input := sb.String()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := ParseCSV(strings.NewReader(input)); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
